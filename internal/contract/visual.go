package contract

import (
	"fmt"
	"strings"
)

// VisualPrompt frames a user description as a project concept render.
func VisualPrompt(description string) (string, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return "", fmt.Errorf("visual description is empty")
	}

	return fmt.Sprintf("A high-end professional 3D architectural or technical concept visualization for a procurement project: %s. "+
		"Professional, photorealistic, cinematic lighting, corporate engineering style.", description), nil
}
