package contract

import (
	"bytes"
	"errors"
	"regexp"
)

var fencedObjectPattern = regexp.MustCompile("(?s)^```(?:json)?\\s*\\n?(\\{.*\\})\\s*```$")

// unwrapJSON accepts a bare JSON object or one wrapped in a single markdown
// code fence. Anything else is rejected as is.
func unwrapJSON(data []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("empty response")
	}

	if matches := fencedObjectPattern.FindSubmatch(trimmed); len(matches) > 1 {
		return matches[1], nil
	}
	if trimmed[0] != '{' {
		return nil, errors.New("response is not a JSON object")
	}

	return trimmed, nil
}
