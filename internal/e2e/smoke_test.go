package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)

	_, stderr, err := runTL(t, binaryPath, home,
		"account", "create",
		"--id", "acc-1",
		"--email", "bids@atlas.example",
		"--name", "Atlas",
	)
	require.NoError(t, err, "stderr: %s", stderr)

	_, stderr, err = runTL(t, binaryPath, home,
		"auth", "set",
		"--provider", "gemini",
		"--secret-value", "gm-test-123",
	)
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, stderr, err := runTL(t, binaryPath, home, "--account", "acc-1", "account", "show")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Atlas <bids@atlas.example> (acc-1)")
	assert.Contains(t, stdout, "0/1 used, 1 left")

	stdout, stderr, err = runTL(t, binaryPath, home, "log", "list")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "User registered: bids@atlas.example")
	assert.Contains(t, stdout, "Oracle credentials updated for gemini")
}

func TestSmokeFlowWithSQLiteStore(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)
	configDir := filepath.Join(home, ".tenderlogic")
	require.NoError(t, os.MkdirAll(configDir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.toml"), []byte("[store]\ndriver = \"sqlite\"\n"), 0o600))

	_, stderr, err := runTL(t, binaryPath, home, "account", "create", "--id", "acc-1", "--email", "bids@atlas.example", "--tier", "PRO")
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, stderr, err := runTL(t, binaryPath, home, "account", "list")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "0/10 used, 10 left")
	assert.FileExists(t, filepath.Join(configDir, "tenderlogic.db"))
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "tl-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/tl")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build tl binary: %s", string(output))
	return binaryPath
}

func runTL(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home, "PATH=")
	cmd.Dir = home

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}
