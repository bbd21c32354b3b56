package e2e

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// buildNotebookBinary builds the notebook binary in the specified directory and returns its path.
func buildNotebookBinary(t *testing.T, dir string) string {
	t.Helper()
	bin := filepath.Join(dir, "notebook.exe")
	// Assumes tests are running from tests/e2e.
	buildCmd := exec.Command("go", "build", "-o", bin, "../../cmd/notebook")
	if out, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build notebook: %v\n%s", err, string(out))
	}
	return bin
}

type result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// runNotebook executes the binary in dir with no config from the environment.
func runNotebook(t *testing.T, dir, bin string, args ...string) result {
	t.Helper()
	cmd := exec.Command(bin, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "NOTEBOOK_CONFIG=", "NO_COLOR=1")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := result{Stdout: stdout.String(), Stderr: stderr.String()}
	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
	default:
		t.Fatalf("Command %s %v failed to start: %v", bin, args, err)
	}
	return res
}

// mustRun executes the binary and fails the test on a non-zero exit.
func mustRun(t *testing.T, dir, bin string, args ...string) string {
	t.Helper()
	res := runNotebook(t, dir, bin, args...)
	if res.ExitCode != 0 {
		t.Fatalf("Command %v exited with %d\nstdout: %s\nstderr: %s", args, res.ExitCode, res.Stdout, res.Stderr)
	}
	return res.Stdout
}
