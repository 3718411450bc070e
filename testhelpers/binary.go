package testhelpers

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

var (
	sharedBinaryPath string
	binaryOnce       sync.Once
	binaryErr        error
)

// GetSharedBinaryPath returns the dmd binary path, building it on first use.
func GetSharedBinaryPath() string {
	binaryOnce.Do(func() {
		if sharedBinaryPath == "" {
			sharedBinaryPath, binaryErr = buildBinary()
		}
	})
	return sharedBinaryPath
}

// GetBinaryError returns any error that occurred during binary building.
func GetBinaryError() error {
	return binaryErr
}

// buildBinary builds ./cmd/dmd into a temporary directory and returns its path.
func buildBinary() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	// scenes chdir into temp repos, so fall back to this file's module when needed
	moduleRoot := findModuleRoot(wd)
	if moduleRoot == "" {
		moduleRoot = findModuleRoot(moduleDirHint)
	}
	if moduleRoot == "" {
		return "", fmt.Errorf("could not find module root (go.mod) starting from %s", wd)
	}

	tmpDir, err := os.MkdirTemp("", "dmd-test-binary-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp directory: %w", err)
	}

	binaryPath := filepath.Join(tmpDir, "dmd")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/dmd")
	cmd.Dir = moduleRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", fmt.Errorf("failed to build: %s: %w", string(output), err)
	}
	return binaryPath, nil
}

// findModuleRoot walks up from startDir to the directory containing go.mod.
func findModuleRoot(startDir string) string {
	if startDir == "" {
		return ""
	}
	dir := startDir
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// moduleDirHint is the package directory the test binary started in
var moduleDirHint, _ = os.Getwd()

// TestMain builds the dmd binary once before running a package's tests and
// removes it afterwards. Packages call it from their own TestMain.
func TestMain(m *testing.M, cleanup func()) {
	binaryPath := GetSharedBinaryPath()
	if binaryPath == "" {
		fmt.Fprintf(os.Stderr, "Failed to build dmd binary: %v\n", binaryErr)
		os.Exit(1)
	}

	code := m.Run()

	_ = os.RemoveAll(filepath.Dir(binaryPath))
	if cleanup != nil {
		cleanup()
	}
	os.Exit(code)
}
