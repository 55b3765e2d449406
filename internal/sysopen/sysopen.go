// Package sysopen opens files and folders with the operating system's
// default handler.
package sysopen

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Open launches the platform handler for the given path without blocking.
func Open(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("explorer", path)
	case "linux":
		cmd = exec.Command("xdg-open", path)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	return nil
}

// Reveal opens the folder containing the given file.
func Reveal(path string) error {
	if runtime.GOOS == "darwin" {
		// Finder can select the file itself
		if err := exec.Command("open", "-R", path).Start(); err != nil {
			return fmt.Errorf("failed to reveal %s: %w", path, err)
		}
		return nil
	}
	return Open(filepath.Dir(path))
}
