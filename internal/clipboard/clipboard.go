// Package clipboard copies rendered prompt text to the system clipboard via
// the platform's native utility.
package clipboard

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// ClipboardError represents an error when no clipboard utility is available
type ClipboardError struct {
	OS      string
	Message string
}

func (e *ClipboardError) Error() string {
	return e.Message
}

// NewClipboardError creates a new ClipboardError with helpful installation instructions
func NewClipboardError() *ClipboardError {
	var msg string
	switch runtime.GOOS {
	case "linux":
		msg = "no clipboard utility found. Install one of:\n" +
			"  • Ubuntu/Debian: sudo apt install xclip\n" +
			"  • Fedora/RHEL: sudo dnf install xclip\n" +
			"  • Arch: sudo pacman -S xclip\n" +
			"  • For Wayland: install wl-clipboard"
	case "darwin":
		msg = "pbcopy not available (this should not happen on macOS)"
	case "windows":
		msg = "clip command not available (this should not happen on Windows)"
	default:
		msg = fmt.Sprintf("clipboard not supported on %s", runtime.GOOS)
	}

	return &ClipboardError{
		OS:      runtime.GOOS,
		Message: msg,
	}
}

// tool is one platform clipboard command to try
type tool struct {
	name string
	args []string
}

func platformTools() []tool {
	switch runtime.GOOS {
	case "darwin":
		return []tool{{name: "pbcopy"}}
	case "linux":
		return []tool{
			{name: "xclip", args: []string{"-selection", "clipboard"}},
			{name: "xsel", args: []string{"--clipboard", "--input"}},
			{name: "wl-copy"},
		}
	case "windows":
		return []tool{{name: "clip"}}
	}
	return nil
}

// Copy copies text to the system clipboard, trying each platform utility in turn
func Copy(text string) error {
	tools := platformTools()
	if len(tools) == 0 {
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	var lastErr error
	for _, tl := range tools {
		path, err := exec.LookPath(tl.name)
		if err != nil {
			continue
		}
		cmd := exec.Command(path, tl.args...)
		cmd.Stdin = strings.NewReader(text)
		if err := cmd.Run(); err == nil {
			return nil
		} else {
			lastErr = fmt.Errorf("%s failed: %w", tl.name, err)
		}
	}

	if lastErr != nil {
		return fmt.Errorf("clipboard utilities available but failed: %w", lastErr)
	}

	return NewClipboardError()
}

// CopyWithFallback attempts to copy to clipboard and returns a status message
func CopyWithFallback(text string) (string, error) {
	err := Copy(text)
	if err != nil {
		// Missing utilities carry their own installation instructions
		var clipErr *ClipboardError
		if errors.As(err, &clipErr) {
			return "", err
		}
		return "", fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return "Copied to clipboard!", nil
}

// IsClipboardAvailable checks if clipboard functionality is available
func IsClipboardAvailable() bool {
	if runtime.GOOS == "windows" {
		return true // clip ships with Windows
	}
	for _, tl := range platformTools() {
		if _, err := exec.LookPath(tl.name); err == nil {
			return true
		}
	}
	return false
}
