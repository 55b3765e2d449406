// Package errors/handlers provides interface-specific error handling implementations.
//
// SYSTEM ARCHITECTURE ROLE:
// This module implements the interface layer of the error handling system,
// providing customized error formatting for the two surfaces the application
// has: the terminal before the TUI starts, and the TUI status bar after.
//
// KEY RESPONSIBILITIES:
// - Convert structured AppErrors into interface-appropriate representations
// - Provide consistent error logging across both interfaces
// - Keep best-effort housekeeping errors (orphan sweep) out of the user's face
//   while still recording them
//
// INTEGRATION POINTS:
// - main.go: CLIErrorHandler formats startup failures for the terminal
// - internal/ui/model.go: TUIErrorHandler supplies status-bar text and styling
// - ~/.prompt-loom/logs/error.log: file logging destination for debugging
// - os.Stderr: console output for pre-TUI warnings
//
// ERROR FLOW:
// 1. Business logic generates AppError
// 2. Interface-specific handler processes the error
// 3. Handler formats error for display
// 4. Handler logs error for debugging
// 5. Formatted error is returned to user
//
// USAGE PATTERNS:
// - CLI: create CLIErrorHandler and use HandleError()
// - TUI: use FormatError() for the status bar and GetErrorStyle() for color
//
// FUTURE DEVELOPMENT:
// - Add new interface handlers by implementing ErrorHandler interface
// - Implement structured logging integration (e.g., structured JSON logs)
package errors

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// ErrorHandler provides interface-specific error handling
type ErrorHandler interface {
	HandleError(err error) error
	FormatError(err error) string
}

// CLIErrorHandler handles errors printed to the terminal before the TUI runs
type CLIErrorHandler struct {
	Verbose bool
}

// NewCLIErrorHandler creates a new CLI error handler
func NewCLIErrorHandler(verbose bool) *CLIErrorHandler {
	return &CLIErrorHandler{
		Verbose: verbose,
	}
}

// HandleError handles errors for CLI interface
func (h *CLIErrorHandler) HandleError(err error) error {
	appErr := GetAppError(err)

	// Log error for debugging
	if h.Verbose {
		log.Printf("[%s] %s: %s", appErr.Severity, appErr.Code, appErr.Error())
		if appErr.Cause != nil {
			log.Printf("Caused by: %v", appErr.Cause)
		}
	}

	// Return formatted error for display
	return fmt.Errorf("%s", h.FormatError(appErr))
}

// FormatError formats an error for CLI display
func (h *CLIErrorHandler) FormatError(err error) string {
	appErr := GetAppError(err)

	// Format based on severity
	switch appErr.Severity {
	case SeverityCritical:
		return fmt.Sprintf("❌ CRITICAL: %s", appErr.Message)
	case SeverityError:
		return fmt.Sprintf("❌ ERROR: %s", appErr.Message)
	case SeverityWarning:
		return fmt.Sprintf("⚠️  WARNING: %s", appErr.Message)
	case SeverityInfo:
		return fmt.Sprintf("ℹ️  INFO: %s", appErr.Message)
	default:
		return fmt.Sprintf("❌ %s", appErr.Message)
	}
}

// TUIErrorHandler handles errors for TUI interface
type TUIErrorHandler struct {
	ShowDetails bool
}

// NewTUIErrorHandler creates a new TUI error handler
func NewTUIErrorHandler(showDetails bool) *TUIErrorHandler {
	return &TUIErrorHandler{
		ShowDetails: showDetails,
	}
}

// HandleError handles errors for TUI interface
func (h *TUIErrorHandler) HandleError(err error) error {
	appErr := GetAppError(err)

	// Log error to file for debugging
	logToFile(appErr)

	return appErr
}

// FormatError formats an error for TUI display
func (h *TUIErrorHandler) FormatError(err error) string {
	appErr := GetAppError(err)

	message := appErr.Message
	if h.ShowDetails && appErr.Details != "" {
		message = fmt.Sprintf("%s\nDetails: %s", message, appErr.Details)
	}

	return message
}

// GetErrorStyle returns styling information for TUI based on error severity
func (h *TUIErrorHandler) GetErrorStyle(err error) (string, string) {
	appErr := GetAppError(err)

	switch appErr.Severity {
	case SeverityCritical:
		return "🔥", "#ff0000" // Red
	case SeverityError:
		return "❌", "#ff6b6b" // Light red
	case SeverityWarning:
		return "⚠️", "#feca57" // Yellow
	case SeverityInfo:
		return "ℹ️", "#48cae4" // Blue
	default:
		return "❌", "#ff6b6b"
	}
}

// logToFile logs errors to a file for debugging
func logToFile(appErr *AppError) {
	// Create logs directory if it doesn't exist
	logDir := os.Getenv("PROMPT_LOOM_DIR")
	if logDir == "" {
		logDir = os.ExpandEnv("$HOME/.prompt-loom")
	}
	logDir = filepath.Join(logDir, "logs")

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return // Fail silently if we can't create log directory
	}

	logFile := filepath.Join(logDir, "error.log")
	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return // Fail silently if we can't open log file
	}
	defer file.Close()

	logEntry := fmt.Sprintf("[%s] [%s] [%s] %s: %s",
		appErr.Timestamp.Format("2006-01-02 15:04:05"),
		appErr.Severity,
		appErr.Category,
		appErr.Code,
		appErr.Error())

	if appErr.Cause != nil {
		logEntry += fmt.Sprintf(" | Cause: %v", appErr.Cause)
	}

	if appErr.Context != nil {
		contextJSON, _ := json.Marshal(appErr.Context)
		logEntry += fmt.Sprintf(" | Context: %s", string(contextJSON))
	}

	logEntry += "\n"

	file.WriteString(logEntry)
}

// CreateGlobalErrorHandler creates an error handler based on environment
func CreateGlobalErrorHandler() ErrorHandler {
	if os.Getenv("TUI_MODE") == "true" {
		return NewTUIErrorHandler(os.Getenv("DEBUG") == "true")
	}

	// Default to CLI handler
	return NewCLIErrorHandler(os.Getenv("DEBUG") == "true" || os.Getenv("VERBOSE") == "true")
}
