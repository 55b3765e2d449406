package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Design System Colors - Adaptive based on terminal background
var (
	// Primary brand colors (work well on both light and dark)
	ColorPrimary   lipgloss.Color
	ColorSecondary lipgloss.Color
	ColorAccent    lipgloss.Color

	// Semantic colors
	ColorSuccess lipgloss.Color
	ColorWarning lipgloss.Color
	ColorError   lipgloss.Color
	ColorInfo    lipgloss.Color

	// Neutral colors (contrast-adaptive)
	ColorText       lipgloss.Color
	ColorTextMuted  lipgloss.Color
	ColorTextDim    lipgloss.Color
	ColorBorder     lipgloss.Color
	ColorBackground lipgloss.Color
	ColorSurface    lipgloss.Color
	ColorOverlay    lipgloss.Color
)

// initializeColors sets up adaptive colors based on terminal background
func initializeColors() {
	// Check for environment variable override
	switch os.Getenv("GLAMOUR_STYLE") {
	case "light":
		setLightThemeColors()
	case "dark":
		setDarkThemeColors()
	default:
		// Auto-detect based on terminal background
		if lipgloss.HasDarkBackground() {
			setDarkThemeColors()
		} else {
			setLightThemeColors()
		}
	}

	// Styles capture color values, so they must be rebuilt after the
	// palette changes
	initializeStyles()
}

func setDarkThemeColors() {
	// Brand colors - work well on dark backgrounds
	ColorPrimary = lipgloss.Color("205")  // Bright magenta/pink
	ColorSecondary = lipgloss.Color("33") // Bright cyan/blue
	ColorAccent = lipgloss.Color("214")   // Bright orange/yellow

	// Semantic colors
	ColorSuccess = lipgloss.Color("10") // Bright green
	ColorWarning = lipgloss.Color("11") // Bright yellow
	ColorError = lipgloss.Color("9")    // Bright red
	ColorInfo = lipgloss.Color("12")    // Bright blue

	// Neutral colors - high contrast for dark backgrounds
	ColorText = lipgloss.Color("252")       // Near white
	ColorTextMuted = lipgloss.Color("244")  // Light gray
	ColorTextDim = lipgloss.Color("240")    // Medium gray
	ColorBorder = lipgloss.Color("238")     // Dark gray
	ColorBackground = lipgloss.Color("235") // Very dark gray
	ColorSurface = lipgloss.Color("236")    // Slightly lighter dark gray
	ColorOverlay = lipgloss.Color("234")    // Darkest gray
}

func setLightThemeColors() {
	// Brand colors - adjusted for light backgrounds
	ColorPrimary = lipgloss.Color("125")  // Darker magenta for contrast
	ColorSecondary = lipgloss.Color("24") // Darker cyan
	ColorAccent = lipgloss.Color("130")   // Darker orange

	// Semantic colors - darker versions for light backgrounds
	ColorSuccess = lipgloss.Color("22")  // Dark green
	ColorWarning = lipgloss.Color("136") // Dark yellow/orange
	ColorError = lipgloss.Color("160")   // Dark red
	ColorInfo = lipgloss.Color("24")     // Dark blue

	// Neutral colors - high contrast for light backgrounds
	ColorText = lipgloss.Color("232")       // Near black
	ColorTextMuted = lipgloss.Color("240")  // Dark gray
	ColorTextDim = lipgloss.Color("244")    // Medium gray
	ColorBorder = lipgloss.Color("248")     // Light gray
	ColorBackground = lipgloss.Color("255") // White
	ColorSurface = lipgloss.Color("254")    // Off-white
	ColorOverlay = lipgloss.Color("253")    // Light gray
}

// Component Styles
var (
	// Base text styles
	StyleTitle    lipgloss.Style
	StyleSubtitle lipgloss.Style
	StyleText     lipgloss.Style
	StyleTextMuted lipgloss.Style
	StyleTextDim  lipgloss.Style

	// Interactive states
	StyleSelected   lipgloss.Style
	StyleUnselected lipgloss.Style

	// Status and feedback
	StyleSuccess lipgloss.Style
	StyleWarning lipgloss.Style
	StyleError   lipgloss.Style
	StyleInfo    lipgloss.Style

	// Layout styles
	StyleModal            lipgloss.Style
	StyleCard             lipgloss.Style
	StyleContentContainer lipgloss.Style

	// Form styles
	StyleFormLabel        lipgloss.Style
	StyleFormLabelFocused lipgloss.Style

	// Special indicators
	StyleLoading         lipgloss.Style
	StyleFilterIndicator lipgloss.Style
	StyleMetadata        lipgloss.Style

	// Scroll indicators
	StyleScrollIndicator       lipgloss.Style
	StyleScrollIndicatorActive lipgloss.Style
)

func initializeStyles() {
	StyleTitle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		Padding(0, 1)

	StyleSubtitle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true).
		Padding(0, 1)

	StyleText = lipgloss.NewStyle().
		Foreground(ColorText)

	StyleTextMuted = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	StyleTextDim = lipgloss.NewStyle().
		Foreground(ColorTextDim)

	StyleSelected = lipgloss.NewStyle().
		Foreground(lipgloss.Color("15")).
		Background(ColorAccent).
		Bold(true).
		Padding(0, 1)

	StyleUnselected = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Padding(0, 1)

	StyleSuccess = lipgloss.NewStyle().
		Foreground(ColorSuccess).
		Bold(true).
		Padding(0, 1)

	StyleWarning = lipgloss.NewStyle().
		Foreground(ColorWarning).
		Bold(true).
		Padding(0, 1)

	StyleError = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true).
		Padding(0, 1)

	StyleInfo = lipgloss.NewStyle().
		Foreground(ColorInfo).
		Bold(true).
		Padding(0, 1)

	StyleModal = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2).
		MarginTop(1).
		MarginBottom(1)

	StyleCard = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(1, 2).
		MarginBottom(1)

	StyleContentContainer = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(1, 2).
		MarginTop(1).
		MarginBottom(1)

	StyleFormLabel = lipgloss.NewStyle().
		Foreground(ColorText).
		Bold(true)

	StyleFormLabelFocused = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true)

	StyleLoading = lipgloss.NewStyle().
		Foreground(ColorInfo).
		Italic(true).
		Padding(0, 1)

	StyleFilterIndicator = lipgloss.NewStyle().
		Foreground(ColorAccent).
		Background(ColorSurface).
		Bold(true).
		Padding(0, 1)

	StyleMetadata = lipgloss.NewStyle().
		Foreground(ColorTextDim).
		Padding(0, 1)

	StyleScrollIndicator = lipgloss.NewStyle().
		Foreground(ColorTextDim).
		Align(lipgloss.Center)

	StyleScrollIndicatorActive = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true).
		Align(lipgloss.Center)
}

// Helper functions for consistent styling
func CreateMainHeader(titleText string) string {
	return StyleTitle.Render(titleText)
}

// Create header for subpages (title only, back handled via keybind)
func CreateSubPageHeader(titleText string) string {
	return StyleTitle.Render(titleText)
}

func CreateMetadata(text string) string {
	return StyleMetadata.Render(text)
}

// Context-aware help creation with proper row display and smart truncation
func CreateContextualHelp(essential []string, additional []string, showExpanded bool, width int) string {
	var lines []string

	// First row: essential keybinds plus a hint when more rows exist
	firstRowParts := essential
	if len(additional) > 0 && !showExpanded {
		firstRowParts = append(firstRowParts, "f2 for more")
	}

	essentialText := strings.Join(firstRowParts, " • ")
	if width > 0 && len(essentialText) > width-4 {
		essentialText = essentialText[:width-7] + "..."
	}
	lines = append(lines, essentialText)

	if showExpanded && len(additional) > 0 {
		// Additional rows: each string in additional array becomes a separate row
		for _, additionalRow := range additional {
			if width > 0 && len(additionalRow) > width-4 {
				additionalRow = additionalRow[:width-7] + "..."
			}
			lines = append(lines, additionalRow)
		}
	}

	allText := strings.Join(lines, "\n")
	return StyleTextDim.Render(allText)
}

// Guaranteed help text that ensures visibility regardless of terminal size
func CreateGuaranteedHelp(helpText string, width int) string {
	helpStyle := lipgloss.NewStyle().
		Foreground(ColorTextDim).
		Width(width).
		Align(lipgloss.Left).
		Padding(0, 1)

	// Truncate help text if it's too long for the terminal width
	if width > 0 && len(helpText) > width-2 {
		helpText = helpText[:width-5] + "..."
	}

	return helpStyle.Render(helpText)
}

func CreateStatus(text string, statusType string) string {
	switch statusType {
	case "success":
		return StyleSuccess.Render(text)
	case "warning":
		return StyleWarning.Render(text)
	case "error":
		return StyleError.Render(text)
	case "info":
		return StyleInfo.Render(text)
	default:
		return StyleText.Render(text)
	}
}

// Filter indicator styling
func CreateFilterIndicator(query string, count int) string {
	text := lipgloss.JoinHorizontal(
		lipgloss.Left,
		"Filter: ",
		query,
		lipgloss.NewStyle().Foreground(ColorTextMuted).Render(" ("),
		lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true).Render(fmt.Sprintf("%d", count)),
		lipgloss.NewStyle().Foreground(ColorTextMuted).Render(" results)"),
	)
	return StyleFilterIndicator.Render(text)
}

// Modal centering helper
func CenterModal(content string, width, height int) string {
	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}

// Add consistent padding to main content (left only, no top padding)
func AddMainPadding(content string) string {
	paddingStyle := lipgloss.NewStyle().
		PaddingLeft(2)
	return paddingStyle.Render(content)
}

// Create scroll indicators based on scroll state
func CreateScrollIndicators(canScrollUp, canScrollDown bool, width int) (string, string) {
	var topIndicator string
	if canScrollUp {
		topIndicator = StyleScrollIndicatorActive.Render("...")
	} else {
		topIndicator = StyleScrollIndicator.Render("─────────")
	}

	var bottomIndicator string
	if canScrollDown {
		bottomIndicator = StyleScrollIndicatorActive.Render("...")
	} else {
		bottomIndicator = StyleScrollIndicator.Render("─────────")
	}

	return topIndicator, bottomIndicator
}
