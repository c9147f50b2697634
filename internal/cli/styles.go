// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/greenloop/kerbside/internal/model"
)

var (
	// PrimaryColor is the main theme color (deep harbor blue).
	PrimaryColor = lipgloss.Color("#234163")
	// AccentColor highlights interactive elements.
	AccentColor = lipgloss.Color("#2DA1E2") // Sky blue
	// SuccessColor indicates successful operations.
	SuccessColor = lipgloss.Color("#217DB1")
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#FFE66D") // Yellow
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#FF6B6B") // Red
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666") // Gray

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(AccentColor).
			MarginBottom(1)

	// SubtitleStyle is used for secondary headings.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			MarginBottom(1)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// BoldStyle makes text bold.
	BoldStyle = lipgloss.NewStyle().
			Bold(true)

	// BoxStyle is used for bordered content boxes.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#263952")).
			Padding(1, 2)

	// TableHeaderStyle is used for table headers.
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(lipgloss.Color("#263952"))

	// TableCellStyle formats table cells with appropriate padding.
	TableCellStyle = lipgloss.NewStyle().
			PaddingRight(2)
)

// binStyle renders bin labels in the bin's own accent.
func binStyle(bin model.BinType) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(bin.Color()))
}

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	BinIcon     = "🗑️"
	LeafIcon    = "🌿"
	CameraIcon  = "📷"
	BellIcon    = "🔔"
)

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatTitle formats a title with the leaf icon.
func FormatTitle(title string) string {
	return TitleStyle.Render(LeafIcon + " " + title)
}

// StyleBin renders a bin's display name in its accent color.
func StyleBin(bin model.BinType) string {
	return binStyle(bin).Render(bin.DisplayName())
}

// RenderClassification renders a classification result as a boxed card.
// Unresolvable results get a prompt to try again instead of bin guidance.
func RenderClassification(result model.ClassificationResult) string {
	var b strings.Builder

	b.WriteString(BoldStyle.Render(result.ItemName))
	b.WriteString("\n\n")

	if result.Unresolvable() {
		b.WriteString(WarningStyle.Render("Couldn't match this item to a bin."))
		b.WriteString("\n")
		b.WriteString(SubtleStyle.Render("Try a more specific description, or check the council website."))
	} else {
		b.WriteString(StyleBin(result.Bin))
		b.WriteString("\n\n")
		b.WriteString(result.Description)
		b.WriteString("\n")
		b.WriteString(SubtleStyle.Render(result.Instructions))
	}

	b.WriteString("\n\n")
	b.WriteString(SubtleStyle.Render(fmt.Sprintf("confidence %.0f%%", result.Confidence*100)))

	return RenderBox(BinIcon+" Sorting Guide", b.String())
}

// RenderBox renders content in a styled box.
func RenderBox(title, content string) string {
	boxTitle := TitleStyle.
		UnsetMargins().
		Render(title)

	boxContent := lipgloss.JoinVertical(
		lipgloss.Left,
		boxTitle,
		content,
	)

	return BoxStyle.Render(boxContent)
}
