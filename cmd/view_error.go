package cmd

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mittwald/ai-alpha/pkg/probe"
	"github.com/pkg/errors"
)

var (
	errorAccent = lipgloss.AdaptiveColor{Light: "#B3261E", Dark: "#F2B8B5"}

	errorBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(errorAccent).
		PaddingLeft(1)

	errorTitle  = lipgloss.NewStyle().Foreground(errorAccent).Bold(true)
	errorDetail = lipgloss.NewStyle().Width(76)
)

// shouldRenderError reports whether err still needs to be shown to the
// operator. Probe failures have been described by the report already.
func shouldRenderError(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, probe.ErrChecksFailed) && !errors.Is(err, probe.ErrTimedOut)
}

func renderError(err error) string {
	return errorBox.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		errorTitle.Render("ai-alpha failed"),
		errorDetail.Render(err.Error()),
	))
}
