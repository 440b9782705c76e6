package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/seenimoa/monitoria/internal/sentiment"
)

var (
	styleBanner = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	styleLabel  = map[sentiment.Label]lipgloss.Style{
		sentiment.Positive: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#27AE60")),
		sentiment.Negative: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E74C3C")),
		sentiment.Neutral:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#95A5A6")),
	}
	styleError = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	styleDim   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func renderLabel(label sentiment.Label) string {
	if s, ok := styleLabel[label]; ok {
		return s.Render(string(label))
	}
	return string(label)
}

func renderConfidence(c float64) string {
	return fmt.Sprintf("%.0f%%", c*100)
}
