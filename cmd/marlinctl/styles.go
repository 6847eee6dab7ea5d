package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	styleOnline  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleOffline = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	styleHeating = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

func renderConnectivity(connected, colorize bool) string {
	if connected {
		if colorize {
			return styleOnline.Render("connected")
		}
		return "connected"
	}
	if colorize {
		return styleOffline.Render("disconnected")
	}
	return "disconnected"
}

// renderHeater shows "actual / target"; a commanded heater is highlighted.
func renderHeater(actual, target float64, colorize bool) string {
	text := fmt.Sprintf("%.1f / %.1f°C", actual, target)
	if colorize && target > 0 {
		return styleHeating.Render(text)
	}
	return text
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
