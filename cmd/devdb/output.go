// 2026 Craig Tomkow

package main

import (
	"fmt"
	"github.com/charmbracelet/lipgloss"
	"io"
	"os"
)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr

	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	tableStyle   = lipgloss.NewStyle().Bold(true)
)

// user facing messages; diagnostics go through glog
func info(msg string) {
	fmt.Fprintln(stdout, infoStyle.Render(msg))
}

func warning(msg string) {
	fmt.Fprintln(stderr, warningStyle.Render(msg))
}

// print aligned key/value rows
func table(rows [][2]string) {
	width := 0
	for _, row := range rows {
		if len(row[0]) > width {
			width = len(row[0])
		}
	}
	for _, row := range rows {
		fmt.Fprintln(stdout, tableStyle.Width(width+2).Render(row[0])+row[1])
	}
}
