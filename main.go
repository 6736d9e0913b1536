package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	theme := flag.String("theme", "auto", "Markdown rendering theme: auto, light, or dark")
	flag.Parse()
	setMarkdownTheme(markdownThemeFromString(*theme))

	profilePath := ""
	if flag.NArg() > 0 {
		profilePath = flag.Arg(0)
	}

	m := initialModel(profilePath)
	if _, err := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	if m.watcher != nil {
		m.watcher.Close()
	}
	_ = m.store.Close()
}
