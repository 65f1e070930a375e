package ui

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/gubarz/roadforge/internal/config"
	"github.com/gubarz/roadforge/internal/parser"
	"golang.org/x/term"
)

// StyleManager holds the styles used for text output
type StyleManager struct {
	Header lipgloss.Style
	Week   lipgloss.Style
	Day    lipgloss.Style
	Link   lipgloss.Style
	Dim    lipgloss.Style

	categories map[parser.Category]lipgloss.Style
}

// PlainStyles returns a StyleManager that renders text unchanged
func PlainStyles() *StyleManager {
	return &StyleManager{
		Header:     lipgloss.NewStyle(),
		Week:       lipgloss.NewStyle(),
		Day:        lipgloss.NewStyle(),
		Link:       lipgloss.NewStyle(),
		Dim:        lipgloss.NewStyle(),
		categories: map[parser.Category]lipgloss.Style{},
	}
}

// DefaultStyles returns a StyleManager with default styles
func DefaultStyles() *StyleManager {
	return &StyleManager{
		Header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		Week:   lipgloss.NewStyle().Bold(true),
		Day:    lipgloss.NewStyle().Underline(true),
		Link:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Dim:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		categories: map[parser.Category]lipgloss.Style{
			parser.CategoryGraph:    lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
			parser.CategoryRevision: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
			parser.CategoryTheory:   lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		},
	}
}

// LoadFromConfig updates styles based on configuration
func (s *StyleManager) LoadFromConfig() {
	headerColor := parseANSIColor(config.GetColorHeader())
	dimColor := parseANSIColor(config.GetColorDim())

	s.Header = lipgloss.NewStyle().Bold(true).Foreground(headerColor)
	s.Week = lipgloss.NewStyle().Bold(true)
	s.Day = lipgloss.NewStyle().Underline(true)
	s.Link = lipgloss.NewStyle().Foreground(dimColor)
	s.Dim = lipgloss.NewStyle().Foreground(dimColor)
	s.categories = map[parser.Category]lipgloss.Style{
		parser.CategoryGraph:    lipgloss.NewStyle().Foreground(parseANSIColor(config.GetColorGraph())),
		parser.CategoryRevision: lipgloss.NewStyle().Foreground(parseANSIColor(config.GetColorRevision())),
		parser.CategoryTheory:   lipgloss.NewStyle().Foreground(parseANSIColor(config.GetColorTheory())),
	}
}

// Category returns the style for tasks of category c
func (s *StyleManager) Category(c parser.Category) lipgloss.Style {
	if style, ok := s.categories[c]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

// parseANSIColor converts ANSI color codes to lipgloss colors
func parseANSIColor(code string) lipgloss.Color {
	ansiToLipgloss := map[string]string{
		"30": "0", "31": "1", "32": "2", "33": "3",
		"34": "4", "35": "5", "36": "6", "37": "7",
		"90": "8", "91": "9", "92": "10", "93": "11",
		"94": "12", "95": "13", "96": "14", "97": "15",
	}
	if mapped, ok := ansiToLipgloss[code]; ok {
		return lipgloss.Color(mapped)
	}
	return lipgloss.Color(code)
}

// StylesFor returns configured styles when w is a terminal and plain
// styles otherwise
func StylesFor(w io.Writer) *StyleManager {
	if !isTerminal(w) {
		return PlainStyles()
	}
	s := DefaultStyles()
	s.LoadFromConfig()
	return s
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
