// ABOUTME: Output formatting for termctl: lipgloss styles and size rendering as text, JSON or YAML
// ABOUTME: Styles collapse to plain text when stdout is not a terminal

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/mauromedda/termctl/pkg/terminal"
)

type styles struct {
	label lipgloss.Style
	value lipgloss.Style
	dim   lipgloss.Style
}

func newStyles(color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{label: plain, value: plain, dim: plain}
	}
	return styles{
		label: lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		value: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		dim:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

func writeSize(w io.Writer, st styles, size terminal.Size, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(size)
	case "yaml":
		out, err := yaml.Marshal(size)
		if err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		_, err = w.Write(out)
		return err
	default:
		_, err := fmt.Fprintln(w, sizeLine(st, size))
		return err
	}
}

// sizeLine renders "size: 80x24" with the configured styles.
func sizeLine(st styles, size terminal.Size) string {
	return st.label.Render("size:") + " " + st.value.Render(size.String())
}
