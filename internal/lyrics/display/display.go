// Package display renders parsed lyric sections for the terminal.
package display

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sukalov/lyricbot/internal/lyrics/sections"
)

// Options controls what the renderer shows
type Options struct {
	ShowTags   bool
	LyricsOnly bool
}

// Renderer turns sections into colored text for one output
type Renderer struct {
	r *lipgloss.Renderer

	tag   lipgloss.Style
	style lipgloss.Style
	body  lipgloss.Style
	muted lipgloss.Style
}

// NewRenderer creates a renderer whose color profile matches w
func NewRenderer(w io.Writer) *Renderer {
	r := lipgloss.NewRenderer(w)
	return &Renderer{
		r:     r,
		tag:   r.NewStyle().Foreground(lipgloss.Color(sections.TagColor)),
		style: r.NewStyle().Foreground(lipgloss.Color(sections.StyleColor)),
		body:  r.NewStyle(),
		muted: r.NewStyle().Faint(true),
	}
}

func (d *Renderer) header(sectionType string) lipgloss.Style {
	gradient := sections.Palette(sections.ClassifyColor(sectionType))
	return d.r.NewStyle().
		Foreground(lipgloss.Color(gradient.From)).
		Bold(true)
}

// Render formats sections. When there are none, raw is returned unchanged so
// the caller always has something to show.
func (d *Renderer) Render(secs []sections.Section, raw string, opts Options) string {
	if len(secs) == 0 {
		return raw
	}

	visible := sections.Visible(secs, opts.LyricsOnly)
	blocks := make([]string, 0, len(visible))

	for _, section := range visible {
		var lines []string
		lines = append(lines, d.header(section.Type).Render(section.Type))

		if opts.ShowTags && !opts.LyricsOnly {
			if chips := d.chips(section); chips != "" {
				lines = append(lines, chips)
			}
		}

		if section.Content != "" {
			body := d.body
			if opts.LyricsOnly && sections.Muted(section) {
				body = d.muted
			}
			lines = append(lines, body.Render(section.Content))
		}

		blocks = append(blocks, strings.Join(lines, "\n"))
	}

	return strings.Join(blocks, "\n\n")
}

func (d *Renderer) chips(section sections.Section) string {
	chips := make([]string, 0, len(section.Tags)+len(section.Styles))
	for _, tag := range section.Tags {
		chips = append(chips, d.tag.Render("["+tag+"]"))
	}
	for _, style := range section.Styles {
		chips = append(chips, d.style.Render("["+style+"]"))
	}
	return strings.Join(chips, " ")
}
