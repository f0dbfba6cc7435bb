package sections

import "strings"

// Render rebuilds bracket-annotated text from sections, for copying. It is
// not an exact inverse of Parse: the title line and original spacing are gone.
func Render(sections []Section, includeTags bool) string {
	blocks := make([]string, 0, len(sections))

	for _, section := range sections {
		header := "[" + section.Type + "]"

		if includeTags {
			annotations := make([]string, 0, len(section.Tags)+len(section.Styles))
			for _, tag := range section.Tags {
				annotations = append(annotations, "["+tag+"]")
			}
			for _, style := range section.Styles {
				annotations = append(annotations, "["+style+"]")
			}
			if len(annotations) > 0 {
				header += " " + strings.Join(annotations, " ")
			}
		}

		blocks = append(blocks, header+"\n"+section.Content)
	}

	return strings.Join(blocks, "\n\n")
}

// Clean returns only the lyric text of the sections, one blank line between blocks
func Clean(sections []Section) string {
	var blocks []string
	for _, section := range sections {
		if content := strings.TrimSpace(section.Content); content != "" {
			blocks = append(blocks, content)
		}
	}
	return strings.Join(blocks, "\n\n")
}

// Visible filters sections for display. The lyrics-only view hides intros
// that carry no lyrics.
func Visible(sections []Section, lyricsOnly bool) []Section {
	if !lyricsOnly {
		return sections
	}

	visible := make([]Section, 0, len(sections))
	for _, section := range sections {
		if strings.Contains(strings.ToLower(section.Type), "intro") && !hasText(section.Content) {
			continue
		}
		visible = append(visible, section)
	}
	return visible
}

// Muted reports whether a section is a solo or instrumental part
func Muted(section Section) bool {
	lower := strings.ToLower(section.Type)
	return strings.Contains(lower, "solo") || strings.Contains(lower, "instrumental")
}
