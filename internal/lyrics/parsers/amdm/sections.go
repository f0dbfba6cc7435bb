package amdm

import (
	"fmt"
	"regexp"
	"strings"
)

// markerRegex matches AmDm markers such as "[Куплет]:", "[Припев 2]:" or
// "[Вступление]: Am C G" with the chord tail ignored
var markerRegex = regexp.MustCompile(`^\[\s*([^\]\d]+?)\s*(\d+)?\s*\]:?`)

// markerState numbers verses that come without an explicit number
type markerState struct {
	config *ProcessingConfig
	verses int
}

func newMarkerState(config *ProcessingConfig) *markerState {
	return &markerState{config: config}
}

// header converts a marker line into a bracket header. Lines that are not a
// known marker are reported as not handled.
func (m *markerState) header(trimmedLine string) (string, bool) {
	match := markerRegex.FindStringSubmatch(trimmedLine)
	if match == nil {
		return "", false
	}

	name := SectionType(strings.ToLower(match[1]))
	label, ok := m.config.Headers[name]
	if !ok {
		return "", false
	}

	number := match[2]
	if name == SectionVerse {
		m.verses++
		if number == "" {
			number = fmt.Sprint(m.verses)
		}
	}

	if number != "" {
		return fmt.Sprintf("[%s %s]", label, number), true
	}
	return "[" + label + "]", true
}
