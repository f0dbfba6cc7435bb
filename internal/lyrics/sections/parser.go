package sections

import "strings"

// parseState is the accumulator threaded through the lines of a song.
// Without an active section the next content line opens an Intro.
type parseState struct {
	titleSeen  bool
	sawBracket bool
	active     bool
	current    Section
}

// headerLine is what a bracket-led line contributes before it is merged
type headerLine struct {
	sectionType string
	tags        []string
	styles      []string
	rest        string
}

// Parse splits generated lyrics into sections. The first non-empty line is
// treated as the song title and dropped. Text without a single bracket group
// after the title yields no sections. An empty result means the text should
// be shown as is.
func Parse(lyrics string) []Section {
	sections := []Section{}

	state := parseState{}
	for _, line := range strings.Split(lyrics, "\n") {
		var done *Section
		state, done = step(state, line)
		if done != nil && done.retained() {
			sections = append(sections, *done)
		}
	}

	if state.active && state.current.retained() {
		sections = append(sections, state.current)
	}

	if !state.sawBracket {
		return []Section{}
	}

	return sections
}

// step feeds one raw line into the state. When the line opens a new section
// the previous one is returned as done.
func step(state parseState, line string) (parseState, *Section) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return state, nil
	}

	if !state.titleSeen {
		state.titleSeen = true
		return state, nil
	}

	groups := scanBrackets(trimmed)
	if len(groups) > 0 {
		state.sawBracket = true
	}
	if len(groups) > 0 && strings.HasPrefix(trimmed, "[") {
		return stepHeader(state, readHeader(trimmed, groups))
	}

	return stepLyric(state, trimmed, groups), nil
}

func readHeader(trimmed string, groups []bracket) headerLine {
	header := headerLine{
		tags:   []string{},
		styles: []string{},
		rest:   stripBrackets(trimmed, groups, dropAll),
	}

	for i, g := range groups {
		style := isStyle(g.inner)
		vocal := isVocal(g.inner)

		switch {
		case i == 0 && !style && !vocal:
			header.sectionType = g.inner
		case style:
			header.styles = append(header.styles, g.inner)
		default:
			// vocal cues and unclassified metadata both land in tags
			header.tags = append(header.tags, g.inner)
		}
	}

	return header
}

func stepHeader(state parseState, header headerLine) (parseState, *Section) {
	if header.sectionType != "" {
		var done *Section
		if state.active {
			prev := state.current
			done = &prev
		}
		state.active = true
		state.current = newSection(header.sectionType, header.tags, header.styles, header.rest)
		return state, done
	}

	if !state.active {
		state.active = true
		state.current = newSection(introType, header.tags, header.styles, header.rest)
		return state, nil
	}

	state.current.Tags = append(state.current.Tags, header.tags...)
	state.current.Styles = append(state.current.Styles, header.styles...)
	state.current.appendLine(header.rest)
	return state, nil
}

func stepLyric(state parseState, trimmed string, groups []bracket) parseState {
	if !state.active {
		state.active = true
		state.current = newSection(introType, nil, nil, trimmed)
		return state
	}

	for _, g := range groups {
		if isInlineStyle(g.inner) {
			state.current.Styles = append(state.current.Styles, g.inner)
		}
	}
	state.current.appendLine(stripBrackets(trimmed, groups, isInlineStyle))
	return state
}
