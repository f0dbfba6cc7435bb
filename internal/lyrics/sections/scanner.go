package sections

import "strings"

// bracket is a single [...] group found on a line
type bracket struct {
	start int // index of '['
	end   int // index just past ']'
	inner string
}

// scanBrackets returns the bracket groups of a line in left-to-right order.
// A group runs from '[' to the first ']' after it. Groups with empty inner
// text are skipped.
func scanBrackets(line string) []bracket {
	var groups []bracket

	pos := 0
	for pos < len(line) {
		open := strings.IndexByte(line[pos:], '[')
		if open < 0 {
			break
		}
		open += pos

		closing := strings.IndexByte(line[open+1:], ']')
		if closing < 0 {
			break
		}
		closing += open + 1

		if closing == open+1 {
			pos = closing
			continue
		}

		groups = append(groups, bracket{
			start: open,
			end:   closing + 1,
			inner: line[open+1 : closing],
		})
		pos = closing + 1
	}

	return groups
}

// stripBrackets removes the groups for which drop returns true and trims the rest
func stripBrackets(line string, groups []bracket, drop func(inner string) bool) string {
	if len(groups) == 0 {
		return strings.TrimSpace(line)
	}

	var b strings.Builder
	b.Grow(len(line))

	last := 0
	for _, g := range groups {
		if !drop(g.inner) {
			continue
		}
		b.WriteString(line[last:g.start])
		last = g.end
	}
	b.WriteString(line[last:])

	return strings.TrimSpace(b.String())
}

func dropAll(string) bool { return true }

func hasText(s string) bool {
	return strings.TrimSpace(s) != ""
}
