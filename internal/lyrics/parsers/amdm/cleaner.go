package amdm

import (
	"regexp"
	"strings"
)

var excessiveBreaksRegex = regexp.MustCompile(`\n{3,}`)

// finalCleanup limits runs of blank lines and trims the result
func (p *Parser) finalCleanup(lyrics string) string {
	limit := p.config.MaxLineBreaks
	if limit < 1 {
		limit = 1
	}
	lyrics = excessiveBreaksRegex.ReplaceAllString(lyrics, strings.Repeat("\n", limit))

	return strings.TrimSpace(lyrics)
}
