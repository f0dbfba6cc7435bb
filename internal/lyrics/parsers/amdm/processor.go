package amdm

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	chordRegex           = regexp.MustCompile(`<(?:div|span)[^>]*class="podbor__chord"[^>]*>.*?</(?:div|span)>`)
	authorCommentRegex   = regexp.MustCompile(`<span[^>]*class="podbor__author-comment"[^>]*>.*?</span>`)
	commentRegex         = regexp.MustCompile(`/\*[^*]*\*/`)
	openCommentRegex     = regexp.MustCompile(`(?m)/\*.*$`)
	chordSeparatorRegex  = regexp.MustCompile(`^[\s|]*$`)
	commentArtifactRegex = regexp.MustCompile(`/\*[^*]*\*?`)
)

// processHTMLContent strips chords and comments from the chords block and
// returns its text with section markers turned into bracket headers
func (p *Parser) processHTMLContent(originalHTML string) string {
	// Chord rows become blank lines so they never glue onto lyrics
	processed := chordRegex.ReplaceAllString(originalHTML, "\n\n")
	processed = authorCommentRegex.ReplaceAllString(processed, "")
	processed = commentRegex.ReplaceAllString(processed, "")
	processed = openCommentRegex.ReplaceAllString(processed, "")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(processed))
	if err != nil {
		return ""
	}

	return p.processTextLines(doc.Text())
}

// processTextLines cleans the block line by line
func (p *Parser) processTextLines(cleanText string) string {
	var processedLines []string
	markers := newMarkerState(p.config)

	for _, line := range strings.Split(cleanText, "\n") {
		trimmedLine := strings.TrimSpace(line)

		if trimmedLine == "" {
			continue
		}

		if strings.HasPrefix(trimmedLine, "[") {
			if header, ok := markers.header(trimmedLine); ok {
				processedLines = append(processedLines, "", header)
				continue
			}
		}

		if chordSeparatorRegex.MatchString(trimmedLine) {
			continue
		}

		cleanLine := commentArtifactRegex.ReplaceAllString(trimmedLine, "")
		cleanLine = strings.ReplaceAll(cleanLine, "*", "")
		cleanLine = strings.ReplaceAll(cleanLine, "/", "")
		cleanLine = strings.TrimSpace(cleanLine)

		if cleanLine != "" {
			processedLines = append(processedLines, cleanLine)
		}
	}

	return p.finalCleanup(strings.Join(processedLines, "\n"))
}
