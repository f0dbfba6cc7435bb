package sections

import "strings"

// Keyword tables. Entries are lowercase and matched as substrings, so the
// order inside a table does not matter.
var (
	styleKeywords = []string{
		"style:",
		"genre:",
		"tempo:",
		"instruments:",
		"key:",
		"mood:",
		"dynamic:",
		"solo",
		"finish",
		"instrumental",
		"intensity",
	}

	vocalKeywords = []string{
		"vocal",
		"voice",
		"ad-lib",
		"ad lib",
		"harmony",
		"echo",
		"whisper",
	}

	inlineStyleKeywords = []string{
		"style:",
		"solo",
	}
)

// categoryOrder is the priority used by ClassifyColor, first match wins
var categoryOrder = []Category{
	CategoryVerse,
	CategoryChorus,
	CategoryBridge,
	CategoryIntro,
	CategoryOutro,
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func isStyle(inner string) bool {
	return containsAny(strings.ToLower(inner), styleKeywords)
}

func isVocal(inner string) bool {
	return containsAny(strings.ToLower(inner), vocalKeywords)
}

// isInlineStyle matches the narrower set of style brackets that get lifted
// out of ordinary lyric lines
func isInlineStyle(inner string) bool {
	lower := strings.ToLower(inner)
	return containsAny(lower, inlineStyleKeywords) || lower == "instrumental"
}

// ClassifyColor maps a section type to its display category
func ClassifyColor(sectionType string) Category {
	lower := strings.ToLower(sectionType)
	for _, category := range categoryOrder {
		if strings.Contains(lower, string(category)) {
			return category
		}
	}
	return CategoryDefault
}
