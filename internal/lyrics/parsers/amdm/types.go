package amdm

import (
	"time"
)

// LyricsResult represents the extracted lyrics result
type LyricsResult struct {
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	FetchedAt time.Time `json:"fetched_at"`
	Success   bool      `json:"success"`
	Error     string    `json:"error,omitempty"`
}

// SectionType is an AmDm section marker name
type SectionType string

const (
	SectionVerse  SectionType = "куплет"
	SectionChorus SectionType = "припев"
	SectionBridge SectionType = "переход"
	SectionIntro  SectionType = "вступление"
	SectionSolo   SectionType = "проигрыш"
	SectionOutro  SectionType = "кода"
)

// ProcessingConfig holds configuration for text processing
type ProcessingConfig struct {
	// Headers maps marker names to the bracket header written for them
	Headers       map[SectionType]string
	MaxLineBreaks int
}

func defaultConfig() *ProcessingConfig {
	return &ProcessingConfig{
		Headers: map[SectionType]string{
			SectionVerse:  "Verse",
			SectionChorus: "Chorus",
			SectionBridge: "Bridge",
			SectionIntro:  "Intro",
			SectionSolo:   "Interlude",
			SectionOutro:  "Outro",
		},
		MaxLineBreaks: 2,
	}
}
