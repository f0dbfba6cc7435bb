package lyrics

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sukalov/lyricbot/internal/logger"
	"github.com/sukalov/lyricbot/internal/lyrics/parsers/amdm"
	"github.com/sukalov/lyricbot/internal/lyrics/sections"
	"github.com/sukalov/lyricbot/internal/utils"
)

// LyricsResult represents the result of lyrics extraction
type LyricsResult struct {
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	Source    string    `json:"source"`
	FetchedAt time.Time `json:"fetched_at"`
}

// SectionCache stores encoded sections by key
type SectionCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Service handles lyrics extraction and sectioning
type Service struct {
	amdmParser *amdm.Parser
	cache      SectionCache
}

// NewService creates a new lyrics service. cache may be nil.
func NewService(amdmParser *amdm.Parser, cache SectionCache) *Service {
	return &Service{
		amdmParser: amdmParser,
		cache:      cache,
	}
}

// ExtractLyrics extracts lyrics from a URL based on the source
func (s *Service) ExtractLyrics(ctx context.Context, url string) (*LyricsResult, error) {
	logger.Debug(fmt.Sprintf("ExtractLyrics called with URL: %s", url))

	if strings.Contains(url, "amdm.ru") {
		return s.extractFromAmdm(ctx, url)
	}

	logger.Error(fmt.Sprintf("Unsupported URL source: %s", url))
	return nil, fmt.Errorf("unsupported URL source: %s", url)
}

func (s *Service) extractFromAmdm(ctx context.Context, url string) (*LyricsResult, error) {
	result, err := s.amdmParser.ExtractLyrics(ctx, url)
	if err != nil {
		return nil, logger.LogWithErr(fmt.Sprintf("amdm extraction failed for URL: %s", url), err)
	}

	return &LyricsResult{
		URL:       result.URL,
		Title:     result.Title,
		Text:      result.Text,
		Source:    "amdm.ru",
		FetchedAt: result.FetchedAt,
	}, nil
}

// SectionsKey is the cache key of a text's parsed sections
func SectionsKey(text string) string {
	return "sections:" + utils.ContentHash(text)
}

// Sections parses text, going through the cache when there is one. Cache
// trouble is logged and never turns into a failure.
func (s *Service) Sections(ctx context.Context, text string) []sections.Section {
	if s.cache == nil {
		return sections.Parse(text)
	}

	key := SectionsKey(text)

	data, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		logger.Error(fmt.Sprintf("Sections: cache read failed for %s\nError: %v", key, err))
	}
	if ok {
		var cached []sections.Section
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached
		}
		logger.Error(fmt.Sprintf("Sections: dropping undecodable cache entry %s", key))
	}

	parsed := sections.Parse(text)

	encoded, err := json.Marshal(parsed)
	if err != nil {
		return parsed
	}
	if err := s.cache.Set(ctx, key, encoded); err != nil {
		logger.Error(fmt.Sprintf("Sections: cache write failed for %s\nError: %v", key, err))
	}

	return parsed
}

// Copy rebuilds annotated text for the copy action
func (s *Service) Copy(secs []sections.Section, includeTags bool) string {
	return sections.Render(secs, includeTags)
}

// Clean returns the lyrics without headers or tags
func (s *Service) Clean(secs []sections.Section) string {
	return sections.Clean(secs)
}
