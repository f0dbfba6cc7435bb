package lyrics

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/sukalov/lyricbot/internal/lyrics/parsers/amdm"
	"github.com/sukalov/lyricbot/internal/lyrics/sections"
)

type fakeCache struct {
	data    map[string][]byte
	sets    int
	failGet error
	failSet error
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func (f *fakeCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	if f.failGet != nil {
		return nil, false, f.failGet
	}
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *fakeCache) Set(_ context.Context, key string, value []byte) error {
	f.sets++
	if f.failSet != nil {
		return f.failSet
	}
	f.data[key] = value
	return nil
}

const song = "Neon Rain\n[Verse 1] [whisper]\nstreetlights hum\n[Chorus] [style: synthwave]\nneon rain"

func TestSectionsUsesCache(t *testing.T) {
	ctx := context.Background()
	cache := newFakeCache()
	s := NewService(nil, cache)

	first := s.Sections(ctx, song)
	if len(first) != 2 {
		t.Fatalf("Sections() returned %d sections, want 2", len(first))
	}
	if _, ok := cache.data[SectionsKey(song)]; !ok {
		t.Fatal("parsed sections were not cached")
	}

	second := s.Sections(ctx, song)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("cached Sections() = %#v, want %#v", second, first)
	}
	if cache.sets != 1 {
		t.Errorf("cache sets = %d, want 1", cache.sets)
	}
}

func TestSectionsSurvivesCacheFailures(t *testing.T) {
	ctx := context.Background()
	cache := newFakeCache()
	cache.failGet = errors.New("redis down")
	cache.failSet = errors.New("redis down")
	s := NewService(nil, cache)

	got := s.Sections(ctx, song)
	if !reflect.DeepEqual(got, sections.Parse(song)) {
		t.Errorf("Sections() with broken cache = %#v", got)
	}
}

func TestSectionsIgnoresCorruptEntry(t *testing.T) {
	ctx := context.Background()
	cache := newFakeCache()
	cache.data[SectionsKey(song)] = []byte("{not json")
	s := NewService(nil, cache)

	if got := s.Sections(ctx, song); len(got) != 2 {
		t.Errorf("Sections() = %#v, want a fresh parse", got)
	}
}

func TestSectionsWithoutCache(t *testing.T) {
	s := NewService(nil, nil)
	if got := s.Sections(context.Background(), "Title\nplain words"); len(got) != 0 {
		t.Errorf("Sections() = %#v, want empty", got)
	}
}

func TestCopyAndClean(t *testing.T) {
	s := NewService(nil, nil)
	secs := s.Sections(context.Background(), song)

	copied := s.Copy(secs, true)
	if !strings.HasPrefix(copied, "[Verse 1] [whisper]\nstreetlights hum") {
		t.Errorf("Copy() = %q", copied)
	}
	if got := s.Clean(secs); got != "streetlights hum\n\nneon rain" {
		t.Errorf("Clean() = %q", got)
	}
}

func TestExtractLyricsUnsupported(t *testing.T) {
	s := NewService(amdm.NewParser(amdm.NewClient(time.Second, "")), nil)
	if _, err := s.ExtractLyrics(context.Background(), "https://example.com/song"); err == nil {
		t.Error("ExtractLyrics() expected error for unsupported source")
	}
}
