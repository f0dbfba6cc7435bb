package sections

import (
	"math/rand"
	"strings"
	"testing"
)

func TestClassifyColor(t *testing.T) {
	tests := []struct {
		sectionType string
		want        Category
	}{
		{"Verse 1", CategoryVerse},
		{"PRE-CHORUS", CategoryChorus},
		{"Bridge", CategoryBridge},
		{"intro", CategoryIntro},
		{"Outro (fade)", CategoryOutro},
		{"Guitar Solo", CategoryDefault},
		{"", CategoryDefault},
		{"Verse / Chorus", CategoryVerse},
		{"Intro Bridge", CategoryBridge},
	}

	for _, tt := range tests {
		t.Run(tt.sectionType, func(t *testing.T) {
			if got := ClassifyColor(tt.sectionType); got != tt.want {
				t.Errorf("ClassifyColor(%q) = %v, want %v", tt.sectionType, got, tt.want)
			}
		})
	}
}

func TestClassifyColorDefaultForUnknown(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	alphabet := []rune("0123456789 -_#!?.ÄÖß")

	for i := 0; i < 50; i++ {
		n := 1 + rng.Intn(20)
		runes := make([]rune, n)
		for j := range runes {
			runes[j] = alphabet[rng.Intn(len(alphabet))]
		}
		s := string(runes)
		if got := ClassifyColor(s); got != CategoryDefault {
			t.Errorf("ClassifyColor(%q) = %v, want %v", s, got, CategoryDefault)
		}
	}
}

func TestClassifyColorChorusWins(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	chorus := []string{"chorus", "CHORUS", "ChOrUs"}
	others := []string{"bridge", "intro", "outro", "solo", "x", ""}

	for i := 0; i < 50; i++ {
		parts := []string{
			others[rng.Intn(len(others))],
			chorus[rng.Intn(len(chorus))],
			others[rng.Intn(len(others))],
		}
		s := strings.Join(parts, " ")
		if got := ClassifyColor(s); got != CategoryChorus {
			t.Errorf("ClassifyColor(%q) = %v, want %v", s, got, CategoryChorus)
		}
	}
}

func TestKeywordOrderDoesNotMatter(t *testing.T) {
	samples := []string{
		"style: rock", "Genre: Pop", "tempo: 90", "Guitar Solo", "finish strong",
		"Instrumental", "low intensity", "Vocal: airy", "voice over", "ad-lib",
		"ad lib", "Harmony", "echo", "whisper", "Verse 1", "fx", "key: C minor",
	}

	type result struct{ style, vocal, inline bool }
	classifyAll := func() []result {
		out := make([]result, len(samples))
		for i, s := range samples {
			out[i] = result{isStyle(s), isVocal(s), isInlineStyle(s)}
		}
		return out
	}

	want := classifyAll()

	saved := [][]string{
		append([]string{}, styleKeywords...),
		append([]string{}, vocalKeywords...),
		append([]string{}, inlineStyleKeywords...),
	}
	defer func() {
		styleKeywords, vocalKeywords, inlineStyleKeywords = saved[0], saved[1], saved[2]
	}()

	rng := rand.New(rand.NewSource(1))
	for round := 0; round < 10; round++ {
		for _, table := range [][]string{styleKeywords, vocalKeywords, inlineStyleKeywords} {
			rng.Shuffle(len(table), func(i, j int) { table[i], table[j] = table[j], table[i] })
		}
		got := classifyAll()
		for i := range samples {
			if got[i] != want[i] {
				t.Errorf("round %d: classification of %q = %+v, want %+v", round, samples[i], got[i], want[i])
			}
		}
	}
}
