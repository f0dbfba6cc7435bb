package common

import (
	"fmt"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sukalov/lyricbot/internal/db"
	"github.com/sukalov/lyricbot/internal/lyrics/sections"
	"github.com/sukalov/lyricbot/internal/users"
	"github.com/sukalov/lyricbot/internal/utils"
)

// MessageLimit is Telegram's maximum text length per message
const MessageLimit = 4096

var categoryMarks = map[sections.Category]string{
	sections.CategoryVerse:   "🔵",
	sections.CategoryChorus:  "🟣",
	sections.CategoryBridge:  "🟠",
	sections.CategoryIntro:   "🟢",
	sections.CategoryOutro:   "🔴",
	sections.CategoryDefault: "⚪",
}

func escape(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

// FormatSections renders sections as MarkdownV2 blocks, one per section,
// following the chat's view preferences
func FormatSections(secs []sections.Section, prefs users.Preferences) []string {
	visible := sections.Visible(secs, prefs.LyricsOnly)
	blocks := make([]string, 0, len(visible))

	for _, section := range visible {
		var lines []string
		mark := categoryMarks[sections.ClassifyColor(section.Type)]
		lines = append(lines, fmt.Sprintf("%s *%s*", mark, escape(section.Type)))

		if prefs.ShowTags && !prefs.LyricsOnly {
			if chips := chipLine(section); chips != "" {
				lines = append(lines, "_"+escape(chips)+"_")
			}
		}

		if content := strings.TrimSpace(section.Content); content != "" {
			if prefs.LyricsOnly && sections.Muted(section) {
				lines = append(lines, italicLines(content))
			} else {
				lines = append(lines, escape(content))
			}
		}

		blocks = append(blocks, strings.Join(lines, "\n"))
	}

	return blocks
}

// italicLines wraps every non-blank line on its own so a block split between
// lines never leaves an open italic span
func italicLines(content string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines[i] = "_" + escape(line) + "_"
	}
	return strings.Join(lines, "\n")
}

func chipLine(section sections.Section) string {
	chips := make([]string, 0, len(section.Tags)+len(section.Styles))
	for _, tag := range section.Tags {
		chips = append(chips, "["+tag+"]")
	}
	for _, style := range section.Styles {
		chips = append(chips, "["+style+"]")
	}
	return strings.Join(chips, " ")
}

// SplitMessages packs blocks into messages no longer than limit characters,
// separating blocks with a blank line. Oversized blocks are cut by lines and,
// failing that, by runes.
func SplitMessages(blocks []string, limit int) []string {
	var messages []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			messages = append(messages, current.String())
			current.Reset()
		}
	}

	for _, block := range blocks {
		for _, piece := range splitBlock(block, limit) {
			sep := 0
			if current.Len() > 0 {
				sep = 2
			}
			if utf8.RuneCountInString(current.String())+sep+utf8.RuneCountInString(piece) > limit {
				flush()
				sep = 0
			}
			if sep > 0 {
				current.WriteString("\n\n")
			}
			current.WriteString(piece)
		}
	}
	flush()

	return messages
}

func splitBlock(block string, limit int) []string {
	if utf8.RuneCountInString(block) <= limit {
		return []string{block}
	}

	var pieces []string
	var current []string
	size := 0
	for _, line := range strings.Split(block, "\n") {
		n := utf8.RuneCountInString(line)
		if n > limit {
			if len(current) > 0 {
				pieces = append(pieces, strings.Join(current, "\n"))
				current, size = nil, 0
			}
			runes := []rune(line)
			for len(runes) > limit {
				cut := escapeSafeCut(runes, limit)
				pieces = append(pieces, string(runes[:cut]))
				runes = runes[cut:]
			}
			line, n = string(runes), len(runes)
		}
		if len(current) > 0 && size+1+n > limit {
			pieces = append(pieces, strings.Join(current, "\n"))
			current, size = nil, 0
		}
		if len(current) > 0 {
			size++
		}
		current = append(current, line)
		size += n
	}
	if len(current) > 0 {
		pieces = append(pieces, strings.Join(current, "\n"))
	}
	return pieces
}

// escapeSafeCut moves a cut back by one when it would separate a MarkdownV2
// backslash from the character it escapes
func escapeSafeCut(runes []rune, limit int) int {
	backslashes := 0
	for i := limit - 1; i >= 0 && runes[i] == '\\'; i-- {
		backslashes++
	}
	if backslashes%2 == 1 && limit > 1 {
		return limit - 1
	}
	return limit
}

// FormatSongList renders saved songs as a numbered plain-text list
func FormatSongList(songs []db.Song) string {
	if len(songs) == 0 {
		return "no saved songs yet. send lyrics and use /save"
	}

	var b strings.Builder
	b.WriteString("saved songs:\n\n")
	for idx, song := range songs {
		fmt.Fprintf(&b, "%d. %s\n   /song %s\n   saved: %s MSK\n\n",
			idx+1,
			utils.Truncate(db.FormatSongName(song), 60),
			song.ID,
			utils.ConvertToMoscowTime(song.CreatedAt),
		)
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatPreferences describes the current view toggles
func FormatPreferences(prefs users.Preferences) string {
	onOff := func(v bool) string {
		if v {
			return "on"
		}
		return "off"
	}
	return fmt.Sprintf("tags: %s\nlyrics only: %s", onOff(prefs.ShowTags), onOff(prefs.LyricsOnly))
}
