package amdm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sukalov/lyricbot/internal/logger"
)

const chordsSelector = `pre[itemprop="chordsBlock"]`

var ErrNoLyrics = errors.New("could not find target element with chords and lyrics")

// Parser handles the HTML parsing and lyrics extraction
type Parser struct {
	client *Client
	config *ProcessingConfig
}

// NewParser creates a new AmDm parser
func NewParser(client *Client) *Parser {
	return &Parser{
		client: client,
		config: defaultConfig(),
	}
}

// ExtractLyrics fetches an AmDm.ru page and returns its lyrics as bracket-annotated text
func (p *Parser) ExtractLyrics(ctx context.Context, url string) (*LyricsResult, error) {
	logger.Debug(fmt.Sprintf("ExtractLyrics: Fetching page %s", url))

	html, err := p.client.FetchPage(ctx, url)
	if err != nil {
		return &LyricsResult{
			URL:     url,
			Success: false,
			Error:   err.Error(),
		}, err
	}

	logger.Debug(fmt.Sprintf("ExtractLyrics: Successfully fetched page %s (HTML length: %d chars)", url, len(html)))

	title, text, err := p.ExtractFromHTML(html)
	if err != nil {
		logger.Error(fmt.Sprintf("ExtractLyrics: Failed to extract lyrics for %s\nError: %v", url, err))
		return &LyricsResult{
			URL:     url,
			Success: false,
			Error:   err.Error(),
		}, err
	}

	logger.Success(fmt.Sprintf("ExtractLyrics: Extracted %q from %s (%d chars)", title, url, len(text)))

	return &LyricsResult{
		URL:       url,
		Title:     title,
		Text:      text,
		FetchedAt: time.Now(),
		Success:   true,
	}, nil
}

// ExtractFromHTML pulls the title and lyrics out of a page. The title is the
// first line of the returned text.
func (p *Parser) ExtractFromHTML(html string) (string, string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	selection := doc.Find(chordsSelector).First()
	if selection.Length() == 0 {
		return "", "", ErrNoLyrics
	}

	originalHTML, err := selection.Html()
	if err != nil {
		return "", "", fmt.Errorf("failed to read chords block: %w", err)
	}

	title := pageTitle(doc)
	body := p.processHTMLContent(originalHTML)
	if body == "" {
		return "", "", ErrNoLyrics
	}

	return title, title + "\n" + body, nil
}

func pageTitle(doc *goquery.Document) string {
	title := strings.Join(strings.Fields(doc.Find("h1").First().Text()), " ")
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	if title == "" {
		return "Untitled"
	}
	return title
}
