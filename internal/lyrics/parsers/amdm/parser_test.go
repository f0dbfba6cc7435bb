package amdm

import (
	"compress/gzip"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sukalov/lyricbot/internal/lyrics/sections"
)

const samplePage = `<html><head><title>Владимирский централ аккорды</title></head><body>
<h1>Михаил Круг
  - Владимирский централ</h1>
<pre itemprop="chordsBlock" class="field__podbor_new podbor__text">
<div class="podbor__keyword">[Вступление]: Am Dm E Am</div>
<div class="podbor__chord" data-chord="Am">Am</div>
Там под окном зека
<span class="podbor__author-comment">/* играть тише */</span>
<div class="podbor__keyword">[Куплет]:</div>
Сколько вёрст
| |
Сколько лет /* пауза */
<div class="podbor__keyword">[Припев]:</div>
Владимирский централ
<div class="podbor__keyword">[Куплет 3]:</div>
ветер северный
<div class="podbor__keyword">[Кода]:</div>
</pre></body></html>`

func TestExtractFromHTML(t *testing.T) {
	p := NewParser(NewClient(time.Second, ""))

	title, text, err := p.ExtractFromHTML(samplePage)
	if err != nil {
		t.Fatalf("ExtractFromHTML() error = %v", err)
	}

	if title != "Михаил Круг - Владимирский централ" {
		t.Errorf("title = %q", title)
	}
	if !strings.HasPrefix(text, title+"\n") {
		t.Errorf("text does not start with the title line: %q", text)
	}

	for _, want := range []string{"[Intro]", "[Verse 1]", "[Chorus]", "[Verse 3]", "[Outro]", "Сколько лет"} {
		if !strings.Contains(text, want) {
			t.Errorf("text = %q, want it to contain %q", text, want)
		}
	}
	for _, unwanted := range []string{"играть тише", "пауза", "Am Dm", "|", "\n\n\n"} {
		if strings.Contains(text, unwanted) {
			t.Errorf("text = %q, want it without %q", text, unwanted)
		}
	}
}

func TestExtractedTextParses(t *testing.T) {
	p := NewParser(NewClient(time.Second, ""))
	_, text, err := p.ExtractFromHTML(samplePage)
	if err != nil {
		t.Fatalf("ExtractFromHTML() error = %v", err)
	}

	var types []string
	for _, s := range sections.Parse(text) {
		types = append(types, s.Type)
	}

	want := []string{"Intro", "Verse 1", "Chorus", "Verse 3"}
	if strings.Join(types, ",") != strings.Join(want, ",") {
		t.Errorf("section types = %v, want %v", types, want)
	}
}

func TestInterludeOpensSection(t *testing.T) {
	page := `<html><body><h1>Песня</h1><pre itemprop="chordsBlock">
<div class="podbor__keyword">[Куплет]:</div>
первая строка
<div class="podbor__keyword">[Проигрыш]: Am G</div>
ла-ла-ла
</pre></body></html>`

	p := NewParser(NewClient(time.Second, ""))
	_, text, err := p.ExtractFromHTML(page)
	if err != nil {
		t.Fatalf("ExtractFromHTML() error = %v", err)
	}

	secs := sections.Parse(text)
	if len(secs) != 2 {
		t.Fatalf("Parse() = %+v, want 2 sections", secs)
	}
	if secs[1].Type != "Interlude" || secs[1].Content != "ла-ла-ла" {
		t.Errorf("second section = %+v, want Interlude with its own lyrics", secs[1])
	}
	if len(secs[0].Styles) != 0 {
		t.Errorf("first section styles = %v, want the marker not merged as a style", secs[0].Styles)
	}
}

func TestExtractFromHTMLWithoutBlock(t *testing.T) {
	p := NewParser(NewClient(time.Second, ""))
	if _, _, err := p.ExtractFromHTML("<html><body><p>nothing</p></body></html>"); !errors.Is(err, ErrNoLyrics) {
		t.Errorf("ExtractFromHTML() error = %v, want ErrNoLyrics", err)
	}
}

func TestMarkerHeader(t *testing.T) {
	m := newMarkerState(defaultConfig())

	tests := []struct {
		line   string
		want   string
		wantOK bool
	}{
		{"[Куплет]:", "[Verse 1]", true},
		{"[Припев]:", "[Chorus]", true},
		{"[Куплет]:", "[Verse 2]", true},
		{"[Припев 2]:", "[Chorus 2]", true},
		{"[Проигрыш]: Am G", "[Interlude]", true},
		{"[ПЕРЕХОД]", "[Bridge]", true},
		{"[Verse 1]", "", false},
		{"[x2]", "", false},
	}

	for _, tt := range tests {
		got, ok := m.header(tt.line)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("header(%q) = %q, %v; want %q, %v", tt.line, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestFetchPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "test-agent" {
			t.Errorf("User-Agent = %q, want test-agent", r.Header.Get("User-Agent"))
		}
		switch r.URL.Path {
		case "/gzip":
			w.Header().Set("Content-Encoding", "gzip")
			gz := gzip.NewWriter(w)
			_, _ = gz.Write([]byte("compressed page"))
			_ = gz.Close()
		case "/missing":
			http.NotFound(w, r)
		default:
			_, _ = w.Write([]byte("plain page"))
		}
	}))
	defer srv.Close()

	c := NewClient(5*time.Second, "test-agent")
	ctx := context.Background()

	if body, err := c.FetchPage(ctx, srv.URL+"/plain"); err != nil || body != "plain page" {
		t.Errorf("FetchPage(plain) = %q, %v", body, err)
	}
	if body, err := c.FetchPage(ctx, srv.URL+"/gzip"); err != nil || body != "compressed page" {
		t.Errorf("FetchPage(gzip) = %q, %v", body, err)
	}
	if _, err := c.FetchPage(ctx, srv.URL+"/missing"); err == nil {
		t.Error("FetchPage(missing) expected error")
	}
}

func TestExtractLyrics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	p := NewParser(NewClient(5*time.Second, ""))
	result, err := p.ExtractLyrics(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("ExtractLyrics() error = %v", err)
	}
	if !result.Success || result.Title == "" || result.FetchedAt.IsZero() {
		t.Errorf("ExtractLyrics() = %+v", result)
	}
}
