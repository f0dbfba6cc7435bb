package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/sukalov/lyricbot/internal/config"
	"github.com/sukalov/lyricbot/internal/lyrics"
	"github.com/sukalov/lyricbot/internal/lyrics/display"
	"github.com/sukalov/lyricbot/internal/lyrics/parsers/amdm"
	"github.com/sukalov/lyricbot/internal/lyrics/sections"
	"gopkg.in/yaml.v3"
)

type options struct {
	url        string
	format     string
	tags       bool
	lyricsOnly bool
	copy       bool
	output     string
	configPath string
	saveConfig bool
}

func main() {
	var opts options

	flag.StringVar(&opts.url, "url", "", "amdm.ru page to import instead of a file")
	flag.StringVar(&opts.format, "format", "pretty", "output format: pretty, json, yaml, copy, clean")
	flag.BoolVar(&opts.tags, "tags", true, "show tags and styles")
	flag.BoolVar(&opts.lyricsOnly, "lyrics-only", false, "hide headers of sections without lyrics")
	flag.BoolVar(&opts.copy, "copy", false, "put the copy text on the clipboard")
	flag.StringVar(&opts.output, "output", "", "write the result to a file instead of stdout")
	flag.StringVar(&opts.configPath, "config", config.Path(), "config file")
	flag.BoolVar(&opts.saveConfig, "save-config", false, "write the effective view settings to the config file and exit")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] [file]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Reads lyrics from file, stdin or -url.\nOptions:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	applyConfigDefaults(&opts, cfg)

	if opts.saveConfig {
		if err := saveConfig(opts, cfg); err != nil {
			log.Fatalf("Error saving config: %v", err)
		}
		fmt.Fprintf(os.Stderr, "config saved to: %s\n", opts.configPath)
		return
	}

	ctx := context.Background()

	text, err := readInput(ctx, opts, cfg, flag.Args())
	if err != nil {
		log.Fatalf("Error reading lyrics: %v", err)
	}

	// one parse per run, nothing to cache
	service := lyrics.NewService(nil, nil)
	secs := service.Sections(ctx, text)

	out, err := format(opts, service, secs, text)
	if err != nil {
		log.Fatalf("Error formatting lyrics: %v", err)
	}

	if opts.copy {
		if err := clipboard.WriteAll(service.Copy(secs, opts.tags)); err != nil {
			log.Fatalf("Error copying to clipboard: %v", err)
		}
		fmt.Fprintln(os.Stderr, "copied to clipboard")
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, []byte(out), 0644); err != nil {
			log.Fatalf("Error saving file: %v", err)
		}
		fmt.Fprintf(os.Stderr, "saved to: %s\n", opts.output)
		return
	}

	fmt.Println(out)
}

// applyConfigDefaults lets the config decide view flags the user did not set
func applyConfigDefaults(opts *options, cfg *config.Config) {
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if !set["tags"] {
		opts.tags = cfg.View.ShowTags
	}
	if !set["lyrics-only"] {
		opts.lyricsOnly = cfg.View.LyricsOnly
	}
}

// saveConfig stores the view flags as the new defaults
func saveConfig(opts options, cfg *config.Config) error {
	cfg.View = config.ViewConfig{
		ShowTags:   opts.tags,
		LyricsOnly: opts.lyricsOnly,
	}
	return cfg.Save(opts.configPath)
}

func readInput(ctx context.Context, opts options, cfg *config.Config, args []string) (string, error) {
	if opts.url != "" {
		service := lyrics.NewService(amdm.NewParser(amdm.NewClient(cfg.Import.Timeout, cfg.Import.UserAgent)), nil)
		result, err := service.ExtractLyrics(ctx, opts.url)
		if err != nil {
			return "", err
		}
		return result.Text, nil
	}

	if len(args) > 0 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func format(opts options, service *lyrics.Service, secs []sections.Section, raw string) (string, error) {
	switch opts.format {
	case "pretty":
		// a file gets plain text
		renderer := display.NewRenderer(os.Stdout)
		if opts.output != "" {
			renderer = display.NewRenderer(io.Discard)
		}
		return renderer.Render(secs, raw, display.Options{ShowTags: opts.tags, LyricsOnly: opts.lyricsOnly}), nil
	case "json":
		data, err := json.MarshalIndent(secs, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data), nil
	case "yaml":
		data, err := yaml.Marshal(secs)
		if err != nil {
			return "", err
		}
		return strings.TrimRight(string(data), "\n"), nil
	case "copy":
		return service.Copy(secs, opts.tags), nil
	case "clean":
		return service.Clean(secs), nil
	default:
		return "", fmt.Errorf("unknown format %q", opts.format)
	}
}
