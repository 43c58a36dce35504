package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"golang.org/x/term"

	"clipcut"
	"clipcut/clip"
	"clipcut/config"
	"clipcut/youtube"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin *os.File, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("clipcut", flag.ContinueOnError)
	fs.SetOutput(stderr)
	rawURL := fs.String("url", "", "YouTube video URL")
	format := fs.String("format", "", "Output format: MP4 or MP3")
	start := fs.String("start", "", "Start time (HH:MM:SS)")
	end := fs.String("end", "", "End time (HH:MM:SS)")
	dir := fs.String("dir", "", "Downloads directory (overrides config)")
	engine := fs.String("engine", "", "Download engine: ytdlp or native (overrides config)")
	verbose := fs.Bool("v", false, "Log download progress")
	fs.Usage = func() {
		fmt.Fprintf(stderr, `clipcut - cut a clip out of a YouTube video

Usage:
  clipcut [flags]

Missing values are prompted for when stdin is a terminal.

Examples:
  clipcut                                                         # Interactive
  clipcut -url https://youtu.be/dQw4w9WgXcQ -format MP3 -start 00:00:05 -end 00:00:15
  clipcut -url https://youtu.be/dQw4w9WgXcQ -format MP4 -start 0:1:00 -end 0:1:30 -engine native

Flags:
`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	log.SetFlags(0)
	log.SetOutput(stderr)

	cfg, err := loadConfig(*dir, *engine)
	if err != nil {
		if errors.Is(err, config.ErrMissingAPIKey) {
			printMissingKey(stderr)
		} else {
			fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		}
		return 1
	}

	prompter := newPrompter(stdin, stderr, term.IsTerminal(int(stdin.Fd())))
	req, err := prompter.collect(*rawURL, *format, *start, *end)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fs.Usage()
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := clipcut.Options{
		Out: stdout,
		OnRetry: func(err error) {
			fmt.Fprintf(stdout, "\nError during download: %v\n", err)
			fmt.Fprintln(stdout, "\nRetrying with different options...")
		},
	}
	if *verbose {
		opts.OnProgress = func(percent float64) {
			log.Printf("download: %.1f%%", percent)
		}
	}

	pipeline, err := clipcut.NewPipeline(ctx, cfg, opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintln(stdout, "\nProcessing your request...")
	if _, err := pipeline.Run(ctx, req); err != nil {
		printRunError(stdout, err)
		return 1
	}
	return 0
}

// loadConfig reads the configuration, applies the flag overrides and then
// validates the result.
func loadConfig(dir, engine string) (*config.Config, error) {
	cfg, err := config.Read()
	if err != nil {
		return nil, err
	}
	if dir != "" {
		cfg.DownloadsDir = dir
	}
	if engine != "" {
		cfg.Engine = strings.ToLower(engine)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func printMissingKey(w io.Writer) {
	fmt.Fprintln(w, "YouTube API key not found!")
	fmt.Fprintln(w, "Please create a .env file with your YouTube Data API key:")
	fmt.Fprintln(w, "  YOUTUBE_API_KEY=your-key")
	fmt.Fprintln(w, "Get an API key from: https://console.cloud.google.com/apis/credentials")
}

// printRunError renders a pipeline error for the user.
func printRunError(w io.Writer, err error) {
	switch {
	case errors.Is(err, clip.ErrInvalidTimeFormat):
		fmt.Fprintf(w, "\nInvalid time format: %v\n", err)
		fmt.Fprintln(w, "Please use HH:MM:SS (e.g., 00:01:30)")
	case errors.Is(err, youtube.ErrAPIAuth):
		fmt.Fprintf(w, "\nAn error occurred: %v\n", err)
		fmt.Fprintln(w, "\nYouTube API error. Please check your API key and quota limits")
	default:
		fmt.Fprintf(w, "\nAn error occurred: %v\n", err)
	}
}
