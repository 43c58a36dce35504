package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"clipcut/clip"
	"clipcut/media"
)

var errNotInteractive = errors.New("stdin is not a terminal; pass -url, -format, -start and -end")

// prompter asks for whatever the flags left empty.
type prompter struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

func newPrompter(in io.Reader, out io.Writer, interactive bool) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out, interactive: interactive}
}

func (p *prompter) collect(rawURL, format, start, end string) (clip.Request, error) {
	var err error
	if rawURL, err = p.text(rawURL, "Enter the YouTube URL"); err != nil {
		return clip.Request{}, err
	}
	f, err := p.format(format)
	if err != nil {
		return clip.Request{}, err
	}
	if start, err = p.text(start, "Enter start time (HH:MM:SS)"); err != nil {
		return clip.Request{}, err
	}
	if end, err = p.text(end, "Enter end time (HH:MM:SS)"); err != nil {
		return clip.Request{}, err
	}

	return clip.Request{URL: rawURL, Format: f, Start: start, End: end}, nil
}

func (p *prompter) text(value, question string) (string, error) {
	if value != "" {
		return value, nil
	}
	if !p.interactive {
		return "", errNotInteractive
	}

	fmt.Fprintf(p.out, "? %s: ", question)
	line, err := p.in.ReadString('\n')
	line = strings.TrimSpace(line)
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("read answer: %w", err)
	}
	if line == "" {
		return p.text("", question)
	}
	return line, nil
}

// format accepts MP4/MP3 by name or by its number in the list.
func (p *prompter) format(value string) (media.Format, error) {
	if value != "" {
		return media.ParseFormat(value)
	}
	if !p.interactive {
		return "", errNotInteractive
	}

	choices := []media.Format{media.FormatMP4, media.FormatMP3}
	fmt.Fprintln(p.out, "? Choose output format:")
	for i, c := range choices {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, c)
	}

	for {
		answer, err := p.text("", "Format")
		if err != nil {
			return "", err
		}
		switch answer {
		case "1":
			return choices[0], nil
		case "2":
			return choices[1], nil
		}
		if f, err := media.ParseFormat(answer); err == nil {
			return f, nil
		}
		fmt.Fprintln(p.out, "Please choose 1 (MP4) or 2 (MP3).")
	}
}
