// Package media trims and encodes downloaded videos with ffmpeg.
package media

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Format is an export container.
type Format string

// Supported export formats.
const (
	FormatMP4 Format = "MP4"
	FormatMP3 Format = "MP3"
)

// ErrUnsupportedFormat is returned by ParseFormat for anything but MP4 and MP3.
var ErrUnsupportedFormat = errors.New("media: unsupported output format")

// ErrClosed is returned when a Media is used after Close.
var ErrClosed = errors.New("media: file already closed")

// ParseFormat accepts "mp4" or "mp3" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToUpper(strings.TrimSpace(s))); f {
	case FormatMP4, FormatMP3:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q (choose MP4 or MP3)", ErrUnsupportedFormat, s)
	}
}

// Extension returns the lower-case file extension including the dot.
func (f Format) Extension() string {
	return "." + strings.ToLower(string(f))
}

// Segment is a [Start, End) range within a media file.
type Segment struct {
	Start time.Duration
	End   time.Duration
}

// Length returns End-Start.
func (s Segment) Length() time.Duration {
	return s.End - s.Start
}

// Codec opens local media files.
type Codec interface {
	Open(ctx context.Context, path string) (Media, error)
}

// Media is an opened source file. Callers must Close it on every path.
type Media interface {
	// Duration is the total length of the source.
	Duration() time.Duration
	// WriteVideo encodes seg as H.264/AAC into an mp4 container at outPath.
	WriteVideo(ctx context.Context, seg Segment, outPath string) error
	// WriteAudio drops the video and encodes the audio of seg as mp3 at outPath.
	WriteAudio(ctx context.Context, seg Segment, outPath string) error
	// Close releases the file.
	Close() error
}
