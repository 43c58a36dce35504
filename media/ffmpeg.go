package media

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"clipcut/internal/fsutil"
)

// FFmpeg encoding settings
const (
	VideoCodec    = "libx264"
	VideoPreset   = "medium"
	VideoCRF      = "23"
	AudioCodec    = "aac"
	AudioBitrate  = "192k"
	MP3Codec      = "libmp3lame"
	MP3Quality    = "2"
	FastStartFlag = "+faststart"

	FFmpegCommand       = "ffmpeg"
	FFprobeCommand      = "ffprobe"
	FFprobeLogLevel     = "error"
	FFprobeShowEntries  = "format=duration"
	FFprobeOutputFormat = "csv=p=0"

	// TempAudioPrefix names the scoped audio file used while muxing mp4 output.
	TempAudioPrefix = "temp-audio-"
)

// FFmpeg implements Codec with the ffmpeg and ffprobe executables.
type FFmpeg struct {
	// FFmpegPath is the ffmpeg executable. Defaults to "ffmpeg".
	FFmpegPath string
	// FFprobePath is the ffprobe executable. Defaults to "ffprobe".
	FFprobePath string
}

// NewFFmpeg creates a codec using the given executables; empty paths use $PATH.
func NewFFmpeg(ffmpegPath, ffprobePath string) *FFmpeg {
	if ffmpegPath == "" {
		ffmpegPath = FFmpegCommand
	}
	if ffprobePath == "" {
		ffprobePath = FFprobeCommand
	}
	return &FFmpeg{FFmpegPath: ffmpegPath, FFprobePath: ffprobePath}
}

// Open probes the file's duration and returns a handle for segment export.
func (f *FFmpeg) Open(ctx context.Context, path string) (Media, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open media: %w", err)
	}

	duration, err := f.probeDuration(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open media %s: %w", path, err)
	}

	return &ffmpegFile{codec: f, path: path, duration: duration}, nil
}

// probeDuration gets the duration of a media file using ffprobe.
func (f *FFmpeg) probeDuration(ctx context.Context, path string) (time.Duration, error) {
	out, err := run(ctx, f.FFprobePath, "-v", FFprobeLogLevel, "-show_entries", FFprobeShowEntries, "-of", FFprobeOutputFormat, path)
	if err != nil {
		return 0, err
	}

	durationStr := strings.TrimSpace(string(out))
	seconds, err := strconv.ParseFloat(durationStr, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", durationStr, err)
	}

	return time.Duration(seconds * float64(time.Second)), nil
}

// ffmpegFile is an opened source. ffmpeg is stateless between runs, so the
// handle only guards against use after Close.
type ffmpegFile struct {
	codec    *FFmpeg
	path     string
	duration time.Duration

	mu     sync.Mutex
	closed bool
}

func (m *ffmpegFile) Duration() time.Duration {
	return m.duration
}

// WriteVideo encodes the audio of seg to a temp m4a next to outPath, then
// encodes the video and muxes it with that audio. The temp file is removed
// whatever the outcome.
func (m *ffmpegFile) WriteVideo(ctx context.Context, seg Segment, outPath string) error {
	if err := m.checkOpen(); err != nil {
		return err
	}

	tempAudio := filepath.Join(filepath.Dir(outPath), TempAudioPrefix+uuid.NewString()+".m4a")
	defer func() {
		if err := os.Remove(tempAudio); err != nil && !os.IsNotExist(err) {
			log.Printf("media: could not remove temp audio %s: %v", tempAudio, err)
		}
	}()

	if _, err := run(ctx, m.codec.FFmpegPath, BuildAudioArgs(m.path, seg, tempAudio)...); err != nil {
		return fmt.Errorf("encode audio: %w", err)
	}

	return m.writeAtomic(outPath, func(tmp string) error {
		if _, err := run(ctx, m.codec.FFmpegPath, BuildMuxArgs(m.path, tempAudio, seg, tmp)...); err != nil {
			return fmt.Errorf("encode video: %w", err)
		}
		return nil
	})
}

// WriteAudio encodes only the audio of seg as mp3.
func (m *ffmpegFile) WriteAudio(ctx context.Context, seg Segment, outPath string) error {
	if err := m.checkOpen(); err != nil {
		return err
	}

	return m.writeAtomic(outPath, func(tmp string) error {
		if _, err := run(ctx, m.codec.FFmpegPath, BuildMP3Args(m.path, seg, tmp)...); err != nil {
			return fmt.Errorf("encode mp3: %w", err)
		}
		return nil
	})
}

// writeAtomic lets encode write to a temp path and renames it onto outPath on
// success, so a failed encode never leaves a partial clip behind.
func (m *ffmpegFile) writeAtomic(outPath string, encode func(tmp string) error) error {
	pending, err := fsutil.NewPendingFile(outPath)
	if err != nil {
		return fmt.Errorf("prepare output: %w", err)
	}

	if err := encode(pending.TempPath()); err != nil {
		if aerr := pending.Abort(); aerr != nil {
			log.Printf("media: could not remove partial output %s: %v", pending.TempPath(), aerr)
		}
		return err
	}
	return pending.Commit()
}

func (m *ffmpegFile) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.closed = true
	return nil
}

func (m *ffmpegFile) checkOpen() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	return nil
}

// BuildAudioArgs builds the ffmpeg arguments that encode seg's audio to AAC.
func BuildAudioArgs(src string, seg Segment, outPath string) []string {
	args := []string{"-y"}
	args = append(args, seekArgs(seg)...)
	return append(args,
		"-i", src,
		"-vn",
		"-c:a", AudioCodec,
		"-b:a", AudioBitrate,
		outPath,
	)
}

// BuildMuxArgs builds the ffmpeg arguments that re-encode seg's video to
// H.264 and mux it with an already trimmed audio file.
func BuildMuxArgs(src, audioPath string, seg Segment, outPath string) []string {
	args := []string{"-y"}
	args = append(args, seekArgs(seg)...)
	return append(args,
		"-i", src,
		"-i", audioPath,
		"-map", "0:v:0",
		"-map", "1:a:0",
		"-c:v", VideoCodec,
		"-preset", VideoPreset,
		"-crf", VideoCRF,
		"-c:a", "copy",
		"-movflags", FastStartFlag,
		"-shortest",
		outPath,
	)
}

// BuildMP3Args builds the ffmpeg arguments for an audio-only mp3 export.
func BuildMP3Args(src string, seg Segment, outPath string) []string {
	args := []string{"-y"}
	args = append(args, seekArgs(seg)...)
	return append(args,
		"-i", src,
		"-vn",
		"-c:a", MP3Codec,
		"-q:a", MP3Quality,
		outPath,
	)
}

// seekArgs are input options, so they apply to the -i that follows them.
func seekArgs(seg Segment) []string {
	return []string{"-ss", formatSeconds(seg.Start), "-t", formatSeconds(seg.Length())}
}

func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 3, 64)
}

// run executes a command and returns its stdout. Failures carry the tail of stderr.
func run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := tail(stderr.String(), 5); msg != "" {
			return nil, fmt.Errorf("%s: %w: %s", filepath.Base(name), err, msg)
		}
		return nil, fmt.Errorf("%s: %w", filepath.Base(name), err)
	}
	return stdout.Bytes(), nil
}

// tail returns the last n non-empty lines of s joined by "; ".
func tail(s string, n int) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "; ")
}
