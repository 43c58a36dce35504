package youtube

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"clipcut/internal/retry"
)

// Format selectors for the two download attempts. The fallback lists audio first.
const (
	PrimaryFormat  = "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]/best"
	FallbackFormat = "bestaudio[ext=m4a]+bestvideo[ext=mp4]/best"
)

// TempPrefix marks transient download artifacts. Cleanup deletes every file
// whose name contains it.
const TempPrefix = "temp_"

var attemptFormats = [...]string{PrimaryFormat, FallbackFormat}

// DownloadResult describes a downloaded source video.
type DownloadResult struct {
	// Path is the local mp4 file.
	Path string
	// Title is the video title reported by the engine.
	Title string
	// Info carries whatever extra fields the engine reported, always including "title".
	Info map[string]any
}

// FetchRequest is a single download attempt handed to an Engine.
type FetchRequest struct {
	// URL is the watch URL to download.
	URL string
	// VideoID is the YouTube video ID.
	VideoID string
	// Format is a yt-dlp format selector.
	Format string
	// Attempt is zero for the primary attempt and one for the fallback.
	Attempt int
	// OutputDir is the directory files must be written to. It exists.
	OutputDir string
	// OnProgress receives download progress in percent (optional).
	OnProgress func(percent float64)
}

// Engine performs one download attempt.
type Engine interface {
	Fetch(ctx context.Context, req FetchRequest) (*DownloadResult, error)
}

// Downloader downloads source videos with a fixed two-attempt policy:
// the primary format, then exactly one retry with the fallback format.
type Downloader struct {
	// Engine performs the actual transfer.
	Engine Engine
	// OutputDir is the working downloads directory, created if absent.
	OutputDir string
	// OnProgress receives download progress in percent (optional).
	OnProgress func(percent float64)
	// OnRetry is called with the primary attempt's error before the fallback runs (optional).
	OnRetry func(err error)
}

// NewDownloader creates a Downloader writing into outputDir.
func NewDownloader(engine Engine, outputDir string) *Downloader {
	return &Downloader{
		Engine:    engine,
		OutputDir: outputDir,
	}
}

// Download fetches the referenced video into the downloads directory.
// The returned path always carries an .mp4 extension.
func (d *Downloader) Download(ctx context.Context, ref VideoReference) (*DownloadResult, error) {
	if d.Engine == nil {
		return nil, fmt.Errorf("download %s: no engine configured", ref.VideoID)
	}

	outputDir := d.OutputDir
	if outputDir == "" {
		outputDir = "."
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	var result *DownloadResult
	var lastErr error
	attempts := 0

	err := retry.Do(ctx, retry.SingleRetry(), retry.IsRetryable, func(ctx context.Context, attempt int) error {
		attempts++
		if attempt > 0 {
			log.Printf("youtube: download attempt %d for %s failed, retrying with format %q", attempt, ref.VideoID, attemptFormats[attempt])
			if d.OnRetry != nil {
				d.OnRetry(lastErr)
			}
		}

		res, err := d.Engine.Fetch(ctx, FetchRequest{
			URL:        ref.WatchURL(),
			VideoID:    ref.VideoID,
			Format:     attemptFormats[attempt],
			Attempt:    attempt,
			OutputDir:  outputDir,
			OnProgress: d.OnProgress,
		})
		if err != nil {
			lastErr = err
			return err
		}
		if res == nil || res.Path == "" {
			lastErr = errors.New("engine reported no output file")
			return lastErr
		}

		res.Path = ensureMP4(res.Path)
		if res.Info == nil {
			res.Info = make(map[string]any)
		}
		res.Info["title"] = res.Title
		result = res
		return nil
	})
	if err != nil {
		var exhausted *retry.ExhaustedError
		if errors.As(err, &exhausted) {
			err = exhausted.Err
		}
		return nil, &DownloadError{VideoID: ref.VideoID, Attempts: attempts, Err: err}
	}

	return result, nil
}

// ensureMP4 replaces a non-mp4 extension with .mp4, matching the file the
// recode post-step leaves behind.
func ensureMP4(path string) string {
	if strings.HasSuffix(path, ".mp4") {
		return path
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".mp4"
}
