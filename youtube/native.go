package youtube

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"

	nativeytdlp "github.com/ytget/ytdlp/v2"
)

// NativeEngine downloads with the pure Go ytdlp client, for hosts without a
// yt-dlp binary. It fetches a single progressive stream, so the yt-dlp format
// selector is reduced to "best": mp4 only on the first attempt, any container
// on the fallback.
type NativeEngine struct {
	// HTTPClient is used for all network calls (optional).
	HTTPClient *http.Client
}

// NewNativeEngine creates a pure Go download engine.
func NewNativeEngine() *NativeEngine {
	return &NativeEngine{}
}

// Fetch downloads the video to <OutputDir>/temp_<id>.mp4.
func (e *NativeEngine) Fetch(ctx context.Context, req FetchRequest) (*DownloadResult, error) {
	outputPath, ext := nativeTarget(req)

	dl := nativeytdlp.New().
		WithFormat("best", ext).
		WithOutputPath(outputPath)
	if e.HTTPClient != nil {
		dl.WithHTTPClient(e.HTTPClient)
	}
	if req.OnProgress != nil {
		dl.WithProgress(func(p nativeytdlp.Progress) {
			req.OnProgress(p.Percent)
		})
	}

	info, err := dl.Download(ctx, req.URL)
	if err != nil {
		return nil, fmt.Errorf("native download: %w", err)
	}

	return &DownloadResult{
		Path:  outputPath,
		Title: info.Title,
		Info: map[string]any{
			"id":       info.ID,
			"author":   info.Author,
			"duration": info.Duration,
		},
	}, nil
}

// nativeTarget returns the file the attempt writes and the container it asks
// for. The fallback accepts any container; the file keeps its .mp4 name.
func nativeTarget(req FetchRequest) (outputPath, ext string) {
	outputPath = filepath.Join(req.OutputDir, TempPrefix+req.VideoID+".mp4")
	if req.Attempt == 0 {
		ext = "mp4"
	}
	return outputPath, ext
}
