package youtube

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	goytdlp "github.com/lrstanley/go-ytdlp"
)

const (
	defaultYtdlpPath     = "yt-dlp"
	progressInterval     = 500 * time.Millisecond
	ytdlpOutputTemplate  = TempPrefix + "%(title)s.%(ext)s"
	ytdlpContainerFormat = "mp4"
)

// YtdlpEngine downloads through the yt-dlp binary.
type YtdlpEngine struct {
	// Path is the path to the yt-dlp executable. Defaults to "yt-dlp".
	Path string
}

// NewYtdlpEngine creates a yt-dlp engine using the executable at path.
func NewYtdlpEngine(path string) *YtdlpEngine {
	if path == "" {
		path = defaultYtdlpPath
	}
	return &YtdlpEngine{Path: path}
}

// Fetch runs one yt-dlp invocation with the request's format selector. Streams
// are merged into mp4 and anything else is recoded to mp4.
func (e *YtdlpEngine) Fetch(ctx context.Context, req FetchRequest) (*DownloadResult, error) {
	cmd := e.command(req)

	if req.OnProgress != nil {
		cmd.ProgressFunc(progressInterval, func(update goytdlp.ProgressUpdate) {
			if update.TotalBytes > 0 {
				req.OnProgress(float64(update.DownloadedBytes) / float64(update.TotalBytes) * 100)
			}
		})
	}

	res, err := cmd.Run(ctx, req.URL)
	if err != nil {
		return nil, fmt.Errorf("yt-dlp: %w", err)
	}

	infos, err := res.GetExtractedInfo()
	if err != nil {
		return nil, fmt.Errorf("yt-dlp: read extracted info: %w", err)
	}
	if len(infos) == 0 || infos[0].Filename == nil {
		return nil, fmt.Errorf("yt-dlp: no file reported for %s", req.VideoID)
	}

	info := infos[0]
	result := &DownloadResult{
		Path: *info.Filename,
		Info: map[string]any{
			"id":       req.VideoID,
			"filename": *info.Filename,
			"format":   req.Format,
		},
	}
	if info.Title != nil {
		result.Title = *info.Title
	}

	return result, nil
}

// command builds the yt-dlp invocation for one attempt.
func (e *YtdlpEngine) command(req FetchRequest) *goytdlp.Command {
	cmd := goytdlp.New().
		Format(req.Format).
		Output(filepath.Join(req.OutputDir, ytdlpOutputTemplate)).
		MergeOutputFormat(ytdlpContainerFormat).
		RecodeVideo(ytdlpContainerFormat).
		NoWarnings().
		NoCheckCertificates().
		PrintJSON()

	if e.Path != "" {
		cmd.SetExecutable(e.Path)
	}
	return cmd
}
