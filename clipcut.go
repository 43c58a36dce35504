package clipcut

import (
	"context"
	"fmt"
	"io"
	"time"

	"clipcut/clip"
	"clipcut/config"
	ythttp "clipcut/http"
	"clipcut/media"
	"clipcut/youtube"
)

// Options tunes a pipeline built by NewPipeline.
type Options struct {
	// Out receives the run transcript (optional).
	Out io.Writer
	// OnProgress receives download progress in percent (optional).
	OnProgress func(percent float64)
	// OnRetry is called when the primary download attempt fails (optional).
	OnRetry func(err error)
}

// NewPipeline wires the Data API client, the configured download engine and
// the ffmpeg codec into a clip.Pipeline.
func NewPipeline(ctx context.Context, cfg *config.Config, opts Options) (*clip.Pipeline, error) {
	if cfg == nil {
		return nil, fmt.Errorf("new pipeline: nil config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	httpCfg := ythttp.DefaultConfig()
	httpCfg.APIKey = cfg.APIKey
	httpCfg.Timeout = cfg.APITimeout
	httpCfg.RateLimiter.DataAPIRPS = cfg.APIRequestsPerSecond

	metadata, err := youtube.NewMetadataClient(ctx, ythttp.New(httpCfg))
	if err != nil {
		return nil, err
	}

	downloader := youtube.NewDownloader(newEngine(cfg), cfg.DownloadsDir)
	downloader.OnProgress = opts.OnProgress
	downloader.OnRetry = opts.OnRetry

	codec := media.NewFFmpeg(cfg.FFmpegPath, cfg.FFprobePath)
	timed := &timedDownloader{downloader: downloader, timeout: cfg.DownloadTimeout}

	return clip.NewPipeline(metadata, timed, codec, cfg.DownloadsDir, opts.Out), nil
}

func newEngine(cfg *config.Config) youtube.Engine {
	if cfg.Engine == config.EngineNative {
		return youtube.NewNativeEngine()
	}
	return youtube.NewYtdlpEngine(cfg.YtdlpPath)
}

// timedDownloader bounds both download attempts with a single timeout.
type timedDownloader struct {
	downloader clip.MediaDownloader
	timeout    time.Duration
}

func (d *timedDownloader) Download(ctx context.Context, ref youtube.VideoReference) (*youtube.DownloadResult, error) {
	if d.timeout <= 0 {
		return d.downloader.Download(ctx, ref)
	}
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	return d.downloader.Download(ctx, ref)
}
