package clipcut

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clipcut/config"
	"clipcut/youtube"
)

type deadlineDownloader struct {
	deadline time.Time
	ok       bool
}

func (d *deadlineDownloader) Download(ctx context.Context, ref youtube.VideoReference) (*youtube.DownloadResult, error) {
	d.deadline, d.ok = ctx.Deadline()
	return &youtube.DownloadResult{Path: "x.mp4"}, nil
}

func TestTimedDownloader(t *testing.T) {
	inner := &deadlineDownloader{}
	d := &timedDownloader{downloader: inner, timeout: time.Minute}

	_, err := d.Download(context.Background(), youtube.VideoReference{VideoID: "abc123"})
	require.NoError(t, err)
	require.True(t, inner.ok)
	assert.WithinDuration(t, time.Now().Add(time.Minute), inner.deadline, 5*time.Second)

	inner = &deadlineDownloader{}
	_, err = (&timedDownloader{downloader: inner}).Download(context.Background(), youtube.VideoReference{})
	require.NoError(t, err)
	assert.False(t, inner.ok, "zero timeout adds no deadline")
}

func TestNewPipeline(t *testing.T) {
	_, err := NewPipeline(context.Background(), nil, Options{})
	require.Error(t, err)

	_, err = NewPipeline(context.Background(), config.DefaultConfig(), Options{})
	require.ErrorIs(t, err, ErrMissingAPIKey)

	cfg := config.DefaultConfig()
	cfg.APIKey = "test-key"
	cfg.DownloadsDir = t.TempDir()
	p, err := NewPipeline(context.Background(), cfg, Options{})
	require.NoError(t, err)
	assert.Equal(t, cfg.DownloadsDir, p.Dir)
	assert.NotNil(t, p.Cleaner)
}

func TestNewEngine(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.YtdlpPath = "/opt/yt-dlp"

	ytdlp, ok := newEngine(cfg).(*youtube.YtdlpEngine)
	require.True(t, ok)
	assert.Equal(t, "/opt/yt-dlp", ytdlp.Path)

	cfg.Engine = config.EngineNative
	_, ok = newEngine(cfg).(*youtube.NativeEngine)
	assert.True(t, ok)
}

func TestErrorAliases(t *testing.T) {
	var err error = &youtube.AccessError{VideoID: "abc123", PrivacyStatus: "private"}
	assert.True(t, errors.Is(err, ErrNotPublic))

	var accessErr *AccessError
	assert.True(t, errors.As(err, &accessErr))
}
