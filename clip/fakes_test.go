package clip

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"clipcut/media"
	"clipcut/youtube"
)

// fakeCodec opens every path as a fakeMedia of the configured duration.
type fakeCodec struct {
	duration time.Duration
	openErr  error
	writeErr error
	closeErr error

	opened []*fakeMedia
}

func (c *fakeCodec) Open(ctx context.Context, path string) (media.Media, error) {
	if c.openErr != nil {
		return nil, c.openErr
	}
	m := &fakeMedia{path: path, duration: c.duration, writeErr: c.writeErr, closeErr: c.closeErr}
	c.opened = append(c.opened, m)
	return m, nil
}

type fakeMedia struct {
	path     string
	duration time.Duration
	writeErr error
	closeErr error

	closed  bool
	written []string
	segment media.Segment
	kind    string
}

func (m *fakeMedia) Duration() time.Duration { return m.duration }

func (m *fakeMedia) WriteVideo(ctx context.Context, seg media.Segment, out string) error {
	return m.write("video", seg, out)
}

func (m *fakeMedia) WriteAudio(ctx context.Context, seg media.Segment, out string) error {
	return m.write("audio", seg, out)
}

func (m *fakeMedia) write(kind string, seg media.Segment, out string) error {
	if m.closed {
		return media.ErrClosed
	}
	if m.writeErr != nil {
		return m.writeErr
	}
	m.kind, m.segment = kind, seg
	m.written = append(m.written, out)
	return os.WriteFile(out, []byte(kind), 0o644)
}

func (m *fakeMedia) Close() error {
	if m.closed {
		return media.ErrClosed
	}
	m.closed = true
	return m.closeErr
}

// fakeMetadata returns a fixed metadata record or error.
type fakeMetadata struct {
	metadata *youtube.VideoMetadata
	err      error
	ids      []string
}

func (f *fakeMetadata) FetchAndValidate(ctx context.Context, videoID string) (*youtube.VideoMetadata, error) {
	f.ids = append(f.ids, videoID)
	if f.err != nil {
		return nil, f.err
	}
	return f.metadata, nil
}

// fakeDownloader writes temp_<title>.mp4 into dir, like the real engines do.
type fakeDownloader struct {
	dir   string
	title string
	err   error
	refs  []youtube.VideoReference
}

func (f *fakeDownloader) Download(ctx context.Context, ref youtube.VideoReference) (*youtube.DownloadResult, error) {
	f.refs = append(f.refs, ref)
	if f.err != nil {
		return nil, f.err
	}
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return nil, err
	}
	path := filepath.Join(f.dir, youtube.TempPrefix+f.title+".mp4")
	if err := os.WriteFile(path, []byte("source"), 0o644); err != nil {
		return nil, err
	}
	return &youtube.DownloadResult{
		Path:  path,
		Title: f.title,
		Info:  map[string]any{"title": f.title},
	}, nil
}

var errBoom = errors.New("boom")
