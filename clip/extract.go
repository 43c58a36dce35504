package clip

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"clipcut/media"
	"clipcut/youtube"
)

const (
	// OutputPrefix starts every exported clip's file name.
	OutputPrefix = "clip_"

	maxTitleRunes = 40
	defaultTitle  = "video"
)

// ExportArtifact is a finished clip on disk.
type ExportArtifact struct {
	Path   string
	Format media.Format
}

// OutputFilename derives the clip file name from the video title: path
// separators become "-", the title is cut to 40 characters and prefixed
// with "clip_".
func OutputFilename(title string, format media.Format) string {
	title = strings.NewReplacer("/", "-", `\`, "-").Replace(title)
	if title == "" {
		title = defaultTitle
	}
	if r := []rune(title); len(r) > maxTitleRunes {
		title = string(r[:maxTitleRunes])
	}
	return OutputPrefix + title + format.Extension()
}

// ExtractSegment writes r of the downloaded video to dir in the requested format.
// The source is closed on every path. A failed close is logged and does not
// discard a clip that was already written.
func ExtractSegment(ctx context.Context, codec media.Codec, result *youtube.DownloadResult, r TimeRange, format media.Format, dir string) (*ExportArtifact, error) {
	if result == nil || result.Path == "" {
		return nil, fmt.Errorf("extract segment: no downloaded file")
	}

	src, err := codec.Open(ctx, result.Path)
	if err != nil {
		return nil, fmt.Errorf("extract segment: %w", err)
	}
	defer func() {
		if cerr := src.Close(); cerr != nil {
			log.Printf("clip: warning: could not close %s: %v", result.Path, cerr)
		}
	}()

	if err := r.CheckLength(src.Duration()); err != nil {
		return nil, err
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}

	out := filepath.Join(dir, OutputFilename(resultTitle(result), format))
	switch format {
	case media.FormatMP4:
		err = src.WriteVideo(ctx, r.Segment(), out)
	case media.FormatMP3:
		err = src.WriteAudio(ctx, r.Segment(), out)
	default:
		err = fmt.Errorf("%w: %q", media.ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", format, err)
	}

	return &ExportArtifact{Path: out, Format: format}, nil
}

func resultTitle(result *youtube.DownloadResult) string {
	if result.Title != "" {
		return result.Title
	}
	if title, ok := result.Info["title"].(string); ok {
		return title
	}
	return ""
}
