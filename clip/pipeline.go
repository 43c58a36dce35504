package clip

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"clipcut/media"
	"clipcut/youtube"
)

// MetadataFetcher looks up a video and rejects ones that cannot be clipped.
type MetadataFetcher interface {
	FetchAndValidate(ctx context.Context, videoID string) (*youtube.VideoMetadata, error)
}

// MediaDownloader downloads the source video.
type MediaDownloader interface {
	Download(ctx context.Context, ref youtube.VideoReference) (*youtube.DownloadResult, error)
}

// Request is what the user asked for.
type Request struct {
	URL    string
	Format media.Format
	// Start and End are HH:MM:SS strings.
	Start string
	End   string
}

// Result summarises a successful run.
type Result struct {
	Metadata *youtube.VideoMetadata
	Range    TimeRange
	Artifact *ExportArtifact
	Cleanup  *CleanupReport
}

// Pipeline runs URL parsing, metadata validation, time parsing, download,
// segment export and cleanup in that order. Any stage error ends the run.
type Pipeline struct {
	Metadata   MetadataFetcher
	Downloader MediaDownloader
	Codec      media.Codec
	// Dir is the downloads directory, shared by the downloader and the export.
	Dir string
	// Out receives the human-readable transcript. Defaults to io.Discard.
	Out io.Writer
	// Cleaner removes temp files after a successful export. Defaults to NewCleaner(Dir).
	Cleaner *Cleaner
}

// NewPipeline wires the three external services into a Pipeline.
func NewPipeline(metadata MetadataFetcher, downloader MediaDownloader, codec media.Codec, dir string, out io.Writer) *Pipeline {
	return &Pipeline{
		Metadata:   metadata,
		Downloader: downloader,
		Codec:      codec,
		Dir:        dir,
		Out:        out,
		Cleaner:    NewCleaner(dir),
	}
}

// Run processes one request. Temp files are only cleaned up when the export
// succeeds; a failed run leaves them in Dir.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	runID := uuid.NewString()
	out := p.Out
	if out == nil {
		out = io.Discard
	}

	ref, err := youtube.ParseVideoReference(req.URL)
	if err != nil {
		return nil, err
	}
	log.Printf("clip: run %s: video %s, %s, %s-%s", runID, ref.VideoID, req.Format, req.Start, req.End)

	metadata, err := p.Metadata.FetchAndValidate(ctx, ref.VideoID)
	if err != nil {
		return nil, err
	}
	writeInfo(out, metadata)

	r, err := ParseRange(req.Start, req.End)
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(out, "\nDownloading video...")
	download, err := p.Downloader.Download(ctx, ref)
	if err != nil {
		return nil, err
	}
	log.Printf("clip: run %s: downloaded %s", runID, download.Path)

	fmt.Fprintln(out, "Processing video segment...")
	fmt.Fprintln(out, "Saving video...")
	artifact, err := ExtractSegment(ctx, p.Codec, download, r, req.Format, p.Dir)
	if err != nil {
		log.Printf("clip: run %s: export failed, leaving temp files in %s", runID, p.Dir)
		return nil, err
	}

	report := p.cleanup(out)
	log.Printf("clip: run %s: saved %s", runID, artifact.Path)
	fmt.Fprintf(out, "\nDone! Your clip has been saved to: %s\n", artifact.Path)

	return &Result{
		Metadata: metadata,
		Range:    r,
		Artifact: artifact,
		Cleanup:  report,
	}, nil
}

func (p *Pipeline) cleanup(out io.Writer) *CleanupReport {
	cleaner := p.Cleaner
	if cleaner == nil {
		cleaner = NewCleaner(p.Dir)
	}

	report, err := cleaner.Clean()
	if err != nil {
		log.Printf("clip: warning: cleanup skipped: %v", err)
		return &CleanupReport{}
	}
	for _, name := range report.Removed {
		fmt.Fprintf(out, "Cleaned up temporary file: %s\n", name)
	}
	for _, f := range report.Failed {
		fmt.Fprintf(out, "Warning: Could not remove temporary file %s: %v\n", f.Name, f.Err)
	}
	return report
}

func writeInfo(w io.Writer, m *youtube.VideoMetadata) {
	p := message.NewPrinter(language.English)
	fmt.Fprintln(w, "\nVideo Information:")
	fmt.Fprintf(w, "Title: %s\n", m.Title)
	fmt.Fprintf(w, "Channel: %s\n", m.Channel)
	fmt.Fprintf(w, "Views: %s\n", p.Sprintf("%d", m.ViewCount))
	fmt.Fprintf(w, "Quality: %s\n", strings.ToUpper(m.Definition))
}
