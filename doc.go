// Package clipcut cuts clips out of YouTube videos.
//
// A run takes a video URL, an output format (MP4 or MP3) and a start and end
// time in HH:MM:SS. It checks the video through the YouTube Data API v3,
// downloads it, trims the requested range with ffmpeg and writes
// clip_<title>.mp4 or clip_<title>.mp3 into the downloads directory.
//
// Quick Start
//
//	cfg, err := config.Load()
//	if err != nil {
//		log.Fatal(err)
//	}
//	pipeline, err := clipcut.NewPipeline(ctx, cfg, clipcut.Options{Out: os.Stdout})
//	if err != nil {
//		log.Fatal(err)
//	}
//	result, err := pipeline.Run(ctx, clip.Request{
//		URL:    "https://youtu.be/dQw4w9WgXcQ",
//		Format: media.FormatMP3,
//		Start:  "00:00:05",
//		End:    "00:00:15",
//	})
//
// Stages
//
// Each stage stops the run on error:
//
//   - youtube.ParseVideoReference: youtu.be, /watch?v=, /embed/ and /v/ URLs
//   - youtube.MetadataClient: fetches the video and rejects non-public ones
//   - clip.ParseRange: strict 24-hour HH:MM:SS, start before end
//   - youtube.Downloader: primary format, then exactly one fallback attempt
//   - clip.ExtractSegment: checks the range against the real duration, encodes
//   - clip.Cleaner: removes temp_ files, best-effort
//
// Temp files are only removed after a successful export.
//
// Configuration
//
// Settings are loaded from several sources:
//
//  1. Environment variables (highest priority)
//  2. .env in the working directory
//  3. Config file (clipcut.json or ~/.config/clipcut/clipcut.json)
//  4. Default values (lowest priority)
//
// Environment variables:
//
//   - YOUTUBE_API_KEY: YouTube Data API v3 key (required)
//   - CLIPCUT_DOWNLOADS_DIR: Working directory for downloads and clips
//   - CLIPCUT_ENGINE: Download engine, ytdlp or native
//   - CLIPCUT_YTDLP_PATH: Path to yt-dlp executable
//   - CLIPCUT_FFMPEG_PATH, CLIPCUT_FFPROBE_PATH: Paths to ffmpeg and ffprobe
//   - CLIPCUT_DOWNLOAD_TIMEOUT: Timeout for both download attempts
//   - CLIPCUT_API_TIMEOUT: Timeout for the metadata request
//   - CLIPCUT_API_RPS: Data API requests per second
//
// Error Handling
//
//	if errors.Is(err, clipcut.ErrNotPublic) {
//		fmt.Println("Video is not public")
//	}
//
//	var lenErr *clipcut.RangeExceedsLengthError
//	if errors.As(err, &lenErr) {
//		fmt.Printf("Video is only %d seconds long\n", lenErr.Duration)
//	}
//
// Dependencies
//
// The default engine needs yt-dlp in PATH or at CLIPCUT_YTDLP_PATH; the native
// engine needs nothing. Trimming always needs ffmpeg and ffprobe.
//
// Install yt-dlp: https://github.com/yt-dlp/yt-dlp
//
package clipcut
