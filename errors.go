package clipcut

import (
	"clipcut/clip"
	"clipcut/config"
	"clipcut/media"
	"clipcut/youtube"
)

// Error handling types exported for library users.
//
// From youtube package:
//   - youtube.ErrInvalidURL: URL is not a recognized YouTube video URL
//   - youtube.ErrVideoNotFound: Data API returned no video
//   - youtube.ErrNotPublic: Video is private or unlisted
//   - youtube.ErrAPIAuth: Data API rejected the key (401/403)
//   - youtube.ErrDownload: Both download attempts failed
//
// From clip package:
//   - clip.ErrInvalidTimeFormat: Time is not HH:MM:SS
//   - clip.ErrRangeOrder: End time is not after start time
//   - clip.ErrRangeExceedsLength: End time is past the end of the video

// Type aliases for convenient error handling.
type (
	// AccessError reports a video that is not public.
	AccessError = youtube.AccessError
	// APIAuthError reports a Data API authorization failure.
	APIAuthError = youtube.APIAuthError
	// UpstreamError wraps any other Data API failure.
	UpstreamError = youtube.UpstreamError
	// DownloadError wraps the last error after both download attempts failed.
	DownloadError = youtube.DownloadError
	// TimeFormatError reports a malformed HH:MM:SS value.
	TimeFormatError = clip.TimeFormatError
	// RangeExceedsLengthError reports an end time past the video's duration.
	RangeExceedsLengthError = clip.RangeExceedsLengthError
)

// Sentinel errors exported from sub-packages.
var (
	// ErrInvalidURL indicates the provided URL is not a YouTube video URL.
	ErrInvalidURL = youtube.ErrInvalidURL
	// ErrVideoNotFound indicates the video does not exist or is private.
	ErrVideoNotFound = youtube.ErrVideoNotFound
	// ErrNotPublic indicates the video is not public.
	ErrNotPublic = youtube.ErrNotPublic
	// ErrAPIAuth indicates the Data API key was rejected.
	ErrAPIAuth = youtube.ErrAPIAuth
	// ErrDownload indicates the download failed after the fallback attempt.
	ErrDownload = youtube.ErrDownload

	ErrInvalidTimeFormat  = clip.ErrInvalidTimeFormat
	ErrRangeOrder         = clip.ErrRangeOrder
	ErrRangeExceedsLength = clip.ErrRangeExceedsLength

	// ErrUnsupportedFormat indicates an output format other than MP4 or MP3.
	ErrUnsupportedFormat = media.ErrUnsupportedFormat
	// ErrMissingAPIKey indicates YOUTUBE_API_KEY is not configured.
	ErrMissingAPIKey = config.ErrMissingAPIKey
)
