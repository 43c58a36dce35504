// Package youtube provides video URL parsing, Data API metadata validation
// and media downloads for clip extraction.
package youtube

import (
	"errors"
	"fmt"
)

// Sentinel errors for YouTube operations.
var (
	ErrInvalidURL    = errors.New("youtube: invalid YouTube URL")
	ErrVideoNotFound = errors.New("youtube: video not found or is private")
	ErrNotPublic     = errors.New("youtube: video is not public")
	ErrAPIAuth       = errors.New("youtube: API key error")
	ErrDownload      = errors.New("youtube: download failed")
)

// VideoReference pairs the URL the user supplied with the video ID extracted from it.
type VideoReference struct {
	RawURL  string
	VideoID string
}

// ParseVideoReference extracts the video ID from rawURL.
// It fails with ErrInvalidURL for any unrecognized URL.
func ParseVideoReference(rawURL string) (VideoReference, error) {
	id, err := ExtractVideoID(rawURL)
	if err != nil {
		return VideoReference{}, err
	}
	return VideoReference{RawURL: rawURL, VideoID: id}, nil
}

// WatchURL returns the canonical watch URL for the referenced video.
func (r VideoReference) WatchURL() string {
	return "https://www.youtube.com/watch?v=" + r.VideoID
}

// AccessError reports a video whose privacy status prevents clipping.
// It matches ErrNotPublic with errors.Is.
type AccessError struct {
	VideoID       string
	PrivacyStatus string
}

// Error returns a string representation of the access error.
func (e *AccessError) Error() string {
	return fmt.Sprintf("youtube: video is %s, not accessible", e.PrivacyStatus)
}

// Is reports whether target is ErrNotPublic.
func (e *AccessError) Is(target error) bool { return target == ErrNotPublic }

// APIAuthError reports a Data API authorization failure (bad key or exhausted quota).
// It matches ErrAPIAuth with errors.Is.
type APIAuthError struct {
	StatusCode int
	Err        error
}

// Error returns a string representation of the authorization error.
func (e *APIAuthError) Error() string {
	return fmt.Sprintf("youtube: API key error (status %d): please check your YouTube Data API key and quota limits: %v", e.StatusCode, e.Err)
}

// Is reports whether target is ErrAPIAuth.
func (e *APIAuthError) Is(target error) bool { return target == ErrAPIAuth }

// Unwrap returns the underlying API error.
func (e *APIAuthError) Unwrap() error { return e.Err }

// UpstreamError wraps any other Data API failure.
type UpstreamError struct {
	Err error
}

// Error returns a string representation of the upstream error.
func (e *UpstreamError) Error() string {
	return "youtube: API error: " + e.Err.Error()
}

// Unwrap returns the underlying error for use with errors.Is() and errors.As().
func (e *UpstreamError) Unwrap() error { return e.Err }

// DownloadError is returned once every download attempt has failed.
// It matches ErrDownload with errors.Is.
type DownloadError struct {
	VideoID  string
	Attempts int
	Err      error
}

// Error returns a string representation of the download error.
func (e *DownloadError) Error() string {
	return fmt.Sprintf("youtube: download %s failed after %d attempts: %v", e.VideoID, e.Attempts, e.Err)
}

// Is reports whether target is ErrDownload.
func (e *DownloadError) Is(target error) bool { return target == ErrDownload }

// Unwrap returns the last attempt's error.
func (e *DownloadError) Unwrap() error { return e.Err }
