package youtube

import (
	"fmt"
	"net/url"
	"strings"
)

// ExtractVideoID returns the video ID embedded in a YouTube URL.
//
// Recognized shapes:
//
//	https://youtu.be/<id>
//	https://www.youtube.com/watch?v=<id>
//	https://www.youtube.com/embed/<id>
//	https://www.youtube.com/v/<id>
//
// The host must be youtu.be, www.youtube.com or youtube.com, in any case.
// Only the "v" query parameter is read; everything else in the query is ignored.
func ExtractVideoID(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	host := strings.ToLower(u.Hostname())

	var id string
	switch host {
	case "youtu.be":
		id = strings.TrimPrefix(u.Path, "/")
	case "www.youtube.com", "youtube.com":
		switch {
		case u.Path == "/watch":
			id = u.Query().Get("v")
		case strings.HasPrefix(u.Path, "/embed/"):
			id = pathSegment(u.Path, 2)
		case strings.HasPrefix(u.Path, "/v/"):
			id = pathSegment(u.Path, 2)
		}
	default:
		return "", fmt.Errorf("%w: unsupported host %q", ErrInvalidURL, host)
	}

	if id == "" || strings.Contains(id, "/") {
		return "", fmt.Errorf("%w: no video id in %q", ErrInvalidURL, rawURL)
	}
	return id, nil
}

// pathSegment returns the i-th "/"-separated element of p, or "" if absent.
func pathSegment(p string, i int) string {
	parts := strings.Split(p, "/")
	if i >= len(parts) {
		return ""
	}
	return parts[i]
}
