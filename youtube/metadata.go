package youtube

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// PrivacyPublic is the only privacy status a clip can be made from.
const PrivacyPublic = "public"

// metadataParts are the videos.list parts needed to fill VideoMetadata.
var metadataParts = []string{"snippet", "contentDetails", "statistics", "status"}

// VideoMetadata contains the Data API fields shown to the user before downloading.
type VideoMetadata struct {
	// ID is the YouTube video ID (e.g., "dQw4w9WgXcQ").
	ID string `json:"id"`
	// Title is the video title.
	Title string `json:"title"`
	// Channel is the channel display name.
	Channel string `json:"channel"`
	// ViewCount is the total number of views.
	ViewCount uint64 `json:"view_count"`
	// Definition is "hd" or "sd".
	Definition string `json:"definition"`
	// PrivacyStatus is "public", "unlisted" or "private".
	PrivacyStatus string `json:"privacy_status"`
}

// MetadataClient fetches and validates video metadata using YouTube Data API v3.
type MetadataClient struct {
	service *youtube.Service
}

// NewMetadataClient creates a Data API client. The API key and rate limiting
// are expected to be applied by httpClient's transport (see the http package);
// extra options such as option.WithEndpoint are passed through.
func NewMetadataClient(ctx context.Context, httpClient *http.Client, opts ...option.ClientOption) (*MetadataClient, error) {
	if httpClient == nil {
		return nil, fmt.Errorf("http client required")
	}

	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	return &MetadataClient{service: service}, nil
}

// FetchMetadata retrieves metadata for a single video without validating it.
func (c *MetadataClient) FetchMetadata(ctx context.Context, videoID string) (*VideoMetadata, error) {
	resp, err := c.service.Videos.List(metadataParts).
		Id(videoID).
		Context(ctx).
		Do()
	if err != nil {
		return nil, classifyAPIError(err)
	}

	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrVideoNotFound, videoID)
	}

	return metadataFromVideo(resp.Items[0]), nil
}

// FetchAndValidate retrieves metadata and rejects videos that are not public.
// Failures are terminal: nothing here is retried.
func (c *MetadataClient) FetchAndValidate(ctx context.Context, videoID string) (*VideoMetadata, error) {
	metadata, err := c.FetchMetadata(ctx, videoID)
	if err != nil {
		return nil, err
	}

	if err := ValidateAccess(metadata); err != nil {
		return nil, err
	}

	return metadata, nil
}

// ValidateAccess returns an *AccessError unless the video is public.
func ValidateAccess(metadata *VideoMetadata) error {
	if metadata.PrivacyStatus != PrivacyPublic {
		return &AccessError{VideoID: metadata.ID, PrivacyStatus: metadata.PrivacyStatus}
	}
	return nil
}

// metadataFromVideo copies the consumed fields; missing parts leave zero values.
func metadataFromVideo(v *youtube.Video) *VideoMetadata {
	metadata := &VideoMetadata{ID: v.Id}
	if v.Snippet != nil {
		metadata.Title = v.Snippet.Title
		metadata.Channel = v.Snippet.ChannelTitle
	}
	if v.Statistics != nil {
		metadata.ViewCount = v.Statistics.ViewCount
	}
	if v.ContentDetails != nil {
		metadata.Definition = v.ContentDetails.Definition
	}
	if v.Status != nil {
		metadata.PrivacyStatus = v.Status.PrivacyStatus
	}
	return metadata
}

// classifyAPIError maps authorization failures to *APIAuthError and
// everything else to *UpstreamError.
func classifyAPIError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			log.Printf("youtube: data API rejected credentials (status %d)", apiErr.Code)
			return &APIAuthError{StatusCode: apiErr.Code, Err: err}
		}
	}
	return &UpstreamError{Err: err}
}
