package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	playerURLFormat = "https://www.youtube.com/youtubei/v1/player?key=%s"

	// The declared client identity is a protocol constant, not a cosmetic
	// header: it controls which caption-track shape and defaulting fields
	// the player endpoint returns.
	innertubeClientName    = "ANDROID"
	innertubeClientVersion = "20.10.38"
)

type playerRequest struct {
	Context struct {
		Client struct {
			ClientName    string `json:"clientName"`
			ClientVersion string `json:"clientVersion"`
		} `json:"client"`
	} `json:"context"`
	VideoID string `json:"videoId"`
}

// More is returned by the endpoint; these structs outline what we use.
type playerResponse struct {
	PlayabilityStatus playabilityStatus `json:"playabilityStatus"`
	Captions          *struct {
		Renderer captionsRenderer `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
}

type playabilityStatus struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

type captionsRenderer struct {
	CaptionTracks                        []CaptionTrack `json:"captionTracks"`
	AudioTracks                          []audioTrack   `json:"audioTracks"`
	DefaultAudioTrackIndex               int            `json:"defaultAudioTrackIndex"`
	DefaultTranslationSourceTrackIndices []int          `json:"defaultTranslationSourceTrackIndices"`
}

type audioTrack struct {
	CaptionTrackIndices []int `json:"captionTrackIndices"`
	// Pointer so an absent field is distinguishable from index 0.
	DefaultCaptionTrackIndex *int `json:"defaultCaptionTrackIndex"`
}

// CaptionTrack is one subtitle stream offered for a video. Kind "asr"
// marks auto-generated tracks. Never mutated after decoding.
type CaptionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
}

// fetchPlayerResponse calls the internal player endpoint with the key
// extracted from the watch page.
func (c *Client) fetchPlayerResponse(ctx context.Context, apiKey, videoID, cookie string) (*playerResponse, error) {
	var pr playerRequest
	pr.Context.Client.ClientName = innertubeClientName
	pr.Context.Client.ClientVersion = innertubeClientVersion
	pr.VideoID = videoID

	payload, err := json.Marshal(pr)
	if err != nil {
		return nil, newError(CategoryOtherError, CodeUnexpected, "marshalling player request: %v", err)
	}

	url := fmt.Sprintf(playerURLFormat, apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, newError(CategoryOtherError, CodeUnexpected, "building player request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", "en-US")
	req.Header.Set("User-Agent", c.userAgent)
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, newError(CategoryNetworkError, CodeNetworkFailure, "player request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, requestFailed(resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, newError(CategoryNetworkError, CodeNetworkFailure, "reading player response: %v", err)
	}

	result := &playerResponse{}
	if err := json.Unmarshal(body, result); err != nil {
		return nil, newError(CategoryOtherError, CodeUnexpected, "decoding player response: %v", err)
	}
	return result, nil
}

// checkPlayability validates the status field once, straight after the
// metadata call. Reason matching is substring-based: the platform's
// reason strings are free text and only substring stability is assumed.
func checkPlayability(ps playabilityStatus) error {
	if ps.Status == "" || ps.Status == "OK" {
		return nil
	}
	reason := strings.ToLower(ps.Reason)

	switch {
	case ps.Status == "LOGIN_REQUIRED" && strings.Contains(reason, "not a bot"):
		return newError(CategoryInaccessible, CodeRequestBlocked,
			"platform flagged the request as automated: %s", ps.Reason)
	case ps.Status == "LOGIN_REQUIRED" && strings.Contains(reason, "inappropriate"):
		return newError(CategoryInaccessible, CodeAgeRestricted,
			"video is age restricted: %s", ps.Reason)
	case ps.Status == "ERROR" && strings.Contains(reason, "unavailable"):
		return newError(CategoryInaccessible, CodeVideoUnavailable,
			"video is unavailable: %s", ps.Reason)
	default:
		return newError(CategoryInaccessible, CodeVideoUnplayable,
			"video is not playable (status %s): %s", ps.Status, ps.Reason)
	}
}
