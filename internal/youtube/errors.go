package youtube

import (
	"errors"
	"fmt"

	"github.com/therealutkarshpriyadarshi/transcript/pkg/models"
)

// Category classifies a failed transcript retrieval. The set is fixed;
// API clients dispatch on it, never on message text.
type Category string

const (
	CategoryInvalidURL   Category = "invalid_url"
	CategoryInaccessible Category = "inaccessible"
	CategoryNoCaptions   Category = "no_captions"
	CategoryNetworkError Category = "network_error"
	CategoryOtherError   Category = "other_error"
)

// Stable failure codes carried alongside the category. These are
// best-effort diagnostic labels; only the category is contractual.
const (
	CodeVideoIDNotFound     = "video_id_not_found"
	CodeConsentCreateFailed = "consent_cookie_create_failed"
	CodeConsentInvalid      = "consent_cookie_invalid"
	CodeAPIKeyNotFound      = "api_key_not_found"
	CodeIPBlocked           = "ip_blocked"
	CodeRequestBlocked      = "request_blocked"
	CodeAgeRestricted       = "age_restricted"
	CodeVideoUnavailable    = "video_unavailable"
	CodeVideoUnplayable     = "video_unplayable"
	CodeNoCaptionTracks     = "no_caption_tracks"
	CodeNoSuitableTrack     = "no_suitable_track"
	CodeEmptyTranscript     = "empty_transcript"
	CodeNetworkFailure      = "network_failure"
	CodeUnexpected          = "unexpected_error"
	codeRequestFailedFmt    = "yt_request_failed_%d"
)

// Error is a classified pipeline failure. Every failure of
// Client.Transcript is one of these; the detail travels in the return
// value so concurrent calls can never observe each other's errors.
type Error struct {
	Category Category
	Code     string
	Message  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%s): %s", e.Code, e.Category, e.Message)
}

// Record converts the error into its wire representation.
func (e *Error) Record() models.ErrorRecord {
	return models.ErrorRecord{Category: string(e.Category), Message: e.Message}
}

func newError(cat Category, code, format string, args ...any) *Error {
	return &Error{Category: cat, Code: code, Message: fmt.Sprintf(format, args...)}
}

// requestFailed classifies a non-2xx response from the platform.
// 429 signals platform-side throttling and gets its own code.
func requestFailed(status int) *Error {
	if status == 429 {
		return newError(CategoryNetworkError, CodeIPBlocked,
			"platform throttled the request (status 429)")
	}
	return newError(CategoryNetworkError, fmt.Sprintf(codeRequestFailedFmt, status),
		"platform request failed with status %d", status)
}

// Classify maps any error to a classified *Error. Already-classified
// errors pass through; everything else lands in other_error.
func Classify(err error) *Error {
	var cerr *Error
	if errors.As(err, &cerr) {
		return cerr
	}
	return newError(CategoryOtherError, CodeUnexpected, "%v", err)
}
