package models

import "strings"

// TranscriptSegment is a single timed line of a video transcript.
// Segments are ordered ascending by StartMs; no two segments share
// both StartMs and Text.
type TranscriptSegment struct {
	Text       string `json:"text"`
	StartMs    int    `json:"startInMs"`
	DurationMs int    `json:"duration"`
}

// ErrorRecord is the classified failure returned to API clients in
// place of a transcript. Category is one of the fixed taxonomy values
// (invalid_url, inaccessible, no_captions, network_error, other_error);
// Message is free text for diagnostics and must not be dispatched on.
type ErrorRecord struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// TranscriptResponse is the success wire shape of the transcript endpoint.
type TranscriptResponse struct {
	VideoID  string              `json:"video_id"`
	Language string              `json:"language"`
	Text     string              `json:"text"`
	Segments []TranscriptSegment `json:"segments"`
}

// JoinSegments concatenates segment texts with single spaces.
func JoinSegments(segments []TranscriptSegment) string {
	var sb strings.Builder
	for i, s := range segments {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(s.Text)
	}
	return sb.String()
}
