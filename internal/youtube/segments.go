package youtube

import (
	"sort"
	"strings"

	"github.com/therealutkarshpriyadarshi/transcript/pkg/models"
)

type segmentKey struct {
	startMs int
	text    string
}

// normalizeSegments trims text, drops segments that are empty after
// trimming, discards exact (start, text) duplicates keeping the first
// occurrence, and stable-sorts ascending by start time. The operation
// is idempotent.
func normalizeSegments(segs []models.TranscriptSegment) []models.TranscriptSegment {
	out := make([]models.TranscriptSegment, 0, len(segs))
	seen := make(map[segmentKey]struct{}, len(segs))

	for _, s := range segs {
		s.Text = strings.TrimSpace(s.Text)
		if s.Text == "" {
			continue
		}
		key := segmentKey{startMs: s.StartMs, text: s.Text}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartMs < out[j].StartMs
	})
	return out
}
