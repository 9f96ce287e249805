package youtube

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/therealutkarshpriyadarshi/transcript/pkg/models"
)

func TestNormalizeSegments(t *testing.T) {
	in := []models.TranscriptSegment{
		{Text: "  world  ", StartMs: 2000, DurationMs: 1000},
		{Text: "hello", StartMs: 1000, DurationMs: 1000},
		{Text: "   ", StartMs: 1500, DurationMs: 500},
		{Text: "hello", StartMs: 1000, DurationMs: 900}, // duplicate (start, text), first wins
		{Text: "", StartMs: 3000, DurationMs: 100},
	}

	out := normalizeSegments(in)

	assert.Equal(t, []models.TranscriptSegment{
		{Text: "hello", StartMs: 1000, DurationMs: 1000},
		{Text: "world", StartMs: 2000, DurationMs: 1000},
	}, out)
}

func TestNormalizeSegmentsIdempotent(t *testing.T) {
	in := []models.TranscriptSegment{
		{Text: "b", StartMs: 200, DurationMs: 10},
		{Text: "a", StartMs: 100, DurationMs: 10},
		{Text: "a", StartMs: 100, DurationMs: 10},
	}

	once := normalizeSegments(in)
	twice := normalizeSegments(once)

	assert.Equal(t, once, twice)
}

func TestNormalizeSegmentsStableOrderForEqualStarts(t *testing.T) {
	in := []models.TranscriptSegment{
		{Text: "first", StartMs: 100, DurationMs: 10},
		{Text: "second", StartMs: 100, DurationMs: 10},
	}

	out := normalizeSegments(in)

	assert.Equal(t, "first", out[0].Text)
	assert.Equal(t, "second", out[1].Text)
}

func TestNormalizeSegmentsEmpty(t *testing.T) {
	assert.Empty(t, normalizeSegments(nil))
}
