package youtube

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/therealutkarshpriyadarshi/transcript/internal/metrics"
	"github.com/therealutkarshpriyadarshi/transcript/internal/tracing"
	"github.com/therealutkarshpriyadarshi/transcript/pkg/models"
)

const (
	defaultTimeout   = 8 * time.Second
	defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

	// Responses larger than this are cut off; watch pages run a few MB.
	maxPageBytes = 10 << 20
)

// Options configures a Client. Zero values fall back to sane defaults.
type Options struct {
	// Timeout bounds every individual HTTP call in the pipeline.
	Timeout   time.Duration
	UserAgent string
	// Languages is the preference order used when a caller supplies none.
	Languages []string
}

// Client retrieves video transcripts through the platform's internal
// data path: watch page, embedded API key, player metadata endpoint,
// caption track download. Safe for concurrent use; all failure detail
// travels in return values.
type Client struct {
	httpClient *http.Client
	userAgent  string
	languages  []string
}

// New creates a transcript client.
func New(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	langs := opts.Languages
	if len(langs) == 0 {
		langs = []string{"en"}
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  ua,
		languages:  langs,
	}
}

// Result is a successfully retrieved transcript.
type Result struct {
	VideoID  string
	Language string
	Segments []models.TranscriptSegment
}

// Transcript runs the full retrieval pipeline for a video URL. langs is
// the caller's language preference order; empty means the configured
// default. Every failure is returned as a classified *Error — the
// pipeline never panics past this boundary and keeps no shared state.
func (c *Client) Transcript(ctx context.Context, rawURL string, langs []string) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = newError(CategoryOtherError, CodeUnexpected, "transcript pipeline panic: %v", r)
		}
	}()

	span, ctx := tracing.StartSpan(ctx, "transcript.fetch")
	defer span.Finish()

	if len(langs) == 0 {
		langs = c.languages
	}

	videoID, ok := ExtractVideoID(rawURL)
	if !ok {
		return nil, newError(CategoryInvalidURL, CodeVideoIDNotFound,
			"no video ID found in %q", rawURL)
	}
	tracing.SetTag(span, "video_id", videoID)
	logger := log.With().Str("video_id", videoID).Logger()

	done := stageTimer("watch_page")
	html, cookie, err := c.fetchWatchPage(ctx, videoID)
	done()
	if err != nil {
		tracing.LogError(span, err)
		return nil, err
	}

	apiKey, ok := extractAPIKey(html)
	if !ok {
		err = newError(CategoryInaccessible, CodeAPIKeyNotFound,
			"no API key in watch page, layout may have changed")
		tracing.LogError(span, err)
		return nil, err
	}

	done = stageTimer("player")
	pr, err := c.fetchPlayerResponse(ctx, apiKey, videoID, cookie)
	done()
	if err != nil {
		tracing.LogError(span, err)
		return nil, err
	}
	if err := checkPlayability(pr.PlayabilityStatus); err != nil {
		tracing.LogError(span, err)
		return nil, err
	}

	if pr.Captions == nil || len(pr.Captions.Renderer.CaptionTracks) == 0 {
		return nil, newError(CategoryNoCaptions, CodeNoCaptionTracks,
			"video offers no caption tracks")
	}
	renderer := pr.Captions.Renderer
	track, ok := selectCaptionTrack(renderer.CaptionTracks, langs, hintsFromRenderer(renderer))
	if !ok {
		return nil, newError(CategoryNoCaptions, CodeNoSuitableTrack,
			"no usable caption track among %d offered", len(renderer.CaptionTracks))
	}
	logger.Debug().
		Str("language", track.LanguageCode).
		Str("kind", track.Kind).
		Msg("selected caption track")

	done = stageTimer("captions")
	doc, err := c.fetchCaptions(ctx, track.BaseURL, cookie)
	done()
	if err != nil {
		tracing.LogError(span, err)
		return nil, err
	}

	segments := normalizeSegments(parseCaptions(doc))
	if len(segments) == 0 {
		return nil, newError(CategoryNoCaptions, CodeEmptyTranscript,
			"caption document yielded no segments")
	}
	metrics.SegmentsReturned.Observe(float64(len(segments)))
	logger.Debug().Int("segments", len(segments)).Msg("transcript retrieved")

	return &Result{
		VideoID:  videoID,
		Language: track.LanguageCode,
		Segments: segments,
	}, nil
}

func stageTimer(stage string) func() {
	start := time.Now()
	return func() {
		metrics.FetchStageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
	}
}
