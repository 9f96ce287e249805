package youtube

import (
	"context"
	"io"
	"math"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/therealutkarshpriyadarshi/transcript/pkg/models"
)

// The platform serves captions in one of two XML dialects. Both are
// matched opportunistically with patterns rather than an XML parser:
// the documents are not reliably well-formed, and these exact shapes
// are the only ones observed. Each pattern is pinned by a unit test.
var (
	// Dialect A: <text start="1.5" dur="2.0">…</text>, seconds as decimals.
	dialectTextPattern = regexp.MustCompile(`(?s)<text start="([\d.]+)" dur="([\d.]+)"[^>]*>(.*?)</text>`)

	// Dialect B: <p t="1500" d="2000">…</p>, integer milliseconds,
	// possibly with inner markup (e.g. <s> word timing spans).
	dialectParaPattern = regexp.MustCompile(`(?s)<p t="(\d+)" d="(\d+)"[^>]*>(.*?)</p>`)

	innerTagPattern = regexp.MustCompile(`<[^>]*>`)
)

// captionEntities is the fixed minimal entity set guaranteed to appear
// in caption text. Unrecognized entities pass through literally; a
// general entity decoder is deliberately not used.
var captionEntities = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
)

func decodeCaptionEntities(s string) string {
	return captionEntities.Replace(s)
}

// parseCaptions tries the two dialects in fixed order; the first that
// yields segments wins.
func parseCaptions(doc string) []models.TranscriptSegment {
	if segs := parseDialectText(doc); len(segs) > 0 {
		return segs
	}
	return parseDialectPara(doc)
}

// parseDialectText handles the seconds-based <text> dialect; timestamps
// convert to milliseconds rounded to the nearest integer.
func parseDialectText(doc string) []models.TranscriptSegment {
	var segs []models.TranscriptSegment
	for _, m := range dialectTextPattern.FindAllStringSubmatch(doc, -1) {
		start, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		dur, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			continue
		}
		segs = append(segs, models.TranscriptSegment{
			Text:       decodeCaptionEntities(m[3]),
			StartMs:    int(math.Round(start * 1000)),
			DurationMs: int(math.Round(dur * 1000)),
		})
	}
	return segs
}

// parseDialectPara handles the millisecond-based <p> dialect; inner
// markup is stripped before entity decoding.
func parseDialectPara(doc string) []models.TranscriptSegment {
	var segs []models.TranscriptSegment
	for _, m := range dialectParaPattern.FindAllStringSubmatch(doc, -1) {
		start, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		dur, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		text := innerTagPattern.ReplaceAllString(m[3], "")
		segs = append(segs, models.TranscriptSegment{
			Text:       decodeCaptionEntities(text),
			StartMs:    start,
			DurationMs: dur,
		})
	}
	return segs
}

// fetchCaptions downloads the raw subtitle document for a track.
func (c *Client) fetchCaptions(ctx context.Context, trackURL, cookie string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, trackURL, nil)
	if err != nil {
		return "", newError(CategoryOtherError, CodeUnexpected, "building captions request: %v", err)
	}
	req.Header.Set("Accept-Language", "en-US")
	req.Header.Set("User-Agent", c.userAgent)
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", newError(CategoryNetworkError, CodeNetworkFailure, "captions request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", requestFailed(resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", newError(CategoryNetworkError, CodeNetworkFailure, "reading captions: %v", err)
	}
	return string(body), nil
}
