package youtube

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
)

const (
	watchURLFormat = "https://www.youtube.com/watch?v=%s"

	// consentFormMarker appears in the HTML served behind the EU cookie
	// consent gate instead of the video page.
	consentFormMarker = `action="https://consent.youtube.com/s"`
)

var (
	// consentTokenPattern extracts the hidden form token needed to mint
	// a CONSENT cookie.
	consentTokenPattern = regexp.MustCompile(`name="v" value="(.*?)"`)

	// apiKeyPattern extracts the session-scoped Innertube key the watch
	// page embeds for its own API calls.
	apiKeyPattern = regexp.MustCompile(`"INNERTUBE_API_KEY"\s*:\s*"([a-zA-Z0-9_-]+)"`)
)

func extractConsentToken(html string) (string, bool) {
	if m := consentTokenPattern.FindStringSubmatch(html); len(m) == 2 {
		return m[1], true
	}
	return "", false
}

func extractAPIKey(html string) (string, bool) {
	if m := apiKeyPattern.FindStringSubmatch(html); len(m) == 2 {
		return m[1], true
	}
	return "", false
}

// fetchWatchPage retrieves the public watch page HTML. When the consent
// gate is served it mints a CONSENT cookie from the form token and
// retries exactly once; the handshake is a fixed two-step exchange, not
// a retry loop. The cookie, if any, is returned so later requests in
// the same pipeline run stay consented.
func (c *Client) fetchWatchPage(ctx context.Context, videoID string) (html, cookie string, err error) {
	url := fmt.Sprintf(watchURLFormat, videoID)

	html, err = c.getPage(ctx, url, "")
	if err != nil {
		return "", "", err
	}
	if !strings.Contains(html, consentFormMarker) {
		return html, "", nil
	}

	token, ok := extractConsentToken(html)
	if !ok {
		return "", "", newError(CategoryInaccessible, CodeConsentCreateFailed,
			"consent form served without a token field")
	}
	cookie = "CONSENT=YES+" + token

	html, err = c.getPage(ctx, url, cookie)
	if err != nil {
		return "", "", err
	}
	if strings.Contains(html, consentFormMarker) {
		return "", "", newError(CategoryInaccessible, CodeConsentInvalid,
			"consent cookie was not accepted")
	}
	return html, cookie, nil
}

func (c *Client) getPage(ctx context.Context, url, cookie string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", newError(CategoryOtherError, CodeUnexpected, "building request: %v", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Language", "en-US")
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", newError(CategoryNetworkError, CodeNetworkFailure, "watch page: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", requestFailed(resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", newError(CategoryNetworkError, CodeNetworkFailure, "reading watch page: %v", err)
	}
	return string(body), nil
}
