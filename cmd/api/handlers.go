package main

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/therealutkarshpriyadarshi/transcript/internal/cache"
	"github.com/therealutkarshpriyadarshi/transcript/internal/metrics"
	"github.com/therealutkarshpriyadarshi/transcript/internal/youtube"
	"github.com/therealutkarshpriyadarshi/transcript/pkg/models"
)

// transcriptFetcher is the slice of the youtube client the API needs.
type transcriptFetcher interface {
	Transcript(ctx context.Context, rawURL string, langs []string) (*youtube.Result, error)
}

type API struct {
	fetcher transcriptFetcher
	stats   *cache.Cache // nil when Redis is disabled
}

// getTranscript handles GET /api/v1/transcript?url=...&lang=en&lang=de
func (api *API) getTranscript(c *gin.Context) {
	rawURL := c.Query("url")
	if rawURL == "" {
		metrics.FetchesTotal.WithLabelValues(string(youtube.CategoryInvalidURL)).Inc()
		c.JSON(http.StatusBadRequest, models.ErrorRecord{
			Category: string(youtube.CategoryInvalidURL),
			Message:  "missing required query parameter: url",
		})
		return
	}
	langs := c.QueryArray("lang")

	result, err := api.fetcher.Transcript(c.Request.Context(), rawURL, langs)
	if err != nil {
		ytErr := youtube.Classify(err)
		metrics.FetchesTotal.WithLabelValues(string(ytErr.Category)).Inc()
		api.recordStat(c.Request.Context(), "fetch_error")
		c.JSON(statusForCategory(ytErr.Category), ytErr.Record())
		return
	}

	metrics.FetchesTotal.WithLabelValues("ok").Inc()
	api.recordStat(c.Request.Context(), "fetch_ok")

	c.JSON(http.StatusOK, models.TranscriptResponse{
		VideoID:  result.VideoID,
		Language: result.Language,
		Text:     models.JoinSegments(result.Segments),
		Segments: result.Segments,
	})
}

// healthCheck reports liveness, including Redis when configured.
func (api *API) healthCheck(c *gin.Context) {
	if api.stats != nil {
		if err := api.stats.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  err.Error(),
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
	})
}

func (api *API) recordStat(ctx context.Context, stat string) {
	if api.stats == nil {
		return
	}
	if err := api.stats.IncrementStat(ctx, stat); err != nil {
		log.Warn().Err(err).Str("stat", stat).Msg("failed to increment stat")
	}
}

// statusForCategory maps the error taxonomy onto HTTP status codes.
func statusForCategory(cat youtube.Category) int {
	switch cat {
	case youtube.CategoryInvalidURL:
		return http.StatusBadRequest
	case youtube.CategoryInaccessible, youtube.CategoryNoCaptions:
		return http.StatusNotFound
	case youtube.CategoryNetworkError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
