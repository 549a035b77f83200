package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/bingohub/internal/bingo"
	"github.com/vovakirdan/bingohub/internal/proto"
	"github.com/vovakirdan/bingohub/internal/store"
)

const maxResultLimit = 500

// ResultHandlers serves the results journal.
type ResultHandlers struct {
	results ResultLister
	log     *zerolog.Logger
}

// NewResultHandlers creates handlers over an optional journal.
func NewResultHandlers(results ResultLister, logger *zerolog.Logger) *ResultHandlers {
	return &ResultHandlers{results: results, log: logger}
}

// ResultResponse is one finished game.
type ResultResponse struct {
	ID            int64        `json:"id"`
	Room          string       `json:"room"`
	Winner        string       `json:"winner"`
	WinningValues proto.Values `json:"winningValues"`
	EndedAt       string       `json:"endedAt"`
}

// ResultsResponse wraps a results page.
type ResultsResponse struct {
	Results []ResultResponse `json:"results"`
}

// ListResults returns finished games, newest first.
// GET /api/results?room=&limit=
func (h *ResultHandlers) ListResults(c *gin.Context) {
	if h.results == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "results journal disabled"})
		return
	}

	filter := store.ResultFilter{Room: c.Query("room")}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 || limit > maxResultLimit {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
			return
		}
		filter.Limit = limit
	}

	results, err := h.results.List(c.Request.Context(), filter)
	if err != nil {
		h.log.Error().Err(err).Str("room", filter.Room).Msg("failed to list results")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	response := make([]ResultResponse, 0, len(results))
	for _, r := range results {
		values := make(proto.Values, 0, len(r.WinningValues))
		for _, v := range r.WinningValues {
			values = append(values, bingo.Item{ID: v.ID, Numeric: v.Numeric})
		}
		response = append(response, ResultResponse{
			ID:            r.ID,
			Room:          r.Room,
			Winner:        r.Winner,
			WinningValues: values,
			EndedAt:       r.EndedAt.UTC().Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, ResultsResponse{Results: response})
}
