package http

import (
	"context"
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/bingohub/internal/config"
	"github.com/vovakirdan/bingohub/internal/core"
	"github.com/vovakirdan/bingohub/internal/store"
)

// Coordinator is the part of the hub the transport needs.
type Coordinator interface {
	RegisterClient(c *core.Client)
	UnregisterClient(c *core.Client)
	Directory() []core.DirectoryEntry
	Room(id string) (core.RoomInfo, bool)
}

// ResultLister reads the results journal.
type ResultLister interface {
	List(ctx context.Context, filter store.ResultFilter) ([]store.Result, error)
}

// NewServer builds an HTTP server with the REST routes and the WebSocket endpoint.
// results may be nil when the journal is disabled.
func NewServer(hub Coordinator, results ResultLister, cfg *config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery(), LoggerMiddleware(logger))

	router.GET("/health", healthHandler)

	rooms := NewRoomHandlers(hub, logger)
	resultHandlers := NewResultHandlers(results, logger)
	api := router.Group("/api")
	{
		api.GET("/rooms", rooms.ListRooms)
		api.GET("/rooms/:room", rooms.GetRoom)
		api.GET("/rooms/:room/board", rooms.GetBoard)
		api.GET("/results", resultHandlers.ListResults)
	}

	// /ws hijacks the connection and is served outside the gin engine.
	mux := stdhttp.NewServeMux()
	mux.Handle("/ws", NewWSHandler(hub, cfg.WS, logger))
	mux.Handle("/", router)

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}
