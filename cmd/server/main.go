// Command server is a thin demonstration wrapper around the engine's
// core API. It is a collaborator, not part of the engine: it owns HTTP
// transport, game storage and a push channel, and carries no game rules
// of its own.
//
// Grounded on the teacher's cmd/server/main.go (gin engine, health
// check, a websocket hub run in its own goroutine) and on
// niceyeti-tabular's gorilla/mux + gorilla/websocket pairing for the
// push side.
package main

import (
	"flag"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hexclash/engine/internal/logger"
)

func main() {
	addr := flag.String("addr", envOr("ADDR", ":8080"), "listen address")
	logLevel := flag.String("log-level", envOr("LOG_LEVEL", "info"), "debug|info|warn|error")
	flag.Parse()

	if err := logger.Init(logLevel); err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Get()

	store := newGameStore()
	hub := newHub()
	go hub.run()

	r := gin.Default()
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	api := newAPI(store, hub)
	v1 := r.Group("/api/v1")
	{
		v1.POST("/games", api.createGame)
		v1.GET("/games/:id", api.getSnapshot)
		v1.POST("/games/:id/actions", api.submitAction)
		v1.GET("/games/:id/available-actions", api.availableActions)
		v1.GET("/games/:id/current-event", api.currentEvent)
	}

	// The websocket push channel is served off a gorilla/mux router
	// mounted as a sub-handler, grounded on niceyeti-tabular's
	// tabular/server gorilla/mux + gorilla/websocket registration
	// (distinct from gin's own routing, matching the teacher's choice to
	// keep the websocket hub's upgrade handshake outside gin's handler
	// chain).
	wsRouter := hub.router()
	r.GET("/ws/games/:id", gin.WrapH(wsRouter))

	log.Info("server listening", zap.String("addr", *addr))
	if err := r.Run(*addr); err != nil {
		log.Fatal(err.Error())
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
