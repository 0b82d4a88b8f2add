package session

import (
	"net/http"

	"github.com/lianhua/qinna-quiz/internal/logging"
	"github.com/lianhua/qinna-quiz/internal/server"
)

// HandleWebSocket upgrades the HTTP connection and serves the live quiz.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := server.WSUpgrader.Upgrade(w, r, nil)
	if err != nil {
		logger := logging.FromContext(r.Context())
		logger.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	h.HandleConnection(conn)
}
