package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	httperrors "github.com/lianhua/qinna-quiz/pkg/http/errors"
	ws "github.com/lianhua/qinna-quiz/pkg/http/ws"
)

// Handler drives the engine over WebSocket and pushes every snapshot to all
// connected viewers.
type Handler struct {
	engine *Engine
	hub    *ws.Hub
	logger zerolog.Logger

	mu          sync.Mutex
	lastPushed  uint64
	unsubscribe func()
}

// NewHandler creates a WebSocket handler subscribed to engine changes.
// Call Close to unsubscribe.
func NewHandler(engine *Engine, hub *ws.Hub, logger zerolog.Logger) *Handler {
	h := &Handler{
		engine: engine,
		hub:    hub,
		logger: logger.With().Str("component", "quiz_ws").Logger(),
	}
	h.unsubscribe = engine.Subscribe(h.broadcast)
	return h
}

// Register mounts the WebSocket endpoint.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /ws/quiz", h.HandleWebSocket)
}

// Close stops pushing snapshots.
func (h *Handler) Close() {
	h.unsubscribe()
}

// HandleConnection serves one upgraded connection until it closes.
func (h *Handler) HandleConnection(conn *websocket.Conn) {
	wsConn := ws.NewConnection(conn, h.logger)
	id := h.hub.Register(wsConn)

	go wsConn.WritePump()

	if err := h.send(id, h.engine.Snapshot()); err != nil {
		h.logger.Warn().Err(err).Str("connection_id", id.String()).Msg("initial snapshot failed")
	}

	wsConn.ReadPump(func(msg ws.Message) error {
		return h.handleMessage(id, msg)
	})

	h.hub.Unregister(id)
}

// handleMessage routes incoming WebSocket messages.
func (h *Handler) handleMessage(id uuid.UUID, msg ws.Message) error {
	before := h.engine.Snapshot().Revision

	var snap Snapshot
	switch msg.Type {
	case ws.TypeChooseVariant:
		var req ws.ChooseVariantPayload
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return h.sendError(id, httperrors.ErrCodeInvalidPayload, "Invalid choose_variant payload")
		}
		var err error
		snap, err = h.engine.ChooseVariant(req.Variant)
		if err != nil {
			var emptyErr *EmptyBankError
			if !errors.As(err, &emptyErr) {
				return h.sendError(id, httperrors.ErrCodeInternalError, err.Error())
			}
			code := httperrors.ErrCodeQuizStartFailed
			if _, ok := h.engine.Variants().Lookup(req.Variant); !ok {
				code = httperrors.ErrCodeUnknownVariant
			}
			return h.sendError(id, code, h.engine.messages.CannotStart)
		}
	case ws.TypeUpdateAnswer:
		var req ws.UpdateAnswerPayload
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return h.sendError(id, httperrors.ErrCodeInvalidPayload, "Invalid update_answer payload")
		}
		snap = h.engine.UpdatePendingAnswer(req.Answer)
	case ws.TypeSubmit:
		snap = h.engine.Submit()
	case ws.TypeSkip:
		snap = h.engine.Skip()
	case ws.TypeNext:
		snap = h.engine.Advance()
	case ws.TypeReset:
		snap = h.engine.Reset()
	case ws.TypePing:
		return h.hub.SendTo(id, ws.Message{Type: ws.TypePong, RequestID: msg.RequestID})
	default:
		return h.sendError(id, httperrors.ErrCodeUnknownMessageType, fmt.Sprintf("Unknown message type: %s", msg.Type))
	}

	// Changes reach everyone through broadcast; an ignored action still
	// gets the current state back so the client can resync.
	if snap.Revision == before {
		return h.send(id, snap)
	}
	return nil
}

// broadcast pushes snap to every viewer, dropping snapshots older than one
// already pushed.
func (h *Handler) broadcast(snap Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if snap.Revision <= h.lastPushed {
		return
	}
	h.lastPushed = snap.Revision

	msg, err := ws.NewMessage(ws.TypeSnapshot, snap)
	if err != nil {
		h.logger.Error().Err(err).Msg("encode snapshot")
		return
	}
	if err := h.hub.BroadcastAll(msg); err != nil {
		h.logger.Warn().Err(err).Uint64("revision", snap.Revision).Msg("snapshot broadcast incomplete")
	}
}

func (h *Handler) send(id uuid.UUID, snap Snapshot) error {
	msg, err := ws.NewMessage(ws.TypeSnapshot, snap)
	if err != nil {
		return err
	}
	return h.hub.SendTo(id, msg)
}

func (h *Handler) sendError(id uuid.UUID, code, message string) error {
	msg, err := ws.NewMessage(ws.TypeError, ws.ErrorPayload{Code: code, Message: message})
	if err != nil {
		return err
	}
	return h.hub.SendTo(id, msg)
}
