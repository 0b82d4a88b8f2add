package session

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/lianhua/qinna-quiz/internal/logging"
	httperrors "github.com/lianhua/qinna-quiz/pkg/http/errors"
)

// HTTPHandlers provides REST endpoints that drive the engine.
type HTTPHandlers struct {
	engine *Engine
	logger zerolog.Logger
}

// NewHTTPHandlers creates HTTP handlers for quiz endpoints.
func NewHTTPHandlers(engine *Engine, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		engine: engine,
		logger: logger.With().Str("component", "quiz_http").Logger(),
	}
}

// Register mounts the quiz endpoints.
func (h *HTTPHandlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/variants", h.ListVariants)
	mux.HandleFunc("GET /v1/quiz", h.GetQuiz)
	mux.HandleFunc("POST /v1/quiz/variant", h.ChooseVariant)
	mux.HandleFunc("PUT /v1/quiz/answer", h.UpdateAnswer)
	mux.HandleFunc("POST /v1/quiz/submit", h.action(h.engine.Submit))
	mux.HandleFunc("POST /v1/quiz/skip", h.action(h.engine.Skip))
	mux.HandleFunc("POST /v1/quiz/next", h.action(h.engine.Advance))
	mux.HandleFunc("POST /v1/quiz/reset", h.action(h.engine.Reset))
}

// VariantResponse describes one entry of the variant menu.
type VariantResponse struct {
	Name          string `json:"name"`
	Label         string `json:"label"`
	QuestionCount int    `json:"question_count"`
}

// ChooseVariantRequest is the body of POST /v1/quiz/variant.
type ChooseVariantRequest struct {
	Variant string `json:"variant"`
}

// UpdateAnswerRequest is the body of PUT /v1/quiz/answer.
type UpdateAnswerRequest struct {
	Answer string `json:"answer"`
}

// ListVariants handles GET /v1/variants
func (h *HTTPHandlers) ListVariants(w http.ResponseWriter, r *http.Request) {
	variants := h.engine.Variants()
	resp := make([]VariantResponse, len(variants))
	for i, v := range variants {
		resp[i] = VariantResponse{
			Name:          v.Name,
			Label:         v.Label,
			QuestionCount: len(h.engine.bank.EligibleFor(v)),
		}
	}
	h.respondJSON(w, http.StatusOK, resp)
}

// GetQuiz handles GET /v1/quiz
func (h *HTTPHandlers) GetQuiz(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.engine.Snapshot())
}

// ChooseVariant handles POST /v1/quiz/variant
func (h *HTTPHandlers) ChooseVariant(w http.ResponseWriter, r *http.Request) {
	var req ChooseVariantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}
	if req.Variant == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "variant is required", "variant")
		return
	}

	snap, err := h.engine.ChooseVariant(req.Variant)
	if err != nil {
		logger := logging.FromContext(r.Context())
		logger.Warn().Err(err).Str("variant", req.Variant).Msg("quiz start rejected")
		var emptyErr *EmptyBankError
		if !errors.As(err, &emptyErr) {
			httperrors.RespondInternalError(w, err.Error())
			return
		}
		code, message := h.startFailure(req.Variant)
		httperrors.RespondUnprocessable(w, code, message, map[string]interface{}{"variant": emptyErr.Variant})
		return
	}
	h.respondJSON(w, http.StatusOK, snap)
}

// UpdateAnswer handles PUT /v1/quiz/answer
func (h *HTTPHandlers) UpdateAnswer(w http.ResponseWriter, r *http.Request) {
	var req UpdateAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}
	h.respondJSON(w, http.StatusOK, h.engine.UpdatePendingAnswer(req.Answer))
}

// action adapts a no-argument engine action. Ignored actions still answer
// 200 with the unchanged snapshot.
func (h *HTTPHandlers) action(fn func() Snapshot) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.respondJSON(w, http.StatusOK, fn())
	}
}

// startFailure picks the error code for a rejected variant.
func (h *HTTPHandlers) startFailure(name string) (code, message string) {
	if _, ok := h.engine.Variants().Lookup(name); !ok {
		return httperrors.ErrCodeUnknownVariant, h.engine.messages.CannotStart
	}
	return httperrors.ErrCodeQuizStartFailed, h.engine.messages.CannotStart
}

func (h *HTTPHandlers) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Warn().Err(err).Msg("encode response")
	}
}
