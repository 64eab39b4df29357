package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	service "github.com/okian/introscore/internal/app"
	"github.com/okian/introscore/internal/domain/scoring"
	"github.com/okian/introscore/pkg/logger"
)

const (
	msgNoTranscript = "No transcript text provided."
	msgInvalidJSON  = "Request body must be a JSON object with a transcript field."
	msgBodyTooLarge = "Request body is too large."
	msgOverloaded   = "Scoring backends are busy, please retry shortly."
)

// scoreRequest mirrors the OpenAPI schema for POST /score.
type scoreRequest struct {
	Transcript string `json:"transcript"`
}

// ScoreHandler handles transcript scoring requests.
type ScoreHandler struct {
	deps         Dependencies
	maxBodyBytes int64
	logger       logger.Logger
}

// NewScoreHandler creates a new score handler.
func NewScoreHandler(deps Dependencies, maxBodyBytes int64, l logger.Logger) *ScoreHandler {
	return &ScoreHandler{deps: deps, maxBodyBytes: maxBodyBytes, logger: l}
}

// HandleScore handles POST /score requests.
func (h *ScoreHandler) HandleScore(w http.ResponseWriter, r *http.Request) {
	const op = "api.score"
	ctx := r.Context()
	log := h.logger.With(logger.String("request_id", RequestIDFromContext(ctx)))

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "")
		return
	}

	var req scoreRequest
	body := http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
			return
		}
		log.Debug(ctx, "invalid score request", logger.Error(WrapKind(op, ErrBadRequest, err)))
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}
	if strings.TrimSpace(req.Transcript) == "" {
		log.Debug(ctx, "invalid score request", logger.Error(NewKind(op, ErrBadRequest)))
		writeError(w, http.StatusBadRequest, msgNoTranscript)
		return
	}

	report, err := h.deps.Score(ctx, req.Transcript)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, report)
	case errors.Is(err, scoring.ErrInputTooShort):
		writeError(w, http.StatusBadRequest, tooShortMessage(h.deps.MinWords()))
	case errors.Is(err, service.ErrOverloaded):
		log.Warn(ctx, "score request shed", logger.Error(WrapKind(op, ErrOverloaded, err)))
		writeError(w, http.StatusServiceUnavailable, msgOverloaded)
	default:
		log.Error(ctx, "an unexpected error occurred during scoring", logger.Error(WrapKind(op, ErrInternal, err)))
		writeError(w, http.StatusInternalServerError, "Internal Server Error: "+err.Error())
	}
}

func tooShortMessage(minWords int) string {
	return fmt.Sprintf("Transcript is too short. Please provide at least %d words for a meaningful analysis.", minWords)
}
