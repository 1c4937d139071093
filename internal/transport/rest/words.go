package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/wordlookup/internal/domain"
	"github.com/heartmarshall/wordlookup/internal/service/dictionary"
)

// dictionaryService defines the minimal interface needed by WordHandler.
type dictionaryService interface {
	Lookup(ctx context.Context, word string) (*domain.WordItem, error)
	RecentLookups(ctx context.Context, limit int) ([]domain.LookupRecord, error)
}

// WordHandler serves word lookup and history endpoints.
type WordHandler struct {
	svc dictionaryService
	log *slog.Logger
}

// NewWordHandler creates a WordHandler.
func NewWordHandler(svc dictionaryService, logger *slog.Logger) *WordHandler {
	return &WordHandler{svc: svc, log: logger.With("handler", "words")}
}

type historyRecordResponse struct {
	ID           string    `json:"id"`
	Word         string    `json:"word"`
	Phonetic     string    `json:"phonetic"`
	MeaningCount int       `json:"meaningCount"`
	LookedUpAt   time.Time `json:"lookedUpAt"`
}

type historyResponse struct {
	Items []historyRecordResponse `json:"items"`
}

// Get handles GET /api/v1/words/{word}.
func (h *WordHandler) Get(w http.ResponseWriter, r *http.Request) {
	word := r.PathValue("word")

	item, err := h.svc.Lookup(r.Context(), word)
	if err != nil {
		handleError(r.Context(), h.log, w, err, dictionary.ErrorMessage(word, err))
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// History handles GET /api/v1/history?limit=N.
func (h *WordHandler) History(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = n
	}

	records, err := h.svc.RecentLookups(r.Context(), limit)
	if err != nil {
		if errors.Is(err, dictionary.ErrHistoryDisabled) {
			writeError(w, http.StatusServiceUnavailable, "lookup history is disabled")
			return
		}
		handleError(r.Context(), h.log, w, err, "internal error")
		return
	}

	resp := historyResponse{Items: make([]historyRecordResponse, len(records))}
	for i, rec := range records {
		resp.Items[i] = historyRecordResponse{
			ID:           rec.ID.String(),
			Word:         rec.Word,
			Phonetic:     rec.Phonetic,
			MeaningCount: rec.MeaningCount,
			LookedUpAt:   rec.LookedUpAt,
		}
	}

	writeJSON(w, http.StatusOK, resp)
}
