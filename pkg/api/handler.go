package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"tablero/pkg/board"
)

// Mover is the transition half of the board core; the handler only ever
// asks it to move one ticket per request.
type Mover interface {
	Move(ctx context.Context, id, from, to string) error
}

type Handler struct {
	cache  board.SnapshotCache
	mover  Mover
	stages []string
}

func NewHandler(cache board.SnapshotCache, mover Mover, stages []string) *Handler {
	return &Handler{
		cache:  cache,
		mover:  mover,
		stages: stages,
	}
}

// getBoard renders the kanban page: one column per stage, one card per
// ticket, each card carrying its own move form. Flash messages arrive
// through the msg/err query params after a redirect.
func (h *Handler) getBoard(w http.ResponseWriter, r *http.Request) {
	page := boardPage{
		Title:   "Tablero Kanban de Tickets",
		Message: r.URL.Query().Get("msg"),
		Error:   r.URL.Query().Get("err"),
		Stages:  h.stages,
	}

	snap, err := h.cache.Get(r.Context())
	if err != nil {
		log.Errorf("Failed to load the board: %v", err)
		page.Error = userMessage(err, "")
	} else {
		grouped := board.GroupByStage(snap, h.stages)
		for _, stage := range h.stages {
			page.Columns = append(page.Columns, boardColumn{
				Stage: stage,
				Cards: grouped[stage],
			})
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := boardTemplate.Execute(w, page); err != nil {
		log.Errorf("Failed to render the board: %v", err)
	}
}

// postMove runs one transition and bounces back to the board with a
// flash message, so a reload never replays the write.
func (h *Handler) postMove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		h.redirectErr(w, r, "Solicitud inválida.")
		return
	}
	from := r.FormValue("from")
	to := r.FormValue("stage")

	if !h.knownStage(to) {
		h.redirectErr(w, r, fmt.Sprintf("Etapa desconocida: %q.", to))
		return
	}

	if err := h.mover.Move(r.Context(), id, from, to); err != nil {
		log.Errorf("Failed to move ticket %s to %s: %v", id, to, err)
		h.redirectErr(w, r, userMessage(err, id))
		return
	}

	if to == from {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	msg := fmt.Sprintf("Ticket #%s movido a %s!", id, to)
	http.Redirect(w, r, "/?msg="+url.QueryEscape(msg), http.StatusSeeOther)
}

func (h *Handler) getTickets(w http.ResponseWriter, r *http.Request) {
	snap, err := h.cache.Get(r.Context())
	if err != nil {
		log.Errorf("Failed to load tickets: %v", err)
		body, _ := json.Marshal(map[string]string{"error": userMessage(err, "")})
		sendResponse(w, http.StatusBadGateway, body)
		return
	}

	body, err := json.Marshal(struct {
		Stages    []string                  `json:"stages"`
		Tickets   map[string][]board.Record `json:"tickets"`
		FetchedAt string                    `json:"fetchedAt"`
	}{
		Stages:    h.stages,
		Tickets:   board.GroupByStage(snap, h.stages),
		FetchedAt: snap.FetchedAt.UTC().Format("2006-01-02T15:04:05Z"),
	})
	if err != nil {
		sendResponse(w, http.StatusInternalServerError, []byte(`{}`))
		return
	}
	sendResponse(w, http.StatusOK, body)
}

func (h *Handler) getHealth(w http.ResponseWriter, r *http.Request) {
	sendResponse(w, http.StatusOK, []byte(`{"status":"ok"}`))
}

func (h *Handler) knownStage(stage string) bool {
	for _, s := range h.stages {
		if s == stage {
			return true
		}
	}
	return false
}

func (h *Handler) redirectErr(w http.ResponseWriter, r *http.Request, msg string) {
	http.Redirect(w, r, "/?err="+url.QueryEscape(msg), http.StatusSeeOther)
}

// userMessage translates a core error into the message shown on the
// board. Nothing is retried and nothing crashes; this is the only
// failure channel.
func userMessage(err error, id string) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, board.ErrRecordNotFound):
		return fmt.Sprintf("Error Crítico: No se pudo encontrar la fila con el ID de Ticket %q en la columna A.", id)
	case errors.Is(err, board.ErrStoreUnavailable):
		return "No se pudo acceder a la hoja de cálculo. Verifica el nombre y los permisos."
	default:
		return "Ocurrió un error al acceder a la hoja de cálculo."
	}
}

func sendResponse(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
