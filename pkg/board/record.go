package board

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Record is one kanban card, mapped from one worksheet row. Only ID and
// Stage carry meaning for the board; the rest is display data.
type Record struct {
	ID          string    `json:"id"`
	Stage       string    `json:"stage"`
	Title       string    `json:"title"`
	Requester   string    `json:"requester"`
	Priority    string    `json:"priority"`
	Description string    `json:"description,omitempty"`
	Contact     string    `json:"contact,omitempty"`
	Created     string    `json:"created"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}

// Snapshot holds every record from one fetch plus the capture time.
// It is never patched in place; a refresh replaces it wholesale.
type Snapshot struct {
	Records   []Record  `json:"records"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// DefaultStages is the board's phase progression, left to right.
// Order matters only for column ordering; any stage is reachable from
// any other in a single move.
var DefaultStages = []string{
	"Enfocar",
	"Detectar",
	"Idear",
	"Diseñar MVP",
	"Pilotear",
	"Escalar",
}

// Header names as they appear in row 1 of the worksheet. These are an
// external contract with the sheet; renaming a column there breaks the
// mapping here.
const (
	headerID          = "ID Ticket"
	headerTitle       = "Título"
	headerDescription = "Descripción"
	headerRequester   = "Solicitante"
	headerContact     = "Contacto"
	headerPriority    = "Prioridad"
	headerCreated     = "Fecha Creacion"
	headerStage       = "Estado"
)

// GroupByStage buckets the snapshot's records under each named stage,
// preserving snapshot order. A record whose stage matches no entry in
// stages lands in no bucket at all: garbage or legacy stage data makes
// a card vanish from the board without warning.
func GroupByStage(snap *Snapshot, stages []string) map[string][]Record {
	grouped := make(map[string][]Record, len(stages))
	for _, stage := range stages {
		grouped[stage] = []Record{}
	}
	if snap == nil {
		return grouped
	}
	for _, rec := range snap.Records {
		if _, ok := grouped[rec.Stage]; ok {
			grouped[rec.Stage] = append(grouped[rec.Stage], rec)
		}
	}
	return grouped
}

func recordFromRow(headers map[string]int, row []interface{}) Record {
	get := func(name string) string {
		i, ok := headers[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(fmt.Sprint(row[i]))
	}

	created := get(headerCreated)
	return Record{
		ID:          normalizeID(cell(headers, row, headerID)),
		Stage:       get(headerStage),
		Title:       get(headerTitle),
		Requester:   get(headerRequester),
		Priority:    get(headerPriority),
		Description: get(headerDescription),
		Contact:     get(headerContact),
		Created:     created,
		CreatedAt:   parseCreated(created),
	}
}

func cell(headers map[string]int, row []interface{}, name string) interface{} {
	i, ok := headers[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// normalizeID coerces the id cell to a canonical string so that later
// exact-match lookups behave the same whether the sheet stored the id
// as a number or as text.
func normalizeID(v interface{}) string {
	switch id := v.(type) {
	case string:
		return strings.TrimSpace(id)
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	case int:
		return strconv.Itoa(id)
	default:
		return strings.TrimSpace(fmt.Sprint(id))
	}
}

var createdLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02/01/2006 15:04",
	"02/01/2006",
}

// parseCreated attempts the known creation-date layouts and returns the
// zero time when none fits. Callers fall back to the raw cell text for
// display; no canonical format is guessed.
func parseCreated(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range createdLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
