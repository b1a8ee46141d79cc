package board

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"tablero/pkg/sheets"
)

// Gateway adapts a worksheet into a row-oriented record store: fetch
// every record, or rewrite the stage cell of one record.
type Gateway struct {
	ws sheets.Worksheet
}

func NewGateway(ws sheets.Worksheet) *Gateway {
	return &Gateway{ws: ws}
}

// FetchAll reads the whole worksheet and maps header-named columns onto
// records. Missing recognized columns default to the empty string; a
// row with an empty id cell is skipped, it could never be moved anyway.
func (g *Gateway) FetchAll(ctx context.Context) ([]Record, error) {
	rows, err := g.ws.GetAllRows(ctx)
	if err != nil {
		if errors.Is(err, sheets.ErrWorksheetNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrStoreUnavailable, err)
		}
		return nil, fmt.Errorf("fetch records: %w", err)
	}
	if len(rows) == 0 {
		return []Record{}, nil
	}

	headers := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		headers[strings.TrimSpace(fmt.Sprint(h))] = i
	}

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := recordFromRow(headers, row)
		if rec.ID == "" {
			continue
		}
		records = append(records, rec)
	}
	log.Debugf("Fetched %d records from the sheet", len(records))
	return records, nil
}

// UpdateStage locates the first row whose id column equals id and
// overwrites its stage cell. If the sheet holds duplicate ids only the
// first is ever reachable; that mirrors the sheet-side find semantics
// and is deliberate.
func (g *Gateway) UpdateStage(ctx context.Context, id, newStage string) error {
	row, err := g.ws.FindInColumn(ctx, sheets.ColumnID, id)
	if err != nil {
		if errors.Is(err, sheets.ErrCellNotFound) {
			return fmt.Errorf("%w: ticket %q", ErrRecordNotFound, id)
		}
		if errors.Is(err, sheets.ErrWorksheetNotFound) {
			return fmt.Errorf("%w: %s", ErrStoreUnavailable, err)
		}
		return fmt.Errorf("locate ticket %q: %w", id, err)
	}
	if err := g.ws.UpdateCell(ctx, row, sheets.ColumnStage, newStage); err != nil {
		return fmt.Errorf("update ticket %q: %w", id, err)
	}
	log.Infof("Ticket %s moved to %s (row %d)", id, newStage, row)
	return nil
}
