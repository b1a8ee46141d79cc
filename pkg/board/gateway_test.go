package board

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tablero/pkg/sheets"
)

type updateCall struct {
	Row   int
	Col   sheets.ColIdx
	Value interface{}
}

// fakeWorksheet behaves like a small in-memory sheet, header row
// included, with 1-based row indexing like the real API.
type fakeWorksheet struct {
	rows        [][]interface{}
	getErr      error
	updateErr   error
	updateCalls []updateCall
}

func (f *fakeWorksheet) GetAllRows(ctx context.Context) ([][]interface{}, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.rows, nil
}

func (f *fakeWorksheet) FindInColumn(ctx context.Context, col sheets.ColIdx, value string) (int, error) {
	if f.getErr != nil {
		return 0, f.getErr
	}
	for i, row := range f.rows {
		if len(row) >= int(col) && fmt.Sprint(row[col-1]) == value {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", sheets.ErrCellNotFound, value)
}

func (f *fakeWorksheet) UpdateCell(ctx context.Context, row int, col sheets.ColIdx, value interface{}) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updateCalls = append(f.updateCalls, updateCall{Row: row, Col: col, Value: value})
	f.rows[row-1][col-1] = value
	return nil
}

func ticketSheet() *fakeWorksheet {
	return &fakeWorksheet{
		rows: [][]interface{}{
			{"ID Ticket", "Título", "Descripción", "Solicitante", "Contacto", "Prioridad", "Fecha Creacion", "Estado"},
			{float64(1), "Portal de pagos", "", "Ana", "ana@example.com", "Alta", "2024-07-01 13:45:00", "Enfocar"},
			{"2", "App de turnos", "Reserva de turnos", "Luis", "", "Media", "no es una fecha", "Idear"},
		},
	}
}

func TestFetchAll(t *testing.T) {
	g := NewGateway(ticketSheet())

	records, err := g.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "1", records[0].ID, "numeric id must come back as text")
	assert.Equal(t, "Enfocar", records[0].Stage)
	assert.Equal(t, "Portal de pagos", records[0].Title)
	assert.Equal(t, "Ana", records[0].Requester)
	assert.Equal(t, "Alta", records[0].Priority)
	assert.False(t, records[0].CreatedAt.IsZero())

	assert.Equal(t, "2", records[1].ID)
	assert.Equal(t, "no es una fecha", records[1].Created, "unparseable date keeps the raw text")
	assert.True(t, records[1].CreatedAt.IsZero())
}

func TestFetchAllShortRowsDefaultToEmpty(t *testing.T) {
	ws := &fakeWorksheet{
		rows: [][]interface{}{
			{"ID Ticket", "Título", "Descripción", "Solicitante", "Contacto", "Prioridad", "Fecha Creacion", "Estado"},
			{"3", "Sólo el título"}, // trailing empty cells are not returned by the API
		},
	}
	g := NewGateway(ws)

	records, err := g.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "", records[0].Stage, "absent stage matches no board column")
	assert.Equal(t, "", records[0].Requester)
}

func TestFetchAllEmptySheet(t *testing.T) {
	g := NewGateway(&fakeWorksheet{})
	records, err := g.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFetchAllWorksheetMissing(t *testing.T) {
	g := NewGateway(&fakeWorksheet{getErr: sheets.ErrWorksheetNotFound})
	_, err := g.FetchAll(context.Background())
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestUpdateStageWritesExactlyOneCell(t *testing.T) {
	ws := ticketSheet()
	g := NewGateway(ws)

	err := g.UpdateStage(context.Background(), "1", "Pilotear")
	require.NoError(t, err)

	require.Len(t, ws.updateCalls, 1)
	call := ws.updateCalls[0]
	assert.Equal(t, 2, call.Row, "id 1 lives on sheet row 2, below the header")
	assert.Equal(t, sheets.ColumnStage, call.Col)
	assert.Equal(t, "Pilotear", call.Value)
}

func TestUpdateStageRoundTrip(t *testing.T) {
	ws := ticketSheet()
	g := NewGateway(ws)

	require.NoError(t, g.UpdateStage(context.Background(), "1", "Pilotear"))

	records, err := g.FetchAll(context.Background())
	require.NoError(t, err)
	for _, rec := range records {
		if rec.ID == "1" {
			assert.Equal(t, "Pilotear", rec.Stage)
			return
		}
	}
	t.Fatal("record 1 missing after update")
}

func TestUpdateStageNotFound(t *testing.T) {
	ws := ticketSheet()
	g := NewGateway(ws)

	err := g.UpdateStage(context.Background(), "does-not-exist", "Idear")
	assert.ErrorIs(t, err, ErrRecordNotFound)
	assert.Empty(t, ws.updateCalls, "a failed locate must not write")
}

func TestUpdateStageFirstDuplicateWins(t *testing.T) {
	ws := ticketSheet()
	ws.rows = append(ws.rows, []interface{}{"1", "Duplicado", "", "", "", "", "", "Escalar"})
	g := NewGateway(ws)

	require.NoError(t, g.UpdateStage(context.Background(), "1", "Detectar"))

	require.Len(t, ws.updateCalls, 1)
	assert.Equal(t, 2, ws.updateCalls[0].Row, "only the first matching row is reachable")
}

func TestUpdateStageWriteError(t *testing.T) {
	ws := ticketSheet()
	ws.updateErr = errors.New("quota exceeded")
	g := NewGateway(ws)

	err := g.UpdateStage(context.Background(), "1", "Escalar")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrRecordNotFound)
}
