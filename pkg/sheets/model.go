package sheets

import "context"

// Worksheet is the subset of spreadsheet operations the board needs:
// read every row, locate a value in one column, overwrite one cell.
type Worksheet interface {
	GetAllRows(ctx context.Context) ([][]interface{}, error)
	FindInColumn(ctx context.Context, col ColIdx, value string) (int, error)
	UpdateCell(ctx context.Context, row int, col ColIdx, value interface{}) error
}

type ColIdx int

// 1-based, matching the sheet layout the board depends on.
// Do not reorder these: column H (Estado) is the only cell ever written,
// and the ticket id is always looked up in column A.
const (
	ColumnID ColIdx = iota + 1
	ColumnTitle
	ColumnDescription
	ColumnRequester
	ColumnContact
	ColumnPriority
	ColumnCreated
	ColumnStage
)

const lastColumn = ColumnStage

// a1 converts a 1-based column index to its A1-notation letter.
// Eight columns means single letters are always enough.
func (c ColIdx) a1() string {
	return string(rune('A' + int(c) - 1))
}
