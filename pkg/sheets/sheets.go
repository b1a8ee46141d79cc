package sheets

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	log "github.com/sirupsen/logrus"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

var (
	// ErrCellNotFound is returned by FindInColumn when no cell in the
	// column holds the requested value.
	ErrCellNotFound = errors.New("cell not found")
	// ErrWorksheetNotFound is returned when the spreadsheet or the named
	// worksheet cannot be resolved at all.
	ErrWorksheetNotFound = errors.New("worksheet not found")
)

type SheetClient struct {
	service       *sheets.Service
	spreadsheetID string
	sheetName     string
}

func NewSheetClient(ctx context.Context, jsonPath, spreadsheetID, sheetName string) (*SheetClient, error) {
	srv, err := sheets.NewService(ctx, option.WithCredentialsFile(jsonPath))
	if err != nil {
		return nil, fmt.Errorf("create Sheets client: %w", err)
	}
	return &SheetClient{
		service:       srv,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

// GetAllRows reads every populated row of the worksheet, header row
// included, across columns A to H.
func (s *SheetClient) GetAllRows(ctx context.Context) ([][]interface{}, error) {
	rng := fmt.Sprintf("%s!A:%s", s.sheetName, lastColumn.a1())
	resp, err := s.getValues(ctx, rng)
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

// FindInColumn scans a single column top-to-bottom and returns the
// 1-based row index of the first cell whose value equals value.
// Duplicates are invisible here: only the first match is reachable.
func (s *SheetClient) FindInColumn(ctx context.Context, col ColIdx, value string) (int, error) {
	rng := fmt.Sprintf("%s!%s:%s", s.sheetName, col.a1(), col.a1())
	resp, err := s.getValues(ctx, rng)
	if err != nil {
		return 0, err
	}
	for i, row := range resp.Values {
		if len(row) == 0 {
			continue
		}
		if fmt.Sprint(row[0]) == value {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("%w: %q in column %s", ErrCellNotFound, value, col.a1())
}

// UpdateCell overwrites a single cell. row is 1-based.
func (s *SheetClient) UpdateCell(ctx context.Context, row int, col ColIdx, value interface{}) error {
	rng := fmt.Sprintf("%s!%s%d", s.sheetName, col.a1(), row)
	var err error
	maxRetries := 15
	maxBackoff := 60 * time.Second
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err = s.service.Spreadsheets.Values.Update(
			s.spreadsheetID,
			rng,
			&sheets.ValueRange{Values: [][]interface{}{{value}}},
		).ValueInputOption("USER_ENTERED").Context(ctx).Do()
		if err == nil {
			return nil
		}
		if gErr, ok := err.(*googleapi.Error); ok {
			if gErr.Code == 404 {
				return fmt.Errorf("%w: %s", ErrWorksheetNotFound, rng)
			}
			if gErr.Code == 429 || gErr.Code == 403 {
				backoff := time.Duration(math.Pow(2, float64(attempt))) * time.Second
				if backoff > maxBackoff {
					backoff = maxBackoff
				}
				log.Warnf("Rate limited by Google Sheets API, retrying in %v...", backoff)
				time.Sleep(backoff)
				continue
			}
		}
		return fmt.Errorf("update cell %s: %w", rng, err)
	}
	return fmt.Errorf("update cell %s after %d retries: %w", rng, maxRetries, err)
}

func (s *SheetClient) getValues(ctx context.Context, rng string) (*sheets.ValueRange, error) {
	var resp *sheets.ValueRange
	var err error
	maxRetries := 15
	maxBackoff := 60 * time.Second
	for attempt := 0; attempt < maxRetries; attempt++ {
		resp, err = s.service.Spreadsheets.Values.Get(
			s.spreadsheetID,
			rng,
		).Context(ctx).Do()
		if err == nil {
			return resp, nil
		}
		if gErr, ok := err.(*googleapi.Error); ok {
			if gErr.Code == 404 {
				return nil, fmt.Errorf("%w: %s", ErrWorksheetNotFound, rng)
			}
			if gErr.Code == 429 || gErr.Code == 403 {
				backoff := time.Duration(math.Pow(2, float64(attempt))) * time.Second
				if backoff > maxBackoff {
					backoff = maxBackoff
				}
				log.Warnf("Rate limited by Google Sheets API, retrying in %v...", backoff)
				time.Sleep(backoff)
				continue
			}
		}
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	return nil, fmt.Errorf("read %s after %d retries: %w", rng, maxRetries, err)
}
