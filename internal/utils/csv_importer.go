package utils

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ArowuTest/point-balance-service/internal/models"
	"github.com/ArowuTest/point-balance-service/internal/repositories"
)

// ImportResult summarises one CSV import run
type ImportResult struct {
	TotalRows int      `json:"totalRows"`
	Imported  int      `json:"imported"`
	Errors    []string `json:"errors"`
}

// PointCSVImporter loads point records from CSV files into a repository
type PointCSVImporter struct {
	pointRepo repositories.PointRecordRepository
	now       func() time.Time
}

// NewPointCSVImporter creates a new PointCSVImporter
func NewPointCSVImporter(pointRepo repositories.PointRecordRepository) *PointCSVImporter {
	return &PointCSVImporter{
		pointRepo: pointRepo,
		now:       time.Now,
	}
}

// ImportFile imports the CSV file at filePath
func (i *PointCSVImporter) ImportFile(ctx context.Context, filePath string) (*ImportResult, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return i.Import(ctx, file)
}

// Import reads rows of id, point and an optional refresh time. Rows that fail to
// parse are recorded in the result and skipped; a store failure aborts the import.
func (i *PointCSVImporter) Import(ctx context.Context, r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	idIdx := findColumnIndex(header, []string{"id", "userId", "user_id"})
	pointIdx := findColumnIndex(header, []string{"point", "points", "balance"})
	timeIdx := findColumnIndex(header, []string{"refreshTime", "refresh_time", "updatedAt"})

	if idIdx == -1 || pointIdx == -1 {
		return nil, errors.New("id and point columns are required")
	}

	result := &ImportResult{Errors: []string{}}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		result.TotalRows++
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", result.TotalRows, err))
			continue
		}

		record, err := i.parseRow(row, idIdx, pointIdx, timeIdx)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", result.TotalRows, err))
			continue
		}

		if err := i.pointRepo.Save(ctx, record); err != nil {
			return result, fmt.Errorf("row %d: %w", result.TotalRows, err)
		}
		result.Imported++
	}

	return result, nil
}

func (i *PointCSVImporter) parseRow(row []string, idIdx, pointIdx, timeIdx int) (*models.PointRecord, error) {
	if idIdx >= len(row) || pointIdx >= len(row) {
		return nil, errors.New("missing columns")
	}

	id := strings.TrimSpace(row[idIdx])
	if id == "" {
		return nil, errors.New("no id found")
	}

	point, err := strconv.ParseInt(strings.TrimSpace(row[pointIdx]), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid point: %s", row[pointIdx])
	}

	refreshTime := i.now()
	if timeIdx != -1 && timeIdx < len(row) && strings.TrimSpace(row[timeIdx]) != "" {
		refreshTime, err = ParseTime(row[timeIdx])
		if err != nil {
			return nil, err
		}
	}

	return models.NewPointRecord(id, point, refreshTime), nil
}

// findColumnIndex finds the index of a column by possible names
func findColumnIndex(header []string, possibleNames []string) int {
	for i, h := range header {
		h = strings.TrimSpace(h)
		for _, name := range possibleNames {
			if strings.EqualFold(name, h) {
				return i
			}
		}
	}
	return -1
}

// ParseTime parses a timestamp in one of the accepted layouts. Layouts without a
// zone are read as UTC.
func ParseTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)

	layouts := []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}

	for _, layout := range layouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse time: %s", value)
}
