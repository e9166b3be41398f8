package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type HeaderMode string

const (
	HeaderAuto    HeaderMode = "auto"
	HeaderPresent HeaderMode = "true"
	HeaderAbsent  HeaderMode = "false"
)

func ParseHeaderMode(s string) (HeaderMode, error) {
	switch mode := HeaderMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case HeaderAuto, HeaderPresent, HeaderAbsent:
		return mode, nil
	case "":
		return HeaderAuto, nil
	default:
		return "", fmt.Errorf("invalid header mode %q", s)
	}
}

// ParseCSV reads one sample per record: every column but the last is a
// numeric feature, the last column is the label. In HeaderAuto mode the
// first record is a header when none of its feature columns is a number.
func ParseCSV(r io.Reader, header HeaderMode) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}
	if len(records[0]) < 2 {
		return nil, fmt.Errorf("csv needs at least one feature column and a label column, got %d columns", len(records[0]))
	}

	var columns []string
	switch header {
	case HeaderPresent:
		columns, records = records[0][:len(records[0])-1], records[1:]
	case HeaderAuto:
		if isHeader(records[0]) {
			columns, records = records[0][:len(records[0])-1], records[1:]
		}
	case HeaderAbsent:
	default:
		return nil, fmt.Errorf("invalid header mode %q", header)
	}

	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}

	features := make([][]float64, len(records))
	labels := make([]string, len(records))
	for i, record := range records {
		if row, err := parseFeatures(record); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		} else {
			features[i] = row
		}
		labels[i] = strings.TrimSpace(record[len(record)-1])
		if labels[i] == "" {
			return nil, fmt.Errorf("row %d: empty label", i+1)
		}
	}

	return New(columns, features, labels)
}

// isHeader reports whether no feature column of record is a number. A record
// mixing numbers and text is a bad data row, not a header.
func isHeader(record []string) bool {
	for _, value := range record[:len(record)-1] {
		if _, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			return false
		}
	}
	return true
}

func parseFeatures(record []string) ([]float64, error) {
	row := make([]float64, len(record)-1)
	for j, value := range record[:len(record)-1] {
		if v, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err != nil {
			var numErr *strconv.NumError
			if errors.As(err, &numErr) {
				err = numErr.Err
			}
			return nil, fmt.Errorf("column %d: invalid number %q: %w", j, value, err)
		} else {
			row[j] = v
		}
	}
	return row, nil
}
