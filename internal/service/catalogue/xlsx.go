package catalogue

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/heartmarshall/wordpractice/internal/domain"
)

const xlsxSheet = "Sheet1"

// xlsxColumns is the header row of exported workbooks. Imports match
// columns by these names, case-insensitively, in any order.
var xlsxColumns = []string{
	"word",
	"definition",
	"score",
	"streak",
	"totalAttempts",
	"correctFirstTryCount",
	"mistakes",
	"dateAdded",
}

// ExportXLSX writes the caller's catalogue as a one-sheet workbook.
func (s *Service) ExportXLSX(ctx context.Context, w io.Writer) error {
	cat, err := s.snapshot(ctx)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	header := make([]any, len(xlsxColumns))
	for i, c := range xlsxColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(xlsxSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, e := range cat {
		mistakes, err := json.Marshal(e.Mistakes)
		if err != nil {
			return fmt.Errorf("encode mistakes of %q: %w", e.Word, err)
		}
		row := []any{
			e.Word,
			e.Definition,
			e.Score,
			e.Streak,
			e.TotalAttempts,
			e.CorrectFirstTryCount,
			string(mistakes),
			e.DateAdded.UTC().Format(time.RFC3339),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(xlsxSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// ImportXLSX replaces the caller's catalogue with the rows of the first
// sheet of the workbook in r. The first row must name the columns; only
// "word" is required. Validation matches ImportJSON.
func (s *Service) ImportXLSX(ctx context.Context, r io.Reader) (*ImportResult, error) {
	cat, err := s.decodeXLSX(r)
	if err != nil {
		return nil, err
	}
	return s.replace(ctx, cat, "xlsx")
}

func (s *Service) decodeXLSX(r io.Reader) (domain.Catalogue, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, domain.NewValidationError("file", "not a readable XLSX workbook")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, domain.NewValidationError("file", "workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) == 0 {
		return domain.Catalogue{}, nil
	}

	cols := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := cols["word"]; !ok {
		return nil, domain.NewValidationError("header", `missing "word" column`)
	}

	cell := func(row []string, name string) string {
		i, ok := cols[strings.ToLower(name)]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var (
		records []map[string]any
		errs    domain.FieldErrors
	)
	for n, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		line := n + 2
		word := cell(row, "word")
		if word == "" {
			errs.Add(fmt.Sprintf("rows[%d].word", line), "required")
			continue
		}

		rec := map[string]any{
			"word":       word,
			"definition": cell(row, "definition"),
		}
		for _, name := range []string{"score", "streak", "totalAttempts", "correctFirstTryCount"} {
			if v, err := strconv.ParseFloat(cell(row, name), 64); err == nil {
				rec[name] = v
			}
		}
		if raw := cell(row, "mistakes"); raw != "" {
			var m map[string]any
			if err := json.Unmarshal([]byte(raw), &m); err != nil {
				errs.Add(fmt.Sprintf("rows[%d].mistakes", line), "must be a JSON object")
				continue
			}
			rec["mistakes"] = m
		}
		if d := cell(row, "dateAdded"); d != "" {
			rec["dateAdded"] = d
		}
		records = append(records, rec)
	}
	if len(errs) > 0 {
		return nil, domain.NewValidationErrors(errs)
	}

	return buildCatalogue(records, s.now())
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
