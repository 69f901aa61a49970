package ingredient

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// ImportCSV upserts categories and ingredients from a two-column CSV
// (ingredient name, category name). The first row is treated as a header.
// Malformed rows are counted and reported, never fatal to the run.
func (s *Service) ImportCSV(ctx context.Context, r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	result := &ImportResult{}
	rowNum := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.SkippedRows++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum+1, err))
			rowNum++
			continue
		}
		rowNum++
		if rowNum == 1 {
			// header
			continue
		}

		if len(record) < 2 {
			result.SkippedRows++
			continue
		}
		name := strings.TrimSpace(record[0])
		categoryName := strings.TrimSpace(record[1])
		if name == "" || categoryName == "" {
			result.SkippedRows++
			continue
		}

		categoryID, catCreated, err := s.repo.UpsertCategory(ctx, categoryName)
		if err != nil {
			return nil, fmt.Errorf("row %d: upsert category %q: %w", rowNum, categoryName, err)
		}
		if catCreated {
			result.CategoriesCreated++
		}

		created, err := s.repo.UpsertIngredient(ctx, name, categoryID)
		if err != nil {
			return nil, fmt.Errorf("row %d: upsert ingredient %q: %w", rowNum, name, err)
		}
		if created {
			result.IngredientsCreated++
		} else {
			result.IngredientsUpdated++
		}
	}

	return result, nil
}
