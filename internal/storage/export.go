package storage

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/worksheet-lab/ruiji/internal/models"
	"github.com/worksheet-lab/ruiji/internal/sections"
)

// SheetRow is the flattened Parquet layout of a saved sheet
type SheetRow struct {
	ID              string `parquet:"id"`
	Title           string `parquet:"title"`
	StudentName     string `parquet:"student_name"`
	InstructorName  string `parquet:"instructor_name"`
	Date            string `parquet:"date"`
	CreatedAtMillis int64  `parquet:"created_at_millis"`
	Problems        string `parquet:"problems"`
	Solutions       string `parquet:"solutions"`
	Guide           string `parquet:"guide"`
	Result          string `parquet:"result"`
}

// ExportParquet writes sheets to a Parquet file at path, one row per sheet
func ExportParquet(path string, sheets []models.SavedSheet) error {
	rows := make([]SheetRow, 0, len(sheets))
	for _, sheet := range sheets {
		split := sections.Split(sheet.Result)
		rows = append(rows, SheetRow{
			ID:              sheet.ID,
			Title:           sheet.Title,
			StudentName:     sheet.StudentName,
			InstructorName:  sheet.InstructorName,
			Date:            sheet.Date,
			CreatedAtMillis: sheet.CreatedAt.UnixMilli(),
			Problems:        split.Problems,
			Solutions:       split.Solutions,
			Guide:           split.Guide,
			Result:          sheet.Result,
		})
	}

	if err := parquet.WriteFile(path, rows); err != nil {
		return fmt.Errorf("failed to write parquet file: %w", err)
	}

	slog.Info("Exported saved sheets", "path", path, "rows", len(rows))
	return nil
}

// ReadParquet loads sheets previously written by ExportParquet
func ReadParquet(path string) ([]models.SavedSheet, error) {
	rows, err := parquet.ReadFile[SheetRow](path)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet file: %w", err)
	}

	sheets := make([]models.SavedSheet, 0, len(rows))
	for _, row := range rows {
		sheets = append(sheets, models.SavedSheet{
			ID:             row.ID,
			Title:          row.Title,
			StudentName:    row.StudentName,
			InstructorName: row.InstructorName,
			Date:           row.Date,
			CreatedAt:      time.UnixMilli(row.CreatedAtMillis),
			Result:         row.Result,
		})
	}
	return sheets, nil
}
