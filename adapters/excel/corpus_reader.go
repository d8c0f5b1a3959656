package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// KnownIdeaRow is one reference-corpus entry read from a seed file.
type KnownIdeaRow struct {
	Text    string
	DomainA string
	DomainB string
}

// ConceptRow is one concept to index, read from a seed file.
type ConceptRow struct {
	Text   string
	Domain string
	Source string
}

// SeedReader reads corpus and concept seed data from Excel or CSV files
type SeedReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewSeedReader creates a seed reader that handles both Excel and CSV files
func NewSeedReader(filePath string) *SeedReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &SeedReader{filePath: filePath, fileType: fileType}
}

// ReadKnownIdeas reads reference-corpus rows. Expected headers:
// text, domain_a, domain_b. Rows with an empty text cell are skipped.
func (r *SeedReader) ReadKnownIdeas() ([]KnownIdeaRow, error) {
	rows, err := r.readRows()
	if err != nil {
		return nil, err
	}

	cols, err := headerIndex(rows[0], "text", "domain_a", "domain_b")
	if err != nil {
		return nil, err
	}

	ideas := []KnownIdeaRow{}
	for _, row := range rows[1:] {
		text := cell(row, cols["text"])
		if text == "" {
			continue
		}
		ideas = append(ideas, KnownIdeaRow{
			Text:    text,
			DomainA: cell(row, cols["domain_a"]),
			DomainB: cell(row, cols["domain_b"]),
		})
	}
	return ideas, nil
}

// ReadConcepts reads concept seed rows for the index. Expected headers:
// text, domain, source. Rows with an empty text cell are skipped.
func (r *SeedReader) ReadConcepts() ([]ConceptRow, error) {
	rows, err := r.readRows()
	if err != nil {
		return nil, err
	}

	cols, err := headerIndex(rows[0], "text", "domain", "source")
	if err != nil {
		return nil, err
	}

	concepts := []ConceptRow{}
	for _, row := range rows[1:] {
		text := cell(row, cols["text"])
		if text == "" {
			continue
		}
		concepts = append(concepts, ConceptRow{
			Text:   text,
			Domain: cell(row, cols["domain"]),
			Source: cell(row, cols["source"]),
		})
	}
	return concepts, nil
}

func (r *SeedReader) readRows() ([][]string, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("seed file not found: %s", r.filePath)
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	default:
		rows, err = r.readExcelRows()
	}
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("seed file must have a header row and at least one data row")
	}
	return rows, nil
}

func (r *SeedReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	if err != nil {
		return nil, fmt.Errorf("failed to read Sheet1: %w", err)
	}
	return rows, nil
}

func (r *SeedReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	return rows, nil
}

// headerIndex maps required header names to their column positions,
// matching case-insensitively.
func headerIndex(header []string, required ...string) (map[string]int, error) {
	cols := map[string]int{}
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("seed file missing required column %q", name)
		}
	}
	return cols, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
