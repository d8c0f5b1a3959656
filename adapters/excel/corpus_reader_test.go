package excel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeSeedFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write seed file: %v", err)
	}
	return path
}

// TestReadKnownIdeasCSV tests reference-corpus parsing from a CSV seed file
func TestReadKnownIdeasCSV(t *testing.T) {
	path := writeSeedFile(t, "corpus.csv",
		"text,domain_a,domain_b\n"+
			"Ant colony routing for packet networks,biology,software\n"+
			" Annealing-based scheduling ,physics,software\n"+
			",orphan,row\n")

	reader := NewSeedReader(path)
	ideas, err := reader.ReadKnownIdeas()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(ideas) != 2 {
		t.Fatalf("Expected 2 ideas after skipping the empty row, got %d", len(ideas))
	}
	if ideas[0].Text != "Ant colony routing for packet networks" {
		t.Errorf("Expected first idea text preserved, got %q", ideas[0].Text)
	}
	if ideas[0].DomainA != "biology" || ideas[0].DomainB != "software" {
		t.Errorf("Expected domain pair preserved, got %+v", ideas[0])
	}
	if ideas[1].Text != "Annealing-based scheduling" {
		t.Errorf("Expected whitespace trimmed, got %q", ideas[1].Text)
	}
}

// TestReadConceptsCSV tests concept seed parsing with reordered headers
func TestReadConceptsCSV(t *testing.T) {
	path := writeSeedFile(t, "concepts.csv",
		"Source,TEXT,Domain\n"+
			"textbook,homeostasis,biology\n"+
			"paper,quorum sensing,biology\n")

	reader := NewSeedReader(path)
	concepts, err := reader.ReadConcepts()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(concepts) != 2 {
		t.Fatalf("Expected 2 concepts, got %d", len(concepts))
	}
	if concepts[0].Text != "homeostasis" || concepts[0].Domain != "biology" || concepts[0].Source != "textbook" {
		t.Errorf("Expected case-insensitive header mapping, got %+v", concepts[0])
	}
}

// TestReadKnownIdeasExcel tests parsing from an Excel workbook, including
// a ragged row whose trailing cells are absent.
func TestReadKnownIdeasExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.xlsx")
	f := excelize.NewFile()
	f.SetSheetRow("Sheet1", "A1", &[]string{"text", "domain_a", "domain_b"})
	f.SetSheetRow("Sheet1", "A2", &[]string{"Ant colony routing", "biology", "software"})
	f.SetSheetRow("Sheet1", "A3", &[]string{"Annealing-based scheduling"})
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to write workbook: %v", err)
	}
	f.Close()

	reader := NewSeedReader(path)
	ideas, err := reader.ReadKnownIdeas()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(ideas) != 2 {
		t.Fatalf("Expected 2 ideas, got %d", len(ideas))
	}
	if ideas[0].DomainA != "biology" || ideas[0].DomainB != "software" {
		t.Errorf("Expected domain pair preserved, got %+v", ideas[0])
	}
	if ideas[1].DomainA != "" || ideas[1].DomainB != "" {
		t.Errorf("Expected empty domains for the ragged row, got %+v", ideas[1])
	}
}

// TestReadMissingColumn tests the required-header check
func TestReadMissingColumn(t *testing.T) {
	path := writeSeedFile(t, "bad.csv",
		"text,domain_a\n"+
			"something,biology\n")

	reader := NewSeedReader(path)
	_, err := reader.ReadKnownIdeas()
	if err == nil {
		t.Fatal("Expected error for missing domain_b column")
	}
}

// TestReadMissingFile tests the not-found path
func TestReadMissingFile(t *testing.T) {
	reader := NewSeedReader("/nonexistent/corpus.csv")
	_, err := reader.ReadKnownIdeas()
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
}

// TestReadHeaderOnly tests rejection of a file with no data rows
func TestReadHeaderOnly(t *testing.T) {
	path := writeSeedFile(t, "empty.csv", "text,domain_a,domain_b\n")

	reader := NewSeedReader(path)
	_, err := reader.ReadKnownIdeas()
	if err == nil {
		t.Fatal("Expected error for a header-only file")
	}
}

// TestFileTypeDetection tests extension-based reader selection
func TestFileTypeDetection(t *testing.T) {
	if NewSeedReader("seed.csv").fileType != "csv" {
		t.Error("Expected csv type for .csv extension")
	}
	if NewSeedReader("seed.CSV").fileType != "csv" {
		t.Error("Expected csv type for uppercase extension")
	}
	if NewSeedReader("seed.xlsx").fileType != "xlsx" {
		t.Error("Expected xlsx type for .xlsx extension")
	}
}
