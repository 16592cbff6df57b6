package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/foxbe/netbox-trust-boundary/pkg/models"
	"github.com/foxbe/netbox-trust-boundary/pkg/utils"
)

func writeTempCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp CSV: %v", err)
	}
	return path
}

func newTestLoader() *CSVLoader {
	return NewCSVLoader(utils.NewLogger(false))
}

func TestLoadBasicCSV(t *testing.T) {
	path := writeTempCSV(t, "basic.csv",
		"rack,ru_position,ru_height,make,model,hostname,face,device_role,status,site\n"+
			"R1,10,2,Dell,R740,srv-01,front,Server,Active,HQ\n"+
			"R2,20,1,,,,,,,\n")

	rows, err := newTestLoader().Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Load() returned %d rows, expected 2", len(rows))
	}

	first := rows[0]
	if first.RowNumber != 2 {
		t.Errorf("RowNumber = %d, expected 2 (header is row 1)", first.RowNumber)
	}
	if first.Rack != "R1" || *first.RUPosition != 10 || *first.RUHeight != 2 {
		t.Errorf("unexpected placement fields: %+v", first)
	}
	if first.Face != models.FaceFront {
		t.Errorf("Face = %v, expected front", first.Face)
	}
	if first.Status != "active" {
		t.Errorf("Status = %q, expected normalized 'active'", first.Status)
	}

	second := rows[1]
	if second.Face != models.FaceFullDepth {
		t.Errorf("absent face should default to full-depth, got %v", second.Face)
	}
	if second.Make != "" || second.Hostname != "" {
		t.Errorf("optional fields should be empty, got %+v", second)
	}
}

func TestLoadColumnAliases(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"canonical names", "rack,ru_position,ru_height"},
		{"common aliases", "Rack_Name,Position,Height"},
		{"uppercase aliases", "RACK_LOCATION,U_POSITION,U_HEIGHT"},
		{"spreadsheet style", "rack_id,ru_pos,device_height"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempCSV(t, "aliases.csv", tt.header+"\nR1,10,2\n")
			rows, err := newTestLoader().Load(path)
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if len(rows) != 1 {
				t.Fatalf("expected 1 row, got %d", len(rows))
			}
			if rows[0].Rack != "R1" || rows[0].RUPosition == nil || *rows[0].RUPosition != 10 {
				t.Errorf("alias mapping failed: %+v", rows[0])
			}
		})
	}
}

func TestLoadMissingRequiredColumns(t *testing.T) {
	path := writeTempCSV(t, "missing.csv", "hostname,make,model\nsrv-01,Dell,R740\n")

	_, err := newTestLoader().Load(path)
	if err == nil {
		t.Fatal("Load() should fail when required columns are missing")
	}
}

func TestLoadSemicolonDelimiter(t *testing.T) {
	path := writeTempCSV(t, "semi.csv", "rack;ru_position;ru_height\nR1;10;2\n")

	rows, err := newTestLoader().Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(rows) != 1 || rows[0].Rack != "R1" {
		t.Errorf("semicolon-delimited file not parsed: %+v", rows)
	}
}

func TestLoadTabDelimiter(t *testing.T) {
	path := writeTempCSV(t, "tab.csv", "rack\tru_position\tru_height\nR1\t10\t2\n")

	rows, err := newTestLoader().Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(rows) != 1 || rows[0].Rack != "R1" {
		t.Errorf("tab-delimited file not parsed: %+v", rows)
	}
}

func TestLoadStripsBOM(t *testing.T) {
	path := writeTempCSV(t, "bom.csv", "\ufeffrack,ru_position,ru_height\nR1,10,2\n")

	rows, err := newTestLoader().Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(rows) != 1 || rows[0].Rack != "R1" {
		t.Errorf("BOM-prefixed file not parsed: %+v", rows)
	}
}

func TestLoadLooseRUFormats(t *testing.T) {
	path := writeTempCSV(t, "loose.csv",
		"rack,ru_position,ru_height\n"+
			"R1,RU 22,2U\n"+
			"R1,U23,RU2\n"+
			"R1,,1\n")

	rows, err := newTestLoader().Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if *rows[0].RUPosition != 22 || *rows[0].RUHeight != 2 {
		t.Errorf("row 2: got position=%v height=%v", rows[0].RUPosition, rows[0].RUHeight)
	}
	if *rows[1].RUPosition != 23 || *rows[1].RUHeight != 2 {
		t.Errorf("row 3: got position=%v height=%v", rows[1].RUPosition, rows[1].RUHeight)
	}
	if rows[2].RUPosition != nil {
		t.Error("row 4: empty position should stay absent, not zero")
	}
}

func TestLoadSkipsBlankRows(t *testing.T) {
	path := writeTempCSV(t, "blank.csv",
		"rack,ru_position,ru_height\nR1,10,2\n,,\nR2,20,1\n")

	rows, err := newTestLoader().Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected blank row skipped, got %d rows", len(rows))
	}
	// Row numbering follows the file, not the filtered list
	if rows[1].RowNumber != 4 {
		t.Errorf("RowNumber = %d, expected 4", rows[1].RowNumber)
	}
}

func TestLoadRejectsNonCSV(t *testing.T) {
	path := writeTempCSV(t, "data.txt", "rack,ru_position,ru_height\n")

	if _, err := newTestLoader().Load(path); err == nil {
		t.Error("Load() should reject non-.csv files")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := newTestLoader().Load("/nonexistent/file.csv"); err == nil {
		t.Error("Load() should fail for a missing file")
	}
}

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"active", "active"},
		{"Online", "active"},
		{"LIVE", "active"},
		{"pending", "planned"},
		{"staging", "staged"},
		{"decommissioned", "decommissioning"},
		{"offline", "offline"},
		{"something-custom", "something-custom"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run("input_"+tt.input, func(t *testing.T) {
			if got := NormalizeStatus(tt.input); got != tt.expected {
				t.Errorf("NormalizeStatus(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLoadCustomColumnAliases(t *testing.T) {
	loader := newTestLoader()
	loader.SetColumnAliases(map[string][]string{
		"rack":        {"cabinet"},
		"ru_position": {"slot"},
		"ru_height":   {"units"},
	})

	path := writeTempCSV(t, "custom.csv", "cabinet,slot,units\nR1,10,2\n")
	rows, err := loader.Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if rows[0].Rack != "R1" {
		t.Errorf("custom alias mapping failed: %+v", rows[0])
	}
}
