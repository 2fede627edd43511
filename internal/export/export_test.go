package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/sadopc/fittrack/internal/model"
	"github.com/sadopc/fittrack/internal/plan"
)

func sampleDoc() (*model.Document, model.Settings) {
	doc := model.NewDocument()
	doc.LogsByDate["2026-01-05"] = model.DayLog{
		Date:                 "2026-01-05",
		WeightKg:             model.Ptr(91.3),
		Steps:                model.Ptr(8400),
		WorkoutDone:          model.Ptr(true),
		PlanDayID:            model.Ptr("d1"),
		CompletedExerciseIdx: []int{0, 1, 2},
		Note:                 model.Ptr("felt strong"),
	}
	doc.LogsByDate["2026-01-06"] = model.DayLog{
		Date:     "2026-01-06",
		Calories: model.Ptr(2100),
		ProteinG: model.Ptr(150),
	}
	cycle := plan.Generate([]string{"Sled push"}, "2026-01-05", 7)
	doc.PlanCycle = &cycle
	doc.CustomExercises = []string{"Sled push"}
	doc.Settings = model.SettingsOverrides{StepGoal: model.Ptr(12000)}

	return doc, doc.Settings.Apply(model.DefaultSettings())
}

// ============================================================
// JSON backup
// ============================================================

func TestMarshalBackup(t *testing.T) {
	doc, settings := sampleDoc()
	now := time.Date(2026, 1, 7, 9, 30, 0, 0, time.FixedZone("CET", 3600))

	data, err := MarshalBackup(doc, settings, now)
	if err != nil {
		t.Fatalf("MarshalBackup: %v", err)
	}

	var result jsonBackup
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if result.Version != model.DocumentVersion {
		t.Fatalf("version = %d", result.Version)
	}
	if result.ExportedAt != "2026-01-07T08:30:00Z" {
		t.Fatalf("exportedAt = %q, want UTC RFC3339", result.ExportedAt)
	}
	if len(result.LogsByDate) != 2 {
		t.Fatalf("logs = %d, want 2", len(result.LogsByDate))
	}
	if result.Settings.StepGoal != 12000 || result.Settings.ProteinTarget != 160 {
		t.Fatalf("settings should be the effective values: %+v", result.Settings)
	}
	if result.PlanCycle == nil || len(result.PlanCycle.Days) != 7 {
		t.Fatal("plan cycle missing from backup")
	}
}

func TestMarshalBackupPrettyPrinted(t *testing.T) {
	data, _ := MarshalBackup(model.NewDocument(), model.DefaultSettings(), time.Now())
	// Pretty-printed JSON should contain newlines and indentation
	if !strings.Contains(string(data), "\n") {
		t.Fatal("JSON should be pretty-printed with newlines")
	}
	if !strings.Contains(string(data), "  ") {
		t.Fatal("JSON should be indented with spaces")
	}
	if !strings.Contains(string(data), `"logsByDate": {}`) {
		t.Fatalf("empty log collection should be an object:\n%s", data)
	}
}

func TestBackupRoundTrip(t *testing.T) {
	doc, settings := sampleDoc()
	data, err := MarshalBackup(doc, settings, time.Now())
	if err != nil {
		t.Fatal(err)
	}

	got, err := ParseBackup(data)
	if err != nil {
		t.Fatalf("ParseBackup: %v", err)
	}
	if !reflect.DeepEqual(got.LogsByDate, doc.LogsByDate) {
		t.Fatalf("logs differ:\n got %+v\nwant %+v", got.LogsByDate, doc.LogsByDate)
	}
	if s := got.Settings.Apply(model.DefaultSettings()); s != settings {
		t.Fatalf("settings = %+v, want %+v", s, settings)
	}
	if !reflect.DeepEqual(got.CustomExercises, doc.CustomExercises) {
		t.Fatalf("custom exercises = %v", got.CustomExercises)
	}
	if got.PlanCycle == nil || got.PlanCycle.ID != doc.PlanCycle.ID {
		t.Fatal("plan cycle not restored")
	}
}

func TestParseBackupLegacyLogsArray(t *testing.T) {
	data := []byte(`{
		"version": 1,
		"logs": [
			{"date": "2026-01-02", "steps": 9000},
			{"date": "2026-01-01", "weightKg": 90}
		],
		"settings": {"stepGoal": 9000, "proteinTarget": -4}
	}`)
	doc, err := ParseBackup(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.LogsByDate) != 2 {
		t.Fatalf("logs = %d, want 2", len(doc.LogsByDate))
	}
	if *doc.LogsByDate["2026-01-01"].WeightKg != 90 {
		t.Fatal("weight lost in legacy import")
	}
	s := doc.Settings.Apply(model.DefaultSettings())
	if s.StepGoal != 9000 || s.ProteinTarget != 160 {
		t.Fatalf("settings = %+v", s)
	}
}

func TestParseBackupInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `this is not json`},
		{"array root", `[1, 2, 3]`},
		{"null root", `null`},
		{"missing version", `{"logsByDate": {}}`},
		{"wrong version", `{"version": 2, "logsByDate": {}}`},
		{"string version", `{"version": "1", "logsByDate": {}}`},
		{"missing logs", `{"version": 1}`},
		{"logs not object", `{"version": 1, "logsByDate": [1]}`},
		{"null logs", `{"version": 1, "logsByDate": null}`},
		{"bad date key", `{"version": 1, "logsByDate": {"not-a-date": {"steps": 1}}}`},
		{"impossible date", `{"version": 1, "logsByDate": {"2026-02-30": {}}}`},
		{"bad entry", `{"version": 1, "logsByDate": {"2026-01-01": {"steps": "many"}}}`},
		{"legacy bad date", `{"version": 1, "logs": [{"date": "yesterday"}]}`},
		{"legacy duplicate", `{"version": 1, "logs": [{"date": "2026-01-01"}, {"date": "2026-01-01"}]}`},
		{"bad settings", `{"version": 1, "logsByDate": {}, "settings": []}`},
		{"bad cycle", `{"version": 1, "logsByDate": {}, "planCycle": 3}`},
		{"bad custom", `{"version": 1, "logsByDate": {}, "customExercises": "squat"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBackup([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrInvalidFormat) {
				t.Fatalf("error %v should wrap ErrInvalidFormat", err)
			}
		})
	}
}

func TestParseBackupReportsEveryBadKey(t *testing.T) {
	data := `{"version": 1, "logsByDate": {"2026-01-01": {}, "nope": {}, "2026-99-01": {}}}`
	_, err := ParseBackup([]byte(data))
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, `"nope"`) || !strings.Contains(msg, `"2026-99-01"`) {
		t.Fatalf("error should name both keys: %s", msg)
	}
}

func TestParseBackupKeyWinsOverEntryDate(t *testing.T) {
	data := `{"version": 1, "logsByDate": {"2026-01-01": {"date": "1999-01-01", "steps": 5}}}`
	doc, err := ParseBackup([]byte(data))
	if err != nil {
		t.Fatal(err)
	}
	if doc.LogsByDate["2026-01-01"].Date != "2026-01-01" {
		t.Fatalf("date = %q", doc.LogsByDate["2026-01-01"].Date)
	}
}

func TestToJSON(t *testing.T) {
	doc, settings := sampleDoc()
	path := filepath.Join(t.TempDir(), "backup.json")

	if err := ToJSON(doc, settings, path); err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseBackup(data); err != nil {
		t.Fatalf("written backup does not parse: %v", err)
	}
}

func TestToJSONBadPath(t *testing.T) {
	err := ToJSON(model.NewDocument(), model.DefaultSettings(), "/nonexistent/dir/file.json")
	if err == nil {
		t.Fatal("expected error for bad path")
	}
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	doc, _ := sampleDoc()
	path := filepath.Join(t.TempDir(), "logs.csv")

	if err := ToCSV(doc.SortedLogs(), doc.PlanCycle, path); err != nil {
		t.Fatalf("ToCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	// header + 2 data rows
	if len(records) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(records))
	}
	if records[0][0] != "Date" || records[0][8] != "Note" {
		t.Fatalf("unexpected header %v", records[0])
	}

	row := records[1]
	if row[0] != "2026-01-05" || row[1] != "91.3" || row[2] != "8400" || row[5] != "yes" {
		t.Fatalf("unexpected row %v", row)
	}
	if !strings.HasPrefix(row[6], "Day 1") {
		t.Fatalf("plan day = %q, want title", row[6])
	}
	if !strings.HasPrefix(row[7], "3/") {
		t.Fatalf("completed = %q", row[7])
	}
	if row[8] != "felt strong" {
		t.Fatalf("note = %q", row[8])
	}

	second := records[2]
	if second[1] != "" || second[3] != "2100" || second[5] != "" {
		t.Fatalf("unexpected row %v", second)
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")

	if err := ToCSV(nil, nil, path); err != nil {
		t.Fatal(err)
	}

	f, _ := os.Open(path)
	defer f.Close()
	records, _ := csv.NewReader(f).ReadAll()
	if len(records) != 1 {
		t.Fatalf("expected 1 row (header only), got %d", len(records))
	}
}

func TestToCSVUnknownPlanDay(t *testing.T) {
	logs := []model.DayLog{{Date: "2026-01-01", PlanDayID: model.Ptr("custom-9")}}
	path := filepath.Join(t.TempDir(), "unknown.csv")

	if err := ToCSV(logs, nil, path); err != nil {
		t.Fatal(err)
	}

	f, _ := os.Open(path)
	defer f.Close()
	records, _ := csv.NewReader(f).ReadAll()
	if records[1][6] != "custom-9" {
		t.Fatalf("expected raw plan day id, got %q", records[1][6])
	}
}

func TestToCSVBadPath(t *testing.T) {
	err := ToCSV(nil, nil, "/nonexistent/dir/file.csv")
	if err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestToCSVSpecialCharacters(t *testing.T) {
	logs := []model.DayLog{{Date: "2026-01-01", Note: model.Ptr(`note with "quotes" and, commas`)}}
	path := filepath.Join(t.TempDir(), "special.csv")

	if err := ToCSV(logs, nil, path); err != nil {
		t.Fatal(err)
	}

	f, _ := os.Open(path)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("CSV should be valid even with special chars: %v", err)
	}
	if records[1][8] != `note with "quotes" and, commas` {
		t.Fatalf("note mangled: %q", records[1][8])
	}
}

func TestWriteCSV(t *testing.T) {
	var buf strings.Builder
	logs := []model.DayLog{{Date: "2026-01-01", Steps: model.Ptr(1200), WorkoutDone: model.Ptr(false)}}

	if err := WriteCSV(&buf, logs, nil); err != nil {
		t.Fatal(err)
	}

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header + 1 row, got %d", len(records))
	}
	if records[1][2] != "1200" || records[1][5] != "no" {
		t.Fatalf("unexpected row %v", records[1])
	}
}
