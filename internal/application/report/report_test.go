package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"taskboard/internal/domain/entity"
	"taskboard/internal/domain/model"
	"taskboard/pkg/util/dateutils"
)

func sampleTasks(t *testing.T) []entity.Task {
	t.Helper()
	deadline, err := dateutils.ParseDate("2024-01-01")
	if err != nil {
		t.Fatal(err)
	}
	return []entity.Task{
		{ID: 3, Content: "C", Deadline: deadline, SubTasks: []entity.SubTask{
			{ID: 7, Content: "C, part one", ParentID: 3},
		}},
		{ID: 2, Content: "B"},
	}
}

func newTestExporter() *Exporter {
	return &Exporter{now: func() time.Time { return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC) }}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{"": CSV, "csv": CSV, "PDF": PDF, " json ": JSON}
	for input, want := range tests {
		got, err := ParseFormat(input)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", input, got, err, want)
		}
	}

	_, err := ParseFormat("xml")
	if !model.IsValidationError(err) {
		t.Errorf("expected a validation error for xml, got %v", err)
	}
}

func TestExportCSV(t *testing.T) {
	doc, err := newTestExporter().Export(sampleTasks(t), CSV)
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	if doc.FileName != "tasks-20240301.csv" {
		t.Errorf("unexpected file name %q", doc.FileName)
	}

	records, err := csv.NewReader(bytes.NewReader(doc.Body)).ReadAll()
	if err != nil {
		t.Fatalf("invalid csv: %v", err)
	}
	want := [][]string{
		{"id", "parent_id", "kind", "content", "deadline"},
		{"3", "", "task", "C", "2024-01-01"},
		{"7", "3", "subtask", "C, part one", ""},
		{"2", "", "task", "B", ""},
	}
	if len(records) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(records))
	}
	for i := range want {
		for j := range want[i] {
			if records[i][j] != want[i][j] {
				t.Errorf("record %d field %d: expected %q, got %q", i, j, want[i][j], records[i][j])
			}
		}
	}
}

func TestExportJSON(t *testing.T) {
	doc, err := newTestExporter().Export(sampleTasks(t), JSON)
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}

	var rows []row
	if err := json.Unmarshal(doc.Body, &rows); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(rows) != 3 || rows[1].Kind != "subtask" || rows[1].ParentID != 3 {
		t.Errorf("unexpected rows %+v", rows)
	}
	if doc.ContentType != "application/json" {
		t.Errorf("unexpected content type %q", doc.ContentType)
	}
}

func TestExportPDF(t *testing.T) {
	doc, err := newTestExporter().Export(sampleTasks(t), PDF)
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	if !bytes.HasPrefix(doc.Body, []byte("%PDF-")) {
		t.Error("expected a PDF document")
	}
}

func TestExportUnknownFormat(t *testing.T) {
	if _, err := newTestExporter().Export(nil, Format("xml")); !model.IsValidationError(err) {
		t.Errorf("expected a validation error, got %v", err)
	}
}
