package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"taskboard/internal/domain/entity"
	"taskboard/internal/domain/model"
	"taskboard/pkg/msg"
	"taskboard/pkg/util/dateutils"
)

type Format string

const (
	CSV  Format = "csv"
	PDF  Format = "pdf"
	JSON Format = "json"
)

// Document is a rendered export ready to be sent as an attachment.
type Document struct {
	ContentType string
	FileName    string
	Body        []byte
}

// ParseFormat accepts csv, pdf and json in any case. Empty means csv.
func ParseFormat(value string) (Format, error) {
	switch format := Format(strings.ToLower(strings.TrimSpace(value))); format {
	case "":
		return CSV, nil
	case CSV, PDF, JSON:
		return format, nil
	default:
		return "", &model.ValidationError{
			Field:   "format",
			Message: msg.GetMessage("task.error.unknown-format", value),
		}
	}
}

type Exporter struct {
	now func() time.Time
}

func NewExporter() *Exporter {
	return &Exporter{now: time.Now}
}

// Export renders tasks in the order given, each followed by its subtasks.
func (e *Exporter) Export(tasks []entity.Task, format Format) (*Document, error) {
	stamp := e.now().Format("20060102")
	switch format {
	case JSON:
		body, err := json.MarshalIndent(toRows(tasks), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json export: %w", err)
		}
		return &Document{"application/json", "tasks-" + stamp + ".json", body}, nil
	case CSV:
		body, err := writeCSV(tasks)
		if err != nil {
			return nil, fmt.Errorf("encode csv export: %w", err)
		}
		return &Document{"text/csv; charset=utf-8", "tasks-" + stamp + ".csv", body}, nil
	case PDF:
		body, err := e.writePDF(tasks)
		if err != nil {
			return nil, fmt.Errorf("encode pdf export: %w", err)
		}
		return &Document{"application/pdf", "tasks-" + stamp + ".pdf", body}, nil
	default:
		return nil, &model.ValidationError{
			Field:   "format",
			Message: msg.GetMessage("task.error.unknown-format", string(format)),
		}
	}
}

type row struct {
	ID       uint   `json:"id"`
	ParentID uint   `json:"parentId,omitempty"`
	Kind     string `json:"kind"`
	Content  string `json:"content"`
	Deadline string `json:"deadline,omitempty"`
}

func toRows(tasks []entity.Task) []row {
	rows := make([]row, 0, len(tasks))
	for _, task := range tasks {
		rows = append(rows, row{
			ID:       task.ID,
			Kind:     "task",
			Content:  task.Content,
			Deadline: dateutils.FormatDate(task.Deadline),
		})
		for _, sub := range task.SubTasks {
			rows = append(rows, row{
				ID:       sub.ID,
				ParentID: sub.ParentID,
				Kind:     "subtask",
				Content:  sub.Content,
				Deadline: dateutils.FormatDate(sub.Deadline),
			})
		}
	}
	return rows
}

func writeCSV(tasks []entity.Task) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"id", "parent_id", "kind", "content", "deadline"})
	for _, r := range toRows(tasks) {
		parent := ""
		if r.ParentID != 0 {
			parent = fmt.Sprint(r.ParentID)
		}
		_ = w.Write([]string{fmt.Sprint(r.ID), parent, r.Kind, r.Content, r.Deadline})
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func (e *Exporter) writePDF(tasks []entity.Task) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Tasks")
	pdf.Ln(12)

	for _, task := range tasks {
		pdf.SetFont("Arial", "B", 11)
		pdf.MultiCell(0, 6, tr(line(task.Content, task.Deadline)), "0", "L", false)
		pdf.SetFont("Arial", "", 10)
		for _, sub := range task.SubTasks {
			pdf.SetX(pdf.GetX() + 8)
			pdf.MultiCell(0, 6, tr("- "+line(sub.Content, sub.Deadline)), "0", "L", false)
		}
		pdf.Ln(2)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func line(content string, deadline *time.Time) string {
	if deadline == nil {
		return content
	}
	return fmt.Sprintf("%s (due %s)", content, dateutils.FormatDate(deadline))
}
