package export

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// pdfColumn pairs a header with its width in millimetres. Widths per table
// sum to the printable A4 width of 190mm.
type pdfColumn struct {
	header string
	width  float64
}

var (
	schedulePDFColumns = []pdfColumn{
		{"Activity", 25},
		{"Subject", 70},
		{"Students", 25},
		{"Time", 70},
	}
	roomPDFColumns = []pdfColumn{
		{"Room", 80},
		{"Building", 80},
		{"Capacity", 30},
	}
)

// PDFExporter renders run summaries as tabular PDF documents.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// RenderSchedule lays the placed activities out with wide subject and time
// columns; multi-slot activities keep all their labeled slots on one row.
func (e *PDFExporter) RenderSchedule(title string, rows []ScheduleRow, label SlotLabeler) ([]byte, error) {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, []string{
			row.ActivityID,
			row.Subject,
			strconv.Itoa(row.Students),
			formatSlots(row.Slots, label),
		})
	}
	return renderPDFTable(title, schedulePDFColumns, records)
}

// RenderRooms lays out the room listing.
func (e *PDFExporter) RenderRooms(title string, rows []RoomRow) ([]byte, error) {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, []string{
			row.Name,
			row.Building,
			strconv.Itoa(row.Capacity),
		})
	}
	return renderPDFTable(title, roomPDFColumns, records)
}

func renderPDFTable(title string, columns []pdfColumn, records [][]string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, strings.ToUpper(title), "", 1, "C", false, 0, "")
		pdf.Ln(5)
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for _, column := range columns {
		pdf.CellFormat(column.width, 8, column.header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, record := range records {
		for i, column := range columns {
			value := ""
			if i < len(record) {
				value = record[i]
			}
			pdf.CellFormat(column.width, 7, value, "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
