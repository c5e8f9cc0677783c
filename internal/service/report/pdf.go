package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/attendance-marker/attendance-backend-go/internal/domain/employee"
	"github.com/attendance-marker/attendance-backend-go/internal/domain/lop"
	"github.com/jung-kurt/gofpdf"
)

func writeLOPStatement(emp employee.Employee, year int, month time.Month, records []lop.LOPRecord, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Loss of Pay Statement")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s (%s)", emp.Name, emp.EmployeeCode))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Department: %s", emp.Department))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s %d", month, year))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Total LOP days: %d", len(records)))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(40, 8, "Date", "1", 0, "L", false, 0, "")
	pdf.CellFormat(140, 8, "Reason", "1", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, r := range records {
		pdf.CellFormat(40, 8, r.MarkingDate.Format("2006-01-02"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(140, 8, truncate(r.Reason, 80), "1", 1, "L", false, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 6, fmt.Sprintf("Generated %s", generatedAt.Format(time.RFC1123)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
