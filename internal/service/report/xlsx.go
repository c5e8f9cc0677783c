package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	sheetSummary = "Summary"
	sheetDaily   = "Daily Data"
	sheetDay     = "Daily Attendance"
)

var markFills = map[dayMark]string{
	markPresent: "90EE90",
	markAbsent:  "FFB6C1",
	markLOP:     "FFA500",
}

func writeMonthlyWorkbook(rows []monthlyRow, days int) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return nil, err
	}
	if err := writeRow(f, sheetSummary, 1, "Employee ID", "Name", "Present Days", "Days < 9 Hours", "Worked Hours"); err != nil {
		return nil, err
	}
	for i, r := range rows {
		if err := writeRow(f, sheetSummary, i+2, r.EmployeeCode, r.Name, r.PresentDays, r.ShortDays, r.WorkedHours.InexactFloat64()); err != nil {
			return nil, err
		}
	}

	if _, err := f.NewSheet(sheetDaily); err != nil {
		return nil, err
	}
	header := []any{"Employee ID", "Name"}
	for d := 1; d <= days; d++ {
		header = append(header, fmt.Sprintf("Day %d", d))
	}
	if err := writeRow(f, sheetDaily, 1, header...); err != nil {
		return nil, err
	}

	styles, err := fillStyles(f)
	if err != nil {
		return nil, err
	}
	for i, r := range rows {
		rowNum := i + 2
		values := []any{r.EmployeeCode, r.Name}
		for _, m := range r.Days {
			values = append(values, string(m))
		}
		if err := writeRow(f, sheetDaily, rowNum, values...); err != nil {
			return nil, err
		}
		for d, m := range r.Days {
			cell, err := excelize.CoordinatesToCellName(d+3, rowNum)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellStyle(sheetDaily, cell, cell, styles[m]); err != nil {
				return nil, err
			}
		}
	}

	return toBytes(f)
}

func writeDailyWorkbook(rows []dailyRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetDay); err != nil {
		return nil, err
	}
	if err := writeRow(f, sheetDay, 1, "Employee ID", "Name", "Department", "Status"); err != nil {
		return nil, err
	}
	for i, r := range rows {
		if err := writeRow(f, sheetDay, i+2, r.EmployeeCode, r.Name, r.Department, string(r.Status)); err != nil {
			return nil, err
		}
	}
	return toBytes(f)
}

func writeRow(f *excelize.File, sheet string, row int, values ...any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func fillStyles(f *excelize.File) (map[dayMark]int, error) {
	styles := make(map[dayMark]int, len(markFills))
	for mark, color := range markFills {
		id, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
		})
		if err != nil {
			return nil, err
		}
		styles[mark] = id
	}
	return styles, nil
}

func toBytes(f *excelize.File) ([]byte, error) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
