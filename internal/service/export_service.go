package service

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/keerthi/accidents-backend-go/internal/dataset"
)

// ExportService renders the dashboard aggregates of a filtered view into an
// Excel workbook, one sheet per breakdown.
type ExportService struct {
	analytics *AnalyticsService
}

// NewExportService creates an export service.
func NewExportService(analytics *AnalyticsService) *ExportService {
	return &ExportService{analytics: analytics}
}

// Workbook builds the export workbook for a view. The caller is responsible
// for closing the returned file.
func (s *ExportService) Workbook(v *dataset.View) (*excelize.File, error) {
	f := excelize.NewFile()

	summary := s.analytics.Summary(v)
	if err := writeSheet(f, "Summary", []string{"Metric", "Value"}, [][]interface{}{
		{"Total Accidents", summary.TotalAccidents},
		{"Average Severity", summary.AverageSeverity},
		{"States Covered", summary.StatesCovered},
		{"Cities Covered", summary.CitiesCovered},
		{"Weather Types", summary.WeatherTypes},
	}); err != nil {
		return nil, err
	}

	hourRows := make([][]interface{}, 0, 24)
	for _, p := range s.analytics.ByHour(v) {
		hourRows = append(hourRows, []interface{}{p.Value, p.Count})
	}
	if err := writeSheet(f, "By Hour", []string{"Hour", "Accidents"}, hourRows); err != nil {
		return nil, err
	}

	dayRows := make([][]interface{}, 0, 7)
	for _, p := range s.analytics.ByWeekday(v) {
		dayRows = append(dayRows, []interface{}{p.Label, p.Count})
	}
	if err := writeSheet(f, "By Weekday", []string{"Day", "Accidents"}, dayRows); err != nil {
		return nil, err
	}

	monthRows := make([][]interface{}, 0, 12)
	for _, p := range s.analytics.ByMonth(v) {
		monthRows = append(monthRows, []interface{}{p.Value, p.Count})
	}
	if err := writeSheet(f, "By Month", []string{"Month", "Accidents"}, monthRows); err != nil {
		return nil, err
	}

	var stateRows [][]interface{}
	for _, p := range s.analytics.TopStates(v) {
		stateRows = append(stateRows, []interface{}{p.Label, p.Count})
	}
	if err := writeSheet(f, "Top States", []string{"State", "Accidents"}, stateRows); err != nil {
		return nil, err
	}

	var weatherRows [][]interface{}
	for _, p := range s.analytics.TopWeather(v) {
		weatherRows = append(weatherRows, []interface{}{p.Label, p.Count})
	}
	if err := writeSheet(f, "Weather", []string{"Condition", "Accidents"}, weatherRows); err != nil {
		return nil, err
	}

	if err := s.writeCorrelation(f, v); err != nil {
		return nil, err
	}

	f.SetActiveSheet(0)
	return f, nil
}

func (s *ExportService) writeCorrelation(f *excelize.File, v *dataset.View) error {
	corr := s.analytics.Correlation(v)
	if !corr.Sufficient {
		return writeSheet(f, "Correlation", []string{"Note"}, [][]interface{}{{corr.Message}})
	}

	headers := append([]string{""}, corr.Columns...)
	rows := make([][]interface{}, 0, len(corr.Columns))
	for i, name := range corr.Columns {
		row := make([]interface{}, 0, len(corr.Columns)+1)
		row = append(row, name)
		for _, r := range corr.Matrix[i] {
			row = append(row, r)
		}
		rows = append(rows, row)
	}
	return writeSheet(f, "Correlation", headers, rows)
}

// writeSheet writes a header row and data rows to a named sheet, creating
// it if needed. The first sheet written replaces the excelize default.
func writeSheet(f *excelize.File, name string, headers []string, rows [][]interface{}) error {
	sheets := f.GetSheetList()
	if len(sheets) == 1 && sheets[0] == "Sheet1" && name != "Sheet1" {
		f.SetSheetName("Sheet1", name)
	} else if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", name, err)
	}

	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("failed to address header cell %s: %w", strconv.Itoa(i+1), err)
		}
		if err := f.SetCellValue(name, cell, h); err != nil {
			return fmt.Errorf("failed to write header to %s: %w", name, err)
		}
	}

	for rowIdx, row := range rows {
		for colIdx, val := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return fmt.Errorf("failed to address cell: %w", err)
			}
			if err := f.SetCellValue(name, cell, val); err != nil {
				return fmt.Errorf("failed to write to %s: %w", name, err)
			}
		}
	}

	return nil
}
