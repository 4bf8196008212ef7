package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"jdisco/internal/inventory"
	"jdisco/internal/output"
)

// ExcelPath returns the Excel report path inside outputDir.
func ExcelPath(outputDir, project string) string {
	return filepath.Join(outputDir, "discovery-"+project+".xlsx")
}

// SaveExcel writes the scan result as an Excel workbook with one sheet per
// report section. Returns the written file path.
func SaveExcel(m *inventory.Model, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeSummarySheet(f, m); err != nil {
		return "", err
	}
	if err := writeEntrySheet(f, "Entity Classes", m.Entities); err != nil {
		return "", err
	}
	if err := writeEntrySheet(f, "Business Components", m.BusinessComponents); err != nil {
		return "", err
	}
	if err := writeEntrySheet(f, "JSF Pages", m.JSFPages); err != nil {
		return "", err
	}
	if err := writeEntrySheet(f, "DB Configuration", m.DBConfigs); err != nil {
		return "", err
	}
	if err := writeUnitsSheet(f, m); err != nil {
		return "", err
	}
	if err := writeLogSheet(f, m); err != nil {
		return "", err
	}

	path := ExcelPath(outputDir, m.Project)
	if err := f.SaveAs(path); err != nil {
		return "", err
	}
	return path, nil
}

func writeSummarySheet(f *excelize.File, m *inventory.Model) error {
	const sheet = "Summary"
	// excelize creates "Sheet1" by default; rename it so the workbook
	// opens on the summary.
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Project", m.Project},
		{"Project Path", m.Root},
		{"Scan ID", m.ScanID},
		{"Analysis Date", Timestamp(m.FinishedAt)},
		{"Files Scanned", m.Summary.FilesScanned},
		{"Entity Classes", m.Summary.Entities},
		{"Business Components", m.Summary.BusinessComponents},
		{"JSF Pages", m.Summary.JSFPages},
		{"DB Configuration Files", m.Summary.DBConfigs},
		{"Classes Analyzed", m.Summary.ClassesAnalyzed},
		{"Controllers Found", m.Summary.ControllersFound},
		{"Services Found", m.Summary.ServicesFound},
		{"Public Methods", m.Summary.PublicMethods},
		{"Business Rule Methods", m.Summary.BusinessRuleMethods},
		{"Avg Business Rules / Controller", output.FormatAverage(m.Summary.AvgBusinessRulesPerController)},
		{"Avg Business Rules / Service", output.FormatAverage(m.Summary.AvgBusinessRulesPerService)},
		{"Parse Failures", m.Summary.ParseFailures},
		{"File Read Errors", m.Summary.FileReadErrors},
	}
	return writeRows(f, sheet, rows)
}

func writeEntrySheet(f *excelize.File, sheet string, entries []inventory.Entry) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	rows := [][]interface{}{{"File", "Size (bytes)", "Patterns", "Roles"}}
	for _, e := range entries {
		roles := make([]string, len(e.Roles))
		for i, r := range e.Roles {
			roles[i] = string(r)
		}
		rows = append(rows, []interface{}{
			e.File.RelativePath,
			e.File.Size,
			strings.Join(e.Patterns, ", "),
			strings.Join(roles, ", "),
		})
	}
	return writeRows(f, sheet, rows)
}

func writeUnitsSheet(f *excelize.File, m *inventory.Model) error {
	const sheet = "Business Rule Analysis"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	rows := [][]interface{}{{"Class", "Kind", "File", "Methods", "Public Methods", "Business Rule Methods"}}
	for i := range m.Units {
		u := &m.Units[i]
		rows = append(rows, []interface{}{
			u.ClassName,
			u.Kind,
			u.SourceFile,
			u.Stats.TotalMethods,
			u.Stats.PublicMethods,
			u.Stats.BusinessRuleMethods,
		})
	}
	return writeRows(f, sheet, rows)
}

func writeLogSheet(f *excelize.File, m *inventory.Model) error {
	const sheet = "Analysis Log"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	rows := [][]interface{}{{"Level", "Code", "File", "Message"}}
	for _, e := range m.Log {
		rows = append(rows, []interface{}{e.Level, string(e.Code), e.File, e.Message})
	}
	return writeRows(f, sheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
