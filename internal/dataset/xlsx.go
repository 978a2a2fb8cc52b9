package dataset

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/akapil/prospect/internal/model"
	"github.com/akapil/prospect/internal/urlutil"
)

const (
	dataSheet        = "Data"
	methodologySheet = "Methodology"
)

// MethodologyText describes how the workbook was produced, stamped with the
// run time.
func MethodologyText(ranAt time.Time) string {
	return strings.Join([]string{
		"Methodology:",
		"- Discovery via DuckDuckGo HTML search (official site, LinkedIn, careers page).",
		"- ATS detection via site: queries; provider-specific listing parsing (Teamtailor, Lever, Greenhouse, Workable, Personio) with a generic fallback.",
		"- Job details extracted heuristically from posting markup (title, location, posted date, snippet).",
		fmt.Sprintf("- Run date: %s", ranAt.UTC().Format(time.RFC3339)),
		"- Notes: JavaScript-rendered pages are not fetched; results are best-effort.",
	}, "\n")
}

// WriteWorkbook writes the enriched table to an XLSX workbook at path: a Data
// sheet with the full column set and a Methodology sheet with the run notes.
func WriteWorkbook(path string, t *Table, maxJobs int, ranAt time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), dataSheet); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	headers := t.OutputHeaders(maxJobs)
	if err := setRow(f, dataSheet, 1, headers); err != nil {
		return err
	}
	for i := range t.Records {
		if err := setRow(f, dataSheet, i+2, rowValues(&t.Records[i], headers)); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(methodologySheet); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	if err := f.SetCellValue(methodologySheet, "A1", "Methodology"); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	if err := f.SetCellValue(methodologySheet, "A2", MethodologyText(ranAt)); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// ReadWorkbook loads records back out of an enriched workbook's Data sheet.
// The review TUI feeds from this.
func ReadWorkbook(path string) ([]model.CompanyRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(dataSheet)
	if err != nil {
		return nil, fmt.Errorf("read workbook: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("workbook %s has no %s sheet content", path, dataSheet)
	}

	headers := rows[0]
	cell := func(row []string, i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.TrimSpace(h)] = i
	}
	at := func(row []string, col string) string {
		i, ok := index[col]
		if !ok {
			return ""
		}
		return cell(row, i)
	}

	var records []model.CompanyRecord
	for _, row := range rows[1:] {
		name := at(row, ColName)
		if name == "" {
			continue
		}
		rec := model.CompanyRecord{
			Name:        name,
			Description: at(row, ColDescription),
			Website:     urlutil.Normalize(at(row, ColWebsite)),
			LinkedIn:    urlutil.Normalize(at(row, ColLinkedIn)),
			Careers:     urlutil.Normalize(at(row, ColCareers)),
			JobBoard:    urlutil.Normalize(at(row, ColJobBoard)),
		}
		for i := 1; ; i++ {
			url := at(row, fmt.Sprintf("job_post%d_url", i))
			title := at(row, fmt.Sprintf("job_post%d_title", i))
			if url == "" && title == "" {
				break
			}
			rec.Jobs = append(rec.Jobs, model.JobPosting{
				URL:      url,
				Title:    title,
				Location: at(row, fmt.Sprintf("job_post%d_location", i)),
				Date:     at(row, fmt.Sprintf("job_post%d_date", i)),
				Snippet:  at(row, fmt.Sprintf("job_post%d_snippet", i)),
			})
		}
		records = append(records, rec)
	}
	return records, nil
}
