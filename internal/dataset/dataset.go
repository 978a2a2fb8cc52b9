// Package dataset handles the tabular surfaces of a run: the input CSV of
// companies and the enriched XLSX workbook. Columns beyond the ones we know
// pass through untouched in their original order.
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/akapil/prospect/internal/model"
	"github.com/akapil/prospect/internal/urlutil"
)

// Well-known column headers. Name and Description are required; the URL
// columns are created when absent and filled only when empty.
const (
	ColName        = "Company Name"
	ColDescription = "Company Description"
	ColWebsite     = "Website URL"
	ColLinkedIn    = "Linkedin URL"
	ColCareers     = "Careers Page URL"
	ColJobBoard    = "Job listings page URL"
)

var urlColumns = []string{ColWebsite, ColLinkedIn, ColCareers, ColJobBoard}

var jobFieldSuffixes = []string{"url", "title", "location", "date", "snippet"}

// Table is the loaded input: the original header order plus one record per
// valid row. Rows without a company name are dropped at load time.
type Table struct {
	Headers []string
	Records []model.CompanyRecord
	Skipped int // rows dropped for having no company name
}

// Load reads the companies CSV at path. A missing required column aborts the
// whole run with a model.MissingColumnError.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("input %s is empty", path)
	}

	headers := rows[0]
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.TrimSpace(h)] = i
	}
	for _, required := range []string{ColName, ColDescription} {
		if _, ok := index[required]; !ok {
			return nil, &model.MissingColumnError{Column: required}
		}
	}

	cell := func(row []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	t := &Table{Headers: headers}
	for _, row := range rows[1:] {
		name := cell(row, ColName)
		if name == "" {
			t.Skipped++
			continue
		}

		rec := model.CompanyRecord{
			Name:        name,
			Description: cell(row, ColDescription),
			Website:     urlutil.Normalize(cell(row, ColWebsite)),
			LinkedIn:    urlutil.Normalize(cell(row, ColLinkedIn)),
			Careers:     urlutil.Normalize(cell(row, ColCareers)),
			JobBoard:    urlutil.Normalize(cell(row, ColJobBoard)),
			Extra:       make(map[string]string),
		}
		for i, h := range headers {
			h = strings.TrimSpace(h)
			if isKnownColumn(h) {
				continue
			}
			if i < len(row) {
				rec.Extra[h] = row[i]
			}
		}
		t.Records = append(t.Records, rec)
	}

	return t, nil
}

func isKnownColumn(h string) bool {
	if h == ColName || h == ColDescription {
		return true
	}
	for _, c := range urlColumns {
		if h == c {
			return true
		}
	}
	return false
}

// OutputHeaders is the full output column set: the input headers, any of the
// four URL columns that were missing, then maxJobs blocks of job columns.
func (t *Table) OutputHeaders(maxJobs int) []string {
	out := make([]string, len(t.Headers))
	copy(out, t.Headers)

	present := make(map[string]bool, len(t.Headers))
	for _, h := range t.Headers {
		present[strings.TrimSpace(h)] = true
	}
	for _, c := range urlColumns {
		if !present[c] {
			out = append(out, c)
		}
	}
	return append(out, JobColumns(maxJobs)...)
}

// JobColumns lists job_post{i}_{field} headers for i in 1..n.
func JobColumns(n int) []string {
	var cols []string
	for i := 1; i <= n; i++ {
		for _, suffix := range jobFieldSuffixes {
			cols = append(cols, fmt.Sprintf("job_post%d_%s", i, suffix))
		}
	}
	return cols
}

// rowValues flattens a record into the given header order.
func rowValues(rec *model.CompanyRecord, headers []string) []string {
	jobValue := func(i int, field string) string {
		if i >= len(rec.Jobs) {
			return ""
		}
		j := rec.Jobs[i]
		switch field {
		case "url":
			return j.URL
		case "title":
			return j.Title
		case "location":
			return j.Location
		case "date":
			return j.Date
		case "snippet":
			return j.Snippet
		}
		return ""
	}

	row := make([]string, 0, len(headers))
	for _, h := range headers {
		h = strings.TrimSpace(h)
		switch h {
		case ColName:
			row = append(row, rec.Name)
		case ColDescription:
			row = append(row, rec.Description)
		case ColWebsite:
			row = append(row, rec.Website)
		case ColLinkedIn:
			row = append(row, rec.LinkedIn)
		case ColCareers:
			row = append(row, rec.Careers)
		case ColJobBoard:
			row = append(row, rec.JobBoard)
		default:
			idx, field := jobColumn(h)
			if idx > 0 {
				row = append(row, jobValue(idx-1, field))
			} else {
				row = append(row, rec.Extra[h])
			}
		}
	}
	return row
}

// jobColumn parses "job_post3_title" into (3, "title"); (0, "") otherwise.
func jobColumn(h string) (int, string) {
	if !strings.HasPrefix(h, "job_post") {
		return 0, ""
	}
	rest := strings.TrimPrefix(h, "job_post")
	under := strings.IndexByte(rest, '_')
	if under <= 0 {
		return 0, ""
	}
	var idx int
	if _, err := fmt.Sscanf(rest[:under], "%d", &idx); err != nil || idx <= 0 {
		return 0, ""
	}
	return idx, rest[under+1:]
}
