package helper

import (
	"strings"
	"time"

	"munidesk/munidesk_go_module_builder_service/config"
	"munidesk/munidesk_go_module_builder_service/models"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

var newlineCleaner = strings.NewReplacer("\r", "", "\n", "")

// CleanCell strips surrounding quote characters, embedded newlines and
// surrounding whitespace from one CSV cell.
func CleanCell(cell string) string {
	cell = strings.Trim(cell, `'"`)
	cell = newlineCleaner.Replace(cell)

	return strings.TrimSpace(cell)
}

// ParseCSV parses raw comma-delimited text into a header/row structure.
// Input is split on universal newlines, blank lines are discarded and the
// first remaining line is the header. Rows shorter than the header are padded
// with empty strings. Quoted commas are NOT handled: a comma always splits,
// even inside quotes. That limitation is pinned by tests; files the console
// produced are re-importable because its exports only quote what it also
// re-cleans.
func ParseCSV(rawText string) (models.CSVDocument, error) {
	var lines []string

	for _, line := range strings.Split(strings.ReplaceAll(rawText, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	if len(lines) == 0 {
		return models.CSVDocument{}, errors.New("empty csv file")
	}

	headers := []string{}
	for _, h := range strings.Split(lines[0], ",") {
		headers = append(headers, CleanCell(h))
	}

	rows := make([]map[string]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		values := strings.Split(line, ",")

		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(values) {
				row[h] = CleanCell(values[i])
			} else {
				row[h] = ""
			}
		}

		rows = append(rows, row)
	}

	return models.CSVDocument{Headers: headers, Rows: rows}, nil
}

// AutoMapColumns proposes a column-to-field mapping: a header maps to an
// existing field when it case-insensitively equals the field's label or its
// stored name, otherwise to defaultAction. The single-table import passes
// MappingIgnore, the module-creation wizard passes MappingNew.
func AutoMapColumns(headers []string, fields []models.Field, defaultAction string) map[string]string {
	mapping := make(map[string]string, len(headers))

	for _, h := range headers {
		mapping[h] = defaultAction

		for _, f := range fields {
			if strings.EqualFold(f.Label, h) || strings.EqualFold(f.Name, h) {
				mapping[h] = f.Name
				break
			}
		}
	}

	return mapping
}

// ExtractOptions collects the distinct non-empty values observed in one CSV
// column, in order of first occurrence, capped at limit. Each value becomes a
// select option labeled with the raw text and valued with its normalization.
func ExtractOptions(doc models.CSVDocument, header string, limit int) []models.Option {
	var (
		seen    = map[string]bool{}
		options []models.Option
	)

	for _, row := range doc.Rows {
		val := row[header]
		if val == "" || seen[val] {
			continue
		}
		seen[val] = true

		options = append(options, models.Option{Label: val, Value: Normalize(val)})
		if len(options) >= limit {
			break
		}
	}

	return options
}

// BuildCSV renders records to the console's export format: a UTF-8 BOM, an
// ID/Status/Data prefix followed by the selected field labels, and values
// quoted with internal quotes doubled whenever they contain a comma or a
// newline. The reserved batch key never appears because only declared field
// names are emitted.
func BuildCSV(fields []models.Field, records []models.Record, selected []string) string {
	active := fields
	if selected != nil {
		keep := map[string]bool{}
		for _, name := range selected {
			keep[name] = true
		}

		active = nil
		for _, f := range fields {
			if keep[f.Name] {
				active = append(active, f)
			}
		}
	}

	headers := []string{"ID", "Status", "Data"}
	for _, f := range active {
		headers = append(headers, f.Label)
	}

	lines := []string{strings.Join(headers, ",")}

	for _, r := range records {
		cells := []string{r.Id, config.StatusLabels[r.Status], ExportDate(r.CreatedAt)}

		for _, f := range active {
			cells = append(cells, escapeCell(cast.ToString(r.Data[f.Name])))
		}

		lines = append(lines, strings.Join(cells, ","))
	}

	return "\uFEFF" + strings.Join(lines, "\n")
}

func escapeCell(val string) string {
	val = strings.ReplaceAll(val, `"`, `""`)
	if strings.Contains(val, ",") || strings.Contains(val, "\n") {
		val = `"` + val + `"`
	}

	return val
}

// ExportDate renders a stored timestamp in the dd.mm.yyyy form exports use.
func ExportDate(createdAt string) string {
	t, err := time.Parse(config.DatabaseTimeLayout, createdAt)
	if err != nil {
		return createdAt
	}

	return t.Format(config.ExportDateLayout)
}
