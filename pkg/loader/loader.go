package loader

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/foxbe/netbox-trust-boundary/internal/constants"
	"github.com/foxbe/netbox-trust-boundary/pkg/models"
	"github.com/foxbe/netbox-trust-boundary/pkg/utils"
)

// CSVLoader parses placement CSVs into normalized rows. Column headers are
// matched case-insensitively against an alias table, so exports from
// different tools load without manual renaming.
type CSVLoader struct {
	columnAliases map[string][]string
	logger        *utils.Logger

	// Errors collects per-row parse problems from the last Load call.
	// A row error does not abort the load.
	Errors []string
}

// NewCSVLoader creates a loader with the default column alias table.
func NewCSVLoader(logger *utils.Logger) *CSVLoader {
	return &CSVLoader{
		columnAliases: constants.DefaultColumnAliases,
		logger:        logger,
	}
}

// SetColumnAliases replaces the alias table, e.g. from configuration.
func (cl *CSVLoader) SetColumnAliases(aliases map[string][]string) {
	if len(aliases) > 0 {
		cl.columnAliases = aliases
	}
}

// Load reads a CSV file and returns its normalized rows. Row numbering
// starts at 2: the header is row 1, matching what operators see in their
// spreadsheet tool.
func (cl *CSVLoader) Load(path string) ([]*models.Row, error) {
	cl.Errors = nil

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("file not found: %s", path)
	}
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".csv" {
		return nil, fmt.Errorf("not a CSV file: %s", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	// Strip UTF-8 BOM written by spreadsheet exports.
	content = []byte(strings.TrimPrefix(string(content), "\ufeff"))

	reader := csv.NewReader(strings.NewReader(string(content)))
	reader.Comma = sniffDelimiter(string(content))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("CSV parsing error: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV file has no headers")
	}

	headers := records[0]
	columnIndices := cl.mapColumns(headers)

	var missingRequired []string
	for _, required := range constants.RequiredColumns {
		if _, ok := columnIndices[required]; !ok {
			missingRequired = append(missingRequired, required)
		}
	}
	if len(missingRequired) > 0 {
		return nil, fmt.Errorf("missing required columns: %s. Found columns: %s",
			strings.Join(missingRequired, ", "), strings.Join(headers, ", "))
	}

	rows := make([]*models.Row, 0, len(records)-1)
	for i, record := range records[1:] {
		rowNumber := i + 2
		if isBlankRecord(record) {
			continue
		}
		if len(record) != len(headers) {
			cl.Errors = append(cl.Errors, fmt.Sprintf(
				"Row %d: has %d fields, header has %d", rowNumber, len(record), len(headers)))
		}
		rows = append(rows, cl.parseRow(rowNumber, record, headers, columnIndices))
	}

	cl.logger.Debug("Loaded %d rows from %s", len(rows), path)
	return rows, nil
}

// mapColumns resolves each canonical field to a column index using the
// alias table. Fields without a matching header are simply absent.
func (cl *CSVLoader) mapColumns(headers []string) map[string]int {
	headersLower := make([]string, len(headers))
	for i, h := range headers {
		headersLower[i] = strings.ToLower(strings.TrimSpace(h))
	}

	indices := make(map[string]int)
	for field, aliases := range cl.columnAliases {
		for _, alias := range aliases {
			for i, header := range headersLower {
				if header == strings.ToLower(alias) {
					indices[field] = i
					break
				}
			}
			if _, ok := indices[field]; ok {
				break
			}
		}
	}
	return indices
}

// isBlankRecord reports whether every field of a record is empty,
// which spreadsheet tools commonly emit as trailing rows.
func isBlankRecord(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

// parseRow converts one CSV record into a normalized Row.
func (cl *CSVLoader) parseRow(rowNumber int, record, headers []string, indices map[string]int) *models.Row {
	get := func(field string) string {
		idx, ok := indices[field]
		if !ok || idx >= len(record) {
			return ""
		}
		return utils.NormalizeString(record[idx])
	}

	raw := make(map[string]string, len(headers))
	for i, header := range headers {
		if i < len(record) {
			raw[header] = record[i]
		}
	}

	return &models.Row{
		RowNumber:  rowNumber,
		Rack:       get("rack"),
		RUPosition: utils.ParseRUValue(get("ru_position")),
		RUHeight:   utils.ParseRUValue(get("ru_height")),
		Make:       get("make"),
		Model:      get("model"),
		Hostname:   get("hostname"),
		Face:       models.ParseFace(get("face")),
		DeviceRole: get("device_role"),
		Status:     NormalizeStatus(get("status")),
		Site:       get("site"),
		RawData:    raw,
	}
}

// NormalizeStatus maps operational-status spellings onto NetBox's closed
// vocabulary. Unknown values pass through lowercased.
func NormalizeStatus(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return ""
	}
	if normalized, ok := constants.StatusMap[value]; ok {
		return normalized
	}
	return value
}

// sniffDelimiter picks the delimiter among comma, semicolon and tab by
// counting occurrences in the header line. Comma wins ties.
func sniffDelimiter(content string) rune {
	headerLine := content
	if idx := strings.IndexAny(content, "\r\n"); idx >= 0 {
		headerLine = content[:idx]
	}

	best := ','
	bestCount := strings.Count(headerLine, ",")
	for _, candidate := range []rune{';', '\t'} {
		if count := strings.Count(headerLine, string(candidate)); count > bestCount {
			best = candidate
			bestCount = count
		}
	}
	return best
}
