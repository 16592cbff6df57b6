package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/foxbe/netbox-trust-boundary/pkg/models"
	"github.com/foxbe/netbox-trust-boundary/pkg/utils"
)

// Quick filters for exports.
const (
	FilterReadyToImport = "ready_to_import"
	FilterNeedsData     = "needs_data"
	FilterAvailable     = "available"
	FilterBlocked       = "blocked"
)

// Options controls what gets exported and how reports are labelled.
type Options struct {
	// Filter is one of the quick filter names, or "" for everything.
	Filter string
	// Classification limits output to one classification when non-empty.
	Classification models.Classification
	SiteName       string
	SourceFile     string
}

// Export writes validation results to a file. The format follows the file
// extension: .csv, .json, or .md; anything else defaults to CSV.
func Export(results []*models.RowResult, path string, opts Options) error {
	filtered, err := applyFilters(results, opts)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return exportJSON(filtered, path)
	case ".md", ".markdown":
		return exportMarkdown(filtered, path, opts)
	default:
		return exportCSV(filtered, path)
	}
}

// quickFilters is the closed set of filter names accepted by Options.Filter.
var quickFilters = []string{FilterReadyToImport, FilterNeedsData, FilterAvailable, FilterBlocked}

// applyFilters narrows the result set by quick filter and classification.
func applyFilters(results []*models.RowResult, opts Options) ([]*models.RowResult, error) {
	if opts.Filter != "" && !utils.Contains(quickFilters, opts.Filter) {
		return nil, fmt.Errorf("unknown export filter: %s", opts.Filter)
	}

	filtered := results

	switch opts.Filter {
	case "":
	case FilterReadyToImport:
		filtered = selectResults(filtered, func(r *models.RowResult) bool {
			return r.Severity() == models.SeverityPass && r.Row.ImportReadiness() == models.ImportReady
		})
	case FilterNeedsData:
		filtered = selectResults(filtered, func(r *models.RowResult) bool {
			return r.Severity() == models.SeverityPass && r.Row.ImportReadiness() == models.ImportIncomplete
		})
	case FilterAvailable:
		filtered = selectResults(filtered, func(r *models.RowResult) bool {
			return r.Severity() == models.SeverityPass
		})
	case FilterBlocked:
		filtered = selectResults(filtered, func(r *models.RowResult) bool {
			severity := r.Severity()
			return severity == models.SeverityFail || severity == models.SeverityInvalid
		})
	}

	if opts.Classification != "" {
		filtered = selectResults(filtered, func(r *models.RowResult) bool {
			return r.Classification == opts.Classification
		})
	}

	return filtered, nil
}

func selectResults(results []*models.RowResult, keep func(*models.RowResult) bool) []*models.RowResult {
	var out []*models.RowResult
	for _, r := range results {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// positionStatus maps a result's severity to the operator-facing label.
func positionStatus(r *models.RowResult) string {
	switch r.Severity() {
	case models.SeverityPass:
		return "Available"
	case models.SeverityWarn:
		return "Review"
	default:
		return "Blocked"
	}
}

// exportCSV writes results shaped for NetBox bulk import review.
func exportCSV(results []*models.RowResult, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{
		"row_number", "position_status", "import_status", "site", "rack",
		"ru_position", "ru_height", "face", "device_name", "device_role",
		"status", "manufacturer", "model", "finding_type", "finding_message",
		"missing_fields", "recommendation",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, result := range results {
		row := result.Row
		primary := result.PrimaryFinding()

		findingType := string(models.CodeOK)
		findingMessage := ""
		recommendation := ""
		if primary != nil {
			findingType = string(primary.Code)
			findingMessage = primary.Message
			recommendation = primary.Recommendation()
		}

		status := row.Status
		if status == "" {
			status = "active"
		}

		record := []string{
			fmt.Sprintf("%d", row.RowNumber),
			positionStatus(result),
			string(row.ImportReadiness()),
			row.Site,
			row.Rack,
			utils.FormatIntPtr(row.RUPosition),
			utils.FormatIntPtr(row.RUHeight),
			row.Face.String(),
			row.Hostname,
			row.DeviceRole,
			status,
			row.Make,
			row.Model,
			findingType,
			findingMessage,
			strings.Join(row.MissingImportFields(), ", "),
			recommendation,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", row.RowNumber, err)
		}
	}

	return nil
}

// jsonFinding is the wire shape of one finding in JSON exports.
type jsonFinding struct {
	Code           string                 `json:"code"`
	Severity       string                 `json:"severity"`
	Message        string                 `json:"message"`
	Evidence       map[string]interface{} `json:"evidence,omitempty"`
	Recommendation string                 `json:"recommendation"`
}

// jsonResult is the wire shape of one row result in JSON exports.
type jsonResult struct {
	RowNumber      int           `json:"row_number"`
	Rack           string        `json:"rack"`
	RUPosition     *int          `json:"ru_position"`
	RUHeight       *int          `json:"ru_height"`
	Face           string        `json:"face"`
	Hostname       string        `json:"device_name,omitempty"`
	DeviceRole     string        `json:"device_role,omitempty"`
	Site           string        `json:"site,omitempty"`
	Manufacturer   string        `json:"manufacturer,omitempty"`
	Model          string        `json:"model,omitempty"`
	Severity       string        `json:"severity"`
	Classification string        `json:"classification"`
	ImportStatus   string        `json:"import_status"`
	MissingFields  []string      `json:"missing_import_fields,omitempty"`
	ExistingDevice string        `json:"existing_device,omitempty"`
	Findings       []jsonFinding `json:"findings"`
}

// exportJSON writes the full findings with evidence.
func exportJSON(results []*models.RowResult, path string) error {
	out := make([]jsonResult, 0, len(results))
	for _, result := range results {
		row := result.Row

		findings := make([]jsonFinding, 0, len(result.Findings))
		for _, f := range result.Findings {
			findings = append(findings, jsonFinding{
				Code:           string(f.Code),
				Severity:       f.Severity.String(),
				Message:        f.Message,
				Evidence:       f.Evidence,
				Recommendation: f.Recommendation(),
			})
		}

		out = append(out, jsonResult{
			RowNumber:      row.RowNumber,
			Rack:           row.Rack,
			RUPosition:     row.RUPosition,
			RUHeight:       row.RUHeight,
			Face:           row.Face.String(),
			Hostname:       row.Hostname,
			DeviceRole:     row.DeviceRole,
			Site:           row.Site,
			Manufacturer:   row.Make,
			Model:          row.Model,
			Severity:       result.Severity().String(),
			Classification: string(result.Classification),
			ImportStatus:   string(row.ImportReadiness()),
			MissingFields:  row.MissingImportFields(),
			ExistingDevice: result.ExistingDevice,
			Findings:       findings,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}

// exportMarkdown writes a human-readable validation report.
func exportMarkdown(results []*models.RowResult, path string, opts Options) error {
	var b strings.Builder

	b.WriteString("# Rack Placement Validation Report\n\n")
	if opts.SiteName != "" {
		fmt.Fprintf(&b, "- Site: %s\n", opts.SiteName)
	}
	if opts.SourceFile != "" {
		fmt.Fprintf(&b, "- Source: %s\n", opts.SourceFile)
	}
	fmt.Fprintf(&b, "- Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(&b, "- Rows: %d\n\n", len(results))

	counts := make(map[models.Classification]int)
	for _, result := range results {
		counts[result.Classification]++
	}
	b.WriteString("## Summary\n\n")
	b.WriteString("| Classification | Rows |\n|---|---|\n")
	for _, classification := range []models.Classification{
		models.ClassificationNetBoxUpdate,
		models.ClassificationNoAction,
		models.ClassificationReviewRequired,
		models.ClassificationInvalid,
	} {
		fmt.Fprintf(&b, "| %s | %d |\n", classification, counts[classification])
	}

	b.WriteString("\n## Rows\n\n")
	b.WriteString("| Row | Rack | RU | Height | Face | Device | Severity | Classification | Findings |\n")
	b.WriteString("|---|---|---|---|---|---|---|---|---|\n")
	for _, result := range results {
		row := result.Row
		messages := make([]string, 0, len(result.Findings))
		for _, f := range result.Findings {
			messages = append(messages, fmt.Sprintf("%s: %s", f.Code, f.Message))
		}
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s | %s | %s | %s |\n",
			row.RowNumber,
			row.Rack,
			utils.FormatIntPtr(row.RUPosition),
			utils.FormatIntPtr(row.RUHeight),
			row.Face.String(),
			row.Hostname,
			result.Severity().String(),
			result.Classification,
			strings.Join(messages, "<br>"),
		)
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}
