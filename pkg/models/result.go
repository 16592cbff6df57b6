package models

// Classification is the action bucket a validated row lands in.
type Classification string

const (
	ClassificationNoAction       Classification = "NO_ACTION"
	ClassificationNetBoxUpdate   Classification = "NETBOX_UPDATE"
	ClassificationReviewRequired Classification = "REVIEW_REQUIRED"
	ClassificationInvalid        Classification = "INVALID"
)

// RowResult is the complete validation outcome for one row. Findings keep
// insertion order, which is check order. Results are write-once except for
// the batch duplicate pass, which may append one CSV_COLLISION finding and
// escalate the classification.
type RowResult struct {
	Row            *Row
	Findings       []Finding
	Classification Classification
	// ExistingDevice names the first device found occupying the requested
	// position, when a collision was detected.
	ExistingDevice string
}

// NewRowResult creates an empty result for a row.
func NewRowResult(row *Row) *RowResult {
	return &RowResult{Row: row}
}

// AddFinding appends a finding in check order.
func (r *RowResult) AddFinding(code Code, severity Severity, message string, evidence map[string]interface{}) {
	r.Findings = append(r.Findings, Finding{
		Code:     code,
		Severity: severity,
		Message:  message,
		Evidence: evidence,
	})
}

// Severity returns the worst severity among the findings, PASS if none.
func (r *RowResult) Severity() Severity {
	worst := SeverityPass
	for _, f := range r.Findings {
		if f.Severity > worst {
			worst = f.Severity
		}
	}
	return worst
}

// HasCode reports whether any finding carries the given code.
func (r *RowResult) HasCode(code Code) bool {
	for _, f := range r.Findings {
		if f.Code == code {
			return true
		}
	}
	return false
}

// HasSeverity reports whether any finding carries the given severity.
func (r *RowResult) HasSeverity(severity Severity) bool {
	for _, f := range r.Findings {
		if f.Severity == severity {
			return true
		}
	}
	return false
}

// PrimaryFinding returns the first finding, or nil if the row is clean.
func (r *RowResult) PrimaryFinding() *Finding {
	if len(r.Findings) == 0 {
		return nil
	}
	return &r.Findings[0]
}
