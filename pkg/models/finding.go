package models

// Severity is the weight of a single finding. Ordering matters:
// INVALID > FAIL > WARN > PASS.
type Severity int

const (
	SeverityPass Severity = iota
	SeverityWarn
	SeverityFail
	SeverityInvalid
)

// String returns the canonical severity label.
func (s Severity) String() string {
	switch s {
	case SeverityInvalid:
		return "INVALID"
	case SeverityFail:
		return "FAIL"
	case SeverityWarn:
		return "WARN"
	default:
		return "PASS"
	}
}

// Code identifies a validation finding. The set is closed so that
// classification and recommendation lookups stay exhaustive.
type Code string

const (
	CodeOK                            Code = "OK"
	CodeDeviceExistsSamePosition      Code = "DEVICE_EXISTS_SAME_POSITION"
	CodeRackNotFound                  Code = "RACK_NOT_FOUND"
	CodeRUOutOfRange                  Code = "RU_OUT_OF_RANGE"
	CodeRUCollision                   Code = "RU_COLLISION"
	CodeCSVCollision                  Code = "CSV_COLLISION"
	CodeMissingRequired               Code = "MISSING_REQUIRED"
	CodeDeviceExistsDifferentPosition Code = "DEVICE_EXISTS_DIFFERENT_POSITION"
	CodeMakeModelMismatch             Code = "MAKE_MODEL_MISMATCH"
	CodeMakeModelMatch                Code = "MAKE_MODEL_MATCH"
	CodeNamingMismatch                Code = "NAMING_MISMATCH"
	CodeNamingNoHostname              Code = "NAMING_NO_HOSTNAME"
	CodeNetBoxRequiredMissing         Code = "NETBOX_REQUIRED_MISSING"
)

// recommendations maps each finding code to its operator guidance.
var recommendations = map[Code]string{
	CodeOK:                            "No action required.",
	CodeDeviceExistsSamePosition:      "Device already exists at this position. No action needed.",
	CodeRackNotFound:                  "Verify rack name or create rack in NetBox before importing.",
	CodeRUOutOfRange:                  "Adjust RU position to fit within rack height.",
	CodeRUCollision:                   "Choose a different RU position or relocate conflicting device(s).",
	CodeCSVCollision:                  "Remove duplicate row from CSV or resolve position conflict.",
	CodeMissingRequired:               "Add missing required field(s) to CSV row.",
	CodeDeviceExistsDifferentPosition: "Device exists at different position. Verify which is correct.",
	CodeMakeModelMismatch:             "CSV make/model differs from NetBox. Check for typos or update if needed.",
	CodeMakeModelMatch:                "Make/model verified against NetBox. Data is consistent.",
	CodeNamingMismatch:                "Hostname does not match naming convention. Review and correct if needed.",
	CodeNamingNoHostname:              "Consider adding a hostname for better identification.",
	CodeNetBoxRequiredMissing:         "Add device_role to CSV. NetBox API requires this field for import.",
}

// Finding is one detected condition on a row.
type Finding struct {
	Code     Code
	Severity Severity
	Message  string
	Evidence map[string]interface{}
}

// Recommendation returns the operator guidance for this finding's code.
func (f Finding) Recommendation() string {
	if rec, ok := recommendations[f.Code]; ok {
		return rec
	}
	return "Review and resolve manually."
}
