package utils

import (
	"github.com/fatih/color"

	"github.com/foxbe/netbox-trust-boundary/pkg/models"
)

// SeverityColor returns the sprint function used to render a severity
// in the terminal summary.
func SeverityColor(severity models.Severity) func(a ...interface{}) string {
	switch severity {
	case models.SeverityInvalid:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	case models.SeverityFail:
		return color.New(color.FgRed).SprintFunc()
	case models.SeverityWarn:
		return color.New(color.FgYellow).SprintFunc()
	default:
		return color.New(color.FgGreen).SprintFunc()
	}
}

// ClassificationColor returns the sprint function for a classification.
func ClassificationColor(classification models.Classification) func(a ...interface{}) string {
	switch classification {
	case models.ClassificationInvalid:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	case models.ClassificationReviewRequired:
		return color.New(color.FgYellow).SprintFunc()
	case models.ClassificationNoAction:
		return color.New(color.Faint).SprintFunc()
	default:
		return color.New(color.FgGreen).SprintFunc()
	}
}

// ClassificationLabel returns a short display label for a classification.
func ClassificationLabel(classification models.Classification) string {
	switch classification {
	case models.ClassificationInvalid:
		return "invalid"
	case models.ClassificationReviewRequired:
		return "needs review"
	case models.ClassificationNoAction:
		return "no action"
	case models.ClassificationNetBoxUpdate:
		return "safe to import"
	default:
		return string(classification)
	}
}
