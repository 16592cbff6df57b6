package utils

import (
	"testing"

	"github.com/foxbe/netbox-trust-boundary/pkg/models"
)

func TestClassificationLabel(t *testing.T) {
	tests := []struct {
		classification models.Classification
		expected       string
	}{
		{models.ClassificationNetBoxUpdate, "safe to import"},
		{models.ClassificationNoAction, "no action"},
		{models.ClassificationReviewRequired, "needs review"},
		{models.ClassificationInvalid, "invalid"},
		{models.Classification("CUSTOM"), "CUSTOM"},
	}

	for _, tt := range tests {
		if got := ClassificationLabel(tt.classification); got != tt.expected {
			t.Errorf("ClassificationLabel(%s) = %q, expected %q", tt.classification, got, tt.expected)
		}
	}
}

func TestColorFuncsNeverNil(t *testing.T) {
	severities := []models.Severity{
		models.SeverityPass, models.SeverityWarn, models.SeverityFail, models.SeverityInvalid,
	}
	for _, severity := range severities {
		if SeverityColor(severity) == nil {
			t.Errorf("SeverityColor(%s) returned nil", severity)
		}
	}

	classifications := []models.Classification{
		models.ClassificationNoAction, models.ClassificationNetBoxUpdate,
		models.ClassificationReviewRequired, models.ClassificationInvalid,
	}
	for _, classification := range classifications {
		if ClassificationColor(classification) == nil {
			t.Errorf("ClassificationColor(%s) returned nil", classification)
		}
	}
}
