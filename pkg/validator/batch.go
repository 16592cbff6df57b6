package validator

import (
	"fmt"
	"strings"

	"github.com/foxbe/netbox-trust-boundary/pkg/models"
)

// DetectDuplicates maps each "rack:position" key shared by more than one
// row to the row numbers claiming it. The key deliberately ignores height:
// two rows anchored at the same slot are flagged even when their RU ranges
// would not overlap. That conservative policy is intentional.
func DetectDuplicates(rows []*models.Row) map[string][]int {
	positions := make(map[string][]int)
	for _, row := range rows {
		key, ok := duplicateKey(row)
		if !ok {
			continue
		}
		positions[key] = append(positions[key], row.RowNumber)
	}

	duplicates := make(map[string][]int)
	for key, rowNumbers := range positions {
		if len(rowNumbers) > 1 {
			duplicates[key] = rowNumbers
		}
	}
	return duplicates
}

// ValidateAll validates every row and then runs the mandatory duplicate
// pass: rows sharing a rack and start position each receive a
// CSV_COLLISION finding naming the others, and are escalated to
// REVIEW_REQUIRED unless already INVALID.
func (e *Engine) ValidateAll(rows []*models.Row) []*models.RowResult {
	duplicates := DetectDuplicates(rows)

	results := make([]*models.RowResult, 0, len(rows))
	for _, row := range rows {
		result := e.Validate(row)

		if key, ok := duplicateKey(row); ok {
			if rowNumbers, dup := duplicates[key]; dup {
				others := make([]string, 0, len(rowNumbers)-1)
				for _, n := range rowNumbers {
					if n != row.RowNumber {
						others = append(others, fmt.Sprintf("%d", n))
					}
				}
				result.AddFinding(models.CodeCSVCollision, models.SeverityFail,
					fmt.Sprintf("Same rack/RU position as row(s): %s", strings.Join(others, ", ")),
					map[string]interface{}{"duplicate_rows": others})
				if result.Classification != models.ClassificationInvalid {
					result.Classification = models.ClassificationReviewRequired
				}
			}
		}

		results = append(results, result)
	}

	return results
}

// duplicateKey builds the batch duplicate-detection key for a row.
// Rows without a rack or position cannot collide within the batch.
func duplicateKey(row *models.Row) (string, bool) {
	if row.Rack == "" || row.RUPosition == nil {
		return "", false
	}
	return fmt.Sprintf("%s:%d", strings.ToLower(row.Rack), *row.RUPosition), true
}
