package validator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/foxbe/netbox-trust-boundary/pkg/inventory"
	"github.com/foxbe/netbox-trust-boundary/pkg/models"
)

// Engine validates placement rows against an inventory snapshot. It is
// read-only and deterministic: the same row and snapshot always produce
// the same result, and nothing is ever written back to NetBox.
type Engine struct {
	snapshot    *inventory.Snapshot
	namingRegex *regexp.Regexp
}

// NewEngine creates a validation engine. A nil snapshot is a programming
// error, not a domain condition, and panics. The naming pattern is
// optional; pass nil to skip the naming-convention check.
func NewEngine(snapshot *inventory.Snapshot, namingRegex *regexp.Regexp) *Engine {
	if snapshot == nil {
		panic("validator: nil inventory snapshot")
	}
	return &Engine{
		snapshot:    snapshot,
		namingRegex: namingRegex,
	}
}

// Validate runs all checks on a single row. Malformed data never aborts
// validation; it becomes an INVALID finding, which is terminal for the row.
func (e *Engine) Validate(row *models.Row) *models.RowResult {
	result := models.NewRowResult(row)

	e.checkRequiredFields(row, result)
	if result.HasSeverity(models.SeverityInvalid) {
		result.Classification = models.ClassificationInvalid
		return result
	}

	rack := e.checkRackExists(row, result)
	if rack == nil {
		// No rack height to validate against; position checks are moot.
		result.Classification = models.ClassificationReviewRequired
		return result
	}

	e.checkRUInRange(row, rack.UHeight, result)

	e.checkRUAvailable(row, rack.ID, result)

	e.checkDeviceExists(row, rack.ID, result)

	if e.namingRegex != nil {
		e.checkNamingConvention(row, result)
	}

	result.Classification = e.classify(result)

	return result
}

// checkRequiredFields verifies rack, position and height are present.
// Also warns about fields a NetBox import would require, without blocking.
func (e *Engine) checkRequiredFields(row *models.Row, result *models.RowResult) {
	var missing []string
	if row.Rack == "" {
		missing = append(missing, "rack")
	}
	if row.RUPosition == nil {
		missing = append(missing, "ru_position")
	}
	if row.RUHeight == nil {
		missing = append(missing, "ru_height")
	}

	if len(missing) > 0 {
		result.AddFinding(models.CodeMissingRequired, models.SeverityInvalid,
			fmt.Sprintf("Missing required field(s): %s", strings.Join(missing, ", ")), nil)
	}

	var importMissing []string
	if row.DeviceRole == "" {
		importMissing = append(importMissing, "device_role")
	}
	if len(importMissing) > 0 {
		result.AddFinding(models.CodeNetBoxRequiredMissing, models.SeverityWarn,
			fmt.Sprintf("NetBox import requires: %s", strings.Join(importMissing, ", ")),
			map[string]interface{}{"missing_fields": importMissing})
	}
}

// checkRackExists resolves the rack name in the snapshot. Returns nil when
// the rack is unknown, which short-circuits the remaining position checks.
func (e *Engine) checkRackExists(row *models.Row, result *models.RowResult) *inventory.Rack {
	rack := e.snapshot.GetRack(row.Rack)
	if rack == nil {
		result.AddFinding(models.CodeRackNotFound, models.SeverityFail,
			fmt.Sprintf("Rack '%s' not found in NetBox", row.Rack),
			map[string]interface{}{"rack": row.Rack, "site": e.snapshot.SiteName})
		return nil
	}
	return rack
}

// checkRUInRange verifies the device fits inside the rack. Does not
// short-circuit: occupancy is still checked afterwards.
func (e *Engine) checkRUInRange(row *models.Row, rackHeight int, result *models.RowResult) {
	if row.RUPosition == nil || row.RUHeight == nil {
		return
	}

	position := *row.RUPosition
	topRU := row.TopRU()

	if position < 1 {
		result.AddFinding(models.CodeRUOutOfRange, models.SeverityFail,
			fmt.Sprintf("RU position %d is below rack (min: 1)", position),
			map[string]interface{}{"ru_position": position, "min_ru": 1})
	} else if topRU > rackHeight {
		result.AddFinding(models.CodeRUOutOfRange, models.SeverityFail,
			fmt.Sprintf("Device extends to RU %d, exceeds rack height (%dU)", topRU, rackHeight),
			map[string]interface{}{
				"ru_position": position,
				"ru_height":   *row.RUHeight,
				"top_ru":      topRU,
				"rack_height": rackHeight,
			})
	}
}

// checkRUAvailable detects face-aware occupancy conflicts over every rack
// unit the row would occupy. Returns the primary conflicting device.
func (e *Engine) checkRUAvailable(row *models.Row, rackID int, result *models.RowResult) *inventory.Device {
	if row.RUPosition == nil || row.RUHeight == nil {
		return nil
	}

	// Collect distinct conflicting devices across the requested range.
	seen := make(map[int]bool)
	var conflicts []*inventory.Device
	for ru := *row.RUPosition; ru <= row.TopRU(); ru++ {
		for _, device := range e.snapshot.FindConflictsAt(rackID, ru, row.Face) {
			if !seen[device.ID] {
				seen[device.ID] = true
				conflicts = append(conflicts, device)
			}
		}
	}

	if len(conflicts) == 0 {
		return nil
	}

	primary := conflicts[0]
	if primary.Name != "" {
		result.ExistingDevice = primary.Name
	} else {
		result.ExistingDevice = fmt.Sprintf("Device #%d", primary.ID)
	}

	conflictEvidence := make([]map[string]interface{}, 0, len(conflicts))
	for _, d := range conflicts {
		start, end := d.RURange()
		conflictEvidence = append(conflictEvidence, map[string]interface{}{
			"device_id":    d.ID,
			"device_name":  d.Name,
			"ru_start":     start,
			"ru_end":       end,
			"device_type":  d.DeviceType,
			"manufacturer": d.Manufacturer,
			"face":         d.Face.String(),
		})
	}
	evidence := map[string]interface{}{
		"rack":               row.Rack,
		"csv_make":           row.Make,
		"csv_model":          row.Model,
		"csv_hostname":       row.Hostname,
		"csv_face":           row.Face.String(),
		"requested_ru_start": *row.RUPosition,
		"requested_ru_end":   row.TopRU(),
		"conflicts":          conflictEvidence,
	}

	if len(conflicts) == 1 {
		result.AddFinding(models.CodeRUCollision, models.SeverityWarn,
			fmt.Sprintf("Position occupied by %s (RU %s)", describeDevice(primary), describeRange(primary)),
			evidence)
		e.checkMakeModel(row, primary, result)
	} else {
		names := make([]string, 0, len(conflicts))
		for _, d := range conflicts {
			if d.Name != "" {
				names = append(names, d.Name)
			} else {
				names = append(names, fmt.Sprintf("Device #%d", d.ID))
			}
		}
		result.AddFinding(models.CodeRUCollision, models.SeverityWarn,
			fmt.Sprintf("Position conflicts with %d devices: %s", len(conflicts), strings.Join(names, ", ")),
			evidence)
	}

	return primary
}

// checkMakeModel compares the row's manufacturer and model against the
// single conflicting device, case-insensitive and whitespace-trimmed.
// Fields absent on either side are skipped, not treated as mismatches.
func (e *Engine) checkMakeModel(row *models.Row, device *inventory.Device, result *models.RowResult) {
	if row.Make == "" && row.Model == "" {
		return
	}

	var mismatches, matches []string

	if row.Make != "" && device.Manufacturer != "" {
		if !equalFolded(row.Make, device.Manufacturer) {
			mismatches = append(mismatches,
				fmt.Sprintf("Make: CSV='%s' vs NetBox='%s'", row.Make, device.Manufacturer))
		} else {
			matches = append(matches, fmt.Sprintf("Make: '%s'", row.Make))
		}
	}

	if row.Model != "" && device.DeviceType != "" {
		if !equalFolded(row.Model, device.DeviceType) {
			mismatches = append(mismatches,
				fmt.Sprintf("Model: CSV='%s' vs NetBox='%s'", row.Model, device.DeviceType))
		} else {
			matches = append(matches, fmt.Sprintf("Model: '%s'", row.Model))
		}
	}

	evidence := map[string]interface{}{
		"csv_make":            row.Make,
		"csv_model":           row.Model,
		"netbox_manufacturer": device.Manufacturer,
		"netbox_device_type":  device.DeviceType,
	}

	if len(mismatches) > 0 {
		result.AddFinding(models.CodeMakeModelMismatch, models.SeverityWarn,
			fmt.Sprintf("Data differs from NetBox: %s", strings.Join(mismatches, "; ")), evidence)
	} else if len(matches) > 0 {
		result.AddFinding(models.CodeMakeModelMatch, models.SeverityPass,
			fmt.Sprintf("Data matches NetBox: %s", strings.Join(matches, "; ")), evidence)
	}
}

// checkDeviceExists looks the row's hostname up in the resolved rack.
func (e *Engine) checkDeviceExists(row *models.Row, rackID int, result *models.RowResult) {
	if row.Hostname == "" {
		return
	}

	existing := e.snapshot.FindDeviceByName(row.Hostname, rackID)
	if existing == nil {
		return
	}

	samePosition := existing.Position != nil && row.RUPosition != nil &&
		*existing.Position == *row.RUPosition

	if samePosition {
		result.AddFinding(models.CodeDeviceExistsSamePosition, models.SeverityPass,
			fmt.Sprintf("Device '%s' already exists at this position", row.Hostname), nil)
	} else {
		position := "unknown"
		if existing.Position != nil {
			position = fmt.Sprintf("%d", *existing.Position)
		}
		result.AddFinding(models.CodeDeviceExistsDifferentPosition, models.SeverityWarn,
			fmt.Sprintf("Device '%s' exists but at RU %s", row.Hostname, position), nil)
	}
}

// checkNamingConvention validates the hostname against the configured
// pattern. The pattern must match from the start of the hostname; a
// convention buried mid-string does not count.
func (e *Engine) checkNamingConvention(row *models.Row, result *models.RowResult) {
	if row.Hostname == "" {
		result.AddFinding(models.CodeNamingNoHostname, models.SeverityWarn,
			"No hostname to validate against naming convention", nil)
		return
	}

	loc := e.namingRegex.FindStringIndex(row.Hostname)
	if loc == nil || loc[0] != 0 {
		result.AddFinding(models.CodeNamingMismatch, models.SeverityWarn,
			fmt.Sprintf("Hostname '%s' does not match naming pattern", row.Hostname), nil)
	}
}

// classify reduces a result's findings to an action bucket, in priority
// order: INVALID, then any FAIL, then a clean exists-at-same-position,
// then conflicts, then safe to update.
func (e *Engine) classify(result *models.RowResult) models.Classification {
	if result.HasSeverity(models.SeverityInvalid) {
		return models.ClassificationInvalid
	}
	if result.HasSeverity(models.SeverityFail) {
		return models.ClassificationReviewRequired
	}
	if result.HasCode(models.CodeDeviceExistsSamePosition) {
		return models.ClassificationNoAction
	}
	if result.HasCode(models.CodeRUCollision) || result.HasCode(models.CodeDeviceExistsDifferentPosition) {
		return models.ClassificationReviewRequired
	}
	return models.ClassificationNetBoxUpdate
}

// describeDevice formats a device for a collision message, including
// make/model and face when known.
func describeDevice(d *inventory.Device) string {
	name := d.Name
	if name == "" {
		name = "unnamed"
	}
	desc := fmt.Sprintf("'%s'", name)
	if d.Manufacturer != "" || d.DeviceType != "" {
		manufacturer := d.Manufacturer
		if manufacturer == "" {
			manufacturer = "?"
		}
		deviceType := d.DeviceType
		if deviceType == "" {
			deviceType = "?"
		}
		desc += fmt.Sprintf(" (%s %s)", manufacturer, deviceType)
	}
	desc += fmt.Sprintf(" [%s]", d.Face.String())
	return desc
}

// describeRange formats a device's occupied RU interval.
func describeRange(d *inventory.Device) string {
	if d.Position == nil {
		return "?"
	}
	start, end := d.RURange()
	return fmt.Sprintf("%d-%d", start, end)
}

// equalFolded compares two values case-insensitively after trimming.
func equalFolded(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
