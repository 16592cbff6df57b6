package models

import (
	"fmt"
	"strings"
)

// normalizeKey lowercases and trims a raw value for vocabulary matching.
func normalizeKey(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// Face is the mounting orientation of a device within a rack unit.
// The zero value means full-depth: the device occupies the whole depth
// of the slot and conflicts with any other device there.
type Face string

const (
	FaceFullDepth Face = ""
	FaceFront     Face = "front"
	FaceRear      Face = "rear"
)

// String returns the display form of the face.
func (f Face) String() string {
	if f == FaceFullDepth {
		return "full-depth"
	}
	return string(f)
}

// ParseFace normalizes a raw face/orientation value.
// Unknown values fall back to full-depth, matching NetBox's treatment
// of an absent face.
func ParseFace(value string) Face {
	switch normalizeKey(value) {
	case "front", "f", "fnt":
		return FaceFront
	case "rear", "r", "back", "bck":
		return FaceRear
	}
	return FaceFullDepth
}

// Row represents a single normalized placement request from the input CSV.
// RUPosition and RUHeight are pointers because absence must be
// distinguishable from zero; a row missing either is unprocessable.
type Row struct {
	RowNumber  int
	Rack       string
	RUPosition *int
	RUHeight   *int
	Make       string
	Model      string
	Hostname   string
	Face       Face
	DeviceRole string
	Status     string
	Site       string
	RawData    map[string]string
}

// DeviceIdentifier returns the best available identifier for this row's device.
func (r *Row) DeviceIdentifier() string {
	if r.Hostname != "" {
		return r.Hostname
	}
	if r.Make != "" && r.Model != "" {
		return fmt.Sprintf("%s %s", r.Make, r.Model)
	}
	return fmt.Sprintf("Row %d", r.RowNumber)
}

// TopRU returns the highest rack unit the requested placement would occupy.
// Only meaningful when both position and height are present.
func (r *Row) TopRU() int {
	if r.RUPosition == nil || r.RUHeight == nil {
		return 0
	}
	return *r.RUPosition + *r.RUHeight - 1
}

// ImportReadiness reports whether the row carries every field the NetBox
// bulk-import operation requires. This is independent of placement
// validity: a conflicting row can still be import-ready.
func (r *Row) ImportReadiness() ImportReadiness {
	if len(r.MissingImportFields()) == 0 {
		return ImportReady
	}
	return ImportIncomplete
}

// MissingImportFields returns the bulk-import fields absent from the row.
// Site is exempt: it defaults from configuration at import time.
func (r *Row) MissingImportFields() []string {
	var missing []string
	if r.Hostname == "" {
		missing = append(missing, "device_name")
	}
	if r.DeviceRole == "" {
		missing = append(missing, "device_role")
	}
	if r.Rack == "" {
		missing = append(missing, "rack")
	}
	if r.RUPosition == nil {
		missing = append(missing, "ru_position")
	}
	if r.RUHeight == nil {
		missing = append(missing, "ru_height")
	}
	if r.Make == "" {
		missing = append(missing, "manufacturer")
	}
	if r.Model == "" {
		missing = append(missing, "model")
	}
	return missing
}

// ImportReadiness reports whether a row can be handed to NetBox bulk import.
type ImportReadiness string

const (
	ImportReady      ImportReadiness = "READY"
	ImportIncomplete ImportReadiness = "INCOMPLETE"
)
