package inventory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/foxbe/netbox-trust-boundary/pkg/models"
)

func writeInventory(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "inventory.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write inventory: %v", err)
	}
	return path
}

func TestLoadSnapshotFile(t *testing.T) {
	path := writeInventory(t, `
site_id: 7
site_name: DC East
racks:
  - id: 11
    name: R1
    u_height: 48
  - id: 12
    name: R2
devices:
  - id: 100
    name: sw-01
    rack_id: 11
    rack_name: R1
    position: 40
    u_height: 1
    device_type: EX4300
    manufacturer: Juniper
    face: front
  - id: 101
    name: stor-01
    rack_id: 11
    rack_name: R1
    position: 10
    u_height: 4
`)

	snapshot, err := LoadSnapshotFile(path)
	if err != nil {
		t.Fatalf("LoadSnapshotFile() error: %v", err)
	}

	if snapshot.SiteID != 7 || snapshot.SiteName != "DC East" {
		t.Errorf("site = %d/%q, expected 7/DC East", snapshot.SiteID, snapshot.SiteName)
	}
	if snapshot.RackCount() != 2 {
		t.Fatalf("rack count = %d, expected 2", snapshot.RackCount())
	}

	r1 := snapshot.GetRack("R1")
	if r1 == nil || r1.UHeight != 48 {
		t.Fatalf("rack R1 = %+v, expected u_height 48", r1)
	}
	// Omitted u_height falls back to the standard rack size.
	r2 := snapshot.GetRack("r2")
	if r2 == nil || r2.UHeight != 42 {
		t.Fatalf("rack R2 = %+v, expected default u_height 42", r2)
	}

	devices := snapshot.DevicesInRack(11)
	if len(devices) != 2 {
		t.Fatalf("rack 11 has %d devices, expected 2", len(devices))
	}

	sw := snapshot.FindDeviceByName("sw-01", 11)
	if sw == nil {
		t.Fatal("sw-01 not found")
	}
	if sw.Face != models.FaceFront || sw.Manufacturer != "Juniper" {
		t.Errorf("sw-01 = %+v", sw)
	}

	stor := snapshot.FindDeviceByName("stor-01", 0)
	if stor == nil {
		t.Fatal("stor-01 not found")
	}
	// Omitted face means full-depth.
	if stor.Face != models.FaceFullDepth {
		t.Errorf("stor-01 face = %q, expected full-depth", stor.Face)
	}
	start, end := stor.RURange()
	if start != 10 || end != 13 {
		t.Errorf("stor-01 range = %d-%d, expected 10-13", start, end)
	}
}

func TestLoadSnapshotFileMissing(t *testing.T) {
	if _, err := LoadSnapshotFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadSnapshotFile() should fail for a missing file")
	}
}

func TestLoadSnapshotFileMalformed(t *testing.T) {
	path := writeInventory(t, "racks: [broken")
	if _, err := LoadSnapshotFile(path); err == nil {
		t.Error("LoadSnapshotFile() should fail on malformed YAML")
	}
}
