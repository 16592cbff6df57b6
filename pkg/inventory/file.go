package inventory

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/foxbe/netbox-trust-boundary/pkg/models"
)

// snapshotFile is the YAML shape of an offline inventory export.
type snapshotFile struct {
	SiteID   int    `yaml:"site_id"`
	SiteName string `yaml:"site_name"`
	Racks    []struct {
		ID      int    `yaml:"id"`
		Name    string `yaml:"name"`
		UHeight int    `yaml:"u_height"`
	} `yaml:"racks"`
	Devices []struct {
		ID           int    `yaml:"id"`
		Name         string `yaml:"name"`
		RackID       int    `yaml:"rack_id"`
		RackName     string `yaml:"rack_name"`
		Position     *int   `yaml:"position"`
		UHeight      int    `yaml:"u_height"`
		DeviceType   string `yaml:"device_type"`
		Manufacturer string `yaml:"manufacturer"`
		Face         string `yaml:"face"`
	} `yaml:"devices"`
}

// LoadSnapshotFile builds a snapshot from a YAML inventory file instead of
// the live API. Used for air-gapped validation runs and tests.
func LoadSnapshotFile(path string) (*Snapshot, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read inventory file: %w", err)
	}

	var file snapshotFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("failed to parse inventory file %s: %w", path, err)
	}

	snapshot := NewSnapshot(file.SiteID, file.SiteName)
	for _, r := range file.Racks {
		snapshot.AddRack(&Rack{
			ID:       r.ID,
			Name:     r.Name,
			SiteID:   file.SiteID,
			SiteName: file.SiteName,
			UHeight:  r.UHeight,
		})
	}
	for _, d := range file.Devices {
		snapshot.AddDevice(&Device{
			ID:           d.ID,
			Name:         d.Name,
			RackID:       d.RackID,
			RackName:     d.RackName,
			Position:     d.Position,
			UHeight:      d.UHeight,
			DeviceType:   d.DeviceType,
			Manufacturer: d.Manufacturer,
			Face:         models.ParseFace(d.Face),
		})
	}

	return snapshot, nil
}
