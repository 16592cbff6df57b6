package inventory

import (
	"strings"

	"github.com/foxbe/netbox-trust-boundary/internal/constants"
	"github.com/foxbe/netbox-trust-boundary/pkg/models"
)

// Rack is one cached NetBox rack.
type Rack struct {
	ID       int
	Name     string
	SiteID   int
	SiteName string
	UHeight  int
}

// Device is one cached NetBox device. Position is nil for unracked or
// unpositioned devices; such a device occupies no rack units.
type Device struct {
	ID           int
	Name         string
	RackID       int
	RackName     string
	Position     *int
	UHeight      int
	DeviceType   string
	Manufacturer string
	Face         models.Face
}

// RURange returns the closed interval of rack units the device occupies.
// A device with unknown position returns (0, 0).
func (d *Device) RURange() (int, int) {
	if d.Position == nil {
		return 0, 0
	}
	height := d.UHeight
	if height < 1 {
		height = constants.DefaultDeviceHeight
	}
	return *d.Position, *d.Position + height - 1
}

// OccupiesRU reports whether the device occupies the given rack unit.
func (d *Device) OccupiesRU(ru int) bool {
	if d.Position == nil {
		return false
	}
	start, end := d.RURange()
	return start <= ru && ru <= end
}

// FacesConflict applies the authoritative face-conflict rule: a full-depth
// party conflicts with anything, and identical faces conflict. Front and
// rear coexist at the same rack unit.
func FacesConflict(existing, requested models.Face) bool {
	if requested == models.FaceFullDepth || existing == models.FaceFullDepth {
		return true
	}
	return existing == requested
}

// Snapshot is a read-only view of one site's racks and devices, indexed for
// lookup by name and by (rack, rack unit). A snapshot is assembled once and
// treated as immutable for the duration of a validation run; refreshing
// means building a new snapshot and swapping the reference wholesale.
type Snapshot struct {
	SiteID   int
	SiteName string

	racks         map[string]*Rack
	devices       []*Device
	devicesByRack map[int][]*Device
}

// NewSnapshot creates an empty snapshot for a site.
func NewSnapshot(siteID int, siteName string) *Snapshot {
	return &Snapshot{
		SiteID:        siteID,
		SiteName:      siteName,
		racks:         make(map[string]*Rack),
		devicesByRack: make(map[int][]*Device),
	}
}

// AddRack indexes a rack by its lowercase name. Intended for snapshot
// assembly only; never call it once validation has started.
func (s *Snapshot) AddRack(rack *Rack) {
	if rack == nil || rack.Name == "" {
		return
	}
	if rack.UHeight < 1 {
		rack.UHeight = constants.DefaultRackHeight
	}
	s.racks[strings.ToLower(rack.Name)] = rack
}

// AddDevice indexes a device by its owning rack.
func (s *Snapshot) AddDevice(device *Device) {
	if device == nil {
		return
	}
	if device.UHeight < 1 {
		device.UHeight = constants.DefaultDeviceHeight
	}
	s.devices = append(s.devices, device)
	if device.RackID != 0 {
		s.devicesByRack[device.RackID] = append(s.devicesByRack[device.RackID], device)
	}
}

// GetRack looks up a rack by name, case-insensitive.
func (s *Snapshot) GetRack(name string) *Rack {
	return s.racks[strings.ToLower(strings.TrimSpace(name))]
}

// RackNames returns the names of all cached racks.
func (s *Snapshot) RackNames() []string {
	names := make([]string, 0, len(s.racks))
	for _, rack := range s.racks {
		names = append(names, rack.Name)
	}
	return names
}

// RackCount returns the number of cached racks.
func (s *Snapshot) RackCount() int {
	return len(s.racks)
}

// DeviceCount returns the number of cached devices.
func (s *Snapshot) DeviceCount() int {
	return len(s.devices)
}

// DevicesInRack returns every cached device owned by the rack.
func (s *Snapshot) DevicesInRack(rackID int) []*Device {
	return s.devicesByRack[rackID]
}

// FindConflictsAt returns every device whose occupancy of the given rack
// unit conflicts with a request on the given face.
func (s *Snapshot) FindConflictsAt(rackID, ru int, requestedFace models.Face) []*Device {
	var conflicts []*Device
	for _, device := range s.DevicesInRack(rackID) {
		if device.OccupiesRU(ru) && FacesConflict(device.Face, requestedFace) {
			conflicts = append(conflicts, device)
		}
	}
	return conflicts
}

// FindAllAt returns every device occupying the given rack unit, regardless
// of face. Used for reporting, not conflict decisions.
func (s *Snapshot) FindAllAt(rackID, ru int) []*Device {
	var occupants []*Device
	for _, device := range s.DevicesInRack(rackID) {
		if device.OccupiesRU(ru) {
			occupants = append(occupants, device)
		}
	}
	return occupants
}

// FindDeviceByName looks up a device by name, case-insensitive, optionally
// scoped to a rack. Pass rackID 0 for an unscoped lookup.
func (s *Snapshot) FindDeviceByName(name string, rackID int) *Device {
	if name == "" {
		return nil
	}
	target := strings.ToLower(strings.TrimSpace(name))
	for _, device := range s.devices {
		if device.Name == "" || strings.ToLower(device.Name) != target {
			continue
		}
		if rackID == 0 || device.RackID == rackID {
			return device
		}
	}
	return nil
}
