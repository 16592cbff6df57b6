package constants

// Default values
const (
	DefaultRackHeight   = 42
	DefaultDeviceHeight = 1
	DefaultStatus       = "active"
)

// NetBox API
const (
	APIPageLimit      = 1000
	RequestTimeoutSec = 30

	EndpointStatus  = "status/"
	EndpointSites   = "dcim/sites/"
	EndpointRacks   = "dcim/racks/"
	EndpointDevices = "dcim/devices/"
)

// Required CSV columns; a file missing any of these cannot be loaded.
var RequiredColumns = []string{"rack", "ru_position", "ru_height"}

// DefaultColumnAliases maps canonical field names to the column headers
// accepted for them (matched case-insensitively).
var DefaultColumnAliases = map[string][]string{
	"rack":        {"rack", "rack_location", "rack_name", "rack_id"},
	"ru_position": {"ru_position", "ru", "position", "ru_pos", "u_position"},
	"ru_height":   {"ru_height", "height", "u_height", "device_height", "size"},
	"make":        {"make", "manufacturer", "mfg", "vendor"},
	"model":       {"model", "model_number", "device_type", "type"},
	"hostname":    {"hostname", "name", "device_name", "host", "friendly_name"},
	"face":        {"face", "orientation", "side", "rack_face"},
	"device_role": {"device_role", "role", "device_type_role", "function"},
	"status":      {"status", "device_status", "state", "operational_status"},
	"site":        {"site", "site_name", "location_site", "facility"},
}

// StatusMap normalizes common status spellings to NetBox status values.
var StatusMap = map[string]string{
	"active":          "active",
	"online":          "active",
	"live":            "active",
	"planned":         "planned",
	"pending":         "planned",
	"staged":          "staged",
	"staging":         "staged",
	"failed":          "failed",
	"offline":         "offline",
	"decommissioned":  "decommissioning",
	"decommissioning": "decommissioning",
	"inventory":       "inventory",
}
