package client

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/foxbe/netbox-trust-boundary/internal/constants"
	"github.com/foxbe/netbox-trust-boundary/pkg/inventory"
	"github.com/foxbe/netbox-trust-boundary/pkg/models"
	"github.com/foxbe/netbox-trust-boundary/pkg/utils"
)

// NetBoxClient is a read-only NetBox API client. It only ever issues GET
// requests; this tool validates against NetBox, it never changes it.
type NetBoxClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *utils.Logger
}

// Object represents a generic NetBox object
type Object map[string]interface{}

// NewClient creates a new read-only NetBox API client
func NewClient(baseURL, token string, verifySSL bool, logger *utils.Logger) *NetBoxClient {
	httpClient := &http.Client{
		Timeout: constants.RequestTimeoutSec * time.Second,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: !verifySSL},
		},
	}

	return &NetBoxClient{
		baseURL:    baseURL,
		token:      token,
		httpClient: httpClient,
		logger:     logger,
	}
}

// IsConfigured reports whether the client has a URL and token.
func (c *NetBoxClient) IsConfigured() bool {
	return c.baseURL != "" && c.token != ""
}

// Get makes a GET request to the NetBox API and decodes the response.
func (c *NetBoxClient) Get(endpoint string, params map[string]string) (Object, error) {
	if !c.IsConfigured() {
		return nil, fmt.Errorf("NetBox client not configured (missing URL or token)")
	}

	requestURL := fmt.Sprintf("%s/api/%s", c.baseURL, endpoint)
	if len(params) > 0 {
		values := url.Values{}
		for k, v := range params {
			values.Set(k, v)
		}
		requestURL += "?" + values.Encode()
	}

	req, err := http.NewRequest("GET", requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Token "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("API error %d: %s", resp.StatusCode, string(respBody))
	}

	var result Object
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return result, nil
}

// GetAll walks every page of a paginated endpoint.
func (c *NetBoxClient) GetAll(endpoint string, params map[string]string) ([]Object, error) {
	var results []Object

	pageParams := make(map[string]string, len(params)+2)
	for k, v := range params {
		pageParams[k] = v
	}
	pageParams["limit"] = strconv.Itoa(constants.APIPageLimit)

	offset := 0
	for {
		pageParams["offset"] = strconv.Itoa(offset)
		data, err := c.Get(endpoint, pageParams)
		if err != nil {
			return nil, err
		}

		page := objectList(data["results"])
		results = append(results, page...)

		if data["next"] == nil || len(page) == 0 {
			break
		}
		offset += len(page)
	}

	return results, nil
}

// TestConnection verifies the API is reachable and returns its version.
func (c *NetBoxClient) TestConnection() (string, error) {
	data, err := c.Get(constants.EndpointStatus, nil)
	if err != nil {
		return "", err
	}
	if version, ok := data["netbox-version"].(string); ok {
		return version, nil
	}
	return "unknown", nil
}

// ResolveSite finds a site by numeric ID or slug.
func (c *NetBoxClient) ResolveSite(identifier string) (Object, error) {
	if identifier == "" {
		return nil, fmt.Errorf("no site specified")
	}

	if _, err := strconv.Atoi(identifier); err == nil {
		site, err := c.Get(constants.EndpointSites+identifier+"/", nil)
		if err == nil && site != nil {
			return site, nil
		}
	}

	data, err := c.Get(constants.EndpointSites, map[string]string{"slug": identifier})
	if err != nil {
		return nil, err
	}
	sites := objectList(data["results"])
	if len(sites) == 0 {
		return nil, fmt.Errorf("site not found: %s", identifier)
	}
	return sites[0], nil
}

// BuildSnapshot fetches every rack and device for one site and assembles a
// fresh inventory snapshot. The caller swaps the returned snapshot in
// wholesale: a validation run never observes a half-populated one.
func (c *NetBoxClient) BuildSnapshot(siteIdentifier string) (*inventory.Snapshot, error) {
	site, err := c.ResolveSite(siteIdentifier)
	if err != nil {
		return nil, err
	}

	siteID := objectInt(site["id"])
	siteName, _ := site["name"].(string)
	snapshot := inventory.NewSnapshot(siteID, siteName)

	siteFilter := map[string]string{"site_id": strconv.Itoa(siteID)}

	c.logger.Debug("Fetching racks for site %s...", siteName)
	racks, err := c.GetAll(constants.EndpointRacks, siteFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch racks: %w", err)
	}
	for _, rackData := range racks {
		snapshot.AddRack(&inventory.Rack{
			ID:       objectInt(rackData["id"]),
			Name:     objectString(rackData, "name"),
			SiteID:   siteID,
			SiteName: siteName,
			UHeight:  objectInt(rackData["u_height"]),
		})
	}

	c.logger.Debug("Fetching devices for site %s...", siteName)
	devices, err := c.GetAll(constants.EndpointDevices, siteFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch devices: %w", err)
	}
	for _, devData := range devices {
		snapshot.AddDevice(parseDevice(devData))
	}

	c.logger.Debug("Snapshot ready: %d racks, %d devices", snapshot.RackCount(), snapshot.DeviceCount())
	return snapshot, nil
}

// parseDevice maps a NetBox device payload onto a snapshot device. Height
// and manufacturer live on the nested device_type object.
func parseDevice(data Object) *inventory.Device {
	device := &inventory.Device{
		ID:      objectInt(data["id"]),
		Name:    objectString(data, "name"),
		UHeight: constants.DefaultDeviceHeight,
	}

	if rack, ok := data["rack"].(map[string]interface{}); ok {
		device.RackID = objectInt(rack["id"])
		device.RackName = objectString(rack, "name")
	}

	if position, ok := data["position"].(float64); ok {
		device.Position = utils.IntPtr(int(position))
	}

	if deviceType, ok := data["device_type"].(map[string]interface{}); ok {
		if height := objectInt(deviceType["u_height"]); height > 0 {
			device.UHeight = height
		}
		device.DeviceType = objectString(deviceType, "model")
		if manufacturer, ok := deviceType["manufacturer"].(map[string]interface{}); ok {
			device.Manufacturer = objectString(manufacturer, "name")
		}
	}

	// NetBox renders face as {"value": "front", "label": "Front"};
	// absence means full-depth.
	if face, ok := data["face"].(map[string]interface{}); ok {
		if value, ok := face["value"].(string); ok {
			device.Face = models.ParseFace(value)
		}
	} else if value, ok := data["face"].(string); ok {
		device.Face = models.ParseFace(value)
	}

	return device
}

// objectList converts a decoded JSON array into a list of objects.
func objectList(value interface{}) []Object {
	raw, ok := value.([]interface{})
	if !ok {
		return nil
	}
	objects := make([]Object, 0, len(raw))
	for _, item := range raw {
		if obj, ok := item.(map[string]interface{}); ok {
			objects = append(objects, Object(obj))
		}
	}
	return objects
}

// objectInt extracts an int from the numeric formats JSON decoding produces.
func objectInt(value interface{}) int {
	switch v := value.(type) {
	case int:
		return v
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return 0
}

// objectString extracts a string field, with "" for absence or null.
func objectString(obj Object, key string) string {
	if s, ok := obj[key].(string); ok {
		return s
	}
	return ""
}
