package remote

import (
	"ledmatrix/pkg/bitmap"
)

type PortsResponse struct {
	Ports     []string
	NoDevices bool
}

type RenderRequest struct {
	Packed bitmap.Packed
}

type DeviceResult struct {
	Port             string
	Error            string
	PermissionDenied bool
}

type Reply struct {
	Op        string
	Run       string
	Results   []DeviceResult
	NoDevices bool
}
