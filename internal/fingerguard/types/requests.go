package types

// HeartbeatRequest is the periodic liveness/status report from a device.
type HeartbeatRequest struct {
	DeviceID  string     `json:"deviceId"`
	Status    string     `json:"status,omitempty"`
	Timestamp string     `json:"timestamp,omitempty"`
	Telemetry *Telemetry `json:"telemetry,omitempty"`
}

// HeartbeatResponse carries the drained command queue back to the device.
// Commands is never null on the wire: a device with nothing pending
// receives an empty array.
type HeartbeatResponse struct {
	Success    bool      `json:"success"`
	DeviceID   string    `json:"deviceId"`
	Commands   []Command `json:"commands"`
	ServerTime string    `json:"serverTime"`
}

// StatusRequest is the device's full self-report: which users it holds
// locally, plus telemetry.
type StatusRequest struct {
	DeviceID  string     `json:"deviceId"`
	Users     []User     `json:"users"`
	Telemetry *Telemetry `json:"telemetry,omitempty"`
}

type AckResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type DeviceResponse struct {
	Success bool   `json:"success"`
	Device  Device `json:"device"`
}

type DeviceListResponse struct {
	Success bool     `json:"success"`
	Devices []Device `json:"devices"`
}
