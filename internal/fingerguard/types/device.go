package types

import "time"

// User is an enrolled-user summary as last reported by the device itself.
// The server mirrors the device's self-report; it does not independently
// track enrollment truth.
type User struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	CardID string `json:"cardId"`
	Phone  string `json:"phone"`
}

// Telemetry holds advisory device-reported fields. No invariant is
// enforced on any of them.
type Telemetry struct {
	UsersCount      *int    `json:"usersCount,omitempty"`
	SensorStatus    string  `json:"sensorStatus,omitempty"`
	FirmwareVersion string  `json:"firmwareVersion,omitempty"`
	UptimeSeconds   *uint64 `json:"uptimeSeconds,omitempty"`
	RSSIDbm         *int    `json:"rssiDbm,omitempty"`
	FreeHeapBytes   *uint64 `json:"freeHeapBytes,omitempty"`
	IP              string  `json:"ip,omitempty"`
}

// Merge applies the fields present in other on top of t, leaving absent
// fields untouched. Devices report telemetry piecemeal (a heartbeat may
// carry only RSSI), so a report must never wipe fields it didn't mention.
func (t *Telemetry) Merge(other Telemetry) {
	if other.UsersCount != nil {
		t.UsersCount = other.UsersCount
	}
	if other.SensorStatus != "" {
		t.SensorStatus = other.SensorStatus
	}
	if other.FirmwareVersion != "" {
		t.FirmwareVersion = other.FirmwareVersion
	}
	if other.UptimeSeconds != nil {
		t.UptimeSeconds = other.UptimeSeconds
	}
	if other.RSSIDbm != nil {
		t.RSSIDbm = other.RSSIDbm
	}
	if other.FreeHeapBytes != nil {
		t.FreeHeapBytes = other.FreeHeapBytes
	}
	if other.IP != "" {
		t.IP = other.IP
	}
}

// Device is the last-known state of one fingerprint reader/controller.
// Records are created on first heartbeat, mutated in place on every
// subsequent report, and live for the process lifetime only.
type Device struct {
	DeviceID  string    `json:"deviceId"`
	Status    string    `json:"status"`
	LastSeen  time.Time `json:"lastSeen"`
	Users     []User    `json:"users"`
	Telemetry Telemetry `json:"telemetry"`

	// Running tallies of access decisions reported by this device.
	AccessCount  int `json:"accessCount"`
	GrantedCount int `json:"grantedCount"`
	DeniedCount  int `json:"deniedCount"`
}
