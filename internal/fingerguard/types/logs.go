package types

import "time"

// LogEntry is one retained log line. Access logs and device-event logs
// share this shape and live in independent bounded stores: access entries
// carry Granted (and usually UserName/CardID), event entries carry
// Action/Message. Granted is a pointer so event entries omit it entirely
// on the wire while access entries always serialize it, true or false.
type LogEntry struct {
	ID         string    `json:"id"`
	DeviceID   string    `json:"deviceId"`
	UserID     int       `json:"userId,omitempty"`
	UserName   string    `json:"userName,omitempty"`
	CardID     string    `json:"cardId,omitempty"`
	Granted    *bool     `json:"granted,omitempty"`
	Action     string    `json:"action,omitempty"`
	Message    string    `json:"message,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	ReceivedAt time.Time `json:"receivedAt"`
}

// AccessLogRequest reports one grant/deny decision made by a device.
// Timestamp is the optional device clock reading; unparsable or absent
// values fall back to server receive time.
type AccessLogRequest struct {
	DeviceID  string  `json:"deviceId"`
	UserID    FlexInt `json:"userId,omitempty"`
	UserName  string  `json:"userName"`
	CardID    string  `json:"cardId,omitempty"`
	Granted   bool    `json:"granted"`
	Timestamp string  `json:"timestamp,omitempty"`
}

// EventLogRequest reports a non-access device event (boot, sensor fault,
// enrollment progress and the like).
type EventLogRequest struct {
	DeviceID  string  `json:"deviceId"`
	Action    string  `json:"action"`
	Message   string  `json:"message,omitempty"`
	UserID    FlexInt `json:"userId,omitempty"`
	CardID    string  `json:"cardId,omitempty"`
	Timestamp string  `json:"timestamp,omitempty"`
}

type LogsResponse struct {
	Success bool       `json:"success"`
	Logs    []LogEntry `json:"logs"`
	Total   int        `json:"total"`
}
