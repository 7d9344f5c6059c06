package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

type CommandType string

const (
	CommandEnroll CommandType = "enroll"
	CommandDelete CommandType = "delete"
	CommandClear  CommandType = "clear"
)

// Command is an administrative instruction queued for a device to execute
// on its next contact. Delivery is at-most-once: once drained the command
// is considered delivered even if the device never executes it.
type Command struct {
	Type      CommandType `json:"type"`
	ID        int         `json:"id"`
	Name      string      `json:"name"`
	Phone     string      `json:"phone"`
	CardID    string      `json:"cardId"`
	Timestamp time.Time   `json:"timestamp"`
}

// FlexInt accepts both a JSON number and a quoted digit string. The
// dashboard and some device firmwares send user ids as strings; a value
// that parses as neither fails the decode outright rather than being
// silently coerced to zero.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		s = strings.TrimSpace(str)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("not an integer: %q", s)
	}
	*f = FlexInt(n)
	return nil
}

func (f FlexInt) Int() int { return int(f) }

// CommandRequest is the operator-facing enqueue payload. ID is a pointer
// so "absent" and "zero" are distinguishable during validation.
type CommandRequest struct {
	DeviceID string   `json:"deviceId"`
	Type     string   `json:"type"`
	ID       *FlexInt `json:"id,omitempty"`
	Name     string   `json:"name,omitempty"`
	Phone    string   `json:"phone,omitempty"`
	CardID   string   `json:"cardId,omitempty"`
}

type CommandResponse struct {
	Success bool    `json:"success"`
	Command Command `json:"command"`
}
