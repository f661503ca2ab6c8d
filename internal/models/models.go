package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// MonitorID is a monitor identifier normalised to its decimal string form.
// Uptime Kuma sends ids as JSON numbers in monitor lists and as object keys
// (strings) in heartbeat lists; both decode to the same value.
type MonitorID string

// UnmarshalJSON accepts a JSON number or string.
func (id *MonitorID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = MonitorID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("monitor id: %w", err)
	}
	if i, err := n.Int64(); err == nil {
		*id = MonitorID(strconv.FormatInt(i, 10))
		return nil
	}
	*id = MonitorID(n.String())
	return nil
}

// Monitor is a single entry of a status page group.
type Monitor struct {
	ID   MonitorID `json:"id"`
	Name string    `json:"name"`
}

// PublicGroup is a group of monitors shown on a status page.
type PublicGroup struct {
	MonitorList []Monitor `json:"monitorList"`
}

// StatusPage is the payload of /api/status-page/{slug}.
type StatusPage struct {
	PublicGroupList []PublicGroup `json:"publicGroupList"`
}

// Number is a JSON value read leniently as a number. Null, strings and any
// other non-numeric value decode to an invalid Number instead of failing.
type Number struct {
	Value float64
	Valid bool
}

// Num returns a valid Number.
func Num(v float64) Number {
	return Number{Value: v, Valid: true}
}

// UnmarshalJSON accepts any JSON value.
func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number{}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if f, ok := v.(float64); ok {
		*n = Num(f)
	}
	return nil
}

// Int reports the value as an int when it is valid and integral.
func (n Number) Int() (int, bool) {
	if !n.Valid || n.Value != math.Trunc(n.Value) {
		return 0, false
	}
	return int(n.Value), true
}

// Heartbeat is a single check result. Status and Ping are null for some
// monitor types.
type Heartbeat struct {
	Status Number `json:"status"`
	Ping   Number `json:"ping"`
}

// HeartbeatData is the payload of /api/status-page/heartbeat/{slug}.
// Each list is ordered newest first.
type HeartbeatData struct {
	HeartbeatList map[MonitorID][]Heartbeat `json:"heartbeatList"`
}

// ReportRow joins a monitor with its latest heartbeat.
type ReportRow struct {
	MonitorID    MonitorID
	Name         string
	HasHeartbeat bool
	Status       Number
	Ping         Number
}
