package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"kumareport/internal/models"
)

const (
	unknownMonitor = "Unknown Monitor"
	header         = "--- Combined Monitor Status ---"

	LabelUp      = "UP"
	LabelDown    = "DOWN"
	LabelPending = "PENDING/OTHER"
)

// Build joins status page monitors with their latest heartbeat. One row is
// produced per monitor id in the heartbeat list, ordered by ascending id.
func Build(page models.StatusPage, heartbeats models.HeartbeatData) []models.ReportRow {
	monitors := make(map[models.MonitorID]models.Monitor)
	for _, group := range page.PublicGroupList {
		for _, m := range group.MonitorList {
			monitors[m.ID] = m
		}
	}

	if len(heartbeats.HeartbeatList) == 0 {
		return nil
	}

	ids := make([]models.MonitorID, 0, len(heartbeats.HeartbeatList))
	for id := range heartbeats.HeartbeatList {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return lessID(ids[i], ids[j]) })

	rows := make([]models.ReportRow, 0, len(ids))
	for _, id := range ids {
		row := models.ReportRow{
			MonitorID: id,
			Name:      unknownMonitor,
		}
		if m, ok := monitors[id]; ok {
			row.Name = m.Name
		}

		if beats := heartbeats.HeartbeatList[id]; len(beats) > 0 {
			latest := beats[0]
			row.HasHeartbeat = true
			row.Status = latest.Status
			row.Ping = latest.Ping
		}
		rows = append(rows, row)
	}
	return rows
}

// StatusLabel maps a heartbeat status code to its display label.
func StatusLabel(status models.Number) string {
	code, ok := status.Int()
	if !ok {
		return LabelPending
	}
	switch code {
	case 1:
		return LabelUp
	case 0:
		return LabelDown
	default:
		return LabelPending
	}
}

// Render formats rows as the plain-text report.
func Render(rows []models.ReportRow) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteByte('\n')

	if len(rows) == 0 {
		b.WriteString("No monitors found.\n")
		return b.String()
	}

	for _, row := range rows {
		if !row.HasHeartbeat {
			fmt.Fprintf(&b, "- Monitor: %s (ID: %s) has no heartbeat data.\n", row.Name, row.MonitorID)
			continue
		}
		fmt.Fprintf(&b, "- Monitor: %s (ID: %s)\n", row.Name, row.MonitorID)
		fmt.Fprintf(&b, "  - Status: %s\n", StatusLabel(row.Status))
		fmt.Fprintf(&b, "  - Ping: %s\n", formatPing(row.Ping))
	}
	return b.String()
}

func formatPing(ping models.Number) string {
	if !ping.Valid {
		return "n/a"
	}
	return strconv.FormatFloat(ping.Value, 'f', -1, 64) + " ms"
}

// lessID orders integer ids numerically and everything else lexically,
// with integer ids first.
func lessID(a, b models.MonitorID) bool {
	ai, aErr := strconv.ParseInt(string(a), 10, 64)
	bi, bErr := strconv.ParseInt(string(b), 10, 64)
	switch {
	case aErr == nil && bErr == nil:
		return ai < bi
	case aErr == nil:
		return true
	case bErr == nil:
		return false
	default:
		return a < b
	}
}
