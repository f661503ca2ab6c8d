package report

import (
	"fmt"

	"kumareport/internal/models"
)

// Summary counts report rows per status label.
type Summary struct {
	Up        int
	Down      int
	Other     int
	NoData    int
	Monitored int
}

// Summarize aggregates rows into per-label counts.
func Summarize(rows []models.ReportRow) Summary {
	s := Summary{Monitored: len(rows)}
	for _, row := range rows {
		if !row.HasHeartbeat {
			s.NoData++
			continue
		}
		switch StatusLabel(row.Status) {
		case LabelUp:
			s.Up++
		case LabelDown:
			s.Down++
		default:
			s.Other++
		}
	}
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("Summary: %d monitors, %d up, %d down, %d pending/other, %d without data",
		s.Monitored, s.Up, s.Down, s.Other, s.NoData)
}
