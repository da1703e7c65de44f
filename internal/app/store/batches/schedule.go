package batchstore

import (
	"strings"
	"time"

	"github.com/dalemusser/academyhub/internal/app/store/storeerr"
	"github.com/dalemusser/academyhub/internal/domain/models"
)

// dayNames maps accepted spellings to the stored short form.
var dayNames = map[string]string{
	"mon": "Mon", "monday": "Mon",
	"tue": "Tue", "tues": "Tue", "tuesday": "Tue",
	"wed": "Wed", "wednesday": "Wed",
	"thu": "Thu", "thur": "Thu", "thurs": "Thu", "thursday": "Thu",
	"fri": "Fri", "friday": "Fri",
	"sat": "Sat", "saturday": "Sat",
	"sun": "Sun", "sunday": "Sun",
}

const maxSessionMinutes = 8 * 60

// checkSchedule normalizes day names and validates the start time and
// length. An empty schedule is allowed (not yet planned).
func checkSchedule(in models.Schedule) (models.Schedule, []storeerr.FieldError) {
	var fields []storeerr.FieldError
	out := models.Schedule{DurationMinutes: in.DurationMinutes}

	seen := map[string]bool{}
	for _, d := range in.Days {
		short, ok := dayNames[strings.ToLower(strings.TrimSpace(d))]
		if !ok {
			fields = append(fields, storeerr.FieldError{Field: "schedule.days", Message: "unknown day " + d})
			continue
		}
		if !seen[short] {
			seen[short] = true
			out.Days = append(out.Days, short)
		}
	}

	out.StartTime = strings.TrimSpace(in.StartTime)
	if out.StartTime != "" {
		t, err := time.Parse("15:04", out.StartTime)
		if err != nil {
			fields = append(fields, storeerr.FieldError{Field: "schedule.start_time", Message: "start_time must be HH:MM"})
		} else {
			out.StartTime = t.Format("15:04")
		}
	}

	if in.DurationMinutes < 0 || in.DurationMinutes > maxSessionMinutes {
		fields = append(fields, storeerr.FieldError{Field: "schedule.duration_minutes", Message: "duration_minutes must be between 0 and 480"})
	}
	return out, fields
}
