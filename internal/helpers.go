package internal

import "time"

const (
	formatDDMMYYYY      = "02.01.2006"
	formatDDMMYYYYHHMM  = "02.01.2006 15:04"
	formatScheduleInput = "2006-01-02T15:04"
)

func Format(date time.Time) string {
	return date.Format(formatDDMMYYYY)
}

func FormatDateTime(date time.Time) string {
	return date.UTC().Format(formatDDMMYYYYHHMM) + " UTC"
}

// ParseScheduleTime reads times typed in chat, e.g. 2026-03-02T15:04, as UTC.
func ParseScheduleTime(value string) (time.Time, error) {
	return time.ParseInLocation(formatScheduleInput, value, time.UTC)
}
