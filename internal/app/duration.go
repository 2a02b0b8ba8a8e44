package app

import (
	"fmt"

	"cleaning_booking/internal/domain"
)

const (
	baseMinutes    = 60
	perRoomMinutes = 30
)

// EstimateDuration formats the expected visit length as "Xh Ym".
// A whole number of hours keeps the separator and drops the minutes ("2h "),
// which is the exact string the booking API has always received.
func EstimateDuration(totalRooms int) string {
	total := baseMinutes + totalRooms*perRoomMinutes
	hours, mins := total/60, total%60
	m := ""
	if mins > 0 {
		m = fmt.Sprintf("%dm", mins)
	}
	return fmt.Sprintf("%dh %s", hours, m)
}

var turnarounds = map[domain.Category]string{
	domain.CategoryStandard: "2-4 hours",
	domain.CategoryDeep:     "4-6 hours",
	domain.CategoryMoveIn:   "5-7 hours",
	domain.CategoryMoveOut:  "5-7 hours",
}

const defaultTurnaround = "2-4 hours"

func Turnaround(c domain.Category) string {
	if t, ok := turnarounds[c]; ok {
		return t
	}
	return defaultTurnaround
}
