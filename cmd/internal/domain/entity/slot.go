package entity

import "time"

const (
	DateLayout    = "2006-01-02"
	TimeLayout    = "15:04:05"
	SlotLayout    = "15:04"
	firstSlotHour = 8
	slotsPerDay   = 10
	UnknownOwner  = "Desconhecido"
)

// Slots returns the bookable times of any day, ascending, as "HH:MM:SS".
func Slots() []string {
	slots := make([]string, 0, slotsPerDay)
	for i := 0; i < slotsPerDay; i++ {
		t := time.Date(0, 1, 1, firstSlotHour+i, 0, 0, 0, time.UTC)
		slots = append(slots, t.Format(TimeLayout))
	}
	return slots
}

// IsSlot reports whether t (in TimeLayout) is one of the bookable times.
func IsSlot(t string) bool {
	for _, s := range Slots() {
		if s == t {
			return true
		}
	}
	return false
}
