package models

import "time"

// Event is a calendar entry. Recurring holds an encoded day-of-week set
// such as "[Monday,Wednesday]", or is empty for one-off events. A recurring
// event is never stored with AllDay set: creation normalizes that
// combination to a fixed working-hours window.
type Event struct {
	ID            int64
	Title         string
	StartDateTime time.Time
	EndDateTime   time.Time
	Recurring     string
	AllDay        bool
	Description   string
	Author        string
	UserUID       string
	CreatedAt     time.Time
}
