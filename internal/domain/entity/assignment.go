package entity

import "time"

// TimeLayout is the wire format for assignment timestamps,
// e.g. "2021-03-01 23:59:59".
const TimeLayout = "2006-01-02 15:04:05"

type Assignment struct {
	Name      string    `db:"name"`
	ReleaseAt time.Time `db:"release_at"`
	DueAt     time.Time `db:"due_at"`
	CreatedAt time.Time `db:"created_at"`
}

func (a Assignment) Released(now time.Time) bool {
	return !now.Before(a.ReleaseAt)
}

// Late reports whether a submission at t misses the due date.
func (a Assignment) Late(t time.Time) bool {
	return t.After(a.DueAt)
}
