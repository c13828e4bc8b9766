package models

import (
	"encoding/json"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/timex"
)

// Task is a unit of work owned by exactly one user. TaskID, OwnerID and Date
// never change after creation.
type Task struct {
	TaskID      string    `json:"taskId"`
	OwnerID     string    `json:"ownerId"`
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description" validate:"required"`
	IsDone      bool      `json:"isDone"`
	Date        time.Time `json:"date"`

	// RawDate holds a stored date string that matched no known layout. It
	// is written back unchanged while Date stays zero.
	RawDate string `json:"-"`

	// Display cache filled when the task is created.
	OwnerName  string `json:"ownerName,omitempty"`
	OwnerEmail string `json:"ownerEmail,omitempty"`
}

// taskAlias drops Task's methods so the codec below does not recurse.
type taskAlias Task

type taskWire struct {
	*taskAlias
	Date string `json:"date"`
}

// MarshalJSON writes Date as RFC 3339, or RawDate when Date is unset.
func (t Task) MarshalJSON() ([]byte, error) {
	w := taskWire{taskAlias: (*taskAlias)(&t)}
	switch {
	case !t.Date.IsZero():
		w.Date = timex.FormatTimestamp(t.Date)
	case t.RawDate != "":
		w.Date = t.RawDate
	}
	return json.Marshal(w)
}

// UnmarshalJSON accepts RFC 3339 as well as the older "2006-01-02" and
// "2006-01-02 15:04:05" date forms. Any other date string is kept in
// RawDate instead of failing the task.
func (t *Task) UnmarshalJSON(data []byte) error {
	w := taskWire{taskAlias: (*taskAlias)(t)}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	t.Date, t.RawDate = time.Time{}, ""
	if w.Date == "" {
		return nil
	}
	d, err := timex.ParseTimestamp(w.Date)
	if err != nil {
		t.RawDate = w.Date
		return nil
	}
	t.Date = d
	return nil
}

// DisplayDate renders the task date as a calendar day, or the stored text
// when it could not be parsed.
func (t Task) DisplayDate() string {
	if t.Date.IsZero() {
		return t.RawDate
	}
	return t.Date.Format(time.DateOnly)
}
