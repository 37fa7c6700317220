package project

import "time"

// Status is the manually-set attention flag on a project.
type Status string

const (
	StatusNeedsAction Status = "needs_action"
	StatusCaughtUp    Status = "caught_up"
)

// ValidStatus reports whether s is a known status value.
func ValidStatus(s Status) bool {
	return s == StatusNeedsAction || s == StatusCaughtUp
}

// Task is a single to-do item. Tasks are stored embedded on their project
// record; ProjectID is a back-reference, not a storage key.
type Task struct {
	ID          string `json:"id"`
	ProjectID   string `json:"projectId"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	IsCompleted bool   `json:"isCompleted"`
	// DueDate is a timezone-naive YYYY-MM-DD calendar day.
	DueDate string `json:"dueDate"`
	// CompletedDate is set when the task is marked complete and cleared when
	// it is reopened, so "has a completed date" is a reliable derived signal.
	CompletedDate *string `json:"completedDate,omitempty"`
}

// Project is a whole store document. Every task mutation is a read-modify-write
// of the full record.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"createdAt"`
	// Status is absent on records created before the field existed.
	Status Status `json:"status,omitempty"`
	Tasks  []Task `json:"tasks"`
}

// Patch names the attributes of a partial update. Nil fields are left
// untouched by the store.
type Patch struct {
	Name   *string `json:"name,omitempty"`
	Status *Status `json:"status,omitempty"`
	Tasks  *[]Task `json:"tasks,omitempty"`
}

// Clone returns a copy whose Tasks slice does not alias p's.
func (p Project) Clone() Project {
	out := p
	out.Tasks = make([]Task, len(p.Tasks))
	copy(out.Tasks, p.Tasks)
	return out
}

// statusRank orders needs_action (and legacy records without a status) ahead
// of caught_up.
func (p Project) statusRank() int {
	if p.Status == StatusCaughtUp {
		return 1
	}
	return 0
}
