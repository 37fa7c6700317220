package habit

// Habit is a standalone daily practice tracked by calendar day.
type Habit struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	// CompletedDates holds YYYY-MM-DD strings. It is stored as a sequence but
	// carries set semantics: each day appears at most once.
	CompletedDates []string `json:"completed_dates"`
}

// Patch names the attributes of a partial update.
type Patch struct {
	Name           *string   `json:"name,omitempty"`
	CompletedDates *[]string `json:"completed_dates,omitempty"`
}

// Clone returns a copy whose CompletedDates slice does not alias h's.
func (h Habit) Clone() Habit {
	out := h
	out.CompletedDates = make([]string, len(h.CompletedDates))
	copy(out.CompletedDates, h.CompletedDates)
	return out
}

// CompletedOn reports whether day is in the habit's completed set.
func (h Habit) CompletedOn(day string) bool {
	for _, d := range h.CompletedDates {
		if d == day {
			return true
		}
	}
	return false
}
