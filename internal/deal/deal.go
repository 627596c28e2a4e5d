// Package deal defines the record model shown by the grid: deals, their
// activity history, the closed set of addressable fields, and column layout.
package deal

import (
	"fmt"
	"slices"
	"time"
)

// DateLayout is the ISO date layout used by every date-valued field.
const DateLayout = "2006-01-02"

// Status is the pipeline stage of a deal.
type Status string

// Status constants.
const (
	StatusNew         Status = "New"
	StatusQualified   Status = "Qualified"
	StatusProposal    Status = "Proposal"
	StatusNegotiation Status = "Negotiation"
	StatusWon         Status = "Won"
	StatusLost        Status = "Lost"
)

// StatusOptions lists every status in pipeline order.
var StatusOptions = []Status{
	StatusNew, StatusQualified, StatusProposal, StatusNegotiation, StatusWon, StatusLost,
}

// Valid reports whether s is one of StatusOptions.
func (s Status) Valid() bool {
	return slices.Contains(StatusOptions, s)
}

// Priority ranks deal urgency.
type Priority string

// Priority constants.
const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

// PriorityOptions lists every priority from lowest to highest.
var PriorityOptions = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

// Valid reports whether p is one of PriorityOptions.
func (p Priority) Valid() bool {
	return slices.Contains(PriorityOptions, p)
}

// ActivityType classifies an activity entry.
type ActivityType string

// Activity type constants.
const (
	ActivityCall    ActivityType = "call"
	ActivityEmail   ActivityType = "email"
	ActivityMeeting ActivityType = "meeting"
	ActivityNote    ActivityType = "note"
	ActivityTask    ActivityType = "task"
)

var activityTypes = []ActivityType{ActivityCall, ActivityEmail, ActivityMeeting, ActivityNote, ActivityTask}

// Valid reports whether t is a known activity type.
func (t ActivityType) Valid() bool {
	return slices.Contains(activityTypes, t)
}

// Activity is one entry in a deal's history.
type Activity struct {
	ID          string       `json:"id"          yaml:"id"`
	Type        ActivityType `json:"type"        yaml:"type"`
	Description string       `json:"description" yaml:"description"`
	Date        string       `json:"date"        yaml:"date"`
	User        string       `json:"user"        yaml:"user"`
}

// Deal is a single business record. Deals are treated as immutable once
// handed to the grid.
type Deal struct {
	ID           string     `json:"id"           yaml:"id"`
	DealName     string     `json:"dealName"     yaml:"dealName"`
	Company      string     `json:"company"      yaml:"company"`
	Owner        string     `json:"owner"        yaml:"owner"`
	Status       Status     `json:"status"       yaml:"status"`
	Priority     Priority   `json:"priority"     yaml:"priority"`
	Amount       float64    `json:"amount"       yaml:"amount"`
	Probability  int        `json:"probability"  yaml:"probability"`
	CloseDate    string     `json:"closeDate"    yaml:"closeDate"`
	CreatedDate  string     `json:"createdDate"  yaml:"createdDate"`
	LastActivity string     `json:"lastActivity" yaml:"lastActivity"`
	Source       string     `json:"source"       yaml:"source"`
	Tags         []string   `json:"tags"         yaml:"tags"`
	Notes        string     `json:"notes"        yaml:"notes"`
	Activities   []Activity `json:"activities"   yaml:"activities"`
}

// RecentActivities returns up to n activities in stored order (most recent first
// in the bundled data).
func (d *Deal) RecentActivities(n int) []Activity {
	if n > len(d.Activities) {
		n = len(d.Activities)
	}

	return d.Activities[:n]
}

// Validate checks a deal against the record schema.
func (d *Deal) Validate() error {
	if d.ID == "" {
		return ErrEmptyID
	}

	if !d.Status.Valid() {
		return fmt.Errorf("%w: %q (deal %s)", ErrInvalidStatus, d.Status, d.ID)
	}

	if !d.Priority.Valid() {
		return fmt.Errorf("%w: %q (deal %s)", ErrInvalidPriority, d.Priority, d.ID)
	}

	if d.Amount < 0 {
		return fmt.Errorf("%w: %v (deal %s)", ErrInvalidAmount, d.Amount, d.ID)
	}

	if d.Probability < 0 || d.Probability > 100 {
		return fmt.Errorf("%w: %d (deal %s)", ErrInvalidProbability, d.Probability, d.ID)
	}

	for name, value := range map[string]string{
		"closeDate":    d.CloseDate,
		"createdDate":  d.CreatedDate,
		"lastActivity": d.LastActivity,
	} {
		if _, err := time.Parse(DateLayout, value); err != nil {
			return fmt.Errorf("%w: %s=%q (deal %s)", ErrInvalidDate, name, value, d.ID)
		}
	}

	for _, a := range d.Activities {
		if !a.Type.Valid() {
			return fmt.Errorf("%w: %q (deal %s, activity %s)", ErrInvalidActivity, a.Type, d.ID, a.ID)
		}
	}

	return nil
}

// ValidateAll validates every deal and rejects duplicate ids.
func ValidateAll(deals []Deal) error {
	seen := make(map[string]struct{}, len(deals))

	for i := range deals {
		err := deals[i].Validate()
		if err != nil {
			return err
		}

		if _, ok := seen[deals[i].ID]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateID, deals[i].ID)
		}

		seen[deals[i].ID] = struct{}{}
	}

	return nil
}
