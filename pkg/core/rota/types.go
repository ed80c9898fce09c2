package rota

import (
	"slices"
	"time"
)

// DefaultSlotCount is the number of hourly slots in a day (08:00-24:00)
const DefaultSlotCount = 16

// BlankMarker fills slots on a day where nobody in the role is available
const BlankMarker Person = "——"

// Person identifies a member of a role pool by name
type Person string

// Role is one of the two independent shift roles
type Role string

const (
	RolePresenters Role = "presenters"
	RoleOperators  Role = "operators"
)

// Roles returns the roles in the order they are computed and displayed
func Roles() []Role {
	return []Role{RolePresenters, RoleOperators}
}

func (r Role) IsValid() bool {
	return r == RolePresenters || r == RoleOperators
}

// Day is one calendar day of the week being planned
type Day struct {
	// Key is the ISO date (2006-01-02) used to match days-off entries
	Key string

	// Label is the display label, e.g. "Mon 02 Jun"
	Label string

	Date time.Time
}

// NewDay builds a Day from a date
func NewDay(date time.Time) Day {
	return Day{
		Key:   date.Format("2006-01-02"),
		Label: date.Format("Mon 02 Jan"),
		Date:  date,
	}
}

// Preferences are the sticky anchor rules for one role.
// All sets are optional; an empty set applies no preference or restriction.
type Preferences struct {
	// MorningAnchors should open the day when available
	MorningAnchors []Person

	// EveningAnchors should close the day when available
	EveningAnchors []Person

	// NeverEvening must not close the day unless nobody else can
	NeverEvening []Person

	// ShuffleAnchors picks a preferred anchor at random among the preferred candidates.
	// When false the first preferred candidate in pool order is used.
	ShuffleAnchors bool
}

// DayOff holds the people marked unavailable for one day, per role
type DayOff map[Role][]Person

// Has reports whether the person is off for the given role
func (d DayOff) Has(role Role, person Person) bool {
	return slices.Contains(d[role], person)
}

// Add marks people as off for a role, skipping anyone already marked
func (d DayOff) Add(role Role, people ...Person) {
	for _, p := range people {
		if !d.Has(role, p) {
			d[role] = append(d[role], p)
		}
	}
}

// WeekInput is everything the weekly driver needs to plan a week
type WeekInput struct {
	// Days in calendar order
	Days []Day

	// Roster maps each role to its pool in declared order
	Roster map[Role][]Person

	// DaysOff is keyed by Day.Key; missing days mean nobody is off
	DaysOff map[string]DayOff

	Preferences map[Role]Preferences

	// SlotCount defaults to DefaultSlotCount when zero
	SlotCount int
}

func (in WeekInput) slotCount() int {
	if in.SlotCount <= 0 {
		return DefaultSlotCount
	}
	return in.SlotCount
}

// CarryState remembers who closed the previous day for each role.
// It is a value: PlanDay returns an updated copy rather than mutating its input.
type CarryState struct {
	Presenters Person
	Operators  Person
}

// LastCloser returns the remembered closer for a role (empty if none)
func (c CarryState) LastCloser(role Role) Person {
	switch role {
	case RolePresenters:
		return c.Presenters
	case RoleOperators:
		return c.Operators
	}
	return ""
}

// WithCloser returns a copy of the state with the role's closer replaced
func (c CarryState) WithCloser(role Role, person Person) CarryState {
	switch role {
	case RolePresenters:
		c.Presenters = person
	case RoleOperators:
		c.Operators = person
	}
	return c
}

// RolePlan is the outcome for one role on one day
type RolePlan struct {
	// Available is the pool minus that day's off-set, in pool order
	Available []Person

	// Off is the off-set applied
	Off []Person

	// LastCloser is the carry value used to exclude the morning anchor
	LastCloser Person

	// Order runs morning to evening
	Order []Person

	Grid SlotGrid
}

// Opener returns the morning anchor, or empty if nobody worked
func (rp RolePlan) Opener() Person {
	if len(rp.Order) == 0 {
		return ""
	}
	return rp.Order[0]
}

// Closer returns the evening anchor, or empty if nobody worked
func (rp RolePlan) Closer() Person {
	if len(rp.Order) == 0 {
		return ""
	}
	return rp.Order[len(rp.Order)-1]
}

// DayPlan holds both roles for one day
type DayPlan struct {
	Day   Day
	Roles map[Role]RolePlan
}

// WeekPlan is the week's dataset handed to rendering
type WeekPlan struct {
	Days      []DayPlan
	SlotCount int

	// Carry is the state after the last day
	Carry CarryState
}

// Grid returns the slot grid for a day key and role, or nil if the day is not in the plan
func (wp *WeekPlan) Grid(dayKey string, role Role) SlotGrid {
	for _, dp := range wp.Days {
		if dp.Day.Key == dayKey {
			return dp.Roles[role].Grid
		}
	}
	return nil
}
