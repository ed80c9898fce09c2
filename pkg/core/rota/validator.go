package rota

import (
	"fmt"
	"slices"
)

// DayValidationError describes a rule the planned week could not satisfy on a given day
type DayValidationError struct {
	DayIndex    int
	DayKey      string
	Role        Role
	RuleName    string
	Description string
}

// Rule checks a finished week plan.
// BuildOrder never fails, so rules report where a fallback had to relax a preference.
type Rule interface {
	// Name returns a human-readable identifier for this rule
	Name() string

	// Validate returns one error per violating (day, role)
	Validate(plan *WeekPlan) []DayValidationError
}

// DefaultRules returns the rules checked after every generated week
func DefaultRules(prefs map[Role]Preferences) []Rule {
	return []Rule{
		CoverageRule{},
		CloserOpensNextRule{},
		NeverEveningRule{Preferences: prefs},
	}
}

// ValidateWeek runs all rules against the plan. An empty slice means the plan is clean.
func ValidateWeek(plan *WeekPlan, rules []Rule) []DayValidationError {
	var errors []DayValidationError
	for _, rule := range rules {
		errors = append(errors, rule.Validate(plan)...)
	}
	return errors
}

// forEachRole visits every (day, role) pair in calendar then role order
func forEachRole(plan *WeekPlan, visit func(i int, dp DayPlan, role Role, rp RolePlan)) {
	for i, dp := range plan.Days {
		for _, role := range Roles() {
			rp, ok := dp.Roles[role]
			if !ok {
				continue
			}
			visit(i, dp, role, rp)
		}
	}
}

// CoverageRule flags days where a role had nobody available
type CoverageRule struct{}

func (CoverageRule) Name() string {
	return "Coverage"
}

func (r CoverageRule) Validate(plan *WeekPlan) []DayValidationError {
	var errors []DayValidationError
	forEachRole(plan, func(i int, dp DayPlan, role Role, rp RolePlan) {
		if len(rp.Order) > 0 {
			return
		}
		errors = append(errors, DayValidationError{
			DayIndex:    i,
			DayKey:      dp.Day.Key,
			Role:        role,
			RuleName:    r.Name(),
			Description: fmt.Sprintf("no %s available on %s", role, dp.Day.Label),
		})
	})
	return errors
}

// CloserOpensNextRule flags a person who closed one day and opens the next
type CloserOpensNextRule struct{}

func (CloserOpensNextRule) Name() string {
	return "CloserOpensNext"
}

func (r CloserOpensNextRule) Validate(plan *WeekPlan) []DayValidationError {
	var errors []DayValidationError
	forEachRole(plan, func(i int, dp DayPlan, role Role, rp RolePlan) {
		if rp.LastCloser == "" || rp.Opener() != rp.LastCloser {
			return
		}
		errors = append(errors, DayValidationError{
			DayIndex: i,
			DayKey:   dp.Day.Key,
			Role:     role,
			RuleName: r.Name(),
			Description: fmt.Sprintf("%s closed the previous day and opens %s (no other %s available)",
				rp.LastCloser, dp.Day.Label, role),
		})
	})
	return errors
}

// NeverEveningRule flags a never-evening person who had to close
type NeverEveningRule struct {
	Preferences map[Role]Preferences
}

func (NeverEveningRule) Name() string {
	return "NeverEvening"
}

func (r NeverEveningRule) Validate(plan *WeekPlan) []DayValidationError {
	var errors []DayValidationError
	forEachRole(plan, func(i int, dp DayPlan, role Role, rp RolePlan) {
		closer := rp.Closer()
		if closer == "" || !slices.Contains(r.Preferences[role].NeverEvening, closer) {
			return
		}
		errors = append(errors, DayValidationError{
			DayIndex:    i,
			DayKey:      dp.Day.Key,
			Role:        role,
			RuleName:    r.Name(),
			Description: fmt.Sprintf("%s closes %s although excluded from evenings", closer, dp.Day.Label),
		})
	})
	return errors
}
