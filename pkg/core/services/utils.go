package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/jakechorley/stream-rota/internal/config"
	"github.com/jakechorley/stream-rota/pkg/clients/daysoffclient"
	"github.com/jakechorley/stream-rota/pkg/core/rota"
)

// maxWeekDays bounds the calendar produced by weekRule to a single week
const maxWeekDays = 7

// DaysOffClient provides the day-off selections collected from the availability form
type DaysOffClient interface {
	GetDaysOff(ctx context.Context) ([]daysoffclient.Entry, error)
}

// nextMonday returns the date of the first Monday strictly after now, at midnight UTC
func nextMonday(now time.Time) time.Time {
	now = now.UTC()
	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	daysUntil := (int(time.Monday) - int(date.Weekday()) + 7) % 7
	if daysUntil == 0 {
		daysUntil = 7
	}
	return date.AddDate(0, 0, daysUntil)
}

// calculateDays expands weekRule from start into the calendar-ordered days of the week
func calculateDays(start time.Time, weekRule string) ([]rota.Day, error) {
	opt, err := rrule.StrToROption(weekRule)
	if err != nil {
		return nil, fmt.Errorf("invalid week rule: %w", err)
	}
	opt.Dtstart = start

	rule, err := rrule.NewRRule(*opt)
	if err != nil {
		return nil, fmt.Errorf("invalid week rule: %w", err)
	}

	days := make([]rota.Day, 0, maxWeekDays)
	next := rule.Iterator()
	for {
		date, ok := next()
		if !ok {
			break
		}
		if len(days) == maxWeekDays {
			return nil, fmt.Errorf("week rule %q yields more than %d days", weekRule, maxWeekDays)
		}
		days = append(days, rota.NewDay(date))
	}

	if len(days) == 0 {
		return nil, fmt.Errorf("week rule %q yields no days from %s", weekRule, start.Format("2006-01-02"))
	}

	return days, nil
}

// recurringDayOff is a config recurring day off resolved against the week's dates
type recurringDayOff struct {
	Role      rota.Role
	People    []rota.Person
	AppliesTo func(dayKey string) bool
}

// convertRecurringDaysOff parses each rrule and builds a date-matching function over the week
func convertRecurringDaysOff(configDaysOff []config.RecurringDayOff, days []rota.Day, logger *zap.Logger) ([]recurringDayOff, error) {
	result := make([]recurringDayOff, 0, len(configDaysOff))
	if len(days) == 0 {
		return result, nil
	}

	weekStart := days[0].Date
	weekEnd := days[len(days)-1].Date

	for i, dayOff := range configDaysOff {
		opt, err := rrule.StrToROption(dayOff.RRule)
		if err != nil {
			return nil, fmt.Errorf("failed to parse rrule for recurring day off %d: %w", i, err)
		}
		if err := config.CheckRecurringRule(dayOff.RRule); err != nil {
			return nil, fmt.Errorf("recurring day off %d: %w", i, err)
		}

		// Rules without DTSTART are anchored a week before the calendar
		searchStart := weekStart.AddDate(0, 0, -7)
		if opt.Dtstart.IsZero() {
			opt.Dtstart = searchStart
		}

		rule, err := rrule.NewRRule(*opt)
		if err != nil {
			return nil, fmt.Errorf("failed to build rrule for recurring day off %d: %w", i, err)
		}

		matching := make(map[string]bool)
		for _, occurrence := range rule.Between(searchStart, weekEnd.AddDate(0, 0, 1), true) {
			matching[occurrence.Format("2006-01-02")] = true
		}

		result = append(result, recurringDayOff{
			Role:   rota.Role(dayOff.Role),
			People: toPeople(dayOff.People),
			AppliesTo: func(dayKey string) bool {
				return matching[dayKey]
			},
		})

		logger.Debug("Converted recurring day off",
			zap.Int("index", i),
			zap.String("rrule", dayOff.RRule),
			zap.String("role", dayOff.Role),
			zap.Int("matching_days", len(matching)))
	}

	return result, nil
}

// entryMatchesDay reports whether a form entry refers to the day, by ISO date or weekday name
func entryMatchesDay(entry daysoffclient.Entry, day rota.Day) bool {
	value := strings.TrimSpace(entry.Day)
	if value == day.Key {
		return true
	}
	return strings.EqualFold(value, day.Date.Format("Mon")) ||
		strings.EqualFold(value, day.Date.Weekday().String())
}

// buildDaysOff merges form entries and recurring days off into per-day off-sets.
// Returns the entries that matched no day in the week.
func buildDaysOff(
	days []rota.Day,
	entries []daysoffclient.Entry,
	recurring []recurringDayOff,
	logger *zap.Logger,
) (map[string]rota.DayOff, []daysoffclient.Entry) {
	daysOff := make(map[string]rota.DayOff, len(days))
	matched := make([]bool, len(entries))

	for _, day := range days {
		off := rota.DayOff{}

		for i, entry := range entries {
			if !entryMatchesDay(entry, day) {
				continue
			}
			matched[i] = true
			off.Add(rota.RolePresenters, toPeople(entry.Presenters)...)
			off.Add(rota.RoleOperators, toPeople(entry.Operators)...)
		}

		for _, r := range recurring {
			if r.AppliesTo(day.Key) {
				off.Add(r.Role, r.People...)
			}
		}

		daysOff[day.Key] = off
		logger.Debug("Resolved days off",
			zap.String("day", day.Key),
			zap.Int("presenters_off", len(off[rota.RolePresenters])),
			zap.Int("operators_off", len(off[rota.RoleOperators])))
	}

	unmatched := make([]daysoffclient.Entry, 0)
	for i, entry := range entries {
		if !matched[i] {
			unmatched = append(unmatched, entry)
		}
	}

	return daysOff, unmatched
}

// buildPreferences converts a role's config to rota preferences
func buildPreferences(role config.RoleConfig) rota.Preferences {
	return rota.Preferences{
		MorningAnchors: toPeople(role.MorningAnchors),
		EveningAnchors: toPeople(role.EveningAnchors),
		NeverEvening:   toPeople(role.NeverEvening),
		ShuffleAnchors: role.ShuffleAnchors,
	}
}

// buildWeekInput assembles the calendar, roster, days off and preferences for a week starting at start.
// A zero start defaults to next Monday.
func buildWeekInput(
	ctx context.Context,
	daysOffClient DaysOffClient,
	cfg *config.Config,
	logger *zap.Logger,
	start time.Time,
) (rota.WeekInput, []daysoffclient.Entry, error) {
	if start.IsZero() {
		start = nextMonday(time.Now())
		logger.Debug("No start date provided, using next Monday", zap.Time("start", start))
	}

	weekRule := cfg.WeekRule
	if weekRule == "" {
		weekRule = config.DefaultWeekRule
	}

	// Step 1: Calendar
	days, err := calculateDays(start, weekRule)
	if err != nil {
		return rota.WeekInput{}, nil, fmt.Errorf("failed to calculate days: %w", err)
	}
	logger.Debug("Calculated days",
		zap.Int("count", len(days)),
		zap.String("first", days[0].Key),
		zap.String("last", days[len(days)-1].Key))

	// Step 2: Form responses
	logger.Debug("Fetching days off")
	entries, err := daysOffClient.GetDaysOff(ctx)
	if err != nil {
		return rota.WeekInput{}, nil, fmt.Errorf("failed to fetch days off: %w", err)
	}
	logger.Debug("Found days off entries", zap.Int("count", len(entries)))

	// Step 3: Recurring days off from config
	recurring, err := convertRecurringDaysOff(cfg.RecurringDaysOff, days, logger)
	if err != nil {
		return rota.WeekInput{}, nil, fmt.Errorf("failed to convert recurring days off: %w", err)
	}

	daysOff, unmatched := buildDaysOff(days, entries, recurring, logger)
	for _, entry := range unmatched {
		logger.Warn("Days off entry does not match any day in the week", zap.String("day", entry.Day))
	}

	input := rota.WeekInput{
		Days: days,
		Roster: map[rota.Role][]rota.Person{
			rota.RolePresenters: toPeople(cfg.Roles.Presenters.Pool),
			rota.RoleOperators:  toPeople(cfg.Roles.Operators.Pool),
		},
		DaysOff: daysOff,
		Preferences: map[rota.Role]rota.Preferences{
			rota.RolePresenters: buildPreferences(cfg.Roles.Presenters),
			rota.RoleOperators:  buildPreferences(cfg.Roles.Operators),
		},
		SlotCount: cfg.SlotCount,
	}

	return input, unmatched, nil
}

func toPeople(names []string) []rota.Person {
	people := make([]rota.Person, len(names))
	for i, name := range names {
		people[i] = rota.Person(name)
	}
	return people
}
