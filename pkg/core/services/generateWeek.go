package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/stream-rota/internal/config"
	"github.com/jakechorley/stream-rota/pkg/clients/daysoffclient"
	"github.com/jakechorley/stream-rota/pkg/core/rota"
)

// GenerateWeekResult contains the generated week and its validation outcome
type GenerateWeekResult struct {
	WeekID           string
	Seed             string
	Days             []rota.Day
	Plan             *rota.WeekPlan
	SlotLabels       []string
	BlankMarker      string
	Success          bool
	ValidationErrors []rota.DayValidationError
	UnmatchedDaysOff []daysoffclient.Entry
}

// GenerateWeek builds the presenter and operator rota for the week starting at start.
// A zero start defaults to next Monday. A non-empty seed makes the result reproducible.
func GenerateWeek(
	ctx context.Context,
	daysOffClient DaysOffClient,
	cfg *config.Config,
	logger *zap.Logger,
	start time.Time,
	seed string,
) (*GenerateWeekResult, error) {
	weekID := uuid.New().String()
	logger.Debug("Starting generateWeek",
		zap.String("week_id", weekID),
		zap.String("seed", seed))

	input, unmatched, err := buildWeekInput(ctx, daysOffClient, cfg, logger, start)
	if err != nil {
		return nil, err
	}

	logger.Debug("Built week input",
		zap.Int("days", len(input.Days)),
		zap.Int("presenters", len(input.Roster[rota.RolePresenters])),
		zap.Int("operators", len(input.Roster[rota.RoleOperators])),
		zap.Int("slot_count", input.SlotCount))

	rng := rota.NewSeededRand(seed)

	logger.Info("Building week", zap.String("week_id", weekID))
	plan := rota.BuildWeek(input, rng)

	for _, dp := range plan.Days {
		for _, role := range rota.Roles() {
			rp := dp.Roles[role]
			logger.Debug("Planned day",
				zap.String("day", dp.Day.Key),
				zap.String("role", string(role)),
				zap.Int("available", len(rp.Available)),
				zap.String("last_closer", string(rp.LastCloser)),
				zap.String("opener", string(rp.Opener())),
				zap.String("closer", string(rp.Closer())))
		}
	}

	validationErrors := rota.ValidateWeek(plan, rota.DefaultRules(input.Preferences))
	success := len(validationErrors) == 0

	logger.Info("Week generated",
		zap.String("week_id", weekID),
		zap.Bool("success", success),
		zap.Int("validation_errors", len(validationErrors)))

	for _, verr := range validationErrors {
		logger.Warn("Validation error",
			zap.String("rule", verr.RuleName),
			zap.Int("day_index", verr.DayIndex),
			zap.String("day", verr.DayKey),
			zap.String("role", string(verr.Role)),
			zap.String("description", verr.Description))
	}

	firstSlotHour := config.DefaultFirstSlotHour
	if cfg.FirstSlotHour != nil {
		firstSlotHour = *cfg.FirstSlotHour
	}

	blankMarker := cfg.BlankMarker
	if blankMarker == "" {
		blankMarker = string(rota.BlankMarker)
	}

	return &GenerateWeekResult{
		WeekID:           weekID,
		Seed:             seed,
		Days:             input.Days,
		Plan:             plan,
		SlotLabels:       rota.SlotLabels(firstSlotHour, plan.SlotCount),
		BlankMarker:      blankMarker,
		Success:          success,
		ValidationErrors: validationErrors,
		UnmatchedDaysOff: unmatched,
	}, nil
}

// ParseStartDate parses a YYYY-MM-DD start date. An empty value returns the zero time.
func ParseStartDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	start, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("start must be a date in YYYY-MM-DD format: %w", err)
	}
	return start, nil
}
