package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/stream-rota/internal/config"
	"github.com/jakechorley/stream-rota/pkg/clients/daysoffclient"
	"github.com/jakechorley/stream-rota/pkg/core/rota"
)

// RoleAvailability is who can and cannot work a role on one day
type RoleAvailability struct {
	Available []rota.Person
	Off       []rota.Person
}

// DayAvailability groups role availability for a single day
type DayAvailability struct {
	Day   rota.Day
	Roles map[rota.Role]RoleAvailability
}

// ViewAvailabilityResult contains availability for every day of the week
type ViewAvailabilityResult struct {
	Days             []DayAvailability
	UnmatchedDaysOff []daysoffclient.Entry
}

// ViewAvailability resolves the week's days off against the roster without building a rota
func ViewAvailability(
	ctx context.Context,
	daysOffClient DaysOffClient,
	cfg *config.Config,
	logger *zap.Logger,
	start time.Time,
) (*ViewAvailabilityResult, error) {
	logger.Debug("Starting viewAvailability")

	input, unmatched, err := buildWeekInput(ctx, daysOffClient, cfg, logger, start)
	if err != nil {
		return nil, err
	}

	days := make([]DayAvailability, 0, len(input.Days))
	for _, day := range input.Days {
		off := input.DaysOff[day.Key]
		roles := make(map[rota.Role]RoleAvailability, len(rota.Roles()))

		for _, role := range rota.Roles() {
			pool := input.Roster[role]
			offInPool := make([]rota.Person, 0)
			for _, person := range pool {
				if off.Has(role, person) {
					offInPool = append(offInPool, person)
				}
			}

			roles[role] = RoleAvailability{
				Available: rota.Available(pool, off[role]),
				Off:       offInPool,
			}
		}

		days = append(days, DayAvailability{Day: day, Roles: roles})
	}

	logger.Info("Availability resolved", zap.Int("days", len(days)))

	return &ViewAvailabilityResult{
		Days:             days,
		UnmatchedDaysOff: unmatched,
	}, nil
}
