package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/stream-rota/internal/config"
	"github.com/jakechorley/stream-rota/pkg/clients/daysoffclient"
	"github.com/jakechorley/stream-rota/pkg/core/rota"
)

// mockDaysOffClient implements DaysOffClient for testing
type mockDaysOffClient struct {
	entries []daysoffclient.Entry
	getErr  error
}

func (m *mockDaysOffClient) GetDaysOff(ctx context.Context) ([]daysoffclient.Entry, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.entries == nil {
		return []daysoffclient.Entry{}, nil
	}
	return m.entries, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Roles: config.Roles{
			Presenters: config.RoleConfig{Pool: []string{"Alice", "Bella", "Cara", "Dina"}},
			Operators:  config.RoleConfig{Pool: []string{"Mark", "Nick", "Owen"}},
		},
		SlotCount:   config.DefaultSlotCount,
		BlankMarker: config.DefaultBlankMarker,
		WeekRule:    config.DefaultWeekRule,
	}
}

func TestGenerateWeek_Success(t *testing.T) {
	result, err := GenerateWeek(context.Background(), &mockDaysOffClient{}, testConfig(), zap.NewNop(), date(2025, 6, 2), "week-23")
	require.NoError(t, err)

	_, err = uuid.Parse(result.WeekID)
	assert.NoError(t, err, "WeekID should be a UUID")
	assert.Equal(t, "week-23", result.Seed)

	require.Len(t, result.Days, 7)
	require.Len(t, result.Plan.Days, 7)
	assert.Equal(t, "2025-06-02", result.Days[0].Key)
	assert.Equal(t, 16, result.Plan.SlotCount)

	require.Len(t, result.SlotLabels, 16)
	assert.Equal(t, "08:00-09:00", result.SlotLabels[0])
	assert.Equal(t, "23:00-24:00", result.SlotLabels[15])
	assert.Equal(t, "——", result.BlankMarker)

	for _, dp := range result.Plan.Days {
		for _, role := range rota.Roles() {
			grid := dp.Roles[role].Grid
			require.Len(t, grid, 16)
			assert.False(t, grid.IsBlank(), "%s %s should be covered", dp.Day.Key, role)
		}
	}

	assert.True(t, result.Success)
	assert.Empty(t, result.ValidationErrors)
	assert.Empty(t, result.UnmatchedDaysOff)
}

func TestGenerateWeek_CloserNeverOpensNextDay(t *testing.T) {
	for _, seed := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		result, err := GenerateWeek(context.Background(), &mockDaysOffClient{}, testConfig(), zap.NewNop(), date(2025, 6, 2), seed)
		require.NoError(t, err)

		for i := 1; i < len(result.Plan.Days); i++ {
			for _, role := range rota.Roles() {
				prev := result.Plan.Days[i-1].Roles[role]
				curr := result.Plan.Days[i].Roles[role]
				assert.Equal(t, prev.Closer(), curr.LastCloser)
				assert.NotEqual(t, prev.Closer(), curr.Opener(),
					"seed %s: %s closed %s and opened %s", seed, prev.Closer(), result.Plan.Days[i-1].Day.Key, result.Plan.Days[i].Day.Key)
			}
		}
	}
}

func TestGenerateWeek_SameSeedSameWeek(t *testing.T) {
	first, err := GenerateWeek(context.Background(), &mockDaysOffClient{}, testConfig(), zap.NewNop(), date(2025, 6, 2), "repeatable")
	require.NoError(t, err)
	second, err := GenerateWeek(context.Background(), &mockDaysOffClient{}, testConfig(), zap.NewNop(), date(2025, 6, 2), "repeatable")
	require.NoError(t, err)

	assert.Equal(t, first.Plan.Days, second.Plan.Days)
	assert.NotEqual(t, first.WeekID, second.WeekID)
}

func TestGenerateWeek_DaysOffApplied(t *testing.T) {
	client := &mockDaysOffClient{
		entries: []daysoffclient.Entry{
			{Day: "Mon", Presenters: []string{"Alice", "Bella", "Cara"}},
			{Day: "2025-06-03", Operators: []string{"Mark", "Nick"}},
		},
	}

	result, err := GenerateWeek(context.Background(), client, testConfig(), zap.NewNop(), date(2025, 6, 2), "off")
	require.NoError(t, err)

	monday := result.Plan.Days[0].Roles[rota.RolePresenters]
	assert.Equal(t, []rota.Person{"Dina"}, monday.Available)
	for _, p := range monday.Grid {
		assert.Equal(t, rota.Person("Dina"), p)
	}

	tuesday := result.Plan.Days[1].Roles[rota.RoleOperators]
	assert.Equal(t, []rota.Person{"Owen"}, tuesday.Available)
	assert.Equal(t, []rota.Person{"Mark", "Nick"}, tuesday.Off)
}

func TestGenerateWeek_RecurringDaysOff(t *testing.T) {
	cfg := testConfig()
	cfg.RecurringDaysOff = []config.RecurringDayOff{
		{RRule: "FREQ=WEEKLY;BYDAY=SU", Role: "operators", People: []string{"Mark", "Nick"}},
	}

	result, err := GenerateWeek(context.Background(), &mockDaysOffClient{}, cfg, zap.NewNop(), date(2025, 6, 2), "sunday")
	require.NoError(t, err)

	sunday := result.Plan.Days[6]
	assert.Equal(t, time.Sunday, sunday.Day.Date.Weekday())
	assert.Equal(t, []rota.Person{"Owen"}, sunday.Roles[rota.RoleOperators].Available)

	saturday := result.Plan.Days[5]
	assert.Len(t, saturday.Roles[rota.RoleOperators].Available, 3)
}

func TestGenerateWeek_NobodyAvailable(t *testing.T) {
	client := &mockDaysOffClient{
		entries: []daysoffclient.Entry{
			{Day: "Wed", Presenters: []string{"Alice", "Bella", "Cara", "Dina"}},
		},
	}

	result, err := GenerateWeek(context.Background(), client, testConfig(), zap.NewNop(), date(2025, 6, 2), "empty")
	require.NoError(t, err)

	wednesday := result.Plan.Days[2].Roles[rota.RolePresenters]
	assert.True(t, wednesday.Grid.IsBlank())
	assert.Empty(t, wednesday.Order)

	// Thursday still avoids Tuesday's closer
	tuesday := result.Plan.Days[1].Roles[rota.RolePresenters]
	thursday := result.Plan.Days[3].Roles[rota.RolePresenters]
	assert.Equal(t, tuesday.Closer(), thursday.LastCloser)
	assert.NotEqual(t, tuesday.Closer(), thursday.Opener())

	assert.False(t, result.Success)
	require.Len(t, result.ValidationErrors, 1)
	assert.Equal(t, "Coverage", result.ValidationErrors[0].RuleName)
	assert.Equal(t, "2025-06-04", result.ValidationErrors[0].DayKey)
	assert.Equal(t, rota.RolePresenters, result.ValidationErrors[0].Role)
}

func TestGenerateWeek_UnmatchedDaysOff(t *testing.T) {
	client := &mockDaysOffClient{
		entries: []daysoffclient.Entry{
			{Day: "2025-07-01", Presenters: []string{"Alice"}},
		},
	}

	result, err := GenerateWeek(context.Background(), client, testConfig(), zap.NewNop(), date(2025, 6, 2), "")
	require.NoError(t, err)

	require.Len(t, result.UnmatchedDaysOff, 1)
	assert.Equal(t, "2025-07-01", result.UnmatchedDaysOff[0].Day)
}

func TestGenerateWeek_CustomSlots(t *testing.T) {
	cfg := testConfig()
	cfg.SlotCount = 4
	firstHour := 22
	cfg.FirstSlotHour = &firstHour

	result, err := GenerateWeek(context.Background(), &mockDaysOffClient{}, cfg, zap.NewNop(), date(2025, 6, 2), "late")
	require.NoError(t, err)

	assert.Equal(t, 4, result.Plan.SlotCount)
	assert.Equal(t, []string{"22:00-23:00", "23:00-24:00", "00:00-01:00", "01:00-02:00"}, result.SlotLabels)
	assert.Len(t, result.Plan.Days[0].Roles[rota.RolePresenters].Grid, 4)
}

func TestGenerateWeek_DefaultsToNextMonday(t *testing.T) {
	result, err := GenerateWeek(context.Background(), &mockDaysOffClient{}, testConfig(), zap.NewNop(), time.Time{}, "")
	require.NoError(t, err)

	require.NotEmpty(t, result.Days)
	first := result.Days[0].Date
	assert.Equal(t, time.Monday, first.Weekday())
	assert.True(t, first.After(time.Now()))
}

func TestGenerateWeek_DaysOffClientError(t *testing.T) {
	client := &mockDaysOffClient{getErr: errors.New("file unreadable")}

	_, err := GenerateWeek(context.Background(), client, testConfig(), zap.NewNop(), date(2025, 6, 2), "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch days off")
	assert.Contains(t, err.Error(), "file unreadable")
}

func TestGenerateWeek_InvalidWeekRule(t *testing.T) {
	cfg := testConfig()
	cfg.WeekRule = "FREQ=DAILY;COUNT=10"

	_, err := GenerateWeek(context.Background(), &mockDaysOffClient{}, cfg, zap.NewNop(), date(2025, 6, 2), "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to calculate days")
}

func TestParseStartDate(t *testing.T) {
	start, err := ParseStartDate("2025-06-02")
	require.NoError(t, err)
	assert.Equal(t, date(2025, 6, 2), start)

	start, err = ParseStartDate("")
	require.NoError(t, err)
	assert.True(t, start.IsZero())

	_, err = ParseStartDate("02/06/2025")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")
}
