package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/stream-rota/internal/config"
	"github.com/jakechorley/stream-rota/pkg/clients/daysoffclient"
	"github.com/jakechorley/stream-rota/pkg/core/rota"
	"github.com/jakechorley/stream-rota/pkg/core/services"
)

func TestGridCells(t *testing.T) {
	tests := []struct {
		name     string
		grid     rota.SlotGrid
		expected []string
	}{
		{
			name:     "runs collapse to a continuation marker",
			grid:     rota.SlotGrid{"Alice", "Alice", "Bella", "Bella", "Bella", "Cara"},
			expected: []string{"Alice", "¦", "Bella", "¦", "¦", "Cara"},
		},
		{
			name:     "blank day shows the blank marker in every slot",
			grid:     rota.SlotGrid{rota.BlankMarker, rota.BlankMarker, rota.BlankMarker},
			expected: []string{"-", "-", "-"},
		},
		{
			name:     "single slot",
			grid:     rota.SlotGrid{"Alice"},
			expected: []string{"Alice"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, gridCells(tt.grid, "-"))
		})
	}
}

func testResult() *services.GenerateWeekResult {
	monday := rota.NewDay(time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC))
	tuesday := rota.NewDay(time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC))

	plan := &rota.WeekPlan{
		SlotCount: 4,
		Days: []rota.DayPlan{
			{
				Day: monday,
				Roles: map[rota.Role]rota.RolePlan{
					rota.RolePresenters: {Order: []rota.Person{"Alice", "Bella"}, Grid: rota.Expand([]rota.Person{"Alice", "Bella"}, 4)},
					rota.RoleOperators:  {Order: []rota.Person{"Mark"}, Grid: rota.Expand([]rota.Person{"Mark"}, 4)},
				},
			},
			{
				Day: tuesday,
				Roles: map[rota.Role]rota.RolePlan{
					rota.RolePresenters: {Order: []rota.Person{}, Grid: rota.Expand(nil, 4)},
					rota.RoleOperators:  {Order: []rota.Person{"Nick", "Mark"}, Grid: rota.Expand([]rota.Person{"Nick", "Mark"}, 4)},
				},
			},
		},
	}

	return &services.GenerateWeekResult{
		WeekID:      "week-1",
		Seed:        "abc",
		Days:        []rota.Day{monday, tuesday},
		Plan:        plan,
		SlotLabels:  rota.SlotLabels(8, 4),
		BlankMarker: "——",
		Success:     false,
		ValidationErrors: []rota.DayValidationError{
			{DayIndex: 1, DayKey: "2025-06-03", Role: rota.RolePresenters, RuleName: "Coverage", Description: "no presenters available on 2025-06-03"},
		},
		UnmatchedDaysOff: []daysoffclient.Entry{{Day: "2025-07-01"}},
	}
}

func TestRenderWeek(t *testing.T) {
	var buf bytes.Buffer
	renderWeek(&buf, testResult())
	output := buf.String()

	assert.Contains(t, output, "Week week-1 (seed: abc)")
	assert.Contains(t, output, "Mon 02 Jun")
	assert.Contains(t, output, "Tue 03 Jun")
	assert.Contains(t, output, "Presenter")
	assert.Contains(t, output, "Operator")

	lines := strings.Split(output, "\n")
	var slotRows []string
	for _, line := range lines {
		if strings.HasPrefix(line, "08:00-09:00") || strings.HasPrefix(line, "09:00-10:00") ||
			strings.HasPrefix(line, "10:00-11:00") || strings.HasPrefix(line, "11:00-12:00") {
			slotRows = append(slotRows, line)
		}
	}
	require.Len(t, slotRows, 4)

	assert.Equal(t, []string{"08:00-09:00", "Alice", "Mark", "——", "Nick"}, strings.Fields(slotRows[0]))
	assert.Equal(t, []string{"09:00-10:00", "¦", "¦", "——", "¦"}, strings.Fields(slotRows[1]))
	assert.Equal(t, []string{"10:00-11:00", "Bella", "¦", "——", "Mark"}, strings.Fields(slotRows[2]))
	assert.Equal(t, []string{"11:00-12:00", "¦", "¦", "——", "¦"}, strings.Fields(slotRows[3]))

	assert.Contains(t, output, "1 days off entries did not match any day in the week")
	assert.Contains(t, output, "- 2025-07-01")
	assert.Contains(t, output, "Week generated with 1 warnings")
	assert.Contains(t, output, "[Coverage] no presenters available on 2025-06-03")
}

func TestRenderWeek_Success(t *testing.T) {
	result := testResult()
	result.Success = true
	result.ValidationErrors = nil
	result.UnmatchedDaysOff = nil
	result.Seed = ""

	var buf bytes.Buffer
	renderWeek(&buf, result)
	output := buf.String()

	assert.Contains(t, output, "Week week-1\n")
	assert.NotContains(t, output, "seed")
	assert.Contains(t, output, "✓ Week generated with no warnings")
	assert.NotContains(t, output, "did not match")
}

func TestRenderAvailability(t *testing.T) {
	result := &services.ViewAvailabilityResult{
		Days: []services.DayAvailability{
			{
				Day: rota.NewDay(time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)),
				Roles: map[rota.Role]services.RoleAvailability{
					rota.RolePresenters: {Available: []rota.Person{"Bella", "Cara"}, Off: []rota.Person{"Alice"}},
					rota.RoleOperators:  {Available: []rota.Person{}, Off: []rota.Person{"Mark"}},
				},
			},
		},
	}

	var buf bytes.Buffer
	renderAvailability(&buf, result)
	output := buf.String()

	assert.Contains(t, output, "Availability for 1 days")
	assert.Contains(t, output, "Mon 02 Jun")
	assert.Contains(t, output, "available: Bella, Cara")
	assert.Contains(t, output, "off:       Alice")
	assert.Contains(t, output, "available: nobody")
	assert.Contains(t, output, "off:       Mark")
}

func TestRenderRoster(t *testing.T) {
	cfg := &config.Config{
		Roles: config.Roles{
			Presenters: config.RoleConfig{
				Pool:           []string{"Alice", "Bella", "Cara"},
				MorningAnchors: []string{"Alice"},
				NeverEvening:   []string{"Alice", "Cara"},
			},
			Operators: config.RoleConfig{
				Pool:           []string{"Mark", "Nick"},
				EveningAnchors: []string{"Nick"},
				ShuffleAnchors: true,
			},
		},
		RecurringDaysOff: []config.RecurringDayOff{
			{RRule: "FREQ=WEEKLY;BYDAY=SU", Role: "operators", People: []string{"Mark"}},
		},
	}

	var buf bytes.Buffer
	renderRoster(&buf, cfg)
	output := buf.String()

	assert.Contains(t, output, "Presenter (3):")
	assert.Contains(t, output, "- Alice [morning anchor, never evening]\n")
	assert.Contains(t, output, "- Bella\n")
	assert.Contains(t, output, "- Cara [never evening]\n")
	assert.Contains(t, output, "Operator (2):")
	assert.Contains(t, output, "- Nick [evening anchor]\n")
	assert.Contains(t, output, "(preferred anchors are shuffled)")
	assert.Contains(t, output, "- operators FREQ=WEEKLY;BYDAY=SU: Mark")
}
