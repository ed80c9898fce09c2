package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/stream-rota/pkg/core/rota"
	"github.com/jakechorley/stream-rota/pkg/core/services"
)

// continuationMarker fills slots held by the same person as the slot above
const continuationMarker = "¦"

// GenerateWeekCmd creates the generateWeek command
func GenerateWeekCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generateWeek",
		Short: "Generate the presenter and operator rota for a week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			startValue, _ := cmd.Flags().GetString("start")
			seed, _ := cmd.Flags().GetString("seed")
			daysOffPath, _ := cmd.Flags().GetString("days-off")

			start, err := services.ParseStartDate(startValue)
			if err != nil {
				return err
			}

			app.Logger.Debug("generateWeek command",
				zap.String("start", startValue),
				zap.String("seed", seed),
				zap.String("days_off", daysOffPath))

			result, err := services.GenerateWeek(
				app.Ctx,
				app.daysOffSource(daysOffPath),
				app.Cfg,
				app.Logger,
				start,
				seed,
			)
			if err != nil {
				return err
			}

			renderWeek(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().String("start", "", "First day of the week (YYYY-MM-DD, defaults to next Monday)")
	cmd.Flags().String("seed", "", "Seed for random decisions")
	cmd.Flags().String("days-off", "", "Days off file (defaults to daysOffFile from config)")

	return cmd
}

// renderWeek prints the slot grid with one presenter and one operator column per day
func renderWeek(w io.Writer, result *services.GenerateWeekResult) {
	type column struct {
		dayLabel  string
		roleLabel string
		cells     []string
	}

	columns := make([]column, 0, len(result.Plan.Days)*len(rota.Roles()))
	for _, dp := range result.Plan.Days {
		for i, role := range rota.Roles() {
			dayLabel := ""
			if i == 0 {
				dayLabel = dp.Day.Label
			}
			columns = append(columns, column{
				dayLabel:  dayLabel,
				roleLabel: roleLabel(role),
				cells:     gridCells(dp.Roles[role].Grid, result.BlankMarker),
			})
		}
	}

	// Calculate column widths
	slotColWidth := len("Slot") + 2
	for _, label := range result.SlotLabels {
		slotColWidth = max(slotColWidth, len(label)+2)
	}
	colWidth := 0
	for _, col := range columns {
		colWidth = max(colWidth, len(col.dayLabel), len(col.roleLabel))
		for _, cell := range col.cells {
			colWidth = max(colWidth, displayWidth(cell))
		}
	}
	colWidth += 2

	fmt.Fprintf(w, "\nWeek %s", result.WeekID)
	if result.Seed != "" {
		fmt.Fprintf(w, " (seed: %s)", result.Seed)
	}
	fmt.Fprintf(w, "\n\n")

	// Header rows
	fmt.Fprintf(w, "%-*s", slotColWidth, "")
	for _, col := range columns {
		fmt.Fprintf(w, "%-*s", colWidth, col.dayLabel)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%-*s", slotColWidth, "Slot")
	for _, col := range columns {
		fmt.Fprintf(w, "%-*s", colWidth, col.roleLabel)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, strings.Repeat("-", slotColWidth+colWidth*len(columns)))

	for i, label := range result.SlotLabels {
		fmt.Fprintf(w, "%-*s", slotColWidth, label)
		for _, col := range columns {
			fmt.Fprint(w, padRight(col.cells[i], colWidth))
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)

	if len(result.UnmatchedDaysOff) > 0 {
		fmt.Fprintf(w, "⚠️  %d days off entries did not match any day in the week:\n", len(result.UnmatchedDaysOff))
		for _, entry := range result.UnmatchedDaysOff {
			fmt.Fprintf(w, "  - %s\n", entry.Day)
		}
		fmt.Fprintln(w)
	}

	if result.Success {
		fmt.Fprintf(w, "✓ Week generated with no warnings\n\n")
		return
	}

	fmt.Fprintf(w, "⚠️  Week generated with %d warnings:\n", len(result.ValidationErrors))
	for _, verr := range result.ValidationErrors {
		fmt.Fprintf(w, "  - [%s] %s\n", verr.RuleName, verr.Description)
	}
	fmt.Fprintln(w)
}

// gridCells converts a grid into display cells, marking continued runs and blank slots
func gridCells(grid rota.SlotGrid, blankMarker string) []string {
	cells := make([]string, len(grid))
	for i, person := range grid {
		switch {
		case person == rota.BlankMarker:
			cells[i] = blankMarker
		case i > 0 && grid[i-1] == person:
			cells[i] = continuationMarker
		default:
			cells[i] = string(person)
		}
	}
	return cells
}

func roleLabel(role rota.Role) string {
	switch role {
	case rota.RolePresenters:
		return "Presenter"
	case rota.RoleOperators:
		return "Operator"
	default:
		return string(role)
	}
}
