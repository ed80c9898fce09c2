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

// ViewAvailabilityCmd creates the viewAvailability command
func ViewAvailabilityCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "viewAvailability",
		Short: "Show who is available and who is off on each day of the week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			startValue, _ := cmd.Flags().GetString("start")
			daysOffPath, _ := cmd.Flags().GetString("days-off")

			start, err := services.ParseStartDate(startValue)
			if err != nil {
				return err
			}

			app.Logger.Debug("viewAvailability command",
				zap.String("start", startValue),
				zap.String("days_off", daysOffPath))

			result, err := services.ViewAvailability(
				app.Ctx,
				app.daysOffSource(daysOffPath),
				app.Cfg,
				app.Logger,
				start,
			)
			if err != nil {
				return err
			}

			renderAvailability(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().String("start", "", "First day of the week (YYYY-MM-DD, defaults to next Monday)")
	cmd.Flags().String("days-off", "", "Days off file (defaults to daysOffFile from config)")

	return cmd
}

func renderAvailability(w io.Writer, result *services.ViewAvailabilityResult) {
	fmt.Fprintf(w, "\nAvailability for %d days:\n\n", len(result.Days))

	for _, day := range result.Days {
		fmt.Fprintf(w, "%s\n", day.Day.Label)
		for _, role := range rota.Roles() {
			ra := day.Roles[role]
			fmt.Fprintf(w, "  %-11s available: %s\n", roleLabel(role), joinPeople(ra.Available))
			if len(ra.Off) > 0 {
				fmt.Fprintf(w, "  %-11s off:       %s\n", "", joinPeople(ra.Off))
			}
		}
	}
	fmt.Fprintln(w)

	if len(result.UnmatchedDaysOff) > 0 {
		fmt.Fprintf(w, "⚠️  %d days off entries did not match any day in the week:\n", len(result.UnmatchedDaysOff))
		for _, entry := range result.UnmatchedDaysOff {
			fmt.Fprintf(w, "  - %s\n", entry.Day)
		}
		fmt.Fprintln(w)
	}
}

func joinPeople(people []rota.Person) string {
	if len(people) == 0 {
		return "nobody"
	}
	names := make([]string, len(people))
	for i, p := range people {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}
