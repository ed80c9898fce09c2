package commands

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jakechorley/stream-rota/internal/config"
	"github.com/jakechorley/stream-rota/pkg/core/rota"
)

// ListRosterCmd creates the listRoster command
func ListRosterCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listRoster",
		Short: "List the presenter and operator pools with their preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderRoster(cmd.OutOrStdout(), app.Cfg)
			return nil
		},
	}
}

func renderRoster(w io.Writer, cfg *config.Config) {
	for _, role := range rota.Roles() {
		roleCfg := cfg.Roles.Role(string(role))

		fmt.Fprintf(w, "\n%s (%d):\n", roleLabel(role), len(roleCfg.Pool))
		for _, name := range roleCfg.Pool {
			tags := make([]string, 0, 3)
			if slices.Contains(roleCfg.MorningAnchors, name) {
				tags = append(tags, "morning anchor")
			}
			if slices.Contains(roleCfg.EveningAnchors, name) {
				tags = append(tags, "evening anchor")
			}
			if slices.Contains(roleCfg.NeverEvening, name) {
				tags = append(tags, "never evening")
			}

			if len(tags) > 0 {
				fmt.Fprintf(w, "- %s [%s]\n", name, strings.Join(tags, ", "))
			} else {
				fmt.Fprintf(w, "- %s\n", name)
			}
		}

		if roleCfg.ShuffleAnchors {
			fmt.Fprintln(w, "  (preferred anchors are shuffled)")
		}
	}

	if len(cfg.RecurringDaysOff) > 0 {
		fmt.Fprintf(w, "\nRecurring days off:\n")
		for _, dayOff := range cfg.RecurringDaysOff {
			fmt.Fprintf(w, "- %s %s: %s\n", dayOff.Role, dayOff.RRule, strings.Join(dayOff.People, ", "))
		}
	}
	fmt.Fprintln(w)
}
