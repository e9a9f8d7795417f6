package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jdcasey/myshift/internal/oncall"
)

const defaultHorizonDays = 14

func newOverrideCmd(d *Deps) *cobra.Command {
	var (
		userID, userEmail             string
		targetUserID, targetUserEmail string
		startStr, endStr              string
		horizon                       int
		dryRun                        bool
	)

	cmd := &cobra.Command{
		Use:   "override [schedule_id]",
		Short: "Override a user's consecutive shifts with another user",
		Long: `Find the maximal run of consecutive shifts the target user holds starting
at --start (the run ends at the first day with no shift) and create one
override per shift assigning the given user.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			scheduleID, err := resolveScheduleID(args, d.Cfg)
			if err != nil {
				return err
			}
			if userID == "" && userEmail == "" {
				return usageErrorf("an assignee is required: --user-id or --user-email")
			}
			if targetUserID == "" && targetUserEmail == "" {
				return usageErrorf("a target is required: --target-user-id or --target-user-email")
			}
			start, err := time.ParseInLocation("2006-01-02", startStr, time.UTC)
			if err != nil {
				return usageErrorf("invalid --start %q: use YYYY-MM-DD", startStr)
			}
			days := horizon
			if endStr != "" {
				end, err := time.ParseInLocation("2006-01-02", endStr, time.UTC)
				if err != nil {
					return usageErrorf("invalid --end %q: use YYYY-MM-DD", endStr)
				}
				// --end is inclusive.
				days = int(end.AddDate(0, 0, 1).Sub(start).Hours() / 24)
			}
			if days <= 0 {
				return usageErrorf("override window is empty: check --start/--end/--horizon")
			}

			api, err := d.API()
			if err != nil {
				return err
			}

			resolver := oncall.NewResolver(api, d.Log)
			assignee, err := resolveTargetUser(ctx, d, resolver, userID, userEmail)
			if err != nil {
				return err
			}
			target, err := resolveTargetUser(ctx, d, resolver, targetUserID, targetUserEmail)
			if err != nil {
				return err
			}

			planner := oncall.NewPlanner(api, d.Log)
			shifts, err := oncall.NewLocator(planner, d.Log).FindConsecutive(ctx, scheduleID, target.ID, start, days)
			if err != nil {
				return err
			}
			if len(shifts) == 0 {
				// Nothing to override; distinct from a transport failure.
				return fmt.Errorf("no consecutive shifts found for %s starting %s", target.Label(target.ID), startStr)
			}

			if dryRun {
				renderHeader(out, "Would override %d shift(s) of %s, assigning %s:",
					len(shifts), target.Label(target.ID), assignee.Label(assignee.ID))
				renderShifts(out, shifts, nil)
				return nil
			}

			results := oncall.NewSubmitter(api, d.Log).Submit(ctx, scheduleID, assignee.ID, shifts)
			failed := 0
			renderHeader(out, "Created override for %s:", assignee.Label(assignee.ID))
			for _, res := range results {
				if res.Err != nil {
					failed++
					fmt.Fprintf(out, "  %s  %s\n", formatShiftTimes(res.Shift),
						failureStyle.Render("failed: "+res.Err.Error()))
					continue
				}
				fmt.Fprintf(out, "  %s  %s\n", formatShiftTimes(res.Shift),
					successStyle.Render("created "+res.CreatedID))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d override(s) failed", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user-id", "", "user ID to assign")
	cmd.Flags().StringVar(&userEmail, "user-email", "", "user email to assign")
	cmd.Flags().StringVar(&targetUserID, "target-user-id", "", "user ID whose shifts are overridden")
	cmd.Flags().StringVar(&targetUserEmail, "target-user-email", "", "user email whose shifts are overridden")
	cmd.Flags().StringVar(&startStr, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endStr, "end", "", "last date to consider (YYYY-MM-DD, inclusive)")
	cmd.Flags().IntVar(&horizon, "horizon", defaultHorizonDays, "maximum days to walk when --end is not given")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be overridden without creating anything")
	cmd.MarkFlagsMutuallyExclusive("user-id", "user-email")
	cmd.MarkFlagsMutuallyExclusive("target-user-id", "target-user-email")
	cmd.MarkFlagsMutuallyExclusive("end", "horizon")
	_ = cmd.MarkFlagRequired("start")
	return cmd
}
