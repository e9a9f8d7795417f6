package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/jdcasey/myshift/internal/domain"
	"github.com/jdcasey/myshift/internal/oncall"
)

func newPlanCmd(d *Deps) *cobra.Command {
	var (
		weeks int
		utc   bool
	)

	cmd := &cobra.Command{
		Use:   "plan [schedule_id]",
		Short: "Show all on-call shifts for the coming weeks",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if weeks <= 0 {
				return usageErrorf("--weeks must be positive, got %d", weeks)
			}
			scheduleID, err := resolveScheduleID(args, d.Cfg)
			if err != nil {
				return err
			}
			api, err := d.API()
			if err != nil {
				return err
			}
			loc := time.UTC
			if !utc {
				if loc, err = d.Location(); err != nil {
					return err
				}
			}

			now := time.Now().UTC()
			records, err := oncall.NewPlanner(api, d.Log).FetchAll(ctx, domain.ScheduleQuery{
				ScheduleID: scheduleID,
				Since:      now,
				Until:      now.AddDate(0, 0, 7*weeks),
				Overflow:   true,
			})
			if err != nil {
				return err
			}
			shifts, err := oncall.Dedupe(records, loc)
			if err != nil {
				return err
			}

			if len(shifts) == 0 {
				renderHeader(out, "No upcoming shifts found in the next %d weeks.", weeks)
				return nil
			}

			ids := make([]string, 0, len(shifts))
			for _, s := range shifts {
				ids = append(ids, s.UserID)
			}
			// Unresolvable users are omitted from the map and render as
			// bare ids; an incomplete roster is no reason to hide shifts.
			users, err := oncall.NewResolver(api, d.Log).Batch(ctx, ids)
			if err != nil {
				return err
			}

			renderHeader(out, "On-call schedule for the next %d weeks:", weeks)
			renderShifts(out, shifts, users)
			return nil
		},
	}

	cmd.Flags().IntVar(&weeks, "weeks", 4, "number of weeks to look ahead")
	cmd.Flags().BoolVar(&utc, "utc", false, "show times in UTC instead of the configured timezone")
	return cmd
}
