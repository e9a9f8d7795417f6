package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/jdcasey/myshift/internal/domain"
	"github.com/jdcasey/myshift/internal/oncall"
)

func newUpcomingCmd(d *Deps) *cobra.Command {
	var (
		userID, userEmail string
		weeks             int
	)

	cmd := &cobra.Command{
		Use:   "upcoming [schedule_id]",
		Short: "Show upcoming on-call shifts for a user",
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
			loc, err := d.Location()
			if err != nil {
				return err
			}

			resolver := oncall.NewResolver(api, d.Log)
			user, err := resolveTargetUser(ctx, d, resolver, userID, userEmail)
			if err != nil {
				return err
			}

			now := time.Now().UTC()
			records, err := oncall.NewPlanner(api, d.Log).FetchAll(ctx, domain.ScheduleQuery{
				ScheduleID: scheduleID,
				Since:      now,
				Until:      now.AddDate(0, 0, 7*weeks),
				UserID:     user.ID,
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
				renderHeader(out, "No upcoming shifts found for %s (%s) in the next %d weeks.",
					user.Name, user.ID, weeks)
				return nil
			}
			renderHeader(out, "Upcoming on-call shifts for %s (%s) in the next %d weeks:",
				user.Name, user.ID, weeks)
			renderShifts(out, shifts, nil)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user-id", "", "user ID to check (overrides MYSHIFT_MY_USER)")
	cmd.Flags().StringVar(&userEmail, "user-email", "", "user email to check (overrides MYSHIFT_MY_USER)")
	cmd.Flags().IntVar(&weeks, "weeks", 4, "number of weeks to look ahead")
	cmd.MarkFlagsMutuallyExclusive("user-id", "user-email")
	return cmd
}
