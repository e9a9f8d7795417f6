package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/jdcasey/myshift/internal/domain"
	"github.com/jdcasey/myshift/internal/oncall"
)

// maxMonthsAhead bounds the `next` search window.
const maxMonthsAhead = 3

func newNextCmd(d *Deps) *cobra.Command {
	var userID, userEmail string

	cmd := &cobra.Command{
		Use:   "next [schedule_id]",
		Short: "Show the next on-call shift for a user",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

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
				Until:      now.AddDate(0, maxMonthsAhead, 0),
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
				renderHeader(out, "No upcoming shifts found for %s (%s) in the next %d months.",
					user.Name, user.ID, maxMonthsAhead)
				return nil
			}
			renderHeader(out, "Next on-call shift for %s (%s):", user.Name, user.ID)
			renderShifts(out, shifts[:1], nil)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user-id", "", "user ID to check (overrides MYSHIFT_MY_USER)")
	cmd.Flags().StringVar(&userEmail, "user-email", "", "user email to check (overrides MYSHIFT_MY_USER)")
	cmd.MarkFlagsMutuallyExclusive("user-id", "user-email")
	return cmd
}
