package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

const sampleConfig = `# myshift configuration (environment variables)

# PagerDuty API token (required)
export MYSHIFT_TOKEN="your-pagerduty-token"

# Default schedule ID (optional)
# export MYSHIFT_SCHEDULE_ID="your-default-schedule-id"

# Your PagerDuty user ID or email (optional); used when no
# --user-id/--user-email flag is given
# export MYSHIFT_MY_USER="your-email@example.com"

# Display timezone, IANA name (optional, default: Local)
# export MYSHIFT_TIMEZONE="America/New_York"

# API base URL (optional, default: https://api.pagerduty.com)
# export MYSHIFT_API_URL="https://api.pagerduty.com"

# Log level: debug|info|warn|error (optional, default: warn)
# export MYSHIFT_LOG_LEVEL="warn"
`

func newConfigCmd(d *Deps) *cobra.Command {
	var printSample bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Validate configuration or print a sample",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if printSample {
				fmt.Fprint(out, sampleConfig)
				return nil
			}
			if d.CfgErr != nil {
				return usageErrorf("configuration invalid: %v", d.CfgErr)
			}
			if _, err := d.Location(); err != nil {
				return err
			}
			fmt.Fprintln(out, "Configuration is valid.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&printSample, "print", false, "print a sample configuration")
	return cmd
}
