package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jdcasey/myshift/internal/config"
	"github.com/jdcasey/myshift/internal/domain"
	"github.com/jdcasey/myshift/internal/logger"
	"github.com/jdcasey/myshift/internal/oncall"
	"github.com/jdcasey/myshift/internal/pagerduty"
)

// UsageError marks failures the caller can fix by invoking the tool
// differently (missing argument, bad flag value, absent config). Exits
// with status 2 rather than 1.
type UsageError struct{ msg string }

func (e *UsageError) Error() string { return e.msg }

func usageErrorf(format string, args ...any) error {
	return &UsageError{msg: fmt.Sprintf(format, args...)}
}

// Deps carries the collaborators every command shares: configuration,
// logger, and the lazily-built API client. Built once per process and
// passed explicitly — no ambient globals.
type Deps struct {
	Cfg    config.Config
	CfgErr error // deferred so `config` and `--help` work without a token
	Log    *zap.Logger
	Level  zap.AtomicLevel

	api *pagerduty.Client
	loc *time.Location
}

// NewDeps wraps the loaded (or failed) configuration for command use.
func NewDeps(cfg config.Config, cfgErr error, log *zap.Logger, level zap.AtomicLevel) *Deps {
	return &Deps{Cfg: cfg, CfgErr: cfgErr, Log: log, Level: level}
}

// SetLogLevel adjusts logger verbosity for the rest of the process.
func (d *Deps) SetLogLevel(name string) error {
	switch name {
	case "debug", "info", "warn", "error":
		d.Level.SetLevel(logger.ParseLevel(name))
		return nil
	}
	return usageErrorf("invalid --log-level %q: use debug, info, warn, or error", name)
}

// API returns the shared client, building it on first use. Fails with
// the deferred configuration error when the environment was unusable.
func (d *Deps) API() (*pagerduty.Client, error) {
	if d.CfgErr != nil {
		return nil, usageErrorf("configuration: %v (run `myshift config --print` for a sample)", d.CfgErr)
	}
	if d.api == nil {
		d.api = pagerduty.New(d.Cfg.APIURL, d.Cfg.Token, d.Log)
	}
	return d.api, nil
}

// Location returns the display timezone from configuration.
func (d *Deps) Location() (*time.Location, error) {
	if d.loc != nil {
		return d.loc, nil
	}
	name := d.Cfg.Timezone
	if name == "" {
		name = "Local"
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, usageErrorf("invalid MYSHIFT_TIMEZONE %q: %v", name, err)
	}
	d.loc = loc
	return loc, nil
}

// NewRootCmd builds the command tree. A fresh tree is built per
// execution (the REPL builds one per line) because cobra flag state is
// single-use.
func NewRootCmd(d *Deps) *cobra.Command {
	var logLevel string
	root := &cobra.Command{
		Use:           "myshift",
		Short:         "Query and override PagerDuty on-call schedules",
		Version:       pagerduty.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if logLevel == "" {
				return nil
			}
			return d.SetLogLevel(logLevel)
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "override MYSHIFT_LOG_LEVEL for this run (debug, info, warn, error)")
	root.AddCommand(
		newNextCmd(d),
		newUpcomingCmd(d),
		newPlanCmd(d),
		newOverrideCmd(d),
		newConfigCmd(d),
		newReplCmd(d),
	)
	return root
}

// Execute runs the CLI and maps errors onto exit codes: 0 success,
// 1 operation failure, 2 usage/configuration error. Process exit is
// decided here, at the outermost layer, and nowhere else.
func Execute(ctx context.Context, d *Deps) int {
	root := NewRootCmd(d)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, renderError(err))
		var uerr *UsageError
		if errors.As(err, &uerr) {
			return 2
		}
		return 1
	}
	return 0
}

// resolveScheduleID picks the schedule to query: the positional
// argument takes precedence over MYSHIFT_SCHEDULE_ID.
func resolveScheduleID(args []string, cfg config.Config) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if cfg.ScheduleID != "" {
		return cfg.ScheduleID, nil
	}
	return "", usageErrorf("schedule ID must be given as an argument or via MYSHIFT_SCHEDULE_ID")
}

// resolveTargetUser picks the user a query is about: explicit id flag,
// explicit email flag, or the configured my_user ("@" means email).
func resolveTargetUser(ctx context.Context, d *Deps, res *oncall.Resolver, userID, userEmail string) (domain.User, error) {
	switch {
	case userID != "":
		return res.ByID(ctx, userID)
	case userEmail != "":
		return res.ByEmail(ctx, userEmail)
	case d.Cfg.MyUser != "":
		if strings.Contains(d.Cfg.MyUser, "@") {
			return res.ByEmail(ctx, d.Cfg.MyUser)
		}
		return res.ByID(ctx, d.Cfg.MyUser)
	}
	return domain.User{}, usageErrorf("no user specified: use --user-id/--user-email or set MYSHIFT_MY_USER")
}
