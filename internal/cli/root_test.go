package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/jdcasey/myshift/internal/config"
)

func execute(t *testing.T, d *Deps, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd(d)
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&out)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestConfigPrintWorksWithoutToken(t *testing.T) {
	d := NewDeps(config.Config{}, errors.New("required key MYSHIFT_TOKEN missing value"), zap.NewNop(), zap.NewAtomicLevel())

	out, err := execute(t, d, "config", "--print")
	if err != nil {
		t.Fatalf("config --print: %v", err)
	}
	if !strings.Contains(out, "MYSHIFT_TOKEN") {
		t.Fatalf("sample config missing token variable:\n%s", out)
	}
}

func TestConfigValidateReportsDeferredError(t *testing.T) {
	d := NewDeps(config.Config{}, errors.New("required key MYSHIFT_TOKEN missing value"), zap.NewNop(), zap.NewAtomicLevel())

	_, err := execute(t, d, "config")
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("want UsageError, got %v", err)
	}
}

func TestResolveScheduleID(t *testing.T) {
	if _, err := resolveScheduleID(nil, config.Config{}); err == nil {
		t.Fatal("want usage error when schedule is nowhere")
	}

	id, err := resolveScheduleID(nil, config.Config{ScheduleID: "CFG"})
	if err != nil || id != "CFG" {
		t.Fatalf("config fallback: got %q, %v", id, err)
	}

	id, err = resolveScheduleID([]string{"ARG"}, config.Config{ScheduleID: "CFG"})
	if err != nil || id != "ARG" {
		t.Fatalf("argument precedence: got %q, %v", id, err)
	}
}

func TestLogLevelFlagAdjustsVerbosity(t *testing.T) {
	lvl := zap.NewAtomicLevelAt(zap.WarnLevel)
	d := NewDeps(config.Config{}, nil, zap.NewNop(), lvl)

	if _, err := execute(t, d, "--log-level", "debug", "config", "--print"); err != nil {
		t.Fatalf("--log-level debug: %v", err)
	}
	if got := lvl.Level(); got != zap.DebugLevel {
		t.Fatalf("want debug level after override, got %v", got)
	}
}

func TestLogLevelFlagRejectsUnknownName(t *testing.T) {
	d := NewDeps(config.Config{}, nil, zap.NewNop(), zap.NewAtomicLevel())

	_, err := execute(t, d, "--log-level", "loud", "config", "--print")
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("want UsageError for unknown level, got %v", err)
	}
}

func TestCommandsRequireConfiguration(t *testing.T) {
	d := NewDeps(config.Config{}, errors.New("required key MYSHIFT_TOKEN missing value"), zap.NewNop(), zap.NewAtomicLevel())

	_, err := execute(t, d, "next", "SCHED1", "--user-id", "U1")
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("want UsageError for missing configuration, got %v", err)
	}
}
