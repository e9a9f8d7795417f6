package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"unicode"

	"github.com/spf13/cobra"
)

const replIntro = `Welcome to the myshift REPL. Commands take the same arguments as the
CLI sub-commands. Type 'help' to list commands; 'exit', 'quit', or
Ctrl+D to leave.`

func newReplCmd(d *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(cmd, d)
		},
	}
}

// runREPL reads one command line at a time and dispatches it through a
// fresh command tree sharing this process's Deps. Command errors are
// printed and the loop continues; only EOF or exit/quit ends it.
func runREPL(cmd *cobra.Command, d *Deps) error {
	in := cmd.InOrStdin()
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, replIntro)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "(myshift) ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		args, err := splitLine(line)
		if err != nil {
			fmt.Fprintln(out, renderError(err))
			continue
		}

		switch args[0] {
		case "exit", "quit":
			fmt.Fprintln(out, "Exiting myshift REPL.")
			return nil
		case "help", "?":
			// "help" and "help <command>" both route through cobra help.
			if len(args) > 1 {
				args = append(args[1:], "--help")
			} else {
				args = []string{"--help"}
			}
		case "repl":
			fmt.Fprintln(out, "Already in a REPL.")
			continue
		}

		sub := NewRootCmd(d)
		sub.SetArgs(args)
		sub.SetIn(in)
		sub.SetOut(out)
		sub.SetErr(cmd.ErrOrStderr())
		// Each dispatch gets its own signal scope: Ctrl+C cancels the
		// command in flight, and the next prompt starts fresh instead
		// of inheriting an already-canceled context.
		runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		err = sub.ExecuteContext(runCtx)
		stop()
		if err != nil {
			fmt.Fprintln(out, renderError(err))
		}
	}
}

// splitLine splits a command line into arguments, honoring single and
// double quotes so emails or dates can be quoted. No escape sequences;
// adjacent quoted runs join into one argument.
func splitLine(s string) ([]string, error) {
	var (
		args  []string
		cur   strings.Builder
		quote rune
		open  bool // cur holds an argument, possibly an empty quoted one
	)
	for _, r := range s {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			open = true
		case unicode.IsSpace(r):
			if open {
				args = append(args, cur.String())
				cur.Reset()
				open = false
			}
		default:
			cur.WriteRune(r)
			open = true
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unclosed quote %q", quote)
	}
	if open {
		args = append(args, cur.String())
	}
	return args, nil
}
