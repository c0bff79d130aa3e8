package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"ltask/internal/config"
	"ltask/internal/exitcode"
	"ltask/internal/output"
	"ltask/internal/service"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `ltask` (no args) and `ltask list --filter <f>`.
type ListCmd struct {
	filter string
}

// SetFilter sets the filter name (for testing).
func (c *ListCmd) SetFilter(filter string) {
	c.filter = filter
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks and progress" }
func (c *ListCmd) Usage() string     { return "ltask list [--filter all|active|completed]" }
func (c *ListCmd) NeedsStore() bool  { return true }
func (c *ListCmd) Interactive() bool { return false }

func (c *ListCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.filter, "filter", "f", string(service.FilterAll), "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	a := newApp(cfg, svc, *zerolog.Ctx(ctx), nil)
	if !applyFilter(a, c.filter, errOut) {
		return exitcode.UserError
	}

	snap := a.Snapshot()
	if len(snap.Entries) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
	} else {
		output.FormatEntries(out, snap.Entries)
	}

	if !cfg.Quiet {
		output.FormatProgress(out, snap.Progress)
	}
	return exitcode.Success
}
