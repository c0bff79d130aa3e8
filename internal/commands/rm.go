package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"ltask/internal/config"
	"ltask/internal/exitcode"
	"ltask/internal/service"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct {
	filter string
	id     string
	yes    bool
}

// SetYes skips confirmation (for testing).
func (c *RmCmd) SetYes(yes bool) {
	c.yes = yes
}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete a task" }
func (c *RmCmd) Usage() string {
	return "ltask rm [--yes] [--filter all|active|completed] <n> | --id <id>"
}
func (c *RmCmd) NeedsStore() bool  { return true }
func (c *RmCmd) Interactive() bool { return false }

func (c *RmCmd) RegisterFlags(fs *pflag.FlagSet) {
	registerRefFlags(fs, &c.filter, &c.id)
	fs.BoolVarP(&c.yes, "yes", "y", false, "")
}

// alwaysConfirm is the confirmer used with --yes.
type alwaysConfirm struct{}

func (alwaysConfirm) Confirm(string) bool { return true }

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	a := newApp(cfg, svc, *zerolog.Ctx(ctx), nil)

	id, code := resolveTarget(a, c.filter, args, c.id, errOut)
	if code != exitcode.Success {
		return code
	}

	var confirmed bool
	var err error
	if c.yes {
		confirmed, err = a.DeleteInteractive(ctx, id, alwaysConfirm{})
	} else {
		confirmed, err = a.DeleteInteractive(ctx, id, newLinePrompter(in, out))
	}
	if err != nil {
		fmt.Fprintf(errOut, "error: storage error: %v\n", err)
		return exitcode.StorageError
	}

	if !cfg.Quiet {
		if confirmed {
			fmt.Fprintln(out, "ok")
		} else {
			fmt.Fprintln(out, "canceled")
		}
	}
	return exitcode.Success
}
