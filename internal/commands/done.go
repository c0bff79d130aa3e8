package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"ltask/internal/app"
	"ltask/internal/config"
	"ltask/internal/exitcode"
	"ltask/internal/service"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd implements the done command. It toggles, so running it on a
// completed task marks it active again.
type DoneCmd struct {
	filter string
	id     string
}

// SetFilter sets the filter the task number refers to (for testing).
func (c *DoneCmd) SetFilter(filter string) {
	c.filter = filter
}

// SetID sets the --id flag (for testing).
func (c *DoneCmd) SetID(id string) {
	c.id = id
}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"toggle"} }
func (c *DoneCmd) Synopsis() string  { return "Toggle a task's completion" }
func (c *DoneCmd) Usage() string {
	return "ltask done [--filter all|active|completed] <n> | --id <id>"
}
func (c *DoneCmd) NeedsStore() bool  { return true }
func (c *DoneCmd) Interactive() bool { return false }

func (c *DoneCmd) RegisterFlags(fs *pflag.FlagSet) {
	registerRefFlags(fs, &c.filter, &c.id)
}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	a := newApp(cfg, svc, *zerolog.Ctx(ctx), nil)

	id, code := resolveTarget(a, c.filter, args, c.id, errOut)
	if code != exitcode.Success {
		return code
	}

	if err := a.Toggle(ctx, id); err != nil {
		fmt.Fprintf(errOut, "error: storage error: %v\n", err)
		return exitcode.StorageError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// registerRefFlags registers the flags shared by commands that target one task.
func registerRefFlags(fs *pflag.FlagSet, filter, id *string) {
	fs.StringVarP(filter, "filter", "f", string(service.FilterAll), "")
	fs.StringVar(id, "id", "", "")
}

// applyFilter parses name and sets it on a. Reports and returns false on error.
func applyFilter(a *app.App, name string, errOut io.Writer) bool {
	filter, err := service.ParseFilter(name)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return false
	}
	a.SetFilter(filter)
	return true
}

// resolveTarget parses the task reference and maps it to an ID.
func resolveTarget(a *app.App, filter string, args []string, id string, errOut io.Writer) (string, int) {
	ref, err := ParseTaskRef(args, id)
	if err != nil {
		if err == ErrTaskRefRequired {
			fmt.Fprintln(errOut, "error: task reference required")
		} else {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
		return "", exitcode.UserError
	}

	if !applyFilter(a, filter, errOut) {
		return "", exitcode.UserError
	}

	target, err := ref.Resolve(a)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return "", exitcode.UserError
	}
	return target, exitcode.Success
}
