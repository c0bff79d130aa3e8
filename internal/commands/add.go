package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"ltask/internal/config"
	"ltask/internal/exitcode"
	"ltask/internal/service"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	dueDate string
}

// SetDueDate sets the due date (for testing).
func (c *AddCmd) SetDueDate(due string) {
	c.dueDate = due
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string     { return "ltask add [--due <date>] <title...>" }
func (c *AddCmd) NeedsStore() bool  { return true }
func (c *AddCmd) Interactive() bool { return false }

func (c *AddCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.dueDate, "due", "d", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	a := newApp(cfg, svc, *zerolog.Ctx(ctx), errorNotifier(errOut))

	// Join args to form title; the store trims and validates it.
	title := strings.Join(args, " ")
	task, err := a.AddTask(ctx, title, c.dueDate)
	if err != nil {
		if errors.Is(err, service.ErrEmptyTitle) {
			return exitcode.UserError
		}
		fmt.Fprintf(errOut, "error: storage error: %v\n", err)
		return exitcode.StorageError
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "ok %s\n", task.ID)
	}
	return exitcode.Success
}
