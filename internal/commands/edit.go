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
	Register(&EditCmd{})
}

// EditCmd implements the edit command. Fields not given as flags are
// prompted for on stdin.
type EditCmd struct {
	filter string
	id     string

	title   string
	dueDate string

	// kept so an explicit empty --due is told apart from an absent one
	flags *pflag.FlagSet
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Edit a task's title and due date" }
func (c *EditCmd) Usage() string {
	return "ltask edit [--title <t>] [--due <d>] [--filter f] <n> | --id <id>"
}
func (c *EditCmd) NeedsStore() bool  { return true }
func (c *EditCmd) Interactive() bool { return false }

func (c *EditCmd) RegisterFlags(fs *pflag.FlagSet) {
	registerRefFlags(fs, &c.filter, &c.id)
	fs.StringVarP(&c.title, "title", "t", "", "")
	fs.StringVarP(&c.dueDate, "due", "d", "", "")
	c.flags = fs
}

// flagPrompter answers prompts from flags that were set and falls back to
// an interactive prompter for the rest.
type flagPrompter struct {
	answers  map[string]string
	fallback app.Prompter
}

func (p flagPrompter) RequestText(label, defaultValue string) (string, bool) {
	if v, ok := p.answers[label]; ok {
		return v, true
	}
	return p.fallback.RequestText(label, defaultValue)
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	a := newApp(cfg, svc, *zerolog.Ctx(ctx), nil)

	id, code := resolveTarget(a, c.filter, args, c.id, errOut)
	if code != exitcode.Success {
		return code
	}

	answers := make(map[string]string)
	if c.changed("title") {
		answers[app.MsgEditTitle] = c.title
	}
	if c.changed("due") {
		answers[app.MsgEditDueDate] = c.dueDate
	}
	p := flagPrompter{answers: answers, fallback: newLinePrompter(in, out)}

	saved, err := a.EditInteractive(ctx, id, p)
	if err != nil {
		fmt.Fprintf(errOut, "error: storage error: %v\n", err)
		return exitcode.StorageError
	}

	if !cfg.Quiet {
		_, found := svc.Find(id)
		if found && !saved {
			fmt.Fprintln(out, "canceled")
		} else {
			fmt.Fprintln(out, "ok")
		}
	}
	return exitcode.Success
}

func (c *EditCmd) changed(name string) bool {
	return c.flags != nil && c.flags.Changed(name)
}
