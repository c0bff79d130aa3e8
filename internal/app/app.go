// Package app owns the session state (task service plus the current filter)
// and turns user events into service mutations. Surfaces call an event
// method, then redraw from a fresh Snapshot.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"ltask/internal/service"
	"ltask/internal/view"
)

// Prompt and notice texts shown to the user.
const (
	MsgEmptyTitle    = "Please enter a task title."
	MsgEditTitle     = "Edit task title:"
	MsgEditDueDate   = "Edit due date (YYYY-MM-DD):"
	MsgConfirmDelete = "Are you sure you want to delete this task?"
)

// Prompter asks the user for a line of text. ok is false if the user
// canceled the prompt.
type Prompter interface {
	RequestText(label, defaultValue string) (value string, ok bool)
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(label string) bool
}

// Notifier shows a message the user must acknowledge.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string)

// Notify implements Notifier.
func (f NotifierFunc) Notify(message string) { f(message) }

// Snapshot is everything a surface needs to draw the list.
type Snapshot struct {
	Filter   service.Filter
	Entries  []view.Entry
	Progress view.Progress
}

// App is the interaction handler.
type App struct {
	svc         service.Service
	filter      service.Filter
	placeholder string
	notifier    Notifier
	logger      zerolog.Logger
}

// Options configures an App.
type Options struct {
	// Placeholder replaces empty due dates in rendered entries.
	Placeholder string

	// Notifier receives validation notices. May be nil.
	Notifier Notifier

	Logger zerolog.Logger
}

// New creates an App over svc with the filter set to all.
func New(svc service.Service, opts Options) *App {
	return &App{
		svc:         svc,
		filter:      service.FilterAll,
		placeholder: opts.Placeholder,
		notifier:    opts.Notifier,
		logger:      opts.Logger,
	}
}

// Filter returns the current filter.
func (a *App) Filter() service.Filter { return a.filter }

// SetFilter selects which tasks are displayed.
func (a *App) SetFilter(f service.Filter) {
	a.filter = f
	a.logger.Debug().
		Str("filter", string(f)).
		Msg("filter changed")
}

// Snapshot recomputes the visible entries and progress from scratch.
// Progress always covers the whole collection, not just visible tasks.
func (a *App) Snapshot() Snapshot {
	tasks := a.svc.Tasks()
	return Snapshot{
		Filter:   a.filter,
		Entries:  view.Render(view.ComputeVisible(tasks, a.filter), a.placeholder),
		Progress: view.ComputeProgress(tasks),
	}
}

// ResolveIndex maps a 1-based position in the visible list to a task ID.
func (a *App) ResolveIndex(n int) (string, error) {
	entries := a.Snapshot().Entries
	if n < 1 || n > len(entries) {
		return "", fmt.Errorf("task number out of range: %d", n)
	}
	return entries[n-1].ID, nil
}

// AddTask creates a task. An empty title is reported through the Notifier
// and returned as service.ErrEmptyTitle.
func (a *App) AddTask(ctx context.Context, title, dueDate string) (service.Task, error) {
	task, err := a.svc.Add(ctx, title, dueDate)
	if errors.Is(err, service.ErrEmptyTitle) && a.notifier != nil {
		a.notifier.Notify(MsgEmptyTitle)
	}
	return task, err
}

// Toggle flips completion of the task with the given ID.
func (a *App) Toggle(ctx context.Context, id string) error {
	return a.svc.ToggleComplete(ctx, id)
}

// Edit applies an already collected edit.
func (a *App) Edit(ctx context.Context, id string, e service.Edit) error {
	return a.svc.Edit(ctx, id, e)
}

// EditInteractive prompts for a new title and then a new due date. Canceling
// the title prompt abandons the edit; canceling the due date prompt keeps the
// new title and leaves the due date alone. Returns whether anything was saved.
func (a *App) EditInteractive(ctx context.Context, id string, p Prompter) (bool, error) {
	task, ok := a.svc.Find(id)
	if !ok {
		return false, nil
	}

	title, ok := p.RequestText(MsgEditTitle, task.Title)
	if !ok {
		a.logger.Debug().
			Str("task_id", id).
			Msg("edit canceled")
		return false, nil
	}
	e := service.Edit{Title: &title}

	if due, ok := p.RequestText(MsgEditDueDate, task.DueDate); ok {
		e.DueDate = &due
	}

	if err := a.svc.Edit(ctx, id, e); err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes a task without asking.
func (a *App) Delete(ctx context.Context, id string) error {
	return a.svc.Delete(ctx, id)
}

// DeleteInteractive asks for confirmation, then removes the task. Returns
// whether the user confirmed.
func (a *App) DeleteInteractive(ctx context.Context, id string, c Confirmer) (bool, error) {
	if !c.Confirm(MsgConfirmDelete) {
		a.logger.Debug().
			Str("task_id", id).
			Msg("delete declined")
		return false, nil
	}
	if err := a.svc.Delete(ctx, id); err != nil {
		return true, err
	}
	return true, nil
}
