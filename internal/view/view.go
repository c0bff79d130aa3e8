// Package view derives what is displayed from the task collection. Every
// function here is pure; surfaces rebuild their whole display from these
// results after each event instead of patching it.
package view

import (
	"fmt"
	"math"

	"ltask/internal/service"
)

// DefaultPlaceholder is shown for a task without a due date.
const DefaultPlaceholder = "No Due Date"

// Entry is one rendered row of the task list.
type Entry struct {
	ID          string
	Title       string
	Due         string // DueDate, or the placeholder when empty
	HasDue      bool
	Completed   bool
	ToggleLabel string
}

// Progress summarizes completion across the whole collection.
type Progress struct {
	Completed int
	Total     int

	// Percent is the unrounded percentage, used for visual fill.
	Percent float64

	// Rounded is Percent rounded to the nearest integer, used for text.
	Rounded int
}

// ComputeVisible returns the tasks matching filter, in collection order.
func ComputeVisible(tasks []service.Task, filter service.Filter) []service.Task {
	visible := make([]service.Task, 0, len(tasks))
	for _, t := range tasks {
		if filter.Matches(t) {
			visible = append(visible, t)
		}
	}
	return visible
}

// Render builds one Entry per visible task. An empty placeholder falls back
// to DefaultPlaceholder.
func Render(visible []service.Task, placeholder string) []Entry {
	if placeholder == "" {
		placeholder = DefaultPlaceholder
	}

	entries := make([]Entry, 0, len(visible))
	for _, t := range visible {
		e := Entry{
			ID:          t.ID,
			Title:       t.Title,
			Due:         t.DueDate,
			HasDue:      t.DueDate != "",
			Completed:   t.Completed,
			ToggleLabel: ToggleLabel(t.Completed),
		}
		if !e.HasDue {
			e.Due = placeholder
		}
		entries = append(entries, e)
	}
	return entries
}

// ToggleLabel names the action the completion toggle performs.
func ToggleLabel(completed bool) string {
	if completed {
		return "Mark Incomplete"
	}
	return "Mark Complete"
}

// ComputeProgress counts completed tasks. An empty collection is 0%.
func ComputeProgress(tasks []service.Task) Progress {
	p := Progress{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			p.Completed++
		}
	}
	if p.Total > 0 {
		p.Percent = float64(p.Completed) / float64(p.Total) * 100
	}
	p.Rounded = int(math.Round(p.Percent))
	return p
}

// Fraction returns the unrounded completion in [0, 1].
func (p Progress) Fraction() float64 {
	return p.Percent / 100
}

// Label returns the textual progress, e.g. "50% Complete".
func (p Progress) Label() string {
	return fmt.Sprintf("%d%% Complete", p.Rounded)
}
