// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for task store operations.
// Every mutating call persists the full collection before returning.
// References to unknown IDs are silent no-ops, not errors.
type Service interface {
	// Load replaces the in-memory collection with the persisted one.
	// Missing or corrupt data yields an empty collection.
	Load(ctx context.Context) error

	// Tasks returns a copy of the collection in creation order.
	Tasks() []Task

	// Find returns the task with the given ID.
	Find(id string) (Task, bool)

	// Add creates a task. Returns ErrEmptyTitle if the trimmed title is empty.
	Add(ctx context.Context, title, dueDate string) (Task, error)

	// ToggleComplete flips the completed flag of a task.
	ToggleComplete(ctx context.Context, id string) error

	// Edit applies the non-nil fields of e to a task.
	Edit(ctx context.Context, id string, e Edit) error

	// Delete removes a task.
	Delete(ctx context.Context, id string) error

	// Persist overwrites the stored collection with the in-memory one.
	Persist(ctx context.Context) error
}
