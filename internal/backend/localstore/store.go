// Package localstore implements the service.Service interface over a local
// key-value store. The whole collection lives in memory and is written back
// in full after every mutation.
package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/tidwall/jsonc"

	"ltask/internal/service"
	"ltask/internal/storage"
)

// Store implements service.Service. It is not safe for concurrent use;
// events are processed one at a time.
type Store struct {
	kv     storage.Store
	key    string
	ids    IDGenerator
	logger zerolog.Logger

	tasks []service.Task
}

// Options configures a Store.
type Options struct {
	// Key is the storage key holding the collection.
	Key string

	// IDs generates task IDs. Defaults to a TimestampGenerator.
	IDs IDGenerator

	// Logger receives debug and warning logs.
	Logger zerolog.Logger
}

// New creates a Store with an empty collection. Call Load to read the
// persisted one.
func New(kv storage.Store, opts Options) *Store {
	if opts.Key == "" {
		opts.Key = "tasks"
	}
	if opts.IDs == nil {
		opts.IDs = NewTimestampGenerator(nil)
	}
	return &Store{
		kv:     kv,
		key:    opts.Key,
		ids:    opts.IDs,
		logger: opts.Logger,
	}
}

// Load implements service.Service.
func (s *Store) Load(ctx context.Context) error {
	s.tasks = nil

	data, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Debug().
				Str("key", s.key).
				Msg("no stored tasks")
			return nil
		}
		s.logger.Error().
			Err(err).
			Str("key", s.key).
			Msg("failed to read stored tasks")
		return err
	}

	tasks, err := decode(data)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("key", s.key).
			Msg("stored tasks unreadable, starting empty")
		return nil
	}

	for _, t := range tasks {
		s.ids.Observe(t.ID)
	}
	s.tasks = tasks
	s.logger.Debug().
		Int("count", len(tasks)).
		Msg("loaded tasks")
	return nil
}

// decode parses a persisted collection. Comments and trailing commas from
// hand edits are tolerated. A JSON null decodes to an empty collection.
func decode(data []byte) ([]service.Task, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, nil
	}
	var tasks []service.Task
	if err := json.Unmarshal(jsonc.ToJSON(data), &tasks); err != nil {
		return nil, fmt.Errorf("decoding tasks: %w", err)
	}
	return tasks, nil
}

// Tasks implements service.Service.
func (s *Store) Tasks() []service.Task {
	out := make([]service.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Find implements service.Service.
func (s *Store) Find(id string) (service.Task, bool) {
	i := s.index(id)
	if i < 0 {
		return service.Task{}, false
	}
	return s.tasks[i], true
}

func (s *Store) index(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Add implements service.Service.
func (s *Store) Add(ctx context.Context, title, dueDate string) (service.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		s.logger.Debug().Msg("rejected task with empty title")
		return service.Task{}, service.ErrEmptyTitle
	}

	task := service.Task{
		ID:        s.ids.NextID(),
		Title:     title,
		DueDate:   dueDate,
		Completed: false,
	}
	s.tasks = append(s.tasks, task)
	s.logger.Debug().
		Str("task_id", task.ID).
		Msg("added task")

	if err := s.Persist(ctx); err != nil {
		return task, err
	}
	return task, nil
}

// ToggleComplete implements service.Service.
func (s *Store) ToggleComplete(ctx context.Context, id string) error {
	if i := s.index(id); i >= 0 {
		s.tasks[i].Completed = !s.tasks[i].Completed
		s.logger.Debug().
			Str("task_id", id).
			Bool("completed", s.tasks[i].Completed).
			Msg("toggled task")
	} else {
		s.logger.Debug().
			Str("task_id", id).
			Msg("toggle of unknown task ignored")
	}
	return s.Persist(ctx)
}

// Edit implements service.Service.
func (s *Store) Edit(ctx context.Context, id string, e service.Edit) error {
	i := s.index(id)
	if i < 0 {
		s.logger.Debug().
			Str("task_id", id).
			Msg("edit of unknown task ignored")
		return nil
	}

	if e.Title != nil {
		s.tasks[i].Title = strings.TrimSpace(*e.Title)
	}
	if e.DueDate != nil {
		s.tasks[i].DueDate = *e.DueDate
	}
	s.logger.Debug().
		Str("task_id", id).
		Bool("title", e.Title != nil).
		Bool("due_date", e.DueDate != nil).
		Msg("edited task")
	return s.Persist(ctx)
}

// Delete implements service.Service.
func (s *Store) Delete(ctx context.Context, id string) error {
	if i := s.index(id); i >= 0 {
		s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
		s.logger.Debug().
			Str("task_id", id).
			Msg("deleted task")
	} else {
		s.logger.Debug().
			Str("task_id", id).
			Msg("delete of unknown task ignored")
	}
	return s.Persist(ctx)
}

// Persist implements service.Service.
func (s *Store) Persist(ctx context.Context) error {
	tasks := s.tasks
	if tasks == nil {
		tasks = []service.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encoding tasks: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, data); err != nil {
		s.logger.Error().
			Err(err).
			Str("key", s.key).
			Msg("failed to persist tasks")
		return err
	}
	return nil
}
