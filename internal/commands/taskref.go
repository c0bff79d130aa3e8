package commands

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"

	"ltask/internal/app"
)

// TaskRef represents a parsed task reference.
type TaskRef struct {
	Num  int    // 1-based position in the visible list
	ID   string // stable task ID
	ByID bool   // true if --id was given
}

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses a task reference from positional args and the --id flag.
//
// Rules:
//  1. --id together with a positional number → error
//  2. --id alone → reference by ID
//  3. first arg all digits → reference by position
//  4. no args → ErrTaskRefRequired
//  5. anything else → error: invalid task reference: <ref>
func ParseTaskRef(args []string, id string) (TaskRef, error) {
	if id != "" {
		if len(args) > 0 {
			return TaskRef{}, errors.New("cannot use both --id and a task number")
		}
		return TaskRef{ID: id, ByID: true}, nil
	}

	if len(args) == 0 {
		return TaskRef{}, ErrTaskRefRequired
	}

	first := args[0]
	if !isAllDigits(first) {
		return TaskRef{}, fmt.Errorf("invalid task reference: %s", first)
	}
	num, err := strconv.Atoi(first)
	if err != nil {
		return TaskRef{}, fmt.Errorf("invalid task reference: %s", first)
	}
	return TaskRef{Num: num}, nil
}

// Resolve turns the reference into a task ID using the app's current view.
// IDs are returned as given; an unknown ID is a no-op for every event.
func (r TaskRef) Resolve(a *app.App) (string, error) {
	if r.ByID {
		return r.ID, nil
	}
	return a.ResolveIndex(r.Num)
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
