package app_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"ltask/internal/app"
	"ltask/internal/backend/localstore"
	"ltask/internal/service"
	"ltask/internal/testutil"
)

func newApp(t *testing.T, notifier app.Notifier) (*app.App, *localstore.Store) {
	t.Helper()
	svc := localstore.New(testutil.NewMemoryStore(), localstore.Options{
		IDs:    localstore.NewTimestampGenerator(func() time.Time { return time.UnixMilli(100) }),
		Logger: zerolog.Nop(),
	})
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return app.New(svc, app.Options{Notifier: notifier, Logger: zerolog.Nop()}), svc
}

func TestAddTask_EmptyTitleNotifies(t *testing.T) {
	p := &testutil.ScriptedPrompter{}
	a, svc := newApp(t, p)

	_, err := a.AddTask(context.Background(), " \t ", "")
	if !errors.Is(err, service.ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
	if !reflect.DeepEqual(p.Notices, []string{app.MsgEmptyTitle}) {
		t.Errorf("expected one notice, got %v", p.Notices)
	}
	if len(svc.Tasks()) != 0 {
		t.Errorf("expected no tasks, got %d", len(svc.Tasks()))
	}
}

func TestSnapshot_FilterAndProgress(t *testing.T) {
	a, _ := newApp(t, nil)
	ctx := context.Background()

	first, _ := a.AddTask(ctx, "Buy milk", "2024-01-01")
	a.AddTask(ctx, "Walk dog", "")
	a.Toggle(ctx, first.ID)

	snap := a.Snapshot()
	if snap.Filter != service.FilterAll || len(snap.Entries) != 2 {
		t.Fatalf("expected 2 entries under all, got %+v", snap)
	}
	if snap.Entries[1].Due != "No Due Date" {
		t.Errorf("expected placeholder, got %q", snap.Entries[1].Due)
	}
	if snap.Progress.Rounded != 50 {
		t.Errorf("expected 50%%, got %d", snap.Progress.Rounded)
	}

	a.SetFilter(service.FilterActive)
	snap = a.Snapshot()
	if len(snap.Entries) != 1 || snap.Entries[0].Title != "Walk dog" {
		t.Errorf("expected only active task, got %+v", snap.Entries)
	}
	// Progress is computed over the whole collection.
	if snap.Progress.Total != 2 {
		t.Errorf("expected total 2, got %d", snap.Progress.Total)
	}
}

func TestResolveIndex(t *testing.T) {
	a, _ := newApp(t, nil)
	ctx := context.Background()
	first, _ := a.AddTask(ctx, "a", "")
	second, _ := a.AddTask(ctx, "b", "")
	a.Toggle(ctx, first.ID)

	a.SetFilter(service.FilterActive)
	id, err := a.ResolveIndex(1)
	if err != nil || id != second.ID {
		t.Errorf("expected %s, got %s (%v)", second.ID, id, err)
	}
	if _, err := a.ResolveIndex(2); err == nil {
		t.Error("expected out of range error")
	}
	if _, err := a.ResolveIndex(0); err == nil {
		t.Error("expected out of range error for 0")
	}
}

func TestEditInteractive_BothConfirmed(t *testing.T) {
	a, svc := newApp(t, nil)
	ctx := context.Background()
	task, _ := a.AddTask(ctx, "Old", "2024-01-01")

	p := &testutil.ScriptedPrompter{Answers: []testutil.PromptAnswer{
		{Value: " New ", OK: true},
		{Value: "2024-03-03", OK: true},
	}}
	saved, err := a.EditInteractive(ctx, task.ID, p)
	if err != nil || !saved {
		t.Fatalf("expected saved edit, got %v %v", saved, err)
	}

	got, _ := svc.Find(task.ID)
	if got.Title != "New" || got.DueDate != "2024-03-03" {
		t.Errorf("unexpected task %+v", got)
	}
	wantLabels := []string{app.MsgEditTitle, app.MsgEditDueDate}
	if !reflect.DeepEqual(p.Labels, wantLabels) {
		t.Errorf("expected prompts %v, got %v", wantLabels, p.Labels)
	}
	wantDefaults := []string{"Old", "2024-01-01"}
	if !reflect.DeepEqual(p.Defaults, wantDefaults) {
		t.Errorf("expected defaults %v, got %v", wantDefaults, p.Defaults)
	}
}

func TestEditInteractive_DueCanceledKeepsTitle(t *testing.T) {
	a, svc := newApp(t, nil)
	ctx := context.Background()
	task, _ := a.AddTask(ctx, "Old", "2024-01-01")

	p := &testutil.ScriptedPrompter{Answers: []testutil.PromptAnswer{
		{Value: "New", OK: true},
		{OK: false},
	}}
	saved, err := a.EditInteractive(ctx, task.ID, p)
	if err != nil || !saved {
		t.Fatalf("expected saved edit, got %v %v", saved, err)
	}

	got, _ := svc.Find(task.ID)
	if got.Title != "New" || got.DueDate != "2024-01-01" {
		t.Errorf("expected title-only change, got %+v", got)
	}
}

func TestEditInteractive_TitleCanceledAbandons(t *testing.T) {
	a, svc := newApp(t, nil)
	ctx := context.Background()
	task, _ := a.AddTask(ctx, "Old", "2024-01-01")

	p := &testutil.ScriptedPrompter{Answers: []testutil.PromptAnswer{{OK: false}}}
	saved, err := a.EditInteractive(ctx, task.ID, p)
	if err != nil || saved {
		t.Fatalf("expected no edit, got %v %v", saved, err)
	}
	if len(p.Labels) != 1 {
		t.Errorf("expected due date prompt to be skipped, got %v", p.Labels)
	}

	got, _ := svc.Find(task.ID)
	if got.Title != "Old" {
		t.Errorf("expected unchanged task, got %+v", got)
	}
}

func TestEditInteractive_UnknownIDNoPrompt(t *testing.T) {
	a, _ := newApp(t, nil)
	p := &testutil.ScriptedPrompter{}

	saved, err := a.EditInteractive(context.Background(), "missing", p)
	if err != nil || saved {
		t.Fatalf("expected no-op, got %v %v", saved, err)
	}
	if len(p.Labels) != 0 {
		t.Errorf("expected no prompts, got %v", p.Labels)
	}
}

func TestDeleteInteractive(t *testing.T) {
	a, svc := newApp(t, nil)
	ctx := context.Background()
	task, _ := a.AddTask(ctx, "Doomed", "")

	declined := &testutil.ScriptedPrompter{Confirms: []bool{false}}
	ok, err := a.DeleteInteractive(ctx, task.ID, declined)
	if err != nil || ok {
		t.Fatalf("expected declined, got %v %v", ok, err)
	}
	if len(svc.Tasks()) != 1 {
		t.Fatal("expected task kept after decline")
	}
	if declined.Labels[0] != app.MsgConfirmDelete {
		t.Errorf("expected confirm prompt, got %v", declined.Labels)
	}

	confirmed := &testutil.ScriptedPrompter{Confirms: []bool{true}}
	ok, err = a.DeleteInteractive(ctx, task.ID, confirmed)
	if err != nil || !ok {
		t.Fatalf("expected confirmed, got %v %v", ok, err)
	}
	if len(svc.Tasks()) != 0 {
		t.Error("expected task removed")
	}
}
