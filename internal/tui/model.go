// Package tui is the interactive terminal surface. It holds no task state of
// its own: every event goes through the app handler and View redraws from a
// fresh snapshot.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"ltask/internal/app"
	"ltask/internal/service"
	"ltask/internal/view"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEditTitle
	modeEditDue
	modeConfirmDelete
	modeNotice
)

const (
	fieldTitle = iota
	fieldDue
)

const (
	defaultProgressWidth = 30
	maxProgressWidth     = 60
)

// Options configures a Model.
type Options struct {
	Placeholder string
	Logger      zerolog.Logger
}

// Model is the bubbletea model for the task list.
type Model struct {
	ctx    context.Context
	svc    service.Service
	app    *app.App
	logger zerolog.Logger

	keys     KeyMap
	formKeys FormKeyMap
	styles   Styles
	help     help.Model
	progress progress.Model

	mode   mode
	cursor int

	titleInput textinput.Model
	dueInput   textinput.Model
	focus      int

	promptInput  textinput.Model
	target       string
	pendingTitle string

	notice      string
	afterNotice mode
	status      string
}

// New creates a Model over svc. svc must already be loaded.
func New(ctx context.Context, svc service.Service, opts Options) *Model {
	m := &Model{
		ctx:      ctx,
		svc:      svc,
		logger:   opts.Logger,
		keys:     DefaultKeyMap,
		formKeys: DefaultFormKeyMap,
		styles:   DefaultStyles(),
		help:     help.New(),
		progress: progress.New(
			progress.WithDefaultGradient(),
			progress.WithoutPercentage(),
			progress.WithWidth(defaultProgressWidth),
		),
	}
	m.app = app.New(svc, app.Options{
		Placeholder: opts.Placeholder,
		Notifier:    app.NotifierFunc(m.notify),
		Logger:      opts.Logger,
	})

	m.titleInput = textinput.New()
	m.titleInput.Placeholder = "Task title"
	m.titleInput.Prompt = "Title: "

	m.dueInput = textinput.New()
	m.dueInput.Placeholder = "YYYY-MM-DD"
	m.dueInput.Prompt = "Due:   "

	m.promptInput = textinput.New()
	m.promptInput.Prompt = "> "
	return m
}

// Run starts the program on the alternate screen and blocks until it quits.
func Run(ctx context.Context, svc service.Service, opts Options) error {
	program := tea.NewProgram(New(ctx, svc, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) notify(message string) {
	m.notice = message
	m.afterNotice = m.mode
	m.mode = modeNotice
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		w := msg.Width - 20
		if w > maxProgressWidth {
			w = maxProgressWidth
		}
		if w < 10 {
			w = 10
		}
		m.progress.Width = w
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeNotice:
			m.notice = ""
			m.mode = m.afterNotice
			return m, nil
		case modeAdd:
			return m.updateAdd(msg)
		case modeEditTitle, modeEditDue:
			return m.updateEdit(msg)
		case modeConfirmDelete:
			return m.updateConfirm(msg)
		default:
			return m.updateList(msg)
		}
	}
	return m, nil
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	entries := m.app.Snapshot().Entries
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(entries)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Add):
		m.mode = modeAdd
		m.focus = fieldTitle
		m.dueInput.Blur()
		return m, m.titleInput.Focus()

	case key.Matches(msg, m.keys.Toggle):
		if e, ok := m.selected(entries); ok {
			m.report(m.app.Toggle(m.ctx, e.ID))
		}

	case key.Matches(msg, m.keys.Edit):
		if e, ok := m.selected(entries); ok {
			m.target = e.ID
			m.mode = modeEditTitle
			m.promptInput.SetValue(e.Title)
			m.promptInput.CursorEnd()
			return m, m.promptInput.Focus()
		}

	case key.Matches(msg, m.keys.Delete):
		if e, ok := m.selected(entries); ok {
			m.target = e.ID
			m.mode = modeConfirmDelete
		}

	case key.Matches(msg, m.keys.FilterAll):
		m.setFilter(service.FilterAll)
	case key.Matches(msg, m.keys.FilterActive):
		m.setFilter(service.FilterActive)
	case key.Matches(msg, m.keys.FilterCompleted):
		m.setFilter(service.FilterCompleted)
	case key.Matches(msg, m.keys.NextFilter):
		m.setFilter(m.app.Filter().Next())
	}

	m.clampCursor()
	return m, nil
}

func (m *Model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.formKeys.Cancel):
		m.closeAddForm()
		return m, nil

	case key.Matches(msg, m.formKeys.NextField):
		if m.focus == fieldTitle {
			m.focus = fieldDue
			m.titleInput.Blur()
			return m, m.dueInput.Focus()
		}
		m.focus = fieldTitle
		m.dueInput.Blur()
		return m, m.titleInput.Focus()

	case key.Matches(msg, m.formKeys.Submit):
		task, err := m.app.AddTask(m.ctx, m.titleInput.Value(), m.dueInput.Value())
		if errors.Is(err, service.ErrEmptyTitle) {
			// the notice returns to the form once dismissed
			return m, nil
		}
		m.closeAddForm()
		if err != nil {
			m.report(err)
			return m, nil
		}
		m.selectID(task.ID)
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == fieldTitle {
		m.titleInput, cmd = m.titleInput.Update(msg)
	} else {
		m.dueInput, cmd = m.dueInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) closeAddForm() {
	m.titleInput.Reset()
	m.dueInput.Reset()
	m.titleInput.Blur()
	m.dueInput.Blur()
	m.mode = modeList
}

// updateEdit drives the two prompts of an edit. Canceling the title prompt
// abandons the edit; canceling the due date prompt saves the title only.
func (m *Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.formKeys.Cancel):
		if m.mode == modeEditTitle {
			m.logger.Debug().
				Str("task_id", m.target).
				Msg("edit canceled")
			m.closePrompt()
			return m, nil
		}
		id, title := m.target, m.pendingTitle
		m.closePrompt()
		m.report(m.app.Edit(m.ctx, id, service.Edit{Title: &title}))
		return m, nil

	case key.Matches(msg, m.formKeys.Submit):
		if m.mode == modeEditTitle {
			m.pendingTitle = m.promptInput.Value()
			task, ok := m.svc.Find(m.target)
			if !ok {
				m.closePrompt()
				return m, nil
			}
			m.mode = modeEditDue
			m.promptInput.SetValue(task.DueDate)
			m.promptInput.CursorEnd()
			return m, nil
		}
		title, due := m.pendingTitle, m.promptInput.Value()
		id := m.target
		m.closePrompt()
		m.report(m.app.Edit(m.ctx, id, service.Edit{Title: &title, DueDate: &due}))
		return m, nil
	}

	var cmd tea.Cmd
	m.promptInput, cmd = m.promptInput.Update(msg)
	return m, cmd
}

func (m *Model) closePrompt() {
	m.promptInput.Reset()
	m.promptInput.Blur()
	m.pendingTitle = ""
	m.target = ""
	m.mode = modeList
}

func (m *Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := m.target
	m.target = ""
	m.mode = modeList

	switch strings.ToLower(msg.String()) {
	case "y":
		m.report(m.app.Delete(m.ctx, id))
		m.clampCursor()
	default:
		m.logger.Debug().
			Str("task_id", id).
			Msg("delete declined")
	}
	return m, nil
}

func (m *Model) setFilter(f service.Filter) {
	m.app.SetFilter(f)
	m.cursor = 0
}

func (m *Model) selected(entries []view.Entry) (view.Entry, bool) {
	if m.cursor < 0 || m.cursor >= len(entries) {
		return view.Entry{}, false
	}
	return entries[m.cursor], true
}

func (m *Model) selectID(id string) {
	for i, e := range m.app.Snapshot().Entries {
		if e.ID == id {
			m.cursor = i
			return
		}
	}
	m.clampCursor()
}

func (m *Model) clampCursor() {
	n := len(m.app.Snapshot().Entries)
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// report shows a storage failure in the status line. The in-memory change
// is kept.
func (m *Model) report(err error) {
	if err == nil {
		return
	}
	m.logger.Error().Err(err).Msg("persist failed")
	m.status = fmt.Sprintf("storage error: %v", err)
}

// View implements tea.Model.
func (m *Model) View() string {
	snap := m.app.Snapshot()
	var b strings.Builder

	b.WriteString(m.styles.Header.Render("Tasks"))
	b.WriteString("\n")
	b.WriteString(m.renderTabs(snap.Filter))
	b.WriteString("\n\n")

	b.WriteString(m.renderEntries(snap.Entries))
	b.WriteString("\n")

	b.WriteString(m.progress.ViewAs(snap.Progress.Fraction()))
	b.WriteString(" ")
	b.WriteString(m.styles.Label.Render(snap.Progress.Label()))
	b.WriteString("\n\n")

	switch m.mode {
	case modeAdd:
		b.WriteString(m.titleInput.View())
		b.WriteString("\n")
		b.WriteString(m.dueInput.View())
		b.WriteString("\n\n")
		b.WriteString(m.help.View(m.formKeys))
	case modeEditTitle:
		b.WriteString(m.styles.Prompt.Render(app.MsgEditTitle))
		b.WriteString("\n")
		b.WriteString(m.promptInput.View())
		b.WriteString("\n\n")
		b.WriteString(m.help.View(m.formKeys))
	case modeEditDue:
		b.WriteString(m.styles.Prompt.Render(app.MsgEditDueDate))
		b.WriteString("\n")
		b.WriteString(m.promptInput.View())
		b.WriteString("\n\n")
		b.WriteString(m.help.View(m.formKeys))
	case modeConfirmDelete:
		b.WriteString(m.styles.Prompt.Render(app.MsgConfirmDelete + " (y/n)"))
	case modeNotice:
		b.WriteString(m.styles.Notice.Render(m.notice))
		b.WriteString("\n")
		b.WriteString(m.styles.Empty.Render("press any key"))
	default:
		if m.status != "" {
			b.WriteString(m.styles.Error.Render(m.status))
			b.WriteString("\n")
		}
		b.WriteString(m.help.View(m.keys))
	}
	b.WriteString("\n")
	return b.String()
}

func (m *Model) renderTabs(current service.Filter) string {
	tabs := make([]string, 0, len(service.Filters))
	for i, f := range service.Filters {
		label := fmt.Sprintf("%d %s", i+1, filterTitle(f))
		if f == current {
			tabs = append(tabs, m.styles.ActiveTab.Render(label))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(label))
		}
	}
	return strings.Join(tabs, " ")
}

func (m *Model) renderEntries(entries []view.Entry) string {
	if len(entries) == 0 {
		return m.styles.Empty.Render("  no tasks") + "\n"
	}

	var b strings.Builder
	for i, e := range entries {
		marker := "  "
		row := m.styles.Row
		if i == m.cursor {
			marker = "> "
			row = m.styles.SelectedRow
		}

		check := "[ ]"
		title := e.Title
		if e.Completed {
			check = "[x]"
			title = m.styles.Completed.Render(title)
		}

		due := m.styles.Due.Render(e.Due)
		if !e.HasDue {
			due = m.styles.Placeholder.Render(e.Due)
		}

		b.WriteString(row.Render(marker + check + " "))
		b.WriteString(title)
		b.WriteString("  ")
		b.WriteString(due)
		if i == m.cursor && m.mode == modeList {
			b.WriteString(m.styles.Empty.Render(fmt.Sprintf("  space: %s  e: Edit  d: Delete", e.ToggleLabel)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func filterTitle(f service.Filter) string {
	s := string(f)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
