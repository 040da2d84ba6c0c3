// Package ui is the presentation adapter: a single-list terminal interface
// over the task use-cases. It holds only transient copies of tasks for
// display; every mutation goes through the service and triggers a reload.
package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/maru/gestor/internal/model"
	"github.com/maru/gestor/internal/service"
	"github.com/maru/gestor/internal/store"
)

// Mode represents the current input mode of the list
type Mode int

const (
	ModeNormal Mode = iota
	ModeAdd
	ModeEdit
	ModeConfirmDelete
)

// Model is the root bubbletea model
type Model struct {
	svc  *service.TaskService
	keys KeyMap
	help help.Model

	width  int
	height int

	tasks  []model.Task
	cursor int

	mode      Mode
	input     textinput.Model
	editingID int64

	statusMsg string
	errorMsg  string
}

// New creates the root model bound to the task service.
func New(svc *service.TaskService) Model {
	h := help.New()
	h.ShowAll = false

	input := textinput.New()
	input.CharLimit = 256
	input.Width = 50
	input.PromptStyle = promptStyle

	return Model{
		svc:   svc,
		keys:  DefaultKeyMap(),
		help:  h,
		input: input,
	}
}

// Init loads the initial task list
func (m Model) Init() tea.Cmd {
	return m.loadTasks()
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TasksLoadedMsg:
		if msg.Err != nil {
			m.errorMsg = msg.Err.Error()
			return m, nil
		}
		m.tasks = msg.Tasks
		if m.cursor >= len(m.tasks) {
			m.cursor = len(m.tasks) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil

	case TaskSavedMsg:
		if msg.Err != nil {
			m.errorMsg = friendlyError(msg.Err)
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("Saved: %s", msg.Task.Title)
		return m, m.loadTasks()

	case TaskDeletedMsg:
		if msg.Err != nil {
			m.errorMsg = friendlyError(msg.Err)
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("Deleted task %d", msg.TaskID)
		return m, m.loadTasks()

	case TaskCompletedMsg:
		if msg.Err != nil {
			m.errorMsg = friendlyError(msg.Err)
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("Completed: %s", msg.Task.Title)
		return m, m.loadTasks()

	case tea.KeyMsg:
		m.statusMsg = ""
		m.errorMsg = ""

		switch m.mode {
		case ModeAdd, ModeEdit:
			return m.updateInput(msg)
		case ModeConfirmDelete:
			return m.updateConfirm(msg)
		}
		return m.updateNormal(msg)
	}

	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Top):
		m.cursor = 0

	case key.Matches(msg, m.keys.Bottom):
		if len(m.tasks) > 0 {
			m.cursor = len(m.tasks) - 1
		}

	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadTasks()

	case key.Matches(msg, m.keys.Add):
		m.mode = ModeAdd
		m.input.Prompt = "add> "
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Edit):
		if t := m.current(); t != nil {
			m.mode = ModeEdit
			m.editingID = t.ID
			m.input.Prompt = "edit> "
			m.input.SetValue(t.Title)
			m.input.CursorEnd()
			m.input.Focus()
			return m, textinput.Blink
		}

	case key.Matches(msg, m.keys.Delete):
		if m.current() != nil {
			m.mode = ModeConfirmDelete
		}

	case key.Matches(msg, m.keys.Complete):
		if t := m.current(); t != nil && !t.Completed {
			return m, m.completeTask(t.ID)
		}
	}

	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.input.Blur()
		return m, nil

	case "enter":
		value := strings.TrimSpace(m.input.Value())
		mode := m.mode
		m.mode = ModeNormal
		m.input.Blur()

		if value == "" {
			return m, nil
		}
		if mode == ModeAdd {
			title, desc := splitTitleDesc(value)
			return m, m.createTask(title, desc)
		}
		return m, m.updateTitle(m.editingID, value)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.mode = ModeNormal
		if t := m.current(); t != nil {
			return m, m.deleteTask(t.ID)
		}
	case "n", "N", "esc":
		m.mode = ModeNormal
	}
	return m, nil
}

// View renders the list
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleBarStyle.Render("gestor"))
	b.WriteString("\n\n")

	if len(m.tasks) == 0 {
		b.WriteString(descStyle.Render("  No tasks. Press 'a' to add one."))
		b.WriteString("\n")
	}

	for i, t := range m.tasks {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}

		check := "[ ]"
		if t.Completed {
			check = "[x]"
		}

		line := fmt.Sprintf("%s %s %s", check, idStyle.Render(fmt.Sprintf("#%d", t.ID)), t.Title)
		if t.Completed {
			line = doneStyle.Render(line)
		}

		b.WriteString(cursor + line + "\n")
		if i == m.cursor && t.Description != "" {
			b.WriteString("      " + descStyle.Render(t.Description) + "\n")
		}
	}

	b.WriteString("\n")

	switch m.mode {
	case ModeAdd, ModeEdit:
		b.WriteString(m.input.View())
		b.WriteString("\n")
	case ModeConfirmDelete:
		if t := m.current(); t != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Delete %q? (y/n)", t.Title)))
			b.WriteString("\n")
		}
	default:
		switch {
		case m.errorMsg != "":
			b.WriteString(errorStyle.Render(m.errorMsg))
			b.WriteString("\n")
		case m.statusMsg != "":
			b.WriteString(statusStyle.Render(m.statusMsg))
			b.WriteString("\n")
		}
	}

	b.WriteString(m.help.View(m.keys))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (m Model) current() *model.Task {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return nil
	}
	return &m.tasks[m.cursor]
}

// Commands

func (m Model) loadTasks() tea.Cmd {
	return func() tea.Msg {
		tasks, err := m.svc.List(context.Background())
		return TasksLoadedMsg{Tasks: tasks, Err: err}
	}
}

func (m Model) createTask(title, description string) tea.Cmd {
	return func() tea.Msg {
		t, err := m.svc.Create(context.Background(), title, description)
		return TaskSavedMsg{Task: t, Err: err}
	}
}

func (m Model) updateTitle(id int64, title string) tea.Cmd {
	return func() tea.Msg {
		t, err := m.svc.Update(context.Background(), id, store.TaskPatch{Title: &title})
		return TaskSavedMsg{Task: t, Err: err}
	}
}

func (m Model) deleteTask(id int64) tea.Cmd {
	return func() tea.Msg {
		err := m.svc.Delete(context.Background(), id)
		return TaskDeletedMsg{TaskID: id, Err: err}
	}
}

func (m Model) completeTask(id int64) tea.Cmd {
	return func() tea.Msg {
		t, err := m.svc.Complete(context.Background(), id)
		return TaskCompletedMsg{Task: t, Err: err}
	}
}

// splitTitleDesc splits "title | description" input into its two parts.
func splitTitleDesc(s string) (string, string) {
	if title, desc, ok := strings.Cut(s, "|"); ok {
		return strings.TrimSpace(title), strings.TrimSpace(desc)
	}
	return s, ""
}

// friendlyError strips wrapping noise from errors shown in the footer.
func friendlyError(err error) string {
	var verr *store.ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}
	if errors.Is(err, store.ErrNotFound) {
		return "task no longer exists"
	}
	return err.Error()
}
