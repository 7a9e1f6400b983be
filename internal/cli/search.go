package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/inovacc/repofinder/internal/core"
	"github.com/inovacc/repofinder/internal/model"
)

var (
	docStyle     = lipgloss.NewStyle().Margin(1, 2)
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	noticeStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("196")).
			Padding(0, 1)
)

// Workflow is the part of the fetch controller the search screen drives.
type Workflow interface {
	SubmitUsername(ctx context.Context, name string) (*core.Fetch, error)
	Restore(ctx context.Context) (*core.Fetch, error)
	Reset() error
	Open(repo model.RepositorySummary) error
	Share(repo model.RepositorySummary) error
}

type repoItem struct {
	repo model.RepositorySummary
}

func (i repoItem) Title() string       { return i.repo.Name }
func (i repoItem) Description() string { return i.repo.HTMLURL }
func (i repoItem) FilterValue() string { return i.repo.Name }

type focusArea int

const (
	focusInput focusArea = iota
	focusList
)

type restoredMsg struct {
	fetch *core.Fetch
	err   error
}

type fetchDoneMsg struct {
	err error
}

type actionDoneMsg struct {
	status string
	err    error
}

type resetDoneMsg struct {
	err error
}

// SearchModel is the interactive screen: a username field, the repository
// list and a modal notice.
type SearchModel struct {
	ctx      context.Context
	workflow Workflow
	initial  string

	input   textinput.Model
	list    list.Model
	spinner spinner.Model

	focus    focusArea
	pending  int
	notice   *model.Notice
	status   string
	quitting bool
}

// NewSearchModel creates the search screen. When initial is non-empty it is
// submitted on start, otherwise the saved username (if any) is restored.
func NewSearchModel(ctx context.Context, workflow Workflow, initial string) SearchModel {
	input := textinput.New()
	input.Placeholder = "GitHub username"
	input.Prompt = "› "
	input.CharLimit = 39
	input.SetValue(initial)
	input.Focus()

	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Repositories"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	m := SearchModel{
		ctx:      ctx,
		workflow: workflow,
		initial:  initial,
		input:    input,
		list:     l,
		spinner:  s,
	}

	if initial != "" {
		m.pending = 1
	}

	return m
}

func (m SearchModel) Init() tea.Cmd {
	if m.initial != "" {
		return tea.Batch(textinput.Blink, m.spinner.Tick, m.submit(m.initial))
	}

	return tea.Batch(textinput.Blink, m.spinner.Tick, m.restore)
}

func (m SearchModel) restore() tea.Msg {
	f, err := m.workflow.Restore(m.ctx)

	return restoredMsg{fetch: f, err: err}
}

func (m SearchModel) submit(name string) tea.Cmd {
	workflow, ctx := m.workflow, m.ctx

	return func() tea.Msg {
		f, err := workflow.SubmitUsername(ctx, name)
		if err != nil {
			return fetchDoneMsg{err: err}
		}

		return fetchDoneMsg{err: f.Wait()}
	}
}

func waitFetch(f *core.Fetch) tea.Cmd {
	return func() tea.Msg {
		return fetchDoneMsg{err: f.Wait()}
	}
}

func (m SearchModel) reset() tea.Msg {
	return resetDoneMsg{err: m.workflow.Reset()}
}

func (m SearchModel) open(repo model.RepositorySummary) tea.Cmd {
	workflow := m.workflow

	return func() tea.Msg {
		if err := workflow.Open(repo); err != nil {
			return actionDoneMsg{err: err}
		}

		return actionDoneMsg{status: fmt.Sprintf("Opened %s in browser", repo.HTMLURL)}
	}
}

func (m SearchModel) share(repo model.RepositorySummary) tea.Cmd {
	workflow := m.workflow

	return func() tea.Msg {
		if err := workflow.Share(repo); err != nil {
			return actionDoneMsg{err: err}
		}

		return actionDoneMsg{status: fmt.Sprintf("Shared link to %s", repo.Name)}
	}
}

func (m SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v-headerHeight)

		return m, nil

	case renderMsg:
		items := make([]list.Item, len(msg.list))
		for i, repo := range msg.list {
			items[i] = repoItem{repo: repo}
		}

		cmd := m.list.SetItems(items)
		m.list.ResetSelected()

		if len(items) > 0 && m.focus == focusInput && m.pending <= 1 {
			m.setFocus(focusList)
		}

		return m, cmd

	case noticeMsg:
		n := msg.notice
		m.notice = &n

		return m, nil

	case restoredMsg:
		if msg.err != nil {
			n := model.NewNotice(msg.err.Error())
			m.notice = &n

			return m, nil
		}

		if msg.fetch == nil {
			return m, nil
		}

		m.input.SetValue(msg.fetch.Username)
		m.pending++

		return m, waitFetch(msg.fetch)

	case fetchDoneMsg:
		if m.pending > 0 {
			m.pending--
		}

		if msg.err != nil && !isReported(msg.err) {
			n := model.NewNotice(msg.err.Error())
			m.notice = &n
		}

		return m, nil

	case actionDoneMsg:
		if msg.err != nil {
			n := model.NewNotice(msg.err.Error())
			m.notice = &n

			return m, nil
		}

		m.status = msg.status

		return m, nil

	case resetDoneMsg:
		if msg.err != nil {
			n := model.NewNotice(msg.err.Error())
			m.notice = &n

			return m, nil
		}

		m.input.SetValue("")
		m.status = "Cleared"
		m.setFocus(focusInput)

		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd

		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocused(msg)
}

func (m SearchModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true

		return m, tea.Quit
	}

	// A visible notice swallows the next key
	if m.notice != nil {
		m.notice = nil

		return m, nil
	}

	if m.focus == focusList && m.list.FilterState() == list.Filtering {
		return m.updateFocused(msg)
	}

	switch msg.String() {
	case "ctrl+r":
		m.status = ""

		return m, m.reset

	case "tab":
		if m.focus == focusInput {
			m.setFocus(focusList)
		} else {
			m.setFocus(focusInput)
		}

		return m, nil
	}

	if m.focus == focusInput {
		switch msg.String() {
		case "esc":
			m.quitting = true

			return m, tea.Quit

		case "enter":
			m.status = ""
			m.pending++

			return m, m.submit(m.input.Value())
		}

		return m.updateFocused(msg)
	}

	switch msg.String() {
	case "q", "esc":
		m.quitting = true

		return m, tea.Quit

	case "enter":
		if i, ok := m.list.SelectedItem().(repoItem); ok {
			return m, m.open(i.repo)
		}

		return m, nil

	case "s":
		if i, ok := m.list.SelectedItem().(repoItem); ok {
			return m, m.share(i.repo)
		}

		return m, nil
	}

	return m.updateFocused(msg)
}

func (m SearchModel) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if m.focus == focusInput {
		m.input, cmd = m.input.Update(msg)
	} else {
		m.list, cmd = m.list.Update(msg)
	}

	return m, cmd
}

func (m *SearchModel) setFocus(f focusArea) {
	m.focus = f

	if f == focusInput {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

const headerHeight = 5

func (m SearchModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("repofinder"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())

	if m.pending > 0 {
		b.WriteString("  " + m.spinner.View() + " Fetching repositories...")
	}

	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(successStyle.Render(m.status))
	}

	b.WriteString("\n")

	if m.notice != nil {
		b.WriteString(noticeStyle.Render(
			fmt.Sprintf("%s\n\n%s\n\n%s",
				titleStyle.Render(m.notice.Title),
				m.notice.Message,
				dimStyle.Render("press any key"),
			),
		))

		return docStyle.Render(b.String())
	}

	b.WriteString(m.list.View())
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("enter: search/open • s: share • tab: switch focus • /: filter • ctrl+r: reset • esc: quit"))

	return docStyle.Render(b.String())
}

// Items returns the rows currently held by the list.
func (m SearchModel) Items() model.RepositoryList {
	items := m.list.Items()
	out := make(model.RepositoryList, 0, len(items))

	for _, it := range items {
		if r, ok := it.(repoItem); ok {
			out = append(out, r.repo)
		}
	}

	return out
}

// Notice returns the notice currently shown, if any.
func (m SearchModel) Notice() *model.Notice {
	return m.notice
}

// isReported reports whether err was already shown through the presenter.
func isReported(err error) bool {
	var (
		validationErr *core.ValidationError
		fetchErr      *core.FetchError
	)

	return errors.As(err, &validationErr) ||
		errors.As(err, &fetchErr) ||
		errors.Is(err, core.ErrSuperseded)
}
