package cli

import (
	"context"
	"errors"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/repofinder/internal/core"
	"github.com/inovacc/repofinder/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWorkflow struct {
	mu        sync.Mutex
	submitted []string
	opened    []string
	shared    []string
	resets    int
	saved     string
	submitErr error
	openErr   error
}

func (f *fakeWorkflow) SubmitUsername(_ context.Context, name string) (*core.Fetch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.submitted = append(f.submitted, name)
	if f.submitErr != nil {
		return nil, f.submitErr
	}

	return &core.Fetch{Username: name}, nil
}

func (f *fakeWorkflow) Restore(_ context.Context) (*core.Fetch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.saved == "" {
		return nil, nil
	}

	return &core.Fetch{Username: f.saved}, nil
}

func (f *fakeWorkflow) Reset() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.resets++

	return nil
}

func (f *fakeWorkflow) Open(repo model.RepositorySummary) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.opened = append(f.opened, repo.HTMLURL)

	return f.openErr
}

func (f *fakeWorkflow) Share(repo model.RepositorySummary) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.shared = append(f.shared, repo.HTMLURL)

	return nil
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}

	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T, wf Workflow, initial string) SearchModel {
	t.Helper()

	m := NewSearchModel(context.Background(), wf, initial)

	return step(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
}

func step(t *testing.T, m SearchModel, msg tea.Msg) SearchModel {
	t.Helper()

	next, _ := m.Update(msg)

	sm, ok := next.(SearchModel)
	require.True(t, ok)

	return sm
}

func stepCmd(t *testing.T, m SearchModel, msg tea.Msg) (SearchModel, tea.Cmd) {
	t.Helper()

	next, cmd := m.Update(msg)

	sm, ok := next.(SearchModel)
	require.True(t, ok)

	return sm, cmd
}

func TestSearchModel_RenderReplacesRows(t *testing.T) {
	m := newTestModel(t, &fakeWorkflow{}, "")

	m = step(t, m, renderMsg{list: sampleRepos})
	assert.Equal(t, sampleRepos, m.Items())
	assert.Equal(t, focusList, m.focus)

	m = step(t, m, renderMsg{list: model.RepositoryList{}})
	assert.Empty(t, m.Items())
}

func TestSearchModel_SubmitRunsAsCommand(t *testing.T) {
	wf := &fakeWorkflow{}
	m := newTestModel(t, wf, "")

	for _, r := range "octocat" {
		m = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	m, cmd := stepCmd(t, m, key("enter"))
	require.NotNil(t, cmd)
	assert.Equal(t, 1, m.pending)
	assert.Empty(t, wf.submitted, "the controller is not called from Update")

	msg := cmd()
	assert.Equal(t, []string{"octocat"}, wf.submitted)
	assert.Equal(t, fetchDoneMsg{}, msg)

	m = step(t, m, msg)
	assert.Equal(t, 0, m.pending)
	assert.Nil(t, m.Notice())
}

func TestSearchModel_ReportedErrorsAreNotShownTwice(t *testing.T) {
	wf := &fakeWorkflow{submitErr: &core.ValidationError{Field: "username", Err: core.ErrUsernameRequired}}
	m := newTestModel(t, wf, "")

	m, cmd := stepCmd(t, m, key("enter"))
	require.NotNil(t, cmd)

	m = step(t, m, cmd())
	assert.Nil(t, m.Notice())

	m = step(t, m, fetchDoneMsg{err: core.ErrSuperseded})
	assert.Nil(t, m.Notice())

	m = step(t, m, fetchDoneMsg{err: errors.New("disk full")})
	require.NotNil(t, m.Notice())
	assert.Equal(t, "disk full", m.Notice().Message)
}

func TestSearchModel_NoticeIsDismissedByAnyKey(t *testing.T) {
	m := newTestModel(t, &fakeWorkflow{}, "")

	m = step(t, m, noticeMsg{notice: model.NewNotice(core.MessageUsernameRequired)})
	require.NotNil(t, m.Notice())
	assert.Contains(t, m.View(), core.MessageUsernameRequired)

	m, cmd := stepCmd(t, m, key("x"))
	assert.Nil(t, cmd)
	assert.Nil(t, m.Notice())
	assert.Empty(t, m.input.Value(), "the dismissing key is swallowed")
}

func TestSearchModel_OpenAndShareSelectedRow(t *testing.T) {
	wf := &fakeWorkflow{}
	m := newTestModel(t, wf, "")
	m = step(t, m, renderMsg{list: sampleRepos})
	require.Equal(t, focusList, m.focus)

	m, cmd := stepCmd(t, m, key("enter"))
	require.NotNil(t, cmd)

	m = step(t, m, cmd())
	assert.Equal(t, []string{sampleRepos[0].HTMLURL}, wf.opened)
	assert.Contains(t, m.status, "Opened")

	_, cmd = stepCmd(t, m, key("s"))
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, []string{sampleRepos[0].HTMLURL}, wf.shared)
}

func TestSearchModel_OpenFailureShowsNotice(t *testing.T) {
	wf := &fakeWorkflow{openErr: core.ErrNoLauncher}
	m := newTestModel(t, wf, "")
	m = step(t, m, renderMsg{list: sampleRepos})

	m, cmd := stepCmd(t, m, key("enter"))
	require.NotNil(t, cmd)

	m = step(t, m, cmd())
	require.NotNil(t, m.Notice())
	assert.Equal(t, core.ErrNoLauncher.Error(), m.Notice().Message)
}

func TestSearchModel_Reset(t *testing.T) {
	wf := &fakeWorkflow{}
	m := newTestModel(t, wf, "octocat")
	m = step(t, m, renderMsg{list: sampleRepos})

	m, cmd := stepCmd(t, m, key("ctrl+r"))
	require.NotNil(t, cmd)
	assert.Equal(t, 0, wf.resets)

	msg := cmd()
	assert.Equal(t, 1, wf.resets)

	m = step(t, m, msg)
	m = step(t, m, renderMsg{list: model.RepositoryList{}})

	assert.Empty(t, m.input.Value())
	assert.Empty(t, m.Items())
	assert.Equal(t, focusInput, m.focus)
}

func TestSearchModel_RestoreFillsInput(t *testing.T) {
	wf := &fakeWorkflow{saved: "octocat"}
	m := newTestModel(t, wf, "")

	m, cmd := stepCmd(t, m, m.restore())
	require.NotNil(t, cmd)
	assert.Equal(t, "octocat", m.input.Value())
	assert.Equal(t, 1, m.pending)

	m = step(t, m, cmd())
	assert.Equal(t, 0, m.pending)
}

func TestSearchModel_RestoreWithoutSavedName(t *testing.T) {
	m := newTestModel(t, &fakeWorkflow{}, "")

	m, cmd := stepCmd(t, m, m.restore())
	assert.Nil(t, cmd)
	assert.Empty(t, m.input.Value())
	assert.Equal(t, 0, m.pending)
}

func TestSearchModel_InitialUsernameIsPending(t *testing.T) {
	m := NewSearchModel(context.Background(), &fakeWorkflow{}, "octocat")

	assert.Equal(t, 1, m.pending)
	assert.Equal(t, "octocat", m.input.Value())
	assert.NotNil(t, m.Init())
}

func TestSearchModel_Quit(t *testing.T) {
	tests := []struct {
		name     string
		withRows bool
		key      string
	}{
		{name: "ctrl+c from input", key: "ctrl+c"},
		{name: "esc from input", key: "esc"},
		{name: "q from list", withRows: true, key: "q"},
		{name: "esc from list", withRows: true, key: "esc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, &fakeWorkflow{}, "")
			if tt.withRows {
				m = step(t, m, renderMsg{list: sampleRepos})
			}

			m, cmd := stepCmd(t, m, key(tt.key))
			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
			assert.Empty(t, m.View())
		})
	}
}

func TestSearchModel_TabSwitchesFocus(t *testing.T) {
	m := newTestModel(t, &fakeWorkflow{}, "")
	require.Equal(t, focusInput, m.focus)

	m = step(t, m, key("tab"))
	assert.Equal(t, focusList, m.focus)

	m = step(t, m, key("tab"))
	assert.Equal(t, focusInput, m.focus)
}
