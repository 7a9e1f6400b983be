package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/inovacc/repofinder/internal/model"
)

type renderMsg struct {
	list model.RepositoryList
}

type noticeMsg struct {
	notice model.Notice
}

// ProgramPresenter forwards controller output to a running Bubbletea program.
// It also implements io.Writer, printing each write above the program's view.
type ProgramPresenter struct {
	mu    sync.RWMutex
	send  func(tea.Msg)
	print func(...any)
}

func NewProgramPresenter() *ProgramPresenter {
	return &ProgramPresenter{}
}

// Attach connects the presenter to p. Output produced before Attach is dropped.
func (p *ProgramPresenter) Attach(prog *tea.Program) {
	p.AttachFunc(prog.Send)

	p.mu.Lock()
	p.print = prog.Println
	p.mu.Unlock()
}

// AttachFunc connects the presenter to an arbitrary message sink.
func (p *ProgramPresenter) AttachFunc(send func(tea.Msg)) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.send = send
}

func (p *ProgramPresenter) Render(list model.RepositoryList) {
	p.dispatch(renderMsg{list: list})
}

func (p *ProgramPresenter) Notify(notice model.Notice) {
	p.dispatch(noticeMsg{notice: notice})
}

func (p *ProgramPresenter) Write(b []byte) (int, error) {
	p.mu.RLock()
	printLine := p.print
	p.mu.RUnlock()

	if printLine != nil {
		printLine(strings.TrimRight(string(b), "\n"))
	}

	return len(b), nil
}

func (p *ProgramPresenter) dispatch(msg tea.Msg) {
	p.mu.RLock()
	send := p.send
	p.mu.RUnlock()

	if send != nil {
		send(msg)
	}
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	nameStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	urlStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// TextPresenter writes rendered lists to out as a table or JSON, and notices to errOut.
type TextPresenter struct {
	mu     sync.Mutex
	out    io.Writer
	errOut io.Writer
	json   bool
}

func NewTextPresenter(out, errOut io.Writer, jsonOutput bool) *TextPresenter {
	return &TextPresenter{out: out, errOut: errOut, json: jsonOutput}
}

func (p *TextPresenter) Render(list model.RepositoryList) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.json {
		if list == nil {
			list = model.RepositoryList{}
		}

		enc := json.NewEncoder(p.out)
		enc.SetIndent("", "  ")
		_ = enc.Encode(list)

		return
	}

	if len(list) == 0 {
		_, _ = fmt.Fprintln(p.out, dimStyle.Render("No repositories to show."))

		return
	}

	maxName, maxURL := lipgloss.Width("NAME"), lipgloss.Width("URL")
	for _, r := range list {
		maxName = max(maxName, lipgloss.Width(r.Name))
		maxURL = max(maxURL, lipgloss.Width(r.HTMLURL))
	}

	_, _ = fmt.Fprintf(p.out, "%s  %s\n",
		headerStyle.Render(padRight("NAME", maxName)),
		headerStyle.Render("URL"),
	)
	_, _ = fmt.Fprintln(p.out, strings.Repeat("-", maxName+2+maxURL))

	for _, r := range list {
		_, _ = fmt.Fprintf(p.out, "%s  %s\n",
			nameStyle.Render(padRight(r.Name, maxName)),
			urlStyle.Render(r.HTMLURL),
		)
	}

	_, _ = fmt.Fprintln(p.out)
	_, _ = fmt.Fprintf(p.out, "Total: %d repositories\n", len(list))
}

func (p *TextPresenter) Notify(notice model.Notice) {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, _ = fmt.Fprintf(p.errOut, "%s %s\n", errorStyle.Render(notice.Title+":"), notice.Message)
}

// padRight pads s with spaces to length terminal cells.
func padRight(s string, length int) string {
	w := lipgloss.Width(s)
	if w >= length {
		return s
	}

	return s + strings.Repeat(" ", length-w)
}
