package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/inovacc/repofinder/internal/ghapi"
	"github.com/inovacc/repofinder/internal/model"
	"golang.org/x/sync/errgroup"
)

// User-facing notice messages.
const (
	MessageUsernameRequired = "The username is required!"
	MessageFetchFailed      = "A mysterious error occurred while fetching this user's repositories! " +
		"Please check the name and your internet connection and try again."
	MessageNoRepositories = "This user has no public repositories."
)

// Fetcher lists the public repositories of a user.
type Fetcher interface {
	ListUserRepositories(ctx context.Context, username string) (model.RepositoryList, error)
}

// Preferences persists the last confirmed username.
type Preferences interface {
	Username() (string, error)
	SaveUsername(name string) error
	ClearUsername() error
}

// Presenter is the rendering surface. Render replaces every visible row.
type Presenter interface {
	Render(list model.RepositoryList)
	Notify(notice model.Notice)
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger. The default discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithLauncher sets the handler for the open and share row events.
func WithLauncher(l Launcher) Option {
	return func(c *Controller) {
		c.launcher = l
	}
}

// WithEmptyAllowed renders an empty repository list with an informational
// notice instead of treating it as a failed fetch.
func WithEmptyAllowed() Option {
	return func(c *Controller) {
		c.allowEmpty = true
	}
}

// Snapshot is a copy of the controller state.
type Snapshot struct {
	Username string
	Repos    model.RepositoryList
	Fetched  bool
	InFlight bool
}

// Controller owns the validate, dispatch, classify and render workflow.
type Controller struct {
	fetcher    Fetcher
	prefs      Preferences
	presenter  Presenter
	launcher   Launcher
	logger     *slog.Logger
	allowEmpty bool

	mu       sync.Mutex
	username string
	repos    model.RepositoryList
	fetched  bool
	seq      uint64
	inFlight bool
	cancel   context.CancelFunc

	// renderMu keeps presenter calls in the order their state changes were
	// applied. It is acquired while mu is held and released after the call.
	renderMu sync.Mutex
}

func NewController(fetcher Fetcher, prefs Preferences, presenter Presenter, opts ...Option) *Controller {
	c := &Controller{
		fetcher:   fetcher,
		prefs:     prefs,
		presenter: presenter,
		logger:    slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Fetch is the handle of one dispatched repository fetch.
type Fetch struct {
	Username string
	Token    uint64

	group errgroup.Group
	done  chan struct{}
}

// Wait blocks until the fetch completes. It returns nil when the list was
// rendered, a *FetchError on failure, or ErrSuperseded.
func (f *Fetch) Wait() error {
	return f.group.Wait()
}

// Done is closed once the fetch has completed.
func (f *Fetch) Done() <-chan struct{} {
	return f.done
}

// SubmitUsername validates name, persists it and dispatches a fetch.
// Blank input is reported to the presenter and returned as a *ValidationError;
// nothing is persisted in that case.
func (c *Controller) SubmitUsername(ctx context.Context, name string) (*Fetch, error) {
	if strings.TrimSpace(name) == "" {
		c.notify(model.NewNotice(MessageUsernameRequired))

		return nil, &ValidationError{Field: "username", Err: ErrUsernameRequired}
	}

	// The save and the dispatch share one critical section with Reset
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.prefs.SaveUsername(name); err != nil {
		return nil, fmt.Errorf("failed to save username: %w", err)
	}

	c.username = name

	return c.dispatchLocked(ctx, name), nil
}

// FetchRepositories dispatches one asynchronous request for name's
// repositories and returns without waiting. Any fetch still in flight is
// cancelled and its result will be discarded.
func (c *Controller) FetchRepositories(ctx context.Context, name string) *Fetch {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.dispatchLocked(ctx, name)
}

// dispatchLocked starts a fetch for name. c.mu must be held.
func (c *Controller) dispatchLocked(ctx context.Context, name string) *Fetch {
	fetchCtx, cancel := context.WithCancel(ctx)

	if c.cancel != nil {
		c.cancel()
	}

	c.seq++
	token := c.seq
	c.cancel = cancel
	c.inFlight = true

	c.logger.Debug("dispatching repository fetch",
		slog.String("username", name),
		slog.Uint64("token", token),
	)

	f := &Fetch{Username: name, Token: token, done: make(chan struct{})}

	f.group.Go(func() error {
		defer close(f.done)
		defer cancel()

		repos, err := c.fetcher.ListUserRepositories(fetchCtx, name)

		return c.complete(token, name, repos, err)
	})

	return f
}

// Reset clears the saved username and the list. Nothing is requested and a
// fetch still in flight is discarded.
func (c *Controller) Reset() error {
	c.mu.Lock()

	if err := c.prefs.ClearUsername(); err != nil {
		c.mu.Unlock()

		return fmt.Errorf("failed to clear username: %w", err)
	}

	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}

	c.seq++
	c.inFlight = false
	c.username = ""
	c.repos = model.RepositoryList{}
	c.fetched = false

	c.renderMu.Lock()
	c.mu.Unlock()

	defer c.renderMu.Unlock()

	c.logger.Debug("workflow reset")
	c.presenter.Render(model.RepositoryList{})

	return nil
}

// Restore loads the saved username. When one is present it is fetched right
// away, otherwise Restore returns a nil Fetch.
func (c *Controller) Restore(ctx context.Context) (*Fetch, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	name, err := c.prefs.Username()
	if err != nil {
		return nil, fmt.Errorf("failed to load username: %w", err)
	}

	c.username = name

	if strings.TrimSpace(name) == "" {
		return nil, nil
	}

	return c.dispatchLocked(ctx, name), nil
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		Username: c.username,
		Repos:    c.repos.Clone(),
		Fetched:  c.fetched,
		InFlight: c.inFlight,
	}
}

// Open handles the row activation event.
func (c *Controller) Open(repo model.RepositorySummary) error {
	if c.launcher == nil {
		return ErrNoLauncher
	}

	return c.launcher.Open(repo.HTMLURL)
}

// Share handles the share event of a row.
func (c *Controller) Share(repo model.RepositorySummary) error {
	if c.launcher == nil {
		return ErrNoLauncher
	}

	return c.launcher.Share(repo.HTMLURL)
}

func (c *Controller) complete(token uint64, name string, repos model.RepositoryList, err error) error {
	c.mu.Lock()

	if token != c.seq {
		c.mu.Unlock()

		c.logger.Debug("discarding superseded repository fetch",
			slog.String("username", name),
			slog.Uint64("token", token),
		)

		return ErrSuperseded
	}

	c.inFlight = false
	c.cancel = nil

	fetchErr := classify(name, repos, err)

	switch {
	case fetchErr == nil:
		c.repos = repos.Clone()
		c.fetched = true
		list := c.repos.Clone()

		c.renderMu.Lock()
		c.mu.Unlock()

		defer c.renderMu.Unlock()

		c.presenter.Render(list)

		return nil

	case c.allowEmpty && fetchErr.Kind == KindEmptyBody:
		c.repos = model.RepositoryList{}
		c.fetched = true

		c.renderMu.Lock()
		c.mu.Unlock()

		defer c.renderMu.Unlock()

		c.presenter.Render(model.RepositoryList{})
		c.presenter.Notify(model.NewNotice(MessageNoRepositories))

		return nil
	}

	c.renderMu.Lock()
	c.mu.Unlock()

	defer c.renderMu.Unlock()

	c.logger.Debug("repository fetch failed",
		slog.String("username", name),
		slog.String("kind", fetchErr.Kind.String()),
		slog.String("error", fetchErr.Error()),
	)

	// The backing list is left as it was
	c.presenter.Notify(model.NewNotice(MessageFetchFailed))

	return fetchErr
}

func (c *Controller) notify(n model.Notice) {
	c.renderMu.Lock()
	defer c.renderMu.Unlock()

	c.presenter.Notify(n)
}

// classify maps a fetch result to nil (rows to render) or a *FetchError.
func classify(username string, repos model.RepositoryList, err error) *FetchError {
	if err != nil {
		var statusErr *ghapi.StatusError
		if errors.As(err, &statusErr) {
			return &FetchError{Username: username, Kind: KindStatus, StatusCode: statusErr.StatusCode, Err: err}
		}

		return &FetchError{Username: username, Kind: KindTransport, Err: err}
	}

	if repos == nil {
		return &FetchError{Username: username, Kind: KindMissingBody}
	}

	if len(repos) == 0 {
		return &FetchError{Username: username, Kind: KindEmptyBody}
	}

	return nil
}
