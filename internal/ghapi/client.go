// Package ghapi is the slice of the GitHub REST API that repofinder uses:
// listing the public repositories of a user.
package ghapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v82/github"
	"github.com/inovacc/repofinder/internal/application"
	"github.com/inovacc/repofinder/internal/model"
)

// StatusError reports a completed request that returned a non-success status.
type StatusError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("GitHub API returned %d", e.StatusCode)
	}

	return fmt.Sprintf("GitHub API returned %d: %s", e.StatusCode, e.Message)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// Client wraps the go-github client. Requests are unauthenticated.
type Client struct {
	client *github.Client
	logger *slog.Logger
}

// NewClient creates a client for the API at baseURL, which must end with a slash.
// A nil httpClient uses http.DefaultClient and a nil logger discards output.
func NewClient(baseURL string, httpClient *http.Client, logger *slog.Logger) (*Client, error) {
	if !strings.HasSuffix(baseURL, "/") {
		return nil, fmt.Errorf("base URL must have a trailing slash: %q", baseURL)
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}

	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	gh := github.NewClient(httpClient)
	gh.BaseURL = u
	gh.UserAgent = application.UserAgent()

	return &Client{client: gh, logger: logger}, nil
}

// ListUserRepositories issues a single GET users/{username}/repos without query
// parameters. A nil list with a nil error means the response had no body (or a
// JSON null); an empty non-nil list means the body was [].
func (c *Client) ListUserRepositories(ctx context.Context, username string) (model.RepositoryList, error) {
	repos, resp, err := c.client.Repositories.ListByUser(ctx, url.PathEscape(username), nil)
	if err != nil {
		if status := statusCode(err, resp); status != 0 {
			c.logger.Debug("repository list request rejected",
				slog.String("username", username),
				slog.Int("status", status),
			)

			return nil, &StatusError{StatusCode: status, Message: errorMessage(err), Err: err}
		}

		return nil, fmt.Errorf("failed to list repositories for %s: %w", username, err)
	}

	if repos == nil {
		return nil, nil
	}

	list := make(model.RepositoryList, 0, len(repos))
	for _, r := range repos {
		if r == nil {
			continue
		}

		list = append(list, model.RepositorySummary{
			Name:    r.GetName(),
			HTMLURL: r.GetHTMLURL(),
		})
	}

	c.logger.Debug("repository list received",
		slog.String("username", username),
		slog.Int("count", len(list)),
	)

	return list, nil
}

// statusCode returns the HTTP status of a failed call that reached the server,
// or 0 for transport failures.
func statusCode(err error, resp *github.Response) int {
	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil {
		return errResp.Response.StatusCode
	}

	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) && rateErr.Response != nil {
		return rateErr.Response.StatusCode
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) && abuseErr.Response != nil {
		return abuseErr.Response.StatusCode
	}

	if resp != nil && resp.Response != nil && resp.StatusCode >= http.StatusMultipleChoices {
		return resp.StatusCode
	}

	return 0
}

func errorMessage(err error) string {
	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) {
		return errResp.Message
	}

	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return rateErr.Message
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return abuseErr.Message
	}

	return ""
}
