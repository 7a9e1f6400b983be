// Package core provides the business logic layer for repofinder.
//
// This package contains the fetch workflow separated from UI concerns.
// The [Controller] validates the username, persists it, dispatches the
// repository request and classifies the outcome. Results reach the user only
// through the [Presenter] it was constructed with.
//
// # Design Principles
//
//   - Functions return errors instead of printing to stdout/stderr
//   - Dependencies (fetcher, preferences, presenter, launcher) are injected
//   - UI-specific logic belongs in the cli package, not here
//
// # Fetch Outcomes
//
// A completed fetch is classified as exactly one of:
//
//  1. Rows to render: the list replaces the previous one
//  2. Missing or empty body: handled like a failure unless [WithEmptyAllowed] is set
//  3. Failure: a notice is shown and the previous list stays on screen
//
// Each dispatch carries a token. Only the newest fetch may change state;
// older ones finish with [ErrSuperseded].
package core
