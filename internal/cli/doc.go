// Package cli provides the terminal front ends for repofinder.
//
// The interactive screen is a [Bubbletea] model styled with [Lipgloss]. It
// follows the Model-View-Update architecture and never calls the fetch
// controller from Update directly: submissions, resets and row actions run
// as commands, and the controller's output arrives back as messages through
// a ProgramPresenter.
//
// # Presenters
//
//   - ProgramPresenter: forwards Render and Notify to a running program
//   - TextPresenter: writes a table or JSON for non-interactive use
//
// [Bubbletea]: https://github.com/charmbracelet/bubbletea
// [Lipgloss]: https://github.com/charmbracelet/lipgloss
package cli
