package store

// Store defines the preference operations used by the app.
type Store interface {
	Ping() error

	// Username returns the last confirmed username, or "" when none is saved.
	Username() (string, error)

	// SaveUsername overwrites the saved username.
	SaveUsername(name string) error

	// ClearUsername resets the saved username to "".
	ClearUsername() error

	Close() error
}
