package model

// RepositorySummary is a single row of the repository list.
type RepositorySummary struct {
	// Name is the repository name shown in the list
	Name string `json:"name"`

	// HTMLURL is the web page of the repository
	HTMLURL string `json:"html_url"`
}

// RepositoryList is an ordered sequence of repositories in API response order.
type RepositoryList []RepositorySummary

// Clone returns a copy that does not share the backing array.
// A nil list stays nil.
func (l RepositoryList) Clone() RepositoryList {
	if l == nil {
		return nil
	}

	out := make(RepositoryList, len(l))
	copy(out, l)

	return out
}

// Names returns the display names in order.
func (l RepositoryList) Names() []string {
	names := make([]string, len(l))
	for i, r := range l {
		names[i] = r.Name
	}

	return names
}
