package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryList_DecodeIgnoresUnknownFields(t *testing.T) {
	body := `[
		{"id": 1, "name": "a", "html_url": "u1", "full_name": "octocat/a", "fork": false},
		{"id": 2, "name": "b", "html_url": "u2", "owner": {"login": "octocat"}}
	]`

	var list RepositoryList
	require.NoError(t, json.Unmarshal([]byte(body), &list))

	require.Len(t, list, 2)
	assert.Equal(t, RepositorySummary{Name: "a", HTMLURL: "u1"}, list[0])
	assert.Equal(t, RepositorySummary{Name: "b", HTMLURL: "u2"}, list[1])
}

func TestRepositoryList_Clone(t *testing.T) {
	var nilList RepositoryList
	assert.Nil(t, nilList.Clone())

	orig := RepositoryList{{Name: "a", HTMLURL: "u1"}}
	cp := orig.Clone()
	cp[0].Name = "changed"

	assert.Equal(t, "a", orig[0].Name)
	assert.Equal(t, []string{"changed"}, cp.Names())
}

func TestNewNotice(t *testing.T) {
	n := NewNotice("username is required")

	assert.Equal(t, NoticeTitle, n.Title)
	assert.Equal(t, "username is required", n.Message)
}
