// Package model defines the data structures shared by repofinder's packages.
//
// # RepositorySummary
//
// The [RepositorySummary] struct is the projection of a GitHub repository that
// repofinder displays and shares. Every other field the API returns is ignored:
//
//	type RepositorySummary struct {
//	    Name    string // Display text
//	    HTMLURL string // Canonical web link, used to open and to share
//	}
//
// # RepositoryList
//
// [RepositoryList] keeps the order of the API response. An empty list is a
// valid result and is different from "nothing fetched yet", which the
// controller tracks on its own.
//
// # Notice
//
// A [Notice] is the modal message shown to the user when an action fails.
package model
