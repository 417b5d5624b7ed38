// Package services carries the team-membership rules and the document
// versioning logic, separated from the HTTP controllers so both are testable
// without a server.
package services

import (
	"sort"

	"teamboard/models"
)

// LatestByTitle picks, per distinct title, the document with the highest
// version. Pure: it only looks at the slice it is given, so results are as
// stale as the caller's last fetch. Tie-break for equal versions (possible in
// rows written before versions were assigned transactionally): later
// CreatedAt wins, then the lexicographically larger ID.
func LatestByTitle(docs []models.Document) map[string]models.Document {
	latest := make(map[string]models.Document)
	for _, doc := range docs {
		current, ok := latest[doc.Title]
		if !ok || newer(doc, current) {
			latest[doc.Title] = doc
		}
	}
	return latest
}

// HistoryByTitle returns every revision of a title, version descending.
func HistoryByTitle(docs []models.Document, title string) []models.Document {
	var history []models.Document
	for _, doc := range docs {
		if doc.Title == title {
			history = append(history, doc)
		}
	}
	sort.Slice(history, func(i, j int) bool {
		return newer(history[i], history[j])
	})
	return history
}

// NextVersion is 1 + the highest existing version for the title; an unseen
// title starts at 1.
func NextVersion(docs []models.Document, title string) int {
	max := 0
	for _, doc := range docs {
		if doc.Title == title && doc.Version > max {
			max = doc.Version
		}
	}
	return max + 1
}

func newer(a, b models.Document) bool {
	if a.Version != b.Version {
		return a.Version > b.Version
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}
