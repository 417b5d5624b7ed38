package services

import (
	"errors"
	"sort"
	"time"

	"teamboard/models"
)

// ErrNotCreator is returned when someone other than an issue's creator tries
// to edit its content or delete it.
var ErrNotCreator = errors.New("not the issue creator")

// IssueEdit carries one update request. Empty fields are left as they are;
// Status moving alone is the normal workflow case.
type IssueEdit struct {
	Title       string
	Description string
	Status      string
}

// IsIssueCreator matches on the creator's user ID, never the display name:
// duplicate names within a team are allowed, so names cannot authorize
// anything.
func IsIssueCreator(issue *models.Issue, userID string) bool {
	return issue.CreatedByID == userID
}

// ApplyIssueEdit applies an edit in place. Content changes (title or
// description) are reserved for the creator; a bare status change is open to
// the whole team. Any applied change stamps UpdatedAt.
func ApplyIssueEdit(issue *models.Issue, editorID string, edit IssueEdit, now time.Time) error {
	contentEdit := edit.Title != "" || edit.Description != ""
	if contentEdit && !IsIssueCreator(issue, editorID) {
		return ErrNotCreator
	}

	if edit.Title != "" {
		issue.Title = edit.Title
	}
	if edit.Description != "" {
		issue.Description = edit.Description
	}
	if edit.Status != "" {
		issue.Status = edit.Status
	}
	issue.UpdatedAt = now
	return nil
}

// ApplyAnnouncementEdit replaces the notice's content and stamps UpdatedAt,
// which until the first edit equals CreatedAt.
func ApplyAnnouncementEdit(a *models.Announcement, title, content string, now time.Time) {
	a.Title = title
	a.Content = content
	a.UpdatedAt = now
}

// SortAnnouncementsNewestFirst orders by CreatedAt descending. Edits bump
// UpdatedAt but never move a notice in the feed.
func SortAnnouncementsNewestFirst(list []models.Announcement) {
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
}

// SortIssuesNewestFirst orders by CreatedAt descending.
func SortIssuesNewestFirst(list []models.Issue) {
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
}
