package services

import (
	"errors"
	"testing"
	"time"

	"teamboard/models"
)

func announcement(id string, created time.Time) models.Announcement {
	return models.Announcement{
		ID:        id,
		TeamID:    "T1",
		Title:     "t",
		Content:   "c",
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestSortAnnouncementsNewestFirst(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	list := []models.Announcement{
		announcement("a1", base),
		announcement("a3", base.Add(2*time.Hour)),
		announcement("a2", base.Add(time.Hour)),
	}
	// Editing an old notice bumps UpdatedAt but must not move it up the feed.
	ApplyAnnouncementEdit(&list[0], "corrected", "body", base.Add(3*time.Hour))

	SortAnnouncementsNewestFirst(list)

	for i, want := range []string{"a3", "a2", "a1"} {
		if list[i].ID != want {
			t.Errorf("list[%d] = %s, want %s", i, list[i].ID, want)
		}
	}
}

func TestAnnouncementEditTimestamps(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	a := announcement("a1", base)

	if !a.UpdatedAt.Equal(a.CreatedAt) {
		t.Fatalf("fresh announcement UpdatedAt = %v, want == CreatedAt %v", a.UpdatedAt, a.CreatedAt)
	}

	ApplyAnnouncementEdit(&a, "new title", "new content", base.Add(time.Hour))

	if a.Title != "new title" || a.Content != "new content" {
		t.Errorf("edit not applied: %+v", a)
	}
	if !a.CreatedAt.Equal(base) {
		t.Errorf("edit moved CreatedAt to %v", a.CreatedAt)
	}
	if !a.UpdatedAt.After(a.CreatedAt) {
		t.Errorf("UpdatedAt = %v, want after CreatedAt %v", a.UpdatedAt, a.CreatedAt)
	}
}

func TestApplyIssueEditStatusTransitions(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	issue := models.Issue{
		ID:          "i1",
		TeamID:      "T1",
		Title:       "Broken link",
		Description: "404 on the syllabus page",
		Status:      models.IssueStatusOpen,
		CreatedBy:   "Alice",
		CreatedByID: "U1",
		CreatedAt:   base,
		UpdatedAt:   base,
	}

	// Anyone on the team may walk the status forward.
	for i, status := range []string{models.IssueStatusInProgress, models.IssueStatusResolved} {
		now := base.Add(time.Duration(i+1) * time.Hour)
		if err := ApplyIssueEdit(&issue, "U2", IssueEdit{Status: status}, now); err != nil {
			t.Fatalf("status change to %s by teammate = %v", status, err)
		}
		if issue.Status != status {
			t.Errorf("status = %s, want %s", issue.Status, status)
		}
		if !issue.UpdatedAt.Equal(now) {
			t.Errorf("UpdatedAt = %v, want %v", issue.UpdatedAt, now)
		}
	}

	// Reopening is just another status move.
	if err := ApplyIssueEdit(&issue, "U2", IssueEdit{Status: models.IssueStatusOpen}, base.Add(3*time.Hour)); err != nil {
		t.Fatalf("reopen = %v", err)
	}
	if issue.Title != "Broken link" || issue.Description != "404 on the syllabus page" {
		t.Errorf("status-only edits touched content: %+v", issue)
	}
}

// Creator checks key on the user ID, so a teammate who happens to share the
// creator's display name gets no edit rights.
func TestApplyIssueEditCreatorGate(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	issue := models.Issue{
		ID:          "i1",
		Title:       "Broken link",
		Description: "d",
		Status:      models.IssueStatusOpen,
		CreatedBy:   "Alice",
		CreatedByID: "U1",
		CreatedAt:   base,
		UpdatedAt:   base,
	}

	// Same name, different account.
	err := ApplyIssueEdit(&issue, "U2", IssueEdit{Title: "hijacked"}, base.Add(time.Hour))
	if !errors.Is(err, ErrNotCreator) {
		t.Fatalf("content edit by same-named teammate = %v, want ErrNotCreator", err)
	}
	if issue.Title != "Broken link" {
		t.Errorf("rejected edit still applied: %q", issue.Title)
	}

	if IsIssueCreator(&issue, "U2") {
		t.Error("IsIssueCreator matched a non-creator")
	}
	if !IsIssueCreator(&issue, "U1") {
		t.Error("IsIssueCreator rejected the creator")
	}

	if err := ApplyIssueEdit(&issue, "U1", IssueEdit{Title: "Broken link (fixed)"}, base.Add(time.Hour)); err != nil {
		t.Fatalf("content edit by creator = %v", err)
	}
	if issue.Title != "Broken link (fixed)" {
		t.Errorf("creator edit not applied: %q", issue.Title)
	}
}

func TestSortIssuesNewestFirst(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	list := []models.Issue{
		{ID: "i2", CreatedAt: base.Add(time.Hour)},
		{ID: "i1", CreatedAt: base},
		{ID: "i3", CreatedAt: base.Add(2 * time.Hour)},
	}

	SortIssuesNewestFirst(list)

	for i, want := range []string{"i3", "i2", "i1"} {
		if list[i].ID != want {
			t.Errorf("list[%d] = %s, want %s", i, list[i].ID, want)
		}
	}
}
