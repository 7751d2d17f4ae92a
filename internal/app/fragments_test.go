package app_test

import (
	"strings"
	"testing"

	"weightmelters/internal/app"
	"weightmelters/internal/domain"
)

func entryFor(userID int64, date string, weight float64, name, email string) domain.EntryWithOwner {
	return domain.EntryWithOwner{
		WeightEntry:   domain.WeightEntry{UserID: userID, Date: date, WeightKg: weight},
		OwnerUsername: name,
		OwnerName:     name,
		OwnerEmail:    email,
	}
}

func TestBuildChart_GroupsByUserSortedByDate(t *testing.T) {
	entries := []domain.EntryWithOwner{
		entryFor(1, "2024-01-03", 79.5, "alice", "alice@example.com"),
		entryFor(1, "2024-01-01", 80.0, "alice", "alice@example.com"),
		entryFor(2, "2024-01-02", 90.0, "bob", "bob@example.com"),
	}

	series := app.BuildChart(entries)
	if len(series) != 2 {
		t.Fatalf("expected 2 series, got %d", len(series))
	}

	var alice *app.ChartSeries
	for i := range series {
		if series[i].UserID == 1 {
			alice = &series[i]
		}
	}
	if alice == nil {
		t.Fatal("missing series for user 1")
	}
	if len(alice.Points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(alice.Points))
	}
	if alice.Points[0].Date != "2024-01-01" || alice.Points[0].WeightKg != 80.0 {
		t.Errorf("expected first point (2024-01-01, 80.0), got %+v", alice.Points[0])
	}
	if alice.Points[1].Date != "2024-01-03" || alice.Points[1].WeightKg != 79.5 {
		t.Errorf("expected second point (2024-01-03, 79.5), got %+v", alice.Points[1])
	}
}

func TestBuildChart_NoEntriesNoSeries(t *testing.T) {
	if series := app.BuildChart(nil); len(series) != 0 {
		t.Errorf("expected no series, got %d", len(series))
	}
}

func TestBuildChart_Labels(t *testing.T) {
	entries := []domain.EntryWithOwner{
		{
			WeightEntry:   domain.WeightEntry{UserID: 1, Date: "2024-01-01", WeightKg: 80},
			OwnerUsername: "alice",
			OwnerEmail:    "alice@example.com",
		},
	}

	series := app.BuildChart(entries)
	if len(series) != 1 {
		t.Fatalf("expected 1 series, got %d", len(series))
	}
	// No name set: display name falls back to the email prefix.
	if series[0].DisplayName != "alice" {
		t.Errorf("expected display name alice, got %q", series[0].DisplayName)
	}
	if !strings.HasPrefix(series[0].AvatarURL, "https://www.gravatar.com/avatar/") {
		t.Errorf("expected gravatar url, got %q", series[0].AvatarURL)
	}
	if !strings.Contains(series[0].AvatarURL, "d=identicon") {
		t.Errorf("expected identicon fallback, got %q", series[0].AvatarURL)
	}
}

func TestBuildEntryList_MostRecentFirst(t *testing.T) {
	items := app.BuildEntryList([]domain.WeightEntry{
		{ID: 1, Date: "2024-01-01", WeightKg: 80},
		{ID: 2, Date: "2024-01-05", WeightKg: 79},
	})
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Date != "2024-01-05" || items[1].Date != "2024-01-01" {
		t.Errorf("expected [2024-01-05, 2024-01-01], got [%s, %s]", items[0].Date, items[1].Date)
	}
}

func TestFormState_Prefill(t *testing.T) {
	form := app.FormState("2024-01-15", &domain.WeightEntry{ID: 4, Date: "2024-01-15", WeightKg: 80.5}, false)
	if form.Date != "2024-01-15" || form.Weight != "80.5" {
		t.Errorf("expected prefilled form, got %+v", form)
	}
	if form.EntryID != 4 {
		t.Errorf("expected entry id 4, got %d", form.EntryID)
	}

	empty := app.FormState("2024-01-15", nil, false)
	if empty.Date != "2024-01-15" || empty.Weight != "" || empty.EntryID != 0 {
		t.Errorf("expected empty form for today, got %+v", empty)
	}
}

func TestGravatarURL_Normalizes(t *testing.T) {
	a := app.GravatarURL("Alice@Example.com ", 40)
	b := app.GravatarURL("alice@example.com", 40)
	if a != b {
		t.Errorf("expected identical urls, got %q and %q", a, b)
	}
}
