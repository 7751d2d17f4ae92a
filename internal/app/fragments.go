package app

import (
	"crypto/md5" //nolint:gosec // required by Gravatar's API
	"fmt"
	"sort"
	"strconv"
	"strings"

	"weightmelters/internal/domain"
)

// ChartPoint is one (date, weight) sample within a series.
type ChartPoint struct {
	Date     string  `json:"date"`
	WeightKg float64 `json:"weightKg"`
}

// ChartSeries is one user's trace on the shared chart.
type ChartSeries struct {
	UserID      int64        `json:"userId"`
	DisplayName string       `json:"displayName"`
	AvatarURL   string       `json:"avatarUrl"`
	Points      []ChartPoint `json:"points"`
}

// EntryItem is one row of the entry list fragment.
type EntryItem struct {
	ID       int64   `json:"id"`
	Date     string  `json:"date"`
	WeightKg float64 `json:"weightKg"`
}

// Form is the data behind the log-form fragment. Weight is the string the
// renderer should prefill, empty when there is no entry for the day yet.
type Form struct {
	Today   string `json:"today"`
	Date    string `json:"date"`
	Weight  string `json:"weight"`
	EntryID int64  `json:"entryId,omitempty"`
	Success bool   `json:"success"`
}

// BuildChart groups entries by owner into one date-ascending series per
// user. Users with zero entries produce no series. The input is assumed
// ordered by (user, date) as ListAllWithOwners returns it; series come out
// ordered by user id for stable rendering.
func BuildChart(entries []domain.EntryWithOwner) []ChartSeries {
	byUser := make(map[int64]*ChartSeries)
	order := make([]int64, 0)

	for _, e := range entries {
		s, ok := byUser[e.UserID]
		if !ok {
			owner := domain.User{Username: e.OwnerUsername, Name: e.OwnerName, Email: e.OwnerEmail}
			s = &ChartSeries{
				UserID:      e.UserID,
				DisplayName: owner.DisplayName(),
				AvatarURL:   GravatarURL(e.OwnerEmail, 40),
			}
			byUser[e.UserID] = s
			order = append(order, e.UserID)
		}
		s.Points = append(s.Points, ChartPoint{Date: e.Date, WeightKg: e.WeightKg})
	}

	out := make([]ChartSeries, 0, len(order))
	for _, id := range order {
		s := byUser[id]
		sort.Slice(s.Points, func(i, j int) bool { return s.Points[i].Date < s.Points[j].Date })
		out = append(out, *s)
	}
	return out
}

// BuildEntryList shapes the owner's entries for display, most recent date
// first.
func BuildEntryList(entries []domain.WeightEntry) []EntryItem {
	items := make([]EntryItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, EntryItem{ID: e.ID, Date: e.Date, WeightKg: e.WeightKg})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Date > items[j].Date })
	return items
}

// FormState builds the log-form fragment data, prefilled from the existing
// entry for the day when there is one.
func FormState(today string, existing *domain.WeightEntry, success bool) Form {
	f := Form{Today: today, Date: today, Success: success}
	if existing != nil {
		f.Date = existing.Date
		f.Weight = strconv.FormatFloat(existing.WeightKg, 'f', -1, 64)
		f.EntryID = existing.ID
	}
	return f
}

// GravatarURL returns the Gravatar identicon URL for an email address.
func GravatarURL(email string, size int) string {
	hash := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email)))) //nolint:gosec
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?d=identicon&s=%d", hash, size)
}
