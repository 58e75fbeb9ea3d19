package bookmarks

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// SortOrder selects how a bookmark list is ordered.
type SortOrder string

const (
	SortNewest  SortOrder = "newest"
	SortOldest  SortOrder = "oldest"
	SortMatch   SortOrder = "match"
	SortCompany SortOrder = "company"
)

// ParseSortOrder validates a sort order name.
func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(strings.ToLower(s)); o {
	case SortNewest, SortOldest, SortMatch, SortCompany:
		return o, nil
	}
	return "", fmt.Errorf("unknown sort order %q", s)
}

// Search returns the bookmarks whose title, company or any skill contains
// term, case-insensitively. An empty term matches everything.
func Search(list []BookmarkedJob, term string) []BookmarkedJob {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]BookmarkedJob, 0, len(list))
	for _, b := range list {
		if term == "" || matches(b.Job, term) {
			out = append(out, b)
		}
	}
	return out
}

func matches(j Job, term string) bool {
	if strings.Contains(strings.ToLower(j.Title), term) ||
		strings.Contains(strings.ToLower(j.Company), term) {
		return true
	}
	return slices.ContainsFunc(j.Skills, func(s string) bool {
		return strings.Contains(strings.ToLower(s), term)
	})
}

// Sort returns a sorted copy of list. Ties keep their stored order.
func Sort(list []BookmarkedJob, order SortOrder) []BookmarkedJob {
	out := slices.Clone(list)
	var compare func(a, b BookmarkedJob) int
	switch order {
	case SortNewest:
		compare = func(a, b BookmarkedJob) int { return b.BookmarkedAt.Compare(a.BookmarkedAt) }
	case SortOldest:
		compare = func(a, b BookmarkedJob) int { return a.BookmarkedAt.Compare(b.BookmarkedAt) }
	case SortMatch:
		compare = func(a, b BookmarkedJob) int { return cmp.Compare(b.Match, a.Match) }
	case SortCompany:
		compare = func(a, b BookmarkedJob) int {
			return cmp.Compare(strings.ToLower(a.Company), strings.ToLower(b.Company))
		}
	default:
		return out
	}
	slices.SortStableFunc(out, compare)
	return out
}
