package catalog

import (
	"fmt"
	"strings"
	"time"
)

// Recency is a cumulative age ceiling measured in whole days.
type Recency string

const (
	RecencyAll   Recency = ""
	RecencyToday Recency = "today"
	RecencyWeek  Recency = "week"
	RecencyMonth Recency = "month"
	RecencyYear  Recency = "year"
)

// ParseRecency accepts "", "all" and the four bucket names.
func ParseRecency(s string) (Recency, error) {
	switch r := Recency(strings.ToLower(strings.TrimSpace(s))); r {
	case RecencyAll, "all":
		return RecencyAll, nil
	case RecencyToday, RecencyWeek, RecencyMonth, RecencyYear:
		return r, nil
	default:
		return RecencyAll, fmt.Errorf("unknown date bucket %q", s)
	}
}

// maxAgeDays is the inclusive ceiling for the bucket; -1 disables it.
func (r Recency) maxAgeDays() int {
	switch r {
	case RecencyToday:
		return 0
	case RecencyWeek:
		return 7
	case RecencyMonth:
		return 30
	case RecencyYear:
		return 365
	default:
		return -1
	}
}

// AgeInDays is the number of whole days elapsed between t and now.
func AgeInDays(t, now time.Time) int {
	return int(now.Sub(t) / (24 * time.Hour))
}

// Matches reports whether something added at t falls inside the bucket.
func (r Recency) Matches(t, now time.Time) bool {
	max := r.maxAgeDays()
	if max < 0 {
		return true
	}
	return AgeInDays(t, now) <= max
}

// Query is the full set of catalog predicates. Zero values disable a
// predicate, so the zero Query matches everything.
type Query struct {
	Term    string
	Type    string
	Recency Recency
	Tag     string
	Kind    *Kind
	Page    int
}

// Active reports whether any predicate narrows the result.
func (q Query) Active() bool {
	return q.Term != "" || q.Type != "" || q.Recency != RecencyAll || q.Tag != "" || q.Kind != nil
}

// Match applies every active predicate; a record must pass all of them.
func (q Query) Match(r FileRecord, now time.Time) bool {
	if q.Term != "" && !strings.Contains(strings.ToLower(r.Name), strings.ToLower(q.Term)) {
		return false
	}
	if q.Type != "" && r.Type != q.Type {
		return false
	}
	if !q.Recency.Matches(r.addedAt(), now) {
		return false
	}
	if q.Tag != "" && !r.HasTag(q.Tag) {
		return false
	}
	if q.Kind != nil && r.Kind() != *q.Kind {
		return false
	}
	return true
}

// Filter returns the records matching q, preserving input order.
func Filter(records []FileRecord, q Query, now time.Time) []FileRecord {
	out := make([]FileRecord, 0, len(records))
	for _, r := range records {
		if q.Match(r, now) {
			out = append(out, r)
		}
	}
	return out
}

// TypeOptions lists distinct record types in first-seen order.
func TypeOptions(records []FileRecord) []string {
	return distinct(records, func(r FileRecord) []string { return []string{r.Type} })
}

// TagOptions lists distinct tags in first-seen order.
func TagOptions(records []FileRecord) []string {
	return distinct(records, func(r FileRecord) []string { return r.Tags })
}

func distinct(records []FileRecord, values func(FileRecord) []string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, r := range records {
		for _, v := range values(r) {
			if v == "" {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}
