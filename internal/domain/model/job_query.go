package model

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultPage is used when page is absent or not a positive integer.
	DefaultPage = 1
	// DefaultLimit is used when limit is absent or not a positive integer.
	DefaultLimit = 10
	// DefaultMaxLimit caps limit when the caller does not configure a ceiling.
	DefaultMaxLimit = 100

	filterAll = "all"
)

// SortKey selects the ordering of a job listing.
type SortKey string

const (
	SortLatest SortKey = "latest"
	SortOldest SortKey = "oldest"
	SortAZ     SortKey = "a-z"
	SortZA     SortKey = "z-a"
)

// ParseSortKey maps a raw sort parameter onto a known key. Unknown or empty
// values yield SortOldest.
func ParseSortKey(raw string) SortKey {
	switch k := SortKey(strings.TrimSpace(raw)); k {
	case SortLatest, SortOldest, SortAZ, SortZA:
		return k
	default:
		return SortOldest
	}
}

// JobListParams holds the raw, unvalidated listing parameters as received from a client.
type JobListParams struct {
	Status  string
	JobType string
	Sort    string
	Search  string
	Page    string
	Limit   string
}

// JobQuery is a normalized listing request. OwnerID is always set from the caller
// identity; nil Status or JobType means no filter on that column.
type JobQuery struct {
	OwnerID string
	Status  *JobStatus
	JobType *JobType
	Search  string
	Sort    SortKey
	Page    int
	Limit   int
}

// Normalize converts raw parameters into a JobQuery scoped to owner.
// Page and limit fall back to their defaults when absent, non-numeric, or below 1,
// and limit is capped at maxLimit (DefaultMaxLimit when maxLimit < 1).
// Page is capped so that Offset never overflows; pages past the end are empty.
func (p JobListParams) Normalize(owner string, maxLimit int) JobQuery {
	if maxLimit < 1 {
		maxLimit = DefaultMaxLimit
	}
	q := JobQuery{
		OwnerID: owner,
		Search:  strings.TrimSpace(p.Search),
		Sort:    ParseSortKey(p.Sort),
		Page:    positiveIntOr(p.Page, DefaultPage),
		Limit:   min(positiveIntOr(p.Limit, DefaultLimit), maxLimit),
	}
	q.Page = min(q.Page, maxPage(q.Limit))
	if s := strings.TrimSpace(p.Status); s != "" && s != filterAll {
		st := JobStatus(s)
		q.Status = &st
	}
	if t := strings.TrimSpace(p.JobType); t != "" && t != filterAll {
		jt := JobType(t)
		q.JobType = &jt
	}
	return q
}

// positiveIntOr parses raw as a positive int. Values too large for an int
// saturate at math.MaxInt rather than falling back to def.
func positiveIntOr(raw string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if errors.Is(err, strconv.ErrRange) && n > 0 {
		return n
	}
	if err != nil || n < 1 {
		return def
	}
	return n
}

// maxPage bounds page so that (page-1)*limit fits in an int.
func maxPage(limit int) int {
	if limit < 1 {
		return math.MaxInt
	}
	return math.MaxInt / limit
}

// ValidSearch reports whether s can be sent to the store as a search term:
// valid UTF-8 with no NUL bytes.
func ValidSearch(s string) bool {
	return utf8.ValidString(s) && !strings.ContainsRune(s, 0)
}

// Offset returns the number of rows skipped before the requested page.
func (q JobQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// NumPages returns ceil(total/limit), which is 0 when total is 0.
func (q JobQuery) NumPages(total int) int {
	if total <= 0 || q.Limit <= 0 {
		return 0
	}
	return (total + q.Limit - 1) / q.Limit
}

// JobPage is one page of a listing along with the unpaged match count.
type JobPage struct {
	Jobs       []*Job `json:"jobs"`
	TotalJobs  int    `json:"totalJobs"`
	NumOfPages int    `json:"numOfPages"`
}
