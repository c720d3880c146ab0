package job

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/Abraxas-365/nerdyjobs/pkg/kernel"
)

// Filter is a validated listing filter
type Filter struct {
	Q        string
	Type     JobType
	Location string
	Remote   bool
}

// IsEmpty is true when the filter matches every approved job
func (f Filter) IsEmpty() bool {
	return f == Filter{}
}

// Approval restricts a query by review state
type Approval int

const (
	AnyApproval Approval = iota
	OnlyApproved
	OnlyPending
)

// Query is the store-level form of a filter. All set conditions are ANDed.
type Query struct {
	Words    []string // lowercase, each must occur in Job.SearchText
	Type     JobType
	Location string
	Remote   bool
	Approval Approval
}

// PublicQuery is the query behind the public listing: approved jobs only
func (f Filter) PublicQuery() Query {
	return Query{
		Words:    SearchWords(f.Q),
		Type:     f.Type,
		Location: f.Location,
		Remote:   f.Remote,
		Approval: OnlyApproved,
	}
}

// PendingQuery selects submissions waiting for review
func PendingQuery() Query {
	return Query{Approval: OnlyPending}
}

// ApprovedQuery selects every approved job
func ApprovedQuery() Query {
	return Query{Approval: OnlyApproved}
}

// SearchWords splits free text on whitespace into lowercase words
func SearchWords(q string) []string {
	fields := strings.Fields(q)
	if len(fields) == 0 {
		return nil
	}
	words := make([]string, len(fields))
	for i, w := range fields {
		words[i] = strings.ToLower(w)
	}
	return words
}

// Matches evaluates the query against a single job
func (q Query) Matches(j *Job) bool {
	switch q.Approval {
	case OnlyApproved:
		if !j.Approved {
			return false
		}
	case OnlyPending:
		if j.Approved {
			return false
		}
	}
	if q.Type != "" && j.Type != q.Type {
		return false
	}
	if q.Location != "" && j.Location != q.Location {
		return false
	}
	if q.Remote && !j.IsRemote() {
		return false
	}
	if len(q.Words) > 0 {
		text := j.SearchText()
		for _, w := range q.Words {
			if !strings.Contains(text, w) {
				return false
			}
		}
	}
	return true
}

// Title describes the listing a filter produces
func (f Filter) Title() string {
	var prefix string
	switch {
	case f.Q != "":
		prefix = f.Q + " jobs"
	case f.Type != "":
		prefix = string(f.Type) + " developer jobs"
	case f.Remote:
		prefix = "Remote developer jobs"
	default:
		prefix = "All developer jobs"
	}
	if f.Location != "" {
		return prefix + " in " + f.Location
	}
	return prefix
}

// Values encodes the non-empty filter fields as query parameters
func (f Filter) Values() url.Values {
	v := url.Values{}
	if f.Q != "" {
		v.Set("q", f.Q)
	}
	if f.Type != "" {
		v.Set("type", string(f.Type))
	}
	if f.Location != "" {
		v.Set("location", f.Location)
	}
	if f.Remote {
		v.Set("remote", "true")
	}
	return v
}

// PageLinks builds the previous/next links of a listing page, keeping the filter
func PageLinks(f Filter, page kernel.Page) Links {
	var links Links
	if page.HasPrevious() {
		links.Previous = pageURL(f, page.Number-1)
	}
	if page.HasNext() {
		links.Next = pageURL(f, page.Number+1)
	}
	return links
}

func pageURL(f Filter, n int) string {
	v := f.Values()
	v.Set("page", strconv.Itoa(n))
	return "/?" + v.Encode()
}
