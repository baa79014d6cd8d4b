package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/iho/gofintrack/internal/domain"
)

// FilterAll disables the type or category filter.
const FilterAll = "all"

// FilterParams narrows a snapshot. Empty Type or Category means FilterAll.
type FilterParams struct {
	Search   string
	Type     string
	Category string
}

// SortOrder selects the ordering applied by Sort.
type SortOrder string

const (
	SortNewest  SortOrder = "newest"
	SortOldest  SortOrder = "oldest"
	SortHighest SortOrder = "highest"
	SortLowest  SortOrder = "lowest"
)

// IsValid reports whether the order is one Sort understands.
func (o SortOrder) IsValid() bool {
	switch o {
	case SortNewest, SortOldest, SortHighest, SortLowest:
		return true
	default:
		return false
	}
}

// Filter keeps transactions matching every criterion in p. Search matches a
// case-insensitive substring of the description or the category.
func Filter(txs []*domain.Transaction, p FilterParams) []*domain.Transaction {
	search := strings.ToLower(p.Search)
	out := make([]*domain.Transaction, 0, len(txs))

	for _, tx := range txs {
		if search != "" &&
			!strings.Contains(strings.ToLower(tx.Description), search) &&
			!strings.Contains(strings.ToLower(tx.Category), search) {
			continue
		}

		if !matchesAll(p.Type) && string(tx.Type) != p.Type {
			continue
		}

		if !matchesAll(p.Category) && tx.Category != p.Category {
			continue
		}

		out = append(out, tx)
	}

	return out
}

func matchesAll(v string) bool {
	return v == "" || v == FilterAll
}

// Sort returns a sorted copy of txs. The sort is stable and an unknown order
// returns the transactions in their input order.
func Sort(txs []*domain.Transaction, order SortOrder) []*domain.Transaction {
	out := make([]*domain.Transaction, len(txs))
	copy(out, txs)

	var less func(a, b *domain.Transaction) bool

	switch order {
	case SortNewest:
		less = func(a, b *domain.Transaction) bool { return a.Date.After(b.Date) }
	case SortOldest:
		less = func(a, b *domain.Transaction) bool { return a.Date.Before(b.Date) }
	case SortHighest:
		less = func(a, b *domain.Transaction) bool { return a.Amount.GreaterThan(b.Amount) }
	case SortLowest:
		less = func(a, b *domain.Transaction) bool { return a.Amount.LessThan(b.Amount) }
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })

	return out
}

// Section titles, in display order.
const (
	SectionToday     = "Today"
	SectionYesterday = "Yesterday"
	SectionThisMonth = "This Month"
	SectionOlder     = "Older"
)

// Buckets partitions transactions by recency relative to a reference time.
// Every transaction lands in exactly one bucket.
type Buckets struct {
	Today     []*domain.Transaction
	Yesterday []*domain.Transaction
	ThisMonth []*domain.Transaction
	Older     []*domain.Transaction
}

// Section is a titled, non-empty bucket ready for display.
type Section struct {
	Title        string
	Transactions []*domain.Transaction
}

// Sections lists the non-empty buckets in fixed display order.
func (b Buckets) Sections() []Section {
	all := []Section{
		{Title: SectionToday, Transactions: b.Today},
		{Title: SectionYesterday, Transactions: b.Yesterday},
		{Title: SectionThisMonth, Transactions: b.ThisMonth},
		{Title: SectionOlder, Transactions: b.Older},
	}

	out := make([]Section, 0, len(all))
	for _, s := range all {
		if len(s.Transactions) > 0 {
			out = append(out, s)
		}
	}

	return out
}

// Len is the number of transactions across all buckets.
func (b Buckets) Len() int {
	return len(b.Today) + len(b.Yesterday) + len(b.ThisMonth) + len(b.Older)
}

// Group assigns each transaction to the first matching bucket of Today,
// Yesterday, ThisMonth and Older, comparing calendar dates in now's
// location. Order within a bucket follows the input.
func Group(txs []*domain.Transaction, now time.Time) Buckets {
	loc := now.Location()
	y, m, d := now.Date()
	yesterday := time.Date(y, m, d-1, 0, 0, 0, 0, loc)

	var b Buckets

	for _, tx := range txs {
		date := tx.Date.In(loc)

		switch {
		case sameDay(date, now):
			b.Today = append(b.Today, tx)
		case sameDay(date, yesterday):
			b.Yesterday = append(b.Yesterday, tx)
		case date.Year() == y && date.Month() == m:
			b.ThisMonth = append(b.ThisMonth, tx)
		default:
			b.Older = append(b.Older, tx)
		}
	}

	return b
}

// BrowseParams combines filtering and ordering.
type BrowseParams struct {
	Filter FilterParams
	Order  SortOrder
}

// BrowseResult is a filtered, sorted list together with its grouping.
type BrowseResult struct {
	Transactions []*domain.Transaction
	Groups       Buckets
}

// Browse filters, sorts and groups a snapshot in one pass.
func Browse(txs []*domain.Transaction, p BrowseParams, now time.Time) BrowseResult {
	sorted := Sort(Filter(txs, p.Filter), p.Order)

	return BrowseResult{
		Transactions: sorted,
		Groups:       Group(sorted, now),
	}
}

// Categories lists the distinct categories in use, in first-seen order.
func Categories(txs []*domain.Transaction) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)

	for _, tx := range txs {
		if _, ok := seen[tx.Category]; ok {
			continue
		}
		seen[tx.Category] = struct{}{}
		out = append(out, tx.Category)
	}

	return out
}
