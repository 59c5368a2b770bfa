// Package analytics contains the aggregation and insight use cases.
//
// The functions in period.go, aggregate.go, compare.go and insights.go form a
// pure computation core: they never touch storage, never read the clock, and
// never mutate their inputs. Use cases in this package wire them to the
// repositories and the cache.
package analytics

import (
	"time"

	"github.com/finsight/backend/internal/domain/entity"
)

// Range is a date window scoping a transaction query. Either bound may be nil.
// Bounds are interpreted date-only; time-of-day on transaction dates is ignored.
type Range struct {
	From *time.Time
	To   *time.Time
}

// PeriodSplit holds the transactions of the current period and of the
// comparison period (the prior window, shifted back one calendar month).
type PeriodSplit struct {
	Current  []*entity.Transaction
	Previous []*entity.Transaction
}

// FilterByRange partitions transactions into the current period and the
// previous comparison period.
//
// With no From bound the whole collection is current and no previous period
// exists. With From and To, current is the closed interval [From, To]. With
// only From, current is the exact calendar day. The previous period shifts
// both bounds back one calendar month with day clamping (31 Mar -> 29 Feb in
// a leap year).
func FilterByRange(transactions []*entity.Transaction, r Range) PeriodSplit {
	if r.From == nil {
		return PeriodSplit{Current: append([]*entity.Transaction(nil), transactions...)}
	}

	from := dateOnly(*r.From)

	var current, previous []*entity.Transaction

	if r.To != nil {
		to := dateOnly(*r.To)
		prevFrom := shiftOneMonthBack(from)
		prevTo := shiftOneMonthBack(to)

		for _, t := range transactions {
			d := dateOnly(t.Date)
			if !d.Before(from) && !d.After(to) {
				current = append(current, t)
			}
			if !d.Before(prevFrom) && !d.After(prevTo) {
				previous = append(previous, t)
			}
		}
		return PeriodSplit{Current: current, Previous: previous}
	}

	prevDay := shiftOneMonthBack(from)
	for _, t := range transactions {
		d := dateOnly(t.Date)
		if d.Equal(from) {
			current = append(current, t)
		}
		if d.Equal(prevDay) {
			previous = append(previous, t)
		}
	}
	return PeriodSplit{Current: current, Previous: previous}
}

// PreviousRange returns the comparison window for r, or a zero Range when r
// has no From bound. Exposed for callers that need the previous period's
// bounds (labels, cache keys) rather than its transactions.
func PreviousRange(r Range) Range {
	if r.From == nil {
		return Range{}
	}
	prevFrom := shiftOneMonthBack(dateOnly(*r.From))
	prev := Range{From: &prevFrom}
	if r.To != nil {
		prevTo := shiftOneMonthBack(dateOnly(*r.To))
		prev.To = &prevTo
	}
	return prev
}

// shiftOneMonthBack moves a date back one calendar month, clamping the day to
// the target month's length. time.AddDate normalizes overflow (31 Mar minus
// one month becomes 2/3 Mar) instead of clamping, so the arithmetic is spelled
// out here.
func shiftOneMonthBack(t time.Time) time.Time {
	year, month := t.Year(), t.Month()
	if month == time.January {
		year--
		month = time.December
	} else {
		month--
	}

	day := t.Day()
	if last := daysIn(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// dateOnly truncates a timestamp to its calendar date.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
