package report

import (
	"fmt"

	"github.com/cleared-dev/runway/internal/model"
)

// Filter selects which days of a history appear in a report.
type Filter string

const (
	FilterAll        Filter = "all"
	FilterMonthEnd   Filter = "month-end"
	FilterMonthStart Filter = "month-start"
)

// ParseFilter validates a filter name.
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(s); f {
	case FilterAll, FilterMonthEnd, FilterMonthStart:
		return f, nil
	default:
		return "", fmt.Errorf("unknown filter %q (want %s, %s or %s)", s, FilterAll, FilterMonthEnd, FilterMonthStart)
	}
}

// Apply returns the entries of h selected by f.
func (f Filter) Apply(h model.History) model.History {
	switch f {
	case FilterMonthEnd:
		return MonthEnds(h)
	case FilterMonthStart:
		return MonthStarts(h)
	default:
		return h
	}
}

// MonthEnds returns the entries that fall on the last day of a month.
func MonthEnds(h model.History) model.History {
	return keep(h, func(e model.Entry) bool {
		return e.Date.AddDate(0, 0, 1).Day() == 1
	})
}

// MonthStarts returns the entries that fall on the first day of a month.
func MonthStarts(h model.History) model.History {
	return keep(h, func(e model.Entry) bool {
		return e.Date.Day() == 1
	})
}

func keep(h model.History, pred func(model.Entry) bool) model.History {
	var out model.History
	for _, e := range h {
		if pred(e) {
			out = append(out, e)
		}
	}
	return out
}
