package ledger

import (
	"fmt"
	"strings"
	"time"
)

// Window is a relative time filter over invoice dates.
type Window string

// Supported windows.
const (
	WindowAll       Window = "all"
	WindowHour      Window = "1h"
	WindowDay       Window = "24h"
	WindowWeek      Window = "7d"
	WindowFortnight Window = "15d"
	WindowMonth     Window = "30d"
	WindowHalfYear  Window = "6m"
	WindowYear      Window = "1y"
)

const day = 24 * time.Hour

var windowSpans = map[Window]time.Duration{
	WindowHour:      time.Hour,
	WindowDay:       day,
	WindowWeek:      7 * day,
	WindowFortnight: 15 * day,
	WindowMonth:     30 * day,
	WindowHalfYear:  180 * day,
	WindowYear:      365 * day,
}

// ParseWindow validates a window name. The empty string means all.
func ParseWindow(s string) (Window, error) {
	w := Window(strings.ToLower(strings.TrimSpace(s)))
	if w == "" || w == WindowAll {
		return WindowAll, nil
	}
	if _, ok := windowSpans[w]; ok {
		return w, nil
	}
	return "", fmt.Errorf("%w: unknown time window %q", ErrInvalidInvoice, s)
}

// FilterInvoices keeps invoices dated within the window ending at now and
// then those matching query. Dates in the future always pass the window;
// unparseable dates never pass a bounded one.
func FilterInvoices(invoices []Invoice, window Window, query string, now time.Time) []Invoice {
	span, bounded := windowSpans[window]
	q := strings.ToLower(strings.TrimSpace(query))

	out := make([]Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if bounded {
			date, ok := parseInvoiceDate(inv.Date)
			if !ok || now.Sub(date) > span {
				continue
			}
		}
		if q != "" && !matchesQuery(inv, q) {
			continue
		}
		out = append(out, inv)
	}
	return out
}

func matchesQuery(inv Invoice, q string) bool {
	return strings.Contains(strings.ToLower(inv.Customer.Name), q) ||
		strings.Contains(strings.ToLower(inv.Customer.Contact), q) ||
		strings.Contains(strings.ToLower(inv.InvoiceNumber), q) ||
		strings.Contains(strings.ToLower(inv.Date), q)
}

// parseInvoiceDate reads a calendar date as midnight UTC. Full timestamps
// are accepted too.
func parseInvoiceDate(s string) (time.Time, bool) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
