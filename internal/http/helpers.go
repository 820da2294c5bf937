package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"fintrack/internal/core"
)

func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid id", core.ErrValidation)
	}
	return id, nil
}

// parseYearMonth extracts year and month from query parameters.
// Returns current year/month as defaults if not provided or invalid.
func parseYearMonth(r *http.Request) (year, month int) {
	now := time.Now()
	year = now.Year()
	month = int(now.Month())

	if v := strings.TrimSpace(r.URL.Query().Get("year")); v != "" {
		if y, err := strconv.Atoi(v); err == nil {
			year = y
		}
	}
	if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" {
		if m, err := strconv.Atoi(v); err == nil {
			month = m
		}
	}

	return year, month
}

// parseCurrency reads the target currency parameter, defaulting to USD.
func parseCurrency(r *http.Request) (core.Currency, error) {
	v := strings.TrimSpace(r.URL.Query().Get("currency"))
	if v == "" {
		return core.USD, nil
	}
	c := core.Currency(strings.ToUpper(v))
	if !c.Valid() {
		return "", fmt.Errorf("%w: unsupported currency %q", core.ErrValidation, v)
	}
	return c, nil
}

// parseDate parses a date string in YYYY-MM-DD format.
func parseDate(dateStr string) (core.Date, error) {
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return core.Date{}, fmt.Errorf("%w: invalid date %q", core.ErrValidation, dateStr)
	}
	return core.NewDate(t.Year(), int(t.Month()), t.Day()), nil
}
