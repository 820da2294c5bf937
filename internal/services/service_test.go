package services

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
	"fintrack/internal/storage/memory"
)

// fakeRates is a canned RateSource for tests.
type fakeRates struct {
	rates core.Rates
	err   error
	calls atomic.Int64
}

func (f *fakeRates) Fetch(context.Context) (core.Rates, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.rates, nil
}

var defaultRates = core.Rates{
	core.USD:  1,
	core.ILS:  3.4,
	core.GBP:  1.8,
	core.EURO: 0.7,
}

func newTestService(t *testing.T) (*FinanceService, *memory.Store, *fakeRates) {
	t.Helper()
	store := memory.New()
	src := &fakeRates{rates: defaultRates}
	return NewFinanceService(store, src, nil), store, src
}

func mustAddCost(t *testing.T, s *FinanceService, sum string, cur core.Currency, category string, typ core.CostType, date core.Date) core.Cost {
	t.Helper()
	c, err := s.AddCost(context.Background(), core.Cost{
		Sum:      decimal.RequireFromString(sum),
		Currency: cur,
		Category: category,
		Type:     typ,
		Date:     date,
	})
	if err != nil {
		t.Fatalf("add cost: %v", err)
	}
	return c
}
