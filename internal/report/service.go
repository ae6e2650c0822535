package report

import (
	"context"
	"fmt"
	"time"

	"github.com/simonvc/shopledger/internal/shop"
	"github.com/simonvc/shopledger/internal/store"
	"go.uber.org/zap"
)

// Preset names a report period relative to today.
type Preset string

const (
	PresetDaily   Preset = "daily"
	PresetWeekly  Preset = "weekly"
	PresetMonthly Preset = "monthly"
	PresetCustom  Preset = "custom"
)

// PresetRange resolves a preset to start and end dates. Custom returns the
// given dates unchanged.
func PresetRange(p Preset, today time.Time, start, end string) (string, string, error) {
	t := shop.FormatDate(today)
	switch p {
	case "", PresetDaily:
		return t, t, nil
	case PresetWeekly:
		return shop.FormatDate(today.AddDate(0, 0, -7)), t, nil
	case PresetMonthly:
		return shop.FormatDate(today.AddDate(0, -1, 0)), t, nil
	case PresetCustom:
		return start, end, nil
	}
	return "", "", fmt.Errorf("%w: unknown report preset %q", shop.ErrInvalidInput, p)
}

// Service runs reports against the current store contents.
type Service struct {
	store  *store.Store
	now    func() time.Time
	logger *zap.Logger
}

func NewService(s *store.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: s, now: time.Now, logger: logger}
}

// WithClock replaces the service clock.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Today() string {
	return shop.FormatDate(s.now())
}

func (s *Service) Daily(ctx context.Context, date string) (*Summary, error) {
	if date == "" {
		date = s.Today()
	}
	if _, err := shop.ParseDate(date); err != nil {
		return nil, err
	}
	st, err := s.store.State(ctx)
	if err != nil {
		return nil, err
	}
	sum := DailySummary(st, date)
	return &sum, nil
}

func (s *Service) Range(ctx context.Context, start, end string) (*RangeReport, error) {
	st, err := s.store.State(ctx)
	if err != nil {
		return nil, err
	}
	r, err := Range(st, start, end)
	if err != nil {
		return nil, err
	}
	r.GeneratedAt = s.now().UTC()
	s.logger.Debug("range report built",
		zap.String("start", start),
		zap.String("end", end),
		zap.Int("sales", len(r.Sales)),
	)
	return r, nil
}

// Preset builds the range report for a named period.
func (s *Service) Preset(ctx context.Context, p Preset, start, end string) (*RangeReport, error) {
	from, to, err := PresetRange(p, s.now(), start, end)
	if err != nil {
		return nil, err
	}
	return s.Range(ctx, from, to)
}

func (s *Service) Inventory(ctx context.Context) (*Inventory, error) {
	st, err := s.store.State(ctx)
	if err != nil {
		return nil, err
	}
	inv := InventorySnapshot(st)
	return &inv, nil
}

func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	st, err := s.store.State(ctx)
	if err != nil {
		return nil, err
	}
	d := DashboardStats(st, s.Today())
	d.GeneratedAt = s.now().UTC()
	return d, nil
}
