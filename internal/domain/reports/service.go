package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"hrpay/internal/platform/cache"
	"hrpay/internal/platform/logger"
)

const generationKey = "reports:generation"

type Service struct {
	store StoreAPI
	cache cache.Cache
	ttl   time.Duration
}

// NewService caches JSON reports for ttl when c is non-nil and ttl is
// positive.
func NewService(store StoreAPI, c cache.Cache, ttl time.Duration) *Service {
	return &Service{store: store, cache: c, ttl: ttl}
}

func (s *Service) Generate(ctx context.Context, t Type, f Filter) (Report, error) {
	switch t {
	case TypeSalary:
		rows, err := s.store.SalaryReport(ctx, f)
		if err != nil {
			return Report{}, err
		}
		return newReport(t, salaryHeaders, rows), nil
	case TypeAttendance:
		rows, err := s.store.AttendanceReport(ctx, f)
		if err != nil {
			return Report{}, err
		}
		return newReport(t, attendanceHeaders, rows), nil
	case TypePayment:
		rows, err := s.store.PaymentReport(ctx, f)
		if err != nil {
			return Report{}, err
		}
		return newReport(t, paymentHeaders, rows), nil
	}
	return Report{}, ErrInvalidType
}

// JSON returns the encoded report rows, served from cache when a report for
// the same filter was built since the last Invalidate.
func (s *Service) JSON(ctx context.Context, t Type, f Filter) ([]byte, error) {
	key, cached := s.cacheKey(ctx, t, f)
	if cached {
		if payload, ok, err := s.cache.Get(ctx, key); err == nil && ok {
			return payload, nil
		} else if err != nil {
			logger.Warn(ctx, err, "report cache read failed")
		}
	}

	report, err := s.Generate(ctx, t, f)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(report.Rows)
	if err != nil {
		return nil, err
	}
	if cached {
		if err := s.cache.Set(ctx, key, payload, s.ttl); err != nil {
			logger.Warn(ctx, err, "report cache write failed")
		}
	}
	return payload, nil
}

// Invalidate retires every cached report.
func (s *Service) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if _, err := s.cache.Incr(ctx, generationKey); err != nil {
		logger.Warn(ctx, err, "report cache invalidation failed")
	}
}

func (s *Service) cacheKey(ctx context.Context, t Type, f Filter) (string, bool) {
	if s.cache == nil || s.ttl <= 0 {
		return "", false
	}
	gen := int64(0)
	raw, ok, err := s.cache.Get(ctx, generationKey)
	if err != nil {
		logger.Warn(ctx, err, "report cache generation read failed")
		return "", false
	}
	if ok {
		if gen, err = strconv.ParseInt(string(raw), 10, 64); err != nil {
			return "", false
		}
	}
	return fmt.Sprintf("reports:%d:%s:%s", gen, t, f.key()), true
}
