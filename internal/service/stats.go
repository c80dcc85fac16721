package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/usmcsd/mycsd-api/internal/domain"
)

type StatsEventRepository interface {
	CountByStatus(ctx context.Context, status domain.EventStatus) (int, error)
	CountByCategory(ctx context.Context) (map[string]int, error)
	ListCreatedSince(ctx context.Context, cutoff time.Time) ([]domain.Event, error)
}

type StatsPointsRepository interface {
	TotalAwarded(ctx context.Context) (int, error)
	ListCreatedSince(ctx context.Context, cutoff time.Time) ([]domain.PointCredit, error)
}

type StatsProfileRepository interface {
	CountStudents(ctx context.Context) (int, error)
}

type StatsService struct {
	events   StatsEventRepository
	points   StatsPointsRepository
	profiles StatsProfileRepository
	now      func() time.Time
}

func NewStatsService(events StatsEventRepository, points StatsPointsRepository, profiles StatsProfileRepository) *StatsService {
	return &StatsService{
		events:   events,
		points:   points,
		profiles: profiles,
		now:      time.Now,
	}
}

func (s *StatsService) AdminStats(ctx context.Context, caller domain.User) (domain.AdminStats, error) {
	if caller.Role != domain.RoleAdmin {
		return domain.AdminStats{}, ErrNotAuthorized
	}

	pending, err := s.events.CountByStatus(ctx, domain.EventPending)
	if err != nil {
		return domain.AdminStats{}, fmt.Errorf("s.events.CountByStatus -> %w", err)
	}

	total, err := s.events.CountByStatus(ctx, "")
	if err != nil {
		return domain.AdminStats{}, fmt.Errorf("s.events.CountByStatus -> %w", err)
	}

	students, err := s.profiles.CountStudents(ctx)
	if err != nil {
		return domain.AdminStats{}, fmt.Errorf("s.profiles.CountStudents -> %w", err)
	}

	awarded, err := s.points.TotalAwarded(ctx)
	if err != nil {
		return domain.AdminStats{}, fmt.Errorf("s.points.TotalAwarded -> %w", err)
	}

	return domain.AdminStats{
		PendingEvents:      pending,
		TotalEvents:        total,
		ActiveUsers:        students,
		TotalPointsAwarded: awarded,
	}, nil
}

// MonthlyTrend buckets events and awarded points into the last `window`
// calendar months. Months with no activity are present with zeros.
func (s *StatsService) MonthlyTrend(ctx context.Context, caller domain.User, window int) ([]domain.MonthlyTrendPoint, error) {
	if caller.Role != domain.RoleAdmin {
		return nil, ErrNotAuthorized
	}
	if window <= 0 {
		window = 6
	}

	now := s.now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).
		AddDate(0, -(window - 1), 0)

	buckets := make(map[string]*domain.MonthlyTrendPoint, window)
	months := make([]string, 0, window)
	for i := 0; i < window; i++ {
		month := first.AddDate(0, i, 0).Format("2006-01")
		buckets[month] = &domain.MonthlyTrendPoint{Month: month}
		months = append(months, month)
	}

	events, err := s.events.ListCreatedSince(ctx, first)
	if err != nil {
		return nil, fmt.Errorf("s.events.ListCreatedSince -> %w", err)
	}
	for _, event := range events {
		if bucket, ok := buckets[event.CreatedAt.Format("2006-01")]; ok {
			bucket.Events++
		}
	}

	credits, err := s.points.ListCreatedSince(ctx, first)
	if err != nil {
		return nil, fmt.Errorf("s.points.ListCreatedSince -> %w", err)
	}
	for _, credit := range credits {
		if bucket, ok := buckets[credit.CreatedAt.Format("2006-01")]; ok {
			bucket.Points += credit.Amount
		}
	}

	trend := make([]domain.MonthlyTrendPoint, len(months))
	for i, month := range months {
		trend[i] = *buckets[month]
	}

	return trend, nil
}

// EventTypeDistribution counts events per category, folding empty
// categories into the fixed uncategorised bucket.
func (s *StatsService) EventTypeDistribution(ctx context.Context, caller domain.User) ([]domain.CategoryCount, error) {
	if caller.Role != domain.RoleAdmin {
		return nil, ErrNotAuthorized
	}

	counts, err := s.events.CountByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.events.CountByCategory -> %w", err)
	}

	merged := make(map[string]int, len(counts))
	for category, count := range counts {
		if category == "" {
			category = domain.UncategorisedBucket
		}
		merged[category] += count
	}

	distribution := make([]domain.CategoryCount, 0, len(merged))
	for category, count := range merged {
		distribution = append(distribution, domain.CategoryCount{Category: category, Count: count})
	}
	sort.Slice(distribution, func(i, j int) bool {
		return distribution[i].Category < distribution[j].Category
	})

	return distribution, nil
}
