package application

import (
	"time"

	"github.com/komunitech/komunitech/internal/domain/stats"
	"github.com/komunitech/komunitech/internal/repository"
	"github.com/rs/zerolog"
)

const (
	DefaultStatsDays = 30
	MaxStatsDays     = 365
)

type StatsService struct {
	Repos *repository.Repos
	log   zerolog.Logger
	now   func() time.Time
}

func NewStatsService(repos *repository.Repos, log zerolog.Logger) *StatsService {
	return &StatsService{
		Repos: repos,
		log:   log.With().Str("service", "stats").Logger(),
		now:   time.Now,
	}
}

// Dashboard returns platform totals plus one entry per UTC day for the last
// days days, oldest first and ending today. days <= 0 falls back to
// DefaultStatsDays and is capped at MaxStatsDays.
func (s *StatsService) Dashboard(days int) (*stats.Dashboard, error) {
	if days <= 0 {
		days = DefaultStatsDays
	}
	if days > MaxStatsDays {
		days = MaxStatsDays
	}

	totals, err := s.Repos.Stats.Totals()
	if err != nil {
		return nil, err
	}
	byStatus, err := s.Repos.Stats.RequirementsByStatus()
	if err != nil {
		return nil, err
	}

	today := s.now().UTC().Truncate(24 * time.Hour)
	start := today.AddDate(0, 0, -(days - 1))
	created, err := s.Repos.Stats.CreatedSince(start)
	if err != nil {
		return nil, err
	}

	daily := make([]stats.DailyCount, days)
	index := make(map[string]int, days)
	for i := range daily {
		day := start.AddDate(0, 0, i).Format(time.DateOnly)
		daily[i].Day = day
		index[day] = i
	}
	bucket := func(times []time.Time, field func(*stats.DailyCount) *int64) {
		for _, t := range times {
			if i, ok := index[t.UTC().Format(time.DateOnly)]; ok {
				*field(&daily[i])++
			}
		}
	}
	bucket(created.Users, func(d *stats.DailyCount) *int64 { return &d.Users })
	bucket(created.Requirements, func(d *stats.DailyCount) *int64 { return &d.Requirements })
	bucket(created.Comments, func(d *stats.DailyCount) *int64 { return &d.Comments })
	bucket(created.Supports, func(d *stats.DailyCount) *int64 { return &d.Supports })

	return &stats.Dashboard{
		Totals:               totals,
		RequirementsByStatus: byStatus,
		Daily:                daily,
	}, nil
}

func (s *StatsService) UserStats(userID uint) (*stats.UserStats, error) {
	if _, err := s.Repos.User.GetUserByID(userID); err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	out, err := s.Repos.Stats.UserStats(userID)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
