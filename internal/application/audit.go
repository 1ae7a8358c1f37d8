package application

import (
	"fmt"
	"time"

	"github.com/komunitech/komunitech/internal/domain/audit"
	"github.com/komunitech/komunitech/internal/repository"
	"github.com/rs/zerolog"
)

type AuditService struct {
	Repos *repository.Repos
	log   zerolog.Logger
	now   func() time.Time
}

func NewAuditService(repos *repository.Repos, log zerolog.Logger) *AuditService {
	return &AuditService{
		Repos: repos,
		log:   log.With().Str("service", "audit").Logger(),
		now:   time.Now,
	}
}

func (s *AuditService) QueryAuditLogs(params repository.AuditQueryParams) ([]audit.AuditLog, int64, error) {
	return s.Repos.Audit.GetAuditLogs(params)
}

// PurgeOld deletes audit rows older than retentionDays.
func (s *AuditService) PurgeOld(retentionDays int) (int64, error) {
	if retentionDays < 0 {
		return 0, fmt.Errorf("%w: retention days must not be negative", ErrInvalidInput)
	}
	n, err := s.Repos.Audit.DeleteOldAuditLogs(s.now().AddDate(0, 0, -retentionDays))
	if err != nil {
		return 0, err
	}
	s.log.Info().Int("retention_days", retentionDays).Int64("deleted", n).Msg("old audit logs purged")
	return n, nil
}
