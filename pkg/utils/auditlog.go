package utils

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/komunitech/komunitech/internal/domain/audit"
	"github.com/komunitech/komunitech/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

const RequestIDHeader = "X-Request-ID"

// AuditEntry describes one audited action. Before and After are
// JSON-encoded snapshots; either may be nil.
type AuditEntry struct {
	ActorID     uint
	Action      string
	EntityType  string
	EntityID    uint
	Before      any
	After       any
	Description string
}

// LogAudit appends an audit row through repo. Pass the transaction-bound
// repo so the row commits or rolls back with the action it records. c may
// be nil for actions that do not originate from a request.
var LogAudit = func(c *gin.Context, repo repository.AuditRepo, e AuditEntry) error {
	row := &audit.AuditLog{
		Action:      e.Action,
		EntityType:  e.EntityType,
		OldValue:    snapshot(e.Before),
		NewValue:    snapshot(e.After),
		Description: e.Description,
	}
	if e.ActorID != 0 {
		actor := e.ActorID
		row.UserID = &actor
	}
	if e.EntityID != 0 {
		id := e.EntityID
		row.EntityID = &id
	}
	if c != nil && c.Request != nil {
		row.IPAddress = c.ClientIP()
		row.UserAgent = truncate(c.GetHeader("User-Agent"), 200)
		row.RequestID = c.GetString("request_id")
	}

	if err := repo.CreateAuditLog(row); err != nil {
		log.Error().Err(err).Str("action", e.Action).Msg("write audit log")
		return err
	}
	return nil
}

func snapshot(v any) datatypes.JSON {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		log.Warn().Err(err).Msg("audit snapshot marshal")
		return nil
	}
	return datatypes.JSON(b)
}

// truncate cuts s to at most n bytes of valid UTF-8 without splitting a rune.
func truncate(s string, n int) string {
	s = strings.ToValidUTF8(s, "")
	if len(s) <= n {
		return s
	}
	s = s[:n]
	for len(s) > 0 && !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return s
}
