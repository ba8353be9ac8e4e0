package service

import (
	"context"
	"fmt"

	"github.com/makerhub/workshop-admin/internal/core/ports"
)

// AuditService appends one human-readable message per successful
// state-changing action. Callers must never fail a request because an audit
// write failed; the returned error is for logging and metrics only.
type AuditService struct {
	logs ports.LogRepository
}

func NewAuditService(logs ports.LogRepository) *AuditService {
	return &AuditService{logs: logs}
}

// Record appends "<action> by <actor> from <source>".
func (s *AuditService) Record(ctx context.Context, action, actor, source string) error {
	if actor == "" {
		actor = "unknown"
	}
	msg := fmt.Sprintf("%s by %s from %s", action, actor, source)
	if err := s.logs.Append(ctx, msg); err != nil {
		return fmt.Errorf("audit write: %w", err)
	}
	return nil
}
