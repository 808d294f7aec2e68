package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/seniorcare/admin-api/internal/service/audit"
	"github.com/seniorcare/admin-api/pkg/logger"
)

// AuditCleanupWorker enforces the audit retention window on a fixed
// interval.
type AuditCleanupWorker struct {
	auditSvc        *audit.Service
	retentionDays   int
	cleanupInterval time.Duration
	logger          *logger.Logger
}

func NewAuditCleanupWorker(auditSvc *audit.Service, retentionDays int, cleanupInterval time.Duration, logger *logger.Logger) *AuditCleanupWorker {
	return &AuditCleanupWorker{
		auditSvc:        auditSvc,
		retentionDays:   retentionDays,
		cleanupInterval: cleanupInterval,
		logger:          logger,
	}
}

func (w *AuditCleanupWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.cleanup(ctx); err != nil {
				w.logger.Error(err, "audit cleanup failed")
			}
		}
	}
}

func (w *AuditCleanupWorker) cleanup(ctx context.Context) error {
	cutoff := time.Now().AddDate(0, 0, -w.retentionDays)

	rows, err := w.auditSvc.Cleanup(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to clean up audit logs: %w", err)
	}

	w.logger.Info("audit logs cleaned up", "rows", rows, "cutoff", cutoff)
	return nil
}
