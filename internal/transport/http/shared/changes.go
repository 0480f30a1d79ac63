package shared

import (
	"context"

	"hrpay/internal/domain/audit"
	"hrpay/internal/domain/reports"
	"hrpay/internal/platform/logger"
	"hrpay/internal/requestctx"
)

// ChangeLog is called after every successful write: it records an audit
// event and retires cached reports. Audit failures are logged, never returned.
type ChangeLog struct {
	Audit   audit.Recorder
	Reports *reports.Service
}

func (c *ChangeLog) Changed(ctx context.Context, action, entityType, entityID string, details any) {
	if c == nil {
		return
	}
	if c.Reports != nil {
		c.Reports.Invalidate(ctx)
	}
	if c.Audit == nil {
		return
	}
	evt := audit.Event{
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Actor:      requestctx.GetActor(ctx),
		RequestID:  requestctx.GetRequestID(ctx),
		Details:    audit.Details(details),
	}
	if err := c.Audit.Record(ctx, evt); err != nil {
		logger.Warn(ctx, err, "audit "+entityType+"."+action+" failed")
	}
}
