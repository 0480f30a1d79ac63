// Package payrun runs a monthly payroll calculation with its side effects:
// report invalidation, audit and metrics. HTTP handlers, the scheduler and
// the CLI all go through it.
package payrun

import (
	"context"
	"time"

	"hrpay/internal/domain/audit"
	"hrpay/internal/domain/payroll"
	"hrpay/internal/platform/jobs"
	"hrpay/internal/platform/logger"
	"hrpay/internal/platform/metrics"
	"hrpay/internal/requestctx"
	"hrpay/internal/transport/http/shared"
)

type Runner struct {
	Payroll *payroll.Service
	Changes *shared.ChangeLog
	Metrics *metrics.Collector
}

func (r *Runner) Run(ctx context.Context, req payroll.CalculationRequest) (payroll.CalculationResult, error) {
	result, err := r.Payroll.Calculate(ctx, req)
	if result.Calculated > 0 || result.Skipped > 0 {
		r.Metrics.PayrollCalculated(result.Calculated, result.Skipped)
	}
	if result.Calculated > 0 {
		r.Changes.Changed(ctx, audit.ActionCalculate, "payroll", periodID(req), map[string]any{
			"monthNum":   req.MonthNum,
			"yearNum":    req.YearNum,
			"empId":      req.EmpID,
			"calculated": result.Calculated,
			"skipped":    result.Skipped,
		})
	}
	if err != nil {
		return result, err
	}
	logger.From(ctx).Info().
		Int("monthNum", req.MonthNum).
		Int("yearNum", req.YearNum).
		Int("calculated", result.Calculated).
		Int("skipped", result.Skipped).
		Msg("payroll calculated")
	return result, nil
}

// Job wraps Run for the job queue. The worker context does not carry the
// caller's identity, so actor and request id are copied from ctx.
func (r *Runner) Job(ctx context.Context, req payroll.CalculationRequest) jobs.RunFunc {
	actor := requestctx.GetActor(ctx)
	reqID := requestctx.GetRequestID(ctx)
	return func(jobCtx context.Context) (any, error) {
		jobCtx = requestctx.WithActor(jobCtx, actor)
		if reqID != "" {
			jobCtx = requestctx.WithRequestID(logger.WithRequest(jobCtx, reqID), reqID)
		}
		return r.Run(jobCtx, req)
	}
}

// CurrentMonth recalculates the running month, for the scheduler.
func (r *Runner) CurrentMonth() jobs.RunFunc {
	return func(ctx context.Context) (any, error) {
		now := time.Now()
		ctx = requestctx.WithActor(ctx, "scheduler")
		return r.Run(ctx, payroll.CalculationRequest{MonthNum: int(now.Month()), YearNum: now.Year()})
	}
}

func periodID(req payroll.CalculationRequest) string {
	id := time.Date(req.YearNum, time.Month(req.MonthNum), 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
	if req.EmpID != "" {
		id += "/" + req.EmpID
	}
	return id
}
