package payrollhandler

import (
	"time"

	"github.com/go-chi/chi/v5"

	"hrpay/internal/app/payrun"
	"hrpay/internal/domain/auth"
	"hrpay/internal/domain/payroll"
	"hrpay/internal/platform/cache"
	"hrpay/internal/platform/jobs"
	"hrpay/internal/transport/http/middleware"
	"hrpay/internal/transport/http/shared"
)

type Handler struct {
	Service        *payroll.Service
	Runner         *payrun.Runner
	Jobs           *jobs.Service
	Changes        *shared.ChangeLog
	Auth           middleware.Authenticator
	Idempotency    cache.Cache
	IdempotencyTTL time.Duration
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	runPayroll := middleware.RequirePermission(h.Auth, auth.PermPayrollRun)

	r.Route("/rewards", func(r chi.Router) {
		r.Get("/", h.handleListRewards)
		r.Post("/", h.handleCreateReward)
		r.Put("/", h.handleUpdateReward)
		r.Delete("/", h.handleDeleteReward)
		r.Put("/{rewardID}", h.handleUpdateReward)
		r.Delete("/{rewardID}", h.handleDeleteReward)
	})
	r.Route("/penalties", func(r chi.Router) {
		r.Get("/", h.handleListPenalties)
		r.Post("/", h.handleCreatePenalty)
		r.Put("/", h.handleUpdatePenalty)
		r.Delete("/", h.handleDeletePenalty)
		r.Put("/{penaltyID}", h.handleUpdatePenalty)
		r.Delete("/{penaltyID}", h.handleDeletePenalty)
	})
	r.Route("/payrolls", func(r chi.Router) {
		r.Get("/", h.handleListPayrolls)
		r.With(runPayroll).Post("/", h.handleCalculate)
		r.With(runPayroll).Post("/calculate", h.handleCalculate)
		r.With(runPayroll).Post("/insurance-tax", h.handleInsuranceTax)
		r.Delete("/", h.handleDeletePayroll)
		r.Get("/{payrollID}", h.handleGetPayroll)
		r.Get("/{payrollID}/payslip", h.handlePayslip)
		r.Delete("/{payrollID}", h.handleDeletePayroll)
	})
	r.Route("/payments", func(r chi.Router) {
		r.Get("/", h.handleListPayments)
		r.With(runPayroll, middleware.Idempotency(h.Idempotency, h.IdempotencyTTL)).Post("/", h.handleCreatePayment)
		r.Get("/{paymentID}", h.handleGetPayment)
	})
}
