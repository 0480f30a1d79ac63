package corehandler

import (
	"github.com/go-chi/chi/v5"

	"hrpay/internal/domain/core"
	"hrpay/internal/transport/http/shared"
)

type Handler struct {
	Service *core.Service
	Changes *shared.ChangeLog
}

func NewHandler(service *core.Service, changes *shared.ChangeLog) *Handler {
	return &Handler{Service: service, Changes: changes}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/departments", func(r chi.Router) {
		r.Get("/", h.handleListDepartments)
		r.Post("/", h.handleCreateDepartment)
		r.Put("/", h.handleUpdateDepartment)
		r.Delete("/", h.handleDeleteDepartment)
		r.Get("/{deptID}", h.handleGetDepartment)
		r.Put("/{deptID}", h.handleUpdateDepartment)
		r.Delete("/{deptID}", h.handleDeleteDepartment)
	})
	r.Route("/positions", func(r chi.Router) {
		r.Get("/", h.handleListPositions)
		r.Post("/", h.handleCreatePosition)
		r.Put("/", h.handleUpdatePosition)
		r.Delete("/", h.handleDeletePosition)
		r.Get("/{positionID}", h.handleGetPosition)
		r.Put("/{positionID}", h.handleUpdatePosition)
		r.Delete("/{positionID}", h.handleDeletePosition)
	})
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleListEmployees)
		r.Post("/", h.handleCreateEmployee)
		r.Put("/", h.handleUpdateEmployee)
		r.Delete("/", h.handleDeleteEmployee)
		r.Route("/dependents", func(r chi.Router) {
			r.Get("/", h.handleListDependents)
			r.Post("/", h.handleCreateDependent)
			r.Put("/", h.handleUpdateDependent)
			r.Delete("/", h.handleDeleteDependent)
			r.Put("/{dependentID}", h.handleUpdateDependent)
			r.Delete("/{dependentID}", h.handleDeleteDependent)
		})
		r.Get("/{empID}", h.handleGetEmployee)
		r.Put("/{empID}", h.handleUpdateEmployee)
		r.Delete("/{empID}", h.handleDeleteEmployee)
	})
	r.Route("/contracts", func(r chi.Router) {
		r.Get("/", h.handleListContracts)
		r.Post("/", h.handleCreateContract)
		r.Put("/", h.handleUpdateContract)
		r.Delete("/", h.handleDeleteContract)
		r.Get("/{contractID}", h.handleGetContract)
		r.Put("/{contractID}", h.handleUpdateContract)
		r.Delete("/{contractID}", h.handleDeleteContract)
	})
	r.Route("/salary-factors", func(r chi.Router) {
		r.Get("/", h.handleListSalaryFactors)
		r.Post("/", h.handleCreateSalaryFactor)
	})
	r.Route("/allowances", func(r chi.Router) {
		r.Get("/", h.handleListAllowances)
		r.Post("/", h.handleCreateAllowance)
		r.Put("/", h.handleUpdateAllowance)
		r.Delete("/", h.handleDeleteAllowance)
		r.Put("/{allowanceID}", h.handleUpdateAllowance)
		r.Delete("/{allowanceID}", h.handleDeleteAllowance)
	})
}
