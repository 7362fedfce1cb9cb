package api

import (
	"net/http"
)

// RegisterRoutes регистрирует все маршруты API.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Middleware chain
	chain := Chain(
		Recovery(h.logger),
		Logging(h.logger),
	)

	// Tickets
	mux.Handle("GET /api/v1/tickets", chain(http.HandlerFunc(h.ListTickets)))
	mux.Handle("POST /api/v1/tickets", chain(http.HandlerFunc(h.CreateTicket)))
	mux.Handle("GET /api/v1/tickets/{id}", chain(http.HandlerFunc(h.GetTicket)))
	mux.Handle("POST /api/v1/tickets/{id}/resolve", chain(http.HandlerFunc(h.ResolveTicket)))
	mux.Handle("DELETE /api/v1/tickets/{id}", chain(http.HandlerFunc(h.DeleteTicket)))

	// Admin view (представление с производным флагом triage-сбоя)
	mux.Handle("GET /api/v1/admin/tickets", chain(http.HandlerFunc(h.AdminListTickets)))
	mux.Handle("GET /api/v1/admin/tickets/{id}", chain(http.HandlerFunc(h.AdminGetTicket)))

	// Categories
	mux.Handle("GET /api/v1/categories", chain(http.HandlerFunc(h.ListCategories)))
	mux.Handle("POST /api/v1/categories", chain(http.HandlerFunc(h.CreateCategory)))
}
