package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/mc-theer/ticketd/internal/domain"
)

// ListTickets возвращает список тикетов с фильтрами и пагинацией.
// GET /api/v1/tickets?status=&urgency=&search=&page=&per_page=
func (h *Handler) ListTickets(w http.ResponseWriter, r *http.Request) {
	filter, ok := parseTicketFilter(w, r)
	if !ok {
		return
	}

	tickets, total, err := h.ticketRepo.List(r.Context(), filter)
	if HandleRepoError(w, h.logger, err, "") {
		return
	}

	result := make([]TicketResponse, len(tickets))
	for i, t := range tickets {
		result[i] = TicketFromDomain(t)
	}

	List(w, result, total)
}

// CreateTicket создаёт новый тикет и ставит triage-задание в очередь.
// POST /api/v1/tickets
func (h *Handler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	var req CreateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}

	if req.Title == "" {
		BadRequest(w, "title is required")
		return
	}
	if req.Content == "" {
		BadRequest(w, "content is required")
		return
	}

	ticket := &domain.Ticket{
		Title:      req.Title,
		Content:    req.Content,
		Status:     domain.StatusOpen,
		CategoryID: req.CategoryID,
	}

	if err := h.ticketRepo.Create(r.Context(), ticket); err != nil {
		InternalError(w, h.logger, err)
		return
	}

	// Публикуем ПОСЛЕ коммита строки: triage happens-after creation.
	// Недоступность очереди не фатальна — polling fallback воркера
	// подхватит застрявший open-тикет.
	if h.publisher == nil {
		h.logger.Warn("publisher not available, ticket will be picked up by poll",
			"ticket_id", ticket.ID,
		)
	} else if err := h.publisher.PublishTicketTriage(r.Context(), ticket.ID); err != nil {
		h.logger.Warn("failed to publish triage job, ticket will be picked up by poll",
			"ticket_id", ticket.ID,
			"error", err,
		)
	}

	Created(w, TicketFromDomain(*ticket))
}

// GetTicket возвращает тикет по UUID.
// GET /api/v1/tickets/{id}
func (h *Handler) GetTicket(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid ticket id")
		return
	}

	ticket, err := h.ticketRepo.GetByUUID(r.Context(), id)
	if HandleRepoError(w, h.logger, err, "ticket not found") {
		return
	}

	Success(w, TicketFromDomain(*ticket))
}

// ResolveTicket переводит тикет в статус resolved.
// POST /api/v1/tickets/{id}/resolve
func (h *Handler) ResolveTicket(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid ticket id")
		return
	}

	var req ResolveTicketRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			BadRequest(w, "invalid request body")
			return
		}
	}

	ticket, err := h.ticketRepo.Resolve(r.Context(), id, req.Draft)
	if HandleRepoError(w, h.logger, err, "ticket not found") {
		return
	}

	Success(w, TicketFromDomain(*ticket))
}

// DeleteTicket удаляет тикет.
// DELETE /api/v1/tickets/{id}
func (h *Handler) DeleteTicket(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid ticket id")
		return
	}

	if err := h.ticketRepo.Delete(r.Context(), id); err != nil {
		if HandleRepoError(w, h.logger, err, "ticket not found") {
			return
		}
		InternalError(w, h.logger, err)
		return
	}

	NoContent(w)
}

// AdminListTickets возвращает список тикетов в административном представлении.
// GET /api/v1/admin/tickets?status=&urgency=&search=&page=&per_page=
func (h *Handler) AdminListTickets(w http.ResponseWriter, r *http.Request) {
	filter, ok := parseTicketFilter(w, r)
	if !ok {
		return
	}

	tickets, total, err := h.ticketRepo.List(r.Context(), filter)
	if HandleRepoError(w, h.logger, err, "") {
		return
	}

	result := make([]AdminTicketResponse, len(tickets))
	for i, t := range tickets {
		result[i] = AdminTicketFromDomain(t)
	}

	List(w, result, total)
}

// AdminGetTicket возвращает тикет в административном представлении.
// GET /api/v1/admin/tickets/{id}
func (h *Handler) AdminGetTicket(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid ticket id")
		return
	}

	ticket, err := h.ticketRepo.GetByUUID(r.Context(), id)
	if HandleRepoError(w, h.logger, err, "ticket not found") {
		return
	}

	Success(w, AdminTicketFromDomain(*ticket))
}

// parseTicketFilter читает фильтры списка из query-параметров.
// При некорректном значении пишет 400 и возвращает ok=false.
func parseTicketFilter(w http.ResponseWriter, r *http.Request) (domain.TicketFilter, bool) {
	q := r.URL.Query()
	filter := domain.TicketFilter{
		Search: q.Get("search"),
	}

	if s := q.Get("status"); s != "" {
		status := domain.TicketStatus(s)
		if !status.Valid() {
			BadRequest(w, "invalid status filter")
			return filter, false
		}
		filter.Status = status
	}

	if u := q.Get("urgency"); u != "" {
		filter.Urgency = domain.ParseUrgency(u)
	}

	if p := q.Get("page"); p != "" {
		page, err := strconv.Atoi(p)
		if err != nil || page < 1 {
			BadRequest(w, "invalid page")
			return filter, false
		}
		filter.Page = page
	}

	if pp := q.Get("per_page"); pp != "" {
		perPage, err := strconv.Atoi(pp)
		if err != nil || perPage < 1 {
			BadRequest(w, "invalid per_page")
			return filter, false
		}
		filter.PerPage = perPage
	}

	return filter, true
}
