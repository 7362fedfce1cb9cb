package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// --- Response types (дублируются из api/dto.go, CLI не импортирует internal/api) ---

// TicketResponse — тикет из API.
type TicketResponse struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Content        string `json:"content,omitempty"`
	Status         string `json:"status"`
	CategoryID     *int64 `json:"category_id,omitempty"`
	SentimentScore *int   `json:"sentiment_score,omitempty"`
	Urgency        string `json:"urgency,omitempty"`
	ResolvedAt     string `json:"resolved_at,omitempty"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

// AdminTicketResponse — тикет из административного API.
type AdminTicketResponse struct {
	TicketResponse
	AIDraft        string         `json:"ai_draft,omitempty"`
	AITriageFailed bool           `json:"is_ai_triage_failed"`
	Audit          map[string]any `json:"ai_metadata"`
}

// CategoryResponse — категория из API.
type CategoryResponse struct {
	ID          int64  `json:"id"`
	UUID        string `json:"uuid"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// --- Request types ---

// CreateTicketRequest — создание тикета.
type CreateTicketRequest struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	CategoryID *int64 `json:"category_id,omitempty"`
}

// ResolveTicketRequest — решение тикета.
type ResolveTicketRequest struct {
	Draft *string `json:"draft,omitempty"`
}

// CreateCategoryRequest — создание категории.
type CreateCategoryRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// ListTicketsOpts — параметры фильтрации тикетов.
type ListTicketsOpts struct {
	Status  string
	Urgency string
	Search  string
	Page    int
	PerPage int
}

func (o ListTicketsOpts) values() url.Values {
	params := url.Values{}
	if o.Status != "" {
		params.Set("status", o.Status)
	}
	if o.Urgency != "" {
		params.Set("urgency", o.Urgency)
	}
	if o.Search != "" {
		params.Set("search", o.Search)
	}
	if o.Page > 0 {
		params.Set("page", strconv.Itoa(o.Page))
	}
	if o.PerPage > 0 {
		params.Set("per_page", strconv.Itoa(o.PerPage))
	}
	return params
}

// --- API response wrappers ---

type dataResponse struct {
	Data json.RawMessage `json:"data"`
}

type listResponse struct {
	Data  json.RawMessage `json:"data"`
	Total int             `json:"total"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// --- Client ---

// Client — HTTP-клиент для ticketd API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient создаёт клиент для API.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// --- Tickets ---

// ListTickets возвращает тикеты с фильтрацией.
func (c *Client) ListTickets(opts ListTicketsOpts) ([]TicketResponse, error) {
	var tickets []TicketResponse
	err := c.list("/api/v1/tickets", opts.values(), &tickets)
	return tickets, err
}

// CreateTicket создаёт новый тикет.
func (c *Client) CreateTicket(req CreateTicketRequest) (*TicketResponse, error) {
	var ticket TicketResponse
	err := c.post("/api/v1/tickets", req, &ticket)
	return &ticket, err
}

// GetTicket возвращает тикет по ID.
func (c *Client) GetTicket(id string) (*TicketResponse, error) {
	var ticket TicketResponse
	err := c.get("/api/v1/tickets/"+id, &ticket)
	return &ticket, err
}

// ResolveTicket переводит тикет в resolved.
func (c *Client) ResolveTicket(id string, draft *string) (*TicketResponse, error) {
	var ticket TicketResponse
	err := c.post("/api/v1/tickets/"+id+"/resolve", ResolveTicketRequest{Draft: draft}, &ticket)
	return &ticket, err
}

// DeleteTicket удаляет тикет.
func (c *Client) DeleteTicket(id string) error {
	return c.delete("/api/v1/tickets/" + id)
}

// AdminListTickets возвращает тикеты в административном представлении.
func (c *Client) AdminListTickets(opts ListTicketsOpts) ([]AdminTicketResponse, error) {
	var tickets []AdminTicketResponse
	err := c.list("/api/v1/admin/tickets", opts.values(), &tickets)
	return tickets, err
}

// AdminGetTicket возвращает тикет в административном представлении.
func (c *Client) AdminGetTicket(id string) (*AdminTicketResponse, error) {
	var ticket AdminTicketResponse
	err := c.get("/api/v1/admin/tickets/"+id, &ticket)
	return &ticket, err
}

// --- Categories ---

// ListCategories возвращает все категории.
func (c *Client) ListCategories() ([]CategoryResponse, error) {
	var categories []CategoryResponse
	err := c.list("/api/v1/categories", nil, &categories)
	return categories, err
}

// CreateCategory создаёт новую категорию.
func (c *Client) CreateCategory(req CreateCategoryRequest) (*CategoryResponse, error) {
	var category CategoryResponse
	err := c.post("/api/v1/categories", req, &category)
	return &category, err
}

// --- HTTP helpers ---

func (c *Client) get(path string, result any) error {
	return c.doData(http.MethodGet, path, nil, result)
}

func (c *Client) post(path string, body any, result any) error {
	return c.doData(http.MethodPost, path, body, result)
}

func (c *Client) delete(path string) error {
	resp, err := c.do(http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return c.checkError(resp)
}

func (c *Client) list(path string, params url.Values, result any) error {
	if len(params) > 0 {
		path = path + "?" + params.Encode()
	}

	resp, err := c.do(http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkError(resp); err != nil {
		return err
	}

	var lr listResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return json.Unmarshal(lr.Data, result)
}

func (c *Client) doData(method, path string, body any, result any) error {
	resp, err := c.do(method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkError(resp); err != nil {
		return err
	}

	// 204 No Content
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	var dr dataResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if result != nil {
		return json.Unmarshal(dr.Data, result)
	}
	return nil
}

func (c *Client) do(method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.httpClient.Do(req)
}

func (c *Client) checkError(resp *http.Response) error {
	if resp.StatusCode < 400 {
		return nil
	}

	var er errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		return fmt.Errorf("API error: HTTP %d", resp.StatusCode)
	}

	return fmt.Errorf("%s: %s", er.Error.Code, er.Error.Message)
}
