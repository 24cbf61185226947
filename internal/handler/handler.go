package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/ammdev/money-manager/internal/models"
	"github.com/ammdev/money-manager/internal/parser"
	"github.com/ammdev/money-manager/internal/service"
)

// Default list limits per collection.
const (
	defaultAccountLimit     = 100
	defaultCategoryLimit    = 200
	defaultTransactionLimit = 50
	defaultBudgetLimit      = 100
)

type Handler struct {
	svc *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Root reports that the backend is up.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Money Manager backend running"})
}

// TestStore handles GET /test with store connectivity diagnostics.
func (h *Handler) TestStore(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.CheckStore(r.Context()))
}

// CreateAccount handles POST /api/accounts.
func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var account models.Account
	if err := json.NewDecoder(r.Body).Decode(&account); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if account.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}

	id, err := h.svc.CreateAccount(r.Context(), account)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

// ListAccounts handles GET /api/accounts.
func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	docs, err := h.svc.ListAccounts(r.Context(), limitParam(r, defaultAccountLimit))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

// CreateCategory handles POST /api/categories.
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var category models.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if category.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}

	id, err := h.svc.CreateCategory(r.Context(), category)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

// ListCategories handles GET /api/categories.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	docs, err := h.svc.ListCategories(r.Context(), limitParam(r, defaultCategoryLimit))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

// SetupDefaults handles POST /api/setup/defaults.
func (h *Handler) SetupDefaults(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.SetupDefaults(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type transactionRequest struct {
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Direction   string  `json:"direction"`
	Description string  `json:"description"`
	CategoryID  string  `json:"category_id"`
	AccountID   string  `json:"account_id"`
	Merchant    string  `json:"merchant"`
	Notes       string  `json:"notes"`
}

// CreateTransaction handles POST /api/transactions.
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Description == "" {
		writeError(w, http.StatusBadRequest, "Description is required")
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Date is required in ISO format")
		return
	}

	tx := models.Transaction{
		Date:        date,
		Amount:      req.Amount,
		Direction:   req.Direction,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		AccountID:   req.AccountID,
		Merchant:    req.Merchant,
		Notes:       req.Notes,
	}
	id, err := h.svc.CreateTransaction(r.Context(), tx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

// ListTransactions handles GET /api/transactions, newest date first.
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	docs, err := h.svc.ListTransactions(r.Context(), limitParam(r, defaultTransactionLimit))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

type budgetRequest struct {
	CategoryID string  `json:"category_id"`
	Amount     float64 `json:"amount"`
	Period     string  `json:"period"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
}

// CreateBudget handles POST /api/budgets.
func (h *Handler) CreateBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.CategoryID == "" {
		writeError(w, http.StatusBadRequest, "Category id is required")
		return
	}
	if req.Amount == 0 {
		writeError(w, http.StatusBadRequest, "Amount is required")
		return
	}

	budget := models.Budget{
		CategoryID: req.CategoryID,
		Amount:     req.Amount,
		Period:     req.Period,
	}
	if req.StartDate != "" {
		start, err := parseDate(req.StartDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid start date")
			return
		}
		budget.StartDate = &start
	}
	if req.EndDate != "" {
		end, err := parseDate(req.EndDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid end date")
			return
		}
		budget.EndDate = &end
	}

	id, err := h.svc.CreateBudget(r.Context(), budget)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

// ListBudgets handles GET /api/budgets.
func (h *Handler) ListBudgets(w http.ResponseWriter, r *http.Request) {
	docs, err := h.svc.ListBudgets(r.Context(), limitParam(r, defaultBudgetLimit))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

type parseRequest struct {
	Text string `json:"text"`
}

// ParseText handles POST /api/parse: freeform text in, transaction draft out.
func (h *Handler) ParseText(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	draft, err := h.svc.ParseText(req.Text)
	if err != nil {
		if errors.Is(err, parser.ErrEmptyText) {
			writeError(w, http.StatusBadRequest, "Text is required")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

// Date layouts accepted in request bodies.
var requestDateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

func parseDate(s string) (time.Time, error) {
	var err error
	for _, layout := range requestDateLayouts {
		var d time.Time
		if d, err = time.Parse(layout, s); err == nil {
			return d, nil
		}
	}
	return time.Time{}, err
}

func limitParam(r *http.Request, fallback int64) int64 {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback
	}
	limit, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || limit < 0 {
		return fallback
	}
	return limit
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
