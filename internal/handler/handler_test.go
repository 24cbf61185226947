package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ammdev/money-manager/internal/service"
	"github.com/ammdev/money-manager/internal/storage"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

func newTestRouter() *mux.Router {
	store := storage.NewMemoryStore("test")
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	h := NewHandler(service.NewService(store, logger))

	r := mux.NewRouter()
	r.HandleFunc("/", h.Root).Methods("GET")
	r.HandleFunc("/test", h.TestStore).Methods("GET")
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/accounts", h.CreateAccount).Methods("POST")
	api.HandleFunc("/accounts", h.ListAccounts).Methods("GET")
	api.HandleFunc("/categories", h.CreateCategory).Methods("POST")
	api.HandleFunc("/categories", h.ListCategories).Methods("GET")
	api.HandleFunc("/setup/defaults", h.SetupDefaults).Methods("POST")
	api.HandleFunc("/transactions", h.CreateTransaction).Methods("POST")
	api.HandleFunc("/transactions", h.ListTransactions).Methods("GET")
	api.HandleFunc("/budgets", h.CreateBudget).Methods("POST")
	api.HandleFunc("/budgets", h.ListBudgets).Methods("GET")
	api.HandleFunc("/parse", h.ParseText).Methods("POST")
	return r
}

func doJSON(t *testing.T, r *mux.Router, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var docs []map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&docs); err != nil {
		t.Fatalf("failed to decode list response: %v", err)
	}
	return docs
}

func TestRoot(t *testing.T) {
	rec := doJSON(t, newTestRouter(), "GET", "/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["message"] == "" {
		t.Error("Expected a status message")
	}
}

func TestTestStore(t *testing.T) {
	rec := doJSON(t, newTestRouter(), "GET", "/test", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var diag map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&diag); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if diag["connection_status"] != "connected" {
		t.Errorf("Expected connected status, got %v", diag["connection_status"])
	}
}

func TestAccountRoundTrip(t *testing.T) {
	r := newTestRouter()

	rec := doJSON(t, r, "POST", "/api/accounts", map[string]string{
		"name": "Main Card", "type": "card", "currency": "EUR", "note": "shared",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var created map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if created["id"] == "" {
		t.Fatal("Expected an id")
	}

	docs := decodeList(t, doJSON(t, r, "GET", "/api/accounts?limit=10", nil))
	if len(docs) != 1 {
		t.Fatalf("Expected 1 account, got %d", len(docs))
	}
	doc := docs[0]
	if doc["_id"] != created["id"] {
		t.Errorf("Expected listed _id %q, got %v", created["id"], doc["_id"])
	}
	if doc["name"] != "Main Card" || doc["type"] != "card" || doc["currency"] != "EUR" || doc["note"] != "shared" {
		t.Errorf("Round-tripped account does not match input: %v", doc)
	}
}

func TestCreateAccount_MissingName(t *testing.T) {
	rec := doJSON(t, newTestRouter(), "POST", "/api/accounts", map[string]string{"type": "cash"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rec.Code)
	}
}

func TestCategoryRoundTrip(t *testing.T) {
	r := newTestRouter()

	rec := doJSON(t, r, "POST", "/api/categories", map[string]string{"name": "Groceries", "icon": "cart"})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	docs := decodeList(t, doJSON(t, r, "GET", "/api/categories", nil))
	if len(docs) != 1 {
		t.Fatalf("Expected 1 category, got %d", len(docs))
	}
	if docs[0]["name"] != "Groceries" || docs[0]["color"] != "#64748b" || docs[0]["icon"] != "cart" {
		t.Errorf("Round-tripped category does not match input: %v", docs[0])
	}
}

func TestSetupDefaults_IdempotentOverHTTP(t *testing.T) {
	r := newTestRouter()

	for i := 0; i < 2; i++ {
		rec := doJSON(t, r, "POST", "/api/setup/defaults", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200 on call %d, got %d", i+1, rec.Code)
		}
	}

	categories := decodeList(t, doJSON(t, r, "GET", "/api/categories", nil))
	if len(categories) != 7 {
		t.Errorf("Expected exactly 7 categories, got %d", len(categories))
	}
	accounts := decodeList(t, doJSON(t, r, "GET", "/api/accounts", nil))
	if len(accounts) != 1 {
		t.Errorf("Expected exactly 1 account, got %d", len(accounts))
	}
	if len(accounts) == 1 && accounts[0]["name"] != "Cash" {
		t.Errorf("Expected seeded Cash account, got %v", accounts[0])
	}
}

func TestCreateTransaction_NegativeAmountStoredPositive(t *testing.T) {
	r := newTestRouter()

	rec := doJSON(t, r, "POST", "/api/transactions", map[string]interface{}{
		"date":        "2025-01-31",
		"amount":      -45.67,
		"description": "Groceries",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	docs := decodeList(t, doJSON(t, r, "GET", "/api/transactions", nil))
	if len(docs) != 1 {
		t.Fatalf("Expected 1 transaction, got %d", len(docs))
	}
	if docs[0]["amount"] != 45.67 {
		t.Errorf("Expected stored amount 45.67, got %v", docs[0]["amount"])
	}
	if docs[0]["direction"] != "expense" {
		t.Errorf("Expected default direction expense, got %v", docs[0]["direction"])
	}
	if docs[0]["date"] != "2025-01-31T00:00:00Z" {
		t.Errorf("Expected date string 2025-01-31T00:00:00Z, got %v", docs[0]["date"])
	}
}

func TestCreateTransaction_Validation(t *testing.T) {
	r := newTestRouter()

	rec := doJSON(t, r, "POST", "/api/transactions", map[string]interface{}{"amount": 5.0, "date": "2025-01-31"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing description, got %d", rec.Code)
	}

	rec = doJSON(t, r, "POST", "/api/transactions", map[string]interface{}{"amount": 5.0, "description": "x"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing date, got %d", rec.Code)
	}
}

func TestListTransactions_LimitAndOrder(t *testing.T) {
	r := newTestRouter()

	for _, day := range []int{12, 3, 27, 18, 9} {
		rec := doJSON(t, r, "POST", "/api/transactions", map[string]interface{}{
			"date":        fmt.Sprintf("2025-04-%02d", day),
			"amount":      1.00,
			"description": "tx",
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", rec.Code)
		}
	}

	docs := decodeList(t, doJSON(t, r, "GET", "/api/transactions?limit=2", nil))
	if len(docs) != 2 {
		t.Fatalf("Expected exactly 2 transactions, got %d", len(docs))
	}
	if docs[0]["date"] != "2025-04-27T00:00:00Z" || docs[1]["date"] != "2025-04-18T00:00:00Z" {
		t.Errorf("Expected descending date order, got %v then %v", docs[0]["date"], docs[1]["date"])
	}
}

func TestBudgetRoundTrip(t *testing.T) {
	r := newTestRouter()

	rec := doJSON(t, r, "POST", "/api/budgets", map[string]interface{}{
		"category_id": "cat123",
		"amount":      300.0,
		"period":      "custom",
		"start_date":  "2025-01-01",
		"end_date":    "2025-03-31",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	docs := decodeList(t, doJSON(t, r, "GET", "/api/budgets", nil))
	if len(docs) != 1 {
		t.Fatalf("Expected 1 budget, got %d", len(docs))
	}
	if docs[0]["category_id"] != "cat123" || docs[0]["amount"] != 300.0 || docs[0]["period"] != "custom" {
		t.Errorf("Round-tripped budget does not match input: %v", docs[0])
	}
	if docs[0]["start_date"] != "2025-01-01T00:00:00Z" {
		t.Errorf("Expected start date string, got %v", docs[0]["start_date"])
	}

	rec = doJSON(t, r, "POST", "/api/budgets", map[string]interface{}{"amount": 10.0})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing category id, got %d", rec.Code)
	}
}

func TestParseText(t *testing.T) {
	r := newTestRouter()

	for _, text := range []string{"", "   "} {
		rec := doJSON(t, r, "POST", "/api/parse", map[string]string{"text": text})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400 for %q, got %d", text, rec.Code)
		}
	}

	rec := doJSON(t, r, "POST", "/api/parse", map[string]string{"text": "Salary deposit 1500.00 03/15/2025"})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var draft map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&draft); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if draft["amount"] != 1500.0 {
		t.Errorf("Expected amount 1500, got %v", draft["amount"])
	}
	if draft["direction"] != "income" {
		t.Errorf("Expected direction income, got %v", draft["direction"])
	}
	if draft["date"] != "2025-03-15T00:00:00Z" {
		t.Errorf("Expected date 2025-03-15T00:00:00Z, got %v", draft["date"])
	}
}
