package service

import (
	"context"
	"os"

	"github.com/ammdev/money-manager/internal/models"
	"github.com/ammdev/money-manager/internal/parser"
	"github.com/ammdev/money-manager/internal/storage"
	"github.com/sirupsen/logrus"
)

// Categories seeded by SetupDefaults when the category collection is empty.
var defaultCategories = []models.Category{
	{Name: "Groceries", Color: "#22c55e", Icon: "shopping-basket"},
	{Name: "Restaurants", Color: "#f97316", Icon: "utensils"},
	{Name: "Transport", Color: "#06b6d4", Icon: "car"},
	{Name: "Rent", Color: "#6366f1", Icon: "home"},
	{Name: "Utilities", Color: "#14b8a6", Icon: "zap"},
	{Name: "Salary", Color: "#84cc16", Icon: "banknote"},
	{Name: "Other", Color: "#64748b", Icon: "dots"},
}

// Service handles business logic
type Service struct {
	store storage.Store
	log   *logrus.Logger
}

// NewService initializes a new service
func NewService(store storage.Store, log *logrus.Logger) *Service {
	return &Service{store: store, log: log}
}

// CreateAccount stores a new account, filling in default type and currency.
func (s *Service) CreateAccount(ctx context.Context, account models.Account) (string, error) {
	if account.Type == "" {
		account.Type = models.AccountTypeOther
	}
	if account.Currency == "" {
		account.Currency = "USD"
	}

	id, err := s.store.InsertOne(ctx, storage.AccountCollection, account)
	if err != nil {
		return "", err
	}

	s.log.Infof("Account created: %s (%s)", account.Name, account.Type)
	return id, nil
}

// ListAccounts returns up to limit accounts in insertion order.
func (s *Service) ListAccounts(ctx context.Context, limit int64) ([]map[string]interface{}, error) {
	return s.store.Find(ctx, storage.AccountCollection, limit, nil)
}

// CreateCategory stores a new category, filling in the default color.
func (s *Service) CreateCategory(ctx context.Context, category models.Category) (string, error) {
	if category.Color == "" {
		category.Color = models.DefaultCategoryColor
	}

	id, err := s.store.InsertOne(ctx, storage.CategoryCollection, category)
	if err != nil {
		return "", err
	}

	s.log.Infof("Category created: %s", category.Name)
	return id, nil
}

// ListCategories returns up to limit categories in insertion order.
func (s *Service) ListCategories(ctx context.Context, limit int64) ([]map[string]interface{}, error) {
	return s.store.Find(ctx, storage.CategoryCollection, limit, nil)
}

// CreateTransaction stores a new transaction. The amount is coerced to its
// absolute value; direction alone carries the sign.
func (s *Service) CreateTransaction(ctx context.Context, tx models.Transaction) (string, error) {
	if tx.Amount < 0 {
		tx.Amount = -tx.Amount
	}
	if tx.Direction == "" {
		tx.Direction = models.DirectionExpense
	}

	id, err := s.store.InsertOne(ctx, storage.TransactionCollection, tx)
	if err != nil {
		return "", err
	}

	s.log.Infof("Transaction created: %s %.2f (%s)", tx.Direction, tx.Amount, tx.Description)
	return id, nil
}

// ListTransactions returns up to limit transactions, newest date first.
func (s *Service) ListTransactions(ctx context.Context, limit int64) ([]map[string]interface{}, error) {
	return s.store.Find(ctx, storage.TransactionCollection, limit, &storage.Sort{Field: "date", Desc: true})
}

// CreateBudget stores a new budget, filling in the default period.
func (s *Service) CreateBudget(ctx context.Context, budget models.Budget) (string, error) {
	if budget.Period == "" {
		budget.Period = models.PeriodMonthly
	}

	id, err := s.store.InsertOne(ctx, storage.BudgetCollection, budget)
	if err != nil {
		return "", err
	}

	s.log.Infof("Budget created: category %s, %.2f %s", budget.CategoryID, budget.Amount, budget.Period)
	return id, nil
}

// ListBudgets returns up to limit budgets in insertion order.
func (s *Service) ListBudgets(ctx context.Context, limit int64) ([]map[string]interface{}, error) {
	return s.store.Find(ctx, storage.BudgetCollection, limit, nil)
}

// SetupDefaults seeds the default categories and a Cash account. Each
// collection is seeded only when empty, so repeated calls are no-ops.
func (s *Service) SetupDefaults(ctx context.Context) error {
	count, err := s.store.Count(ctx, storage.CategoryCollection)
	if err != nil {
		return err
	}
	if count == 0 {
		for _, category := range defaultCategories {
			if _, err := s.store.InsertOne(ctx, storage.CategoryCollection, category); err != nil {
				return err
			}
		}
		s.log.Infof("Seeded %d default categories", len(defaultCategories))
	}

	count, err = s.store.Count(ctx, storage.AccountCollection)
	if err != nil {
		return err
	}
	if count == 0 {
		cash := models.Account{Name: "Cash", Type: models.AccountTypeCash, Currency: "USD"}
		if _, err := s.store.InsertOne(ctx, storage.AccountCollection, cash); err != nil {
			return err
		}
		s.log.Info("Seeded default Cash account")
	}

	return nil
}

// ParseText extracts a transaction draft from freeform text.
func (s *Service) ParseText(text string) (models.ParsedTransaction, error) {
	return parser.Parse(text)
}

// Diagnostics reports store connectivity for the /test endpoint.
type Diagnostics struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     string   `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

// CheckStore probes the store and reports its status. Failures are reported
// inside the result rather than as an error, with messages truncated to keep
// the diagnostics readable.
func (s *Service) CheckStore(ctx context.Context) Diagnostics {
	diag := Diagnostics{
		Backend:          "running",
		Database:         "not available",
		DatabaseURL:      "not set",
		DatabaseName:     s.store.Name(),
		ConnectionStatus: "not connected",
		Collections:      []string{},
	}
	if os.Getenv("DATABASE_URL") != "" {
		diag.DatabaseURL = "set"
	}

	if err := s.store.Ping(ctx); err != nil {
		diag.Database = "error: " + truncate(err.Error(), 80)
		return diag
	}
	diag.Database = "available"
	diag.ConnectionStatus = "connected"

	names, err := s.store.Collections(ctx)
	if err != nil {
		diag.Database = "connected but error: " + truncate(err.Error(), 80)
		return diag
	}
	diag.Collections = names
	diag.Database = "connected and working"

	return diag
}

// truncate shortens a message to n characters without splitting a rune.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
