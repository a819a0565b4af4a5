// Package store is the single entry point for persistence. Every operation
// runs identically against the Postgres backend and the in-memory backend;
// which one is live is decided once at process start.
package store

import (
	"context"

	"github.com/YTU94/ai-e-contract/config"
	"github.com/YTU94/ai-e-contract/models"

	"gorm.io/gorm"
)

// ContractQuery narrows FindContractsByUserID. Filters are ANDed; Search
// matches case-insensitively against title or type. Skip/Take apply after
// filtering and sorting by updated_at descending.
type ContractQuery struct {
	Status string
	Type   string
	Search string
	Skip   int
	Take   int
}

// Store routes all persistence operations to the selected backend.
// Backend errors propagate unmodified; only TestConnection swallows them.
type Store interface {
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	CountUsers(ctx context.Context) (int64, error)

	FindContractsByUserID(ctx context.Context, userID string, q ContractQuery) ([]models.Contract, error)
	FindContractByID(ctx context.Context, id string) (*models.Contract, error)
	CreateContract(ctx context.Context, contract *models.Contract) (*models.Contract, error)
	UpdateContract(ctx context.Context, id string, data map[string]any) (*models.Contract, error)
	CountContracts(ctx context.Context, userID, status string) (int64, error)

	FindActiveTemplates(ctx context.Context) ([]models.ContractTemplate, error)
	CreateTemplate(ctx context.Context, tpl *models.ContractTemplate) (*models.ContractTemplate, error)

	FindSignaturesByContractID(ctx context.Context, contractID string) ([]models.Signature, error)
	CreateSignature(ctx context.Context, sig *models.Signature) (*models.Signature, error)

	CreateAuditLog(ctx context.Context, entry *models.AuditLog) (*models.AuditLog, error)

	// GetPartnerStats aggregates signatures on the caller's contracts into
	// partner records. Pagination is the caller's job, not pushed down here.
	GetPartnerStats(ctx context.Context, userID string) ([]models.Partner, error)

	// TestConnection never returns an error; failure is reported as false.
	TestConnection(ctx context.Context) bool
	DatabaseType() string
}

// New selects the backend once. The choice is held for the process lifetime
// and is not re-evaluated per request.
func New(cfg *config.Config, db *gorm.DB) Store {
	if cfg.UseMockDatabase() || db == nil {
		return newMemoryStore()
	}
	return &postgresStore{db: db}
}
