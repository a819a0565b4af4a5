package store

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/YTU94/ai-e-contract/models"

	"gorm.io/gorm"
)

// postgresStore backs the facade with the relational database. Driver errors
// propagate as-is; there is no retry layer here.
type postgresStore struct {
	db *gorm.DB
}

// AutoMigrate creates or updates the schema. Called from the setup endpoint,
// not automatically at startup.
func (s *postgresStore) AutoMigrate() error {
	return s.db.AutoMigrate(
		&models.User{},
		&models.Contract{},
		&models.ContractTemplate{},
		&models.Signature{},
		&models.AuditLog{},
	)
}

// --- User operations ---

func (s *postgresStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *postgresStore) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *postgresStore) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	u := *user
	if u.ID == "" {
		u.ID = newID("user")
	}
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	if err := s.db.WithContext(ctx).Create(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *postgresStore) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.User{}).Count(&n).Error
	return n, err
}

// --- Contract operations ---

func (s *postgresStore) FindContractsByUserID(ctx context.Context, userID string, q ContractQuery) ([]models.Contract, error) {
	query := s.db.WithContext(ctx).Model(&models.Contract{}).Where("user_id = ?", userID)

	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	}
	if q.Type != "" {
		query = query.Where("LOWER(type) LIKE ?", "%"+likePattern(q.Type)+"%")
	}
	if q.Search != "" {
		pattern := "%" + likePattern(q.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(type) LIKE ?", pattern, pattern)
	}

	query = query.Order("updated_at DESC")
	if q.Skip > 0 {
		query = query.Offset(q.Skip)
	}
	if q.Take > 0 {
		query = query.Limit(q.Take)
	}

	var contracts []models.Contract
	if err := query.Find(&contracts).Error; err != nil {
		return nil, err
	}
	if contracts == nil {
		contracts = make([]models.Contract, 0)
	}
	return contracts, nil
}

func (s *postgresStore) FindContractByID(ctx context.Context, id string) (*models.Contract, error) {
	var contract models.Contract
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&contract).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

func (s *postgresStore) CreateContract(ctx context.Context, contract *models.Contract) (*models.Contract, error) {
	c := *contract
	if c.ID == "" {
		c.ID = newID("contract")
	}
	if c.Status == "" {
		c.Status = models.StatusDraft
	}
	if c.Version == 0 {
		c.Version = 1
	}
	if err := s.db.WithContext(ctx).Create(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *postgresStore) UpdateContract(ctx context.Context, id string, data map[string]any) (*models.Contract, error) {
	updates := make(map[string]any, len(data)+1)
	for key, value := range data {
		updates[key] = value
	}
	updates["updated_at"] = time.Now()

	result := s.db.WithContext(ctx).Model(&models.Contract{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return s.FindContractByID(ctx, id)
}

func (s *postgresStore) CountContracts(ctx context.Context, userID, status string) (int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Contract{}).Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var n int64
	err := query.Count(&n).Error
	return n, err
}

// --- Template operations ---

func (s *postgresStore) FindActiveTemplates(ctx context.Context) ([]models.ContractTemplate, error) {
	var templates []models.ContractTemplate
	err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&templates).Error
	if err != nil {
		return nil, err
	}
	if templates == nil {
		templates = make([]models.ContractTemplate, 0)
	}
	return templates, nil
}

func (s *postgresStore) CreateTemplate(ctx context.Context, tpl *models.ContractTemplate) (*models.ContractTemplate, error) {
	t := *tpl
	if t.ID == "" {
		t.ID = newID("template")
	}
	if err := s.db.WithContext(ctx).Create(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// --- Signature operations ---

func (s *postgresStore) FindSignaturesByContractID(ctx context.Context, contractID string) ([]models.Signature, error) {
	var sigs []models.Signature
	err := s.db.WithContext(ctx).Where("contract_id = ?", contractID).Find(&sigs).Error
	if err != nil {
		return nil, err
	}
	if sigs == nil {
		sigs = make([]models.Signature, 0)
	}
	return sigs, nil
}

func (s *postgresStore) CreateSignature(ctx context.Context, sig *models.Signature) (*models.Signature, error) {
	v := *sig
	if v.ID == "" {
		v.ID = newID("signature")
	}
	if v.SignedAt.IsZero() {
		v.SignedAt = time.Now()
	}
	if err := s.db.WithContext(ctx).Create(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

// --- Audit log operations ---

func (s *postgresStore) CreateAuditLog(ctx context.Context, entry *models.AuditLog) (*models.AuditLog, error) {
	e := *entry
	if e.ID == "" {
		e.ID = newID("audit")
	}
	if err := s.db.WithContext(ctx).Create(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// --- Partner statistics ---

func (s *postgresStore) GetPartnerStats(ctx context.Context, userID string) ([]models.Partner, error) {
	var sigs []models.Signature
	err := s.db.WithContext(ctx).
		Joins("JOIN contracts ON contracts.id = signatures.contract_id").
		Where("contracts.user_id = ?", userID).
		Find(&sigs).Error
	if err != nil {
		return nil, err
	}

	var contracts []models.Contract
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&contracts).Error; err != nil {
		return nil, err
	}
	byID := make(map[string]*models.Contract, len(contracts))
	for i := range contracts {
		byID[contracts[i].ID] = &contracts[i]
	}

	return aggregatePartners(sigs, byID, time.Now()), nil
}

// --- Diagnostics ---

// TestConnection does a ping round-trip and reports the outcome as a boolean.
// It never returns an error to the caller.
func (s *postgresStore) TestConnection(ctx context.Context) bool {
	sqlDB, err := s.db.DB()
	if err != nil {
		slog.Error("获取数据库连接失败", "error", err)
		return false
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		slog.Error("数据库连接测试失败", "error", err)
		return false
	}
	return true
}

func (s *postgresStore) DatabaseType() string { return "postgres" }

// likePattern lowercases the needle and escapes LIKE metacharacters so user
// input cannot widen the match.
func likePattern(needle string) string {
	out := make([]rune, 0, len(needle))
	for _, r := range strings.ToLower(needle) {
		switch r {
		case '%', '_', '\\':
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}
