package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/YTU94/ai-e-contract/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// memoryStore is the in-memory substitute used in preview/development mode
// or when no DATABASE_URL is configured. It is seeded with demo data so the
// dashboards render something meaningful out of the box.
type memoryStore struct {
	mu        sync.RWMutex
	users     []models.User
	contracts []models.Contract
	templates []models.ContractTemplate
	sigs      []models.Signature
	audits    []models.AuditLog
}

func newMemoryStore() *memoryStore {
	s := &memoryStore{}
	s.seed()
	return s
}

func newID(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, uuid.New().String())
}

func (s *memoryStore) seed() {
	seededAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	// The demo accounts log in with "password". Hashed here rather than as a
	// frozen literal so the credential always verifies.
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	demoHash := string(hashed)

	s.users = []models.User{
		{
			ID: "user_1", Name: "张三", Email: "demo@example.com",
			Password: demoHash, Company: "示例科技有限公司", Role: models.RoleUser,
			CreatedAt: seededAt, UpdatedAt: seededAt,
		},
		{
			ID: "user_2", Name: "李四", Email: "admin@example.com",
			Password: demoHash, Company: "管理员", Role: models.RoleAdmin,
			CreatedAt: seededAt, UpdatedAt: seededAt,
		},
	}

	s.templates = []models.ContractTemplate{
		{
			ID: "template_1", Name: "软件开发服务合同",
			Description: "标准软件开发服务合同模板", Category: "技术服务",
			Content:  devTemplateContent,
			IsActive: true, CreatedAt: seededAt, UpdatedAt: seededAt,
		},
		{
			ID: "template_2", Name: "保密协议",
			Description: "标准保密协议模板", Category: "法律文件",
			Content:  ndaTemplateContent,
			IsActive: true, CreatedAt: seededAt, UpdatedAt: seededAt,
		},
	}

	tpl1, tpl2 := "template_1", "template_2"
	s.contracts = []models.Contract{
		{
			ID: "contract_1", Title: "网站开发服务合同",
			Content: "这是一份网站开发服务合同的详细内容...",
			Status:  models.StatusPending, Type: "软件开发服务合同", Version: 1,
			TemplateID: &tpl1,
			Metadata:   models.JSONMap{"totalValue": float64(50000), "currency": "CNY"},
			UserID:     "user_1",
			CreatedAt:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			UpdatedAt:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			ID: "contract_2", Title: "技术保密协议",
			Content: "这是一份技术保密协议的详细内容...",
			Status:  models.StatusCompleted, Type: "保密协议", Version: 1,
			TemplateID: &tpl2,
			Metadata:   models.JSONMap{"department": "技术部"},
			UserID:     "user_1",
			CreatedAt:  time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			UpdatedAt:  time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			ID: "contract_3", Title: "APP开发项目合同",
			Content: "这是一份APP开发项目合同的详细内容...",
			Status:  models.StatusSigned, Type: "软件开发服务合同", Version: 2,
			TemplateID: &tpl1,
			Metadata:   models.JSONMap{"totalValue": float64(80000), "currency": "CNY"},
			UserID:     "user_1",
			CreatedAt:  time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
			UpdatedAt:  time.Date(2024, 1, 25, 0, 0, 0, 0, time.UTC),
		},
	}

	s.sigs = []models.Signature{
		{
			ID: "signature_1", ContractID: "contract_2",
			SignerName: "张三", SignerEmail: "demo@example.com",
			SignedAt:  time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
			Signature: "digital_signature_data_1",
			IPAddress: "192.168.1.1", UserAgent: "Mozilla/5.0...",
		},
		{
			ID: "signature_2", ContractID: "contract_3",
			SignerName: "李四", SignerEmail: "partner@example.com",
			SignedAt:  time.Date(2024, 1, 25, 0, 0, 0, 0, time.UTC),
			Signature: "digital_signature_data_2",
			IPAddress: "192.168.1.2", UserAgent: "Mozilla/5.0...",
		},
	}
}

// --- User operations ---

func (s *memoryStore) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.users {
		if s.users[i].Email == email {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (s *memoryStore) FindUserByID(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.users {
		if s.users[i].ID == id {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (s *memoryStore) CreateUser(_ context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	u := *user
	if u.ID == "" {
		u.ID = newID("user")
	}
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	u.CreatedAt = now
	u.UpdatedAt = now
	s.users = append(s.users, u)
	return &u, nil
}

func (s *memoryStore) CountUsers(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.users)), nil
}

// --- Contract operations ---

func (s *memoryStore) FindContractsByUserID(_ context.Context, userID string, q ContractQuery) ([]models.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]models.Contract, 0)
	for i := range s.contracts {
		c := s.contracts[i]
		if c.UserID != userID {
			continue
		}
		if q.Status != "" && c.Status != q.Status {
			continue
		}
		if q.Type != "" && !containsFold(c.Type, q.Type) {
			continue
		}
		if q.Search != "" && !containsFold(c.Title, q.Search) && !containsFold(c.Type, q.Search) {
			continue
		}
		matched = append(matched, c)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].UpdatedAt.After(matched[j].UpdatedAt)
	})

	return sliceWindow(matched, q.Skip, q.Take), nil
}

func (s *memoryStore) FindContractByID(_ context.Context, id string) (*models.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.contractIndex(id); i >= 0 {
		c := s.contracts[i]
		return &c, nil
	}
	return nil, nil
}

func (s *memoryStore) CreateContract(_ context.Context, contract *models.Contract) (*models.Contract, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
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
	c.CreatedAt = now
	c.UpdatedAt = now
	s.contracts = append(s.contracts, c)
	return &c, nil
}

func (s *memoryStore) UpdateContract(_ context.Context, id string, data map[string]any) (*models.Contract, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.contractIndex(id)
	if i < 0 {
		return nil, nil
	}

	c := &s.contracts[i]
	for key, value := range data {
		switch key {
		case "title":
			if v, ok := value.(string); ok {
				c.Title = v
			}
		case "content":
			if v, ok := value.(string); ok {
				c.Content = v
			}
		case "status":
			if v, ok := value.(string); ok {
				c.Status = v
			}
		case "type":
			if v, ok := value.(string); ok {
				c.Type = v
			}
		case "version":
			switch v := value.(type) {
			case int:
				c.Version = v
			case float64:
				c.Version = int(v)
			}
		case "template_id":
			switch v := value.(type) {
			case string:
				c.TemplateID = &v
			case *string:
				c.TemplateID = v
			case nil:
				c.TemplateID = nil
			}
		case "metadata":
			if v, ok := value.(models.JSONMap); ok {
				c.Metadata = v
			}
		}
	}
	c.UpdatedAt = time.Now()

	out := *c
	return &out, nil
}

func (s *memoryStore) CountContracts(_ context.Context, userID, status string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for i := range s.contracts {
		if s.contracts[i].UserID != userID {
			continue
		}
		if status != "" && s.contracts[i].Status != status {
			continue
		}
		n++
	}
	return n, nil
}

// --- Template operations ---

func (s *memoryStore) FindActiveTemplates(_ context.Context) ([]models.ContractTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ContractTemplate, 0)
	for i := range s.templates {
		if s.templates[i].IsActive {
			out = append(out, s.templates[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *memoryStore) CreateTemplate(_ context.Context, tpl *models.ContractTemplate) (*models.ContractTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	t := *tpl
	if t.ID == "" {
		t.ID = newID("template")
	}
	t.CreatedAt = now
	t.UpdatedAt = now
	s.templates = append(s.templates, t)
	return &t, nil
}

// --- Signature operations ---

func (s *memoryStore) FindSignaturesByContractID(_ context.Context, contractID string) ([]models.Signature, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Signature, 0)
	for i := range s.sigs {
		if s.sigs[i].ContractID == contractID {
			out = append(out, s.sigs[i])
		}
	}
	return out, nil
}

func (s *memoryStore) CreateSignature(_ context.Context, sig *models.Signature) (*models.Signature, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := *sig
	if v.ID == "" {
		v.ID = newID("signature")
	}
	if v.SignedAt.IsZero() {
		v.SignedAt = time.Now()
	}
	s.sigs = append(s.sigs, v)
	return &v, nil
}

// --- Audit log operations ---

func (s *memoryStore) CreateAuditLog(_ context.Context, entry *models.AuditLog) (*models.AuditLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := *entry
	if e.ID == "" {
		e.ID = newID("audit")
	}
	e.CreatedAt = time.Now()
	s.audits = append(s.audits, e)
	return &e, nil
}

// --- Partner statistics ---

func (s *memoryStore) GetPartnerStats(_ context.Context, userID string) ([]models.Partner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	owned := make(map[string]*models.Contract)
	for i := range s.contracts {
		if s.contracts[i].UserID == userID {
			owned[s.contracts[i].ID] = &s.contracts[i]
		}
	}

	sigs := make([]models.Signature, 0)
	for i := range s.sigs {
		if _, ok := owned[s.sigs[i].ContractID]; ok {
			sigs = append(sigs, s.sigs[i])
		}
	}

	return aggregatePartners(sigs, owned, time.Now()), nil
}

// --- Diagnostics ---

// TestConnection on the mock backend involves no I/O and is always true.
func (s *memoryStore) TestConnection(_ context.Context) bool { return true }

func (s *memoryStore) DatabaseType() string { return "mock" }

// --- helpers ---

func (s *memoryStore) contractIndex(id string) int {
	for i := range s.contracts {
		if s.contracts[i].ID == id {
			return i
		}
	}
	return -1
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func sliceWindow[T any](items []T, skip, take int) []T {
	if skip <= 0 && take <= 0 {
		return items
	}
	if skip < 0 {
		skip = 0
	}
	if skip >= len(items) {
		return []T{}
	}
	items = items[skip:]
	if take > 0 && take < len(items) {
		items = items[:take]
	}
	return items
}
