package store

import (
	"context"
	"testing"
	"time"

	"github.com/YTU94/ai-e-contract/config"
	"github.com/YTU94/ai-e-contract/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewSelectsMemoryBackend(t *testing.T) {
	cfg := &config.Config{AppEnv: "development"}
	st := New(cfg, nil)
	assert.Equal(t, "mock", st.DatabaseType())

	cfg = &config.Config{AppEnv: "production", DatabaseURL: ""}
	st = New(cfg, nil)
	assert.Equal(t, "mock", st.DatabaseType())
}

func TestMemorySeedData(t *testing.T) {
	s := newMemoryStore()
	ctx := context.Background()

	count, err := s.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	u, err := s.FindUserByEmail(ctx, "demo@example.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "user_1", u.ID)
	assert.Equal(t, "张三", u.Name)

	missing, err := s.FindUserByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)

	templates, err := s.FindActiveTemplates(ctx)
	require.NoError(t, err)
	assert.Len(t, templates, 2)
}

func TestMemorySeedPasswordVerifies(t *testing.T) {
	s := newMemoryStore()
	ctx := context.Background()

	for _, email := range []string{"demo@example.com", "admin@example.com"} {
		u, err := s.FindUserByEmail(ctx, email)
		require.NoError(t, err)
		require.NotNil(t, u)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("password")), email)
	}
}

func TestMemoryCreateUser(t *testing.T) {
	s := newMemoryStore()
	ctx := context.Background()

	created, err := s.CreateUser(ctx, &models.User{
		Name:     "王五",
		Email:    "wangwu@example.com",
		Password: "hashed",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, models.RoleUser, created.Role)

	count, err := s.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	found, err := s.FindUserByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "wangwu@example.com", found.Email)
}

func TestMemoryContractOwnershipIsolation(t *testing.T) {
	s := newMemoryStore()
	ctx := context.Background()

	mine, err := s.FindContractsByUserID(ctx, "user_1", ContractQuery{})
	require.NoError(t, err)
	assert.Len(t, mine, 3)

	other, err := s.FindContractsByUserID(ctx, "user_2", ContractQuery{})
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestMemoryContractFilters(t *testing.T) {
	s := newMemoryStore()
	ctx := context.Background()

	pending, err := s.FindContractsByUserID(ctx, "user_1", ContractQuery{Status: models.StatusPending})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "contract_1", pending[0].ID)

	byType, err := s.FindContractsByUserID(ctx, "user_1", ContractQuery{Type: "软件开发"})
	require.NoError(t, err)
	assert.Len(t, byType, 2)

	bySearch, err := s.FindContractsByUserID(ctx, "user_1", ContractQuery{Search: "app"})
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	assert.Equal(t, "contract_3", bySearch[0].ID)
}

func TestMemoryContractOrderAndPagination(t *testing.T) {
	s := newMemoryStore()
	ctx := context.Background()

	all, err := s.FindContractsByUserID(ctx, "user_1", ContractQuery{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Most recently updated first.
	assert.Equal(t, "contract_3", all[0].ID)
	assert.Equal(t, "contract_2", all[1].ID)
	assert.Equal(t, "contract_1", all[2].ID)

	page, err := s.FindContractsByUserID(ctx, "user_1", ContractQuery{Skip: 1, Take: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "contract_2", page[0].ID)

	past, err := s.FindContractsByUserID(ctx, "user_1", ContractQuery{Skip: 10, Take: 5})
	require.NoError(t, err)
	assert.Empty(t, past)
}

func TestMemoryUpdateContract(t *testing.T) {
	s := newMemoryStore()
	ctx := context.Background()

	before, err := s.FindContractByID(ctx, "contract_1")
	require.NoError(t, err)
	require.NotNil(t, before)

	updated, err := s.UpdateContract(ctx, "contract_1", map[string]any{
		"title":  "改名后的合同",
		"status": models.StatusSigned,
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "改名后的合同", updated.Title)
	assert.Equal(t, models.StatusSigned, updated.Status)
	assert.True(t, updated.UpdatedAt.After(before.UpdatedAt))
	// Untouched fields survive the merge.
	assert.Equal(t, before.Content, updated.Content)
	assert.Equal(t, before.Version, updated.Version)

	missing, err := s.UpdateContract(ctx, "contract_999", map[string]any{"title": "x"})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemoryCountContracts(t *testing.T) {
	s := newMemoryStore()
	ctx := context.Background()

	total, err := s.CountContracts(ctx, "user_1", "")
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	completed, err := s.CountContracts(ctx, "user_1", models.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, int64(1), completed)

	none, err := s.CountContracts(ctx, "user_2", "")
	require.NoError(t, err)
	assert.Equal(t, int64(0), none)
}

func TestMemoryCreateContractDefaults(t *testing.T) {
	s := newMemoryStore()
	ctx := context.Background()

	created, err := s.CreateContract(ctx, &models.Contract{
		Title:   "新合同",
		Content: "内容",
		UserID:  "user_2",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusDraft, created.Status)
	assert.Equal(t, 1, created.Version)
	assert.NotEmpty(t, created.ID)

	count, err := s.CountContracts(ctx, "user_2", "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestMemorySignatures(t *testing.T) {
	s := newMemoryStore()
	ctx := context.Background()

	sigs, err := s.FindSignaturesByContractID(ctx, "contract_2")
	require.NoError(t, err)
	require.Len(t, sigs, 1)
	assert.Equal(t, "demo@example.com", sigs[0].SignerEmail)

	created, err := s.CreateSignature(ctx, &models.Signature{
		ContractID:  "contract_1",
		SignerName:  "赵六",
		SignerEmail: "zhaoliu@example.com",
		Signature:   "sig-data",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.SignedAt.IsZero())

	sigs, err = s.FindSignaturesByContractID(ctx, "contract_1")
	require.NoError(t, err)
	assert.Len(t, sigs, 1)
}

func TestMemoryCreateTemplate(t *testing.T) {
	s := newMemoryStore()
	ctx := context.Background()

	tpl, err := s.CreateTemplate(ctx, &models.ContractTemplate{
		Name:     "租赁合同",
		Content:  "甲方：[甲方名称]",
		IsActive: true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, tpl.ID)

	templates, err := s.FindActiveTemplates(ctx)
	require.NoError(t, err)
	assert.Len(t, templates, 3)
	// Newest template first.
	assert.Equal(t, tpl.ID, templates[0].ID)
}

func TestMemoryConnectionAlwaysUp(t *testing.T) {
	s := newMemoryStore()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.True(t, s.TestConnection(ctx))
	assert.Equal(t, "mock", s.DatabaseType())
}
