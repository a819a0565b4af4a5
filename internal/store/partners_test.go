package store

import (
	"context"
	"testing"
	"time"

	"github.com/YTU94/ai-e-contract/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregatePartnersEmpty(t *testing.T) {
	result := aggregatePartners(nil, nil, time.Now())
	assert.Empty(t, result)
}

func TestAggregatePartnersGroupsByEmail(t *testing.T) {
	now := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	contracts := map[string]*models.Contract{
		"c1": {ID: "c1", Metadata: models.JSONMap{"totalValue": float64(1000)}},
		"c2": {ID: "c2", Metadata: models.JSONMap{"totalValue": float64(2500)}},
		"c3": {ID: "c3"},
	}
	sigs := []models.Signature{
		{ContractID: "c1", SignerName: "王 芳", SignerEmail: "wang@example.com", SignedAt: now.Add(-48 * time.Hour)},
		{ContractID: "c2", SignerName: "王 芳", SignerEmail: "wang@example.com", SignedAt: now.Add(-24 * time.Hour)},
		{ContractID: "c3", SignerName: "李雷", SignerEmail: "li@example.com", SignedAt: now.Add(-72 * time.Hour)},
	}

	result := aggregatePartners(sigs, contracts, now)
	require.Len(t, result, 2)

	// Sorted by contract count, most first.
	wang := result[0]
	assert.Equal(t, "wang@example.com", wang.ID)
	assert.Equal(t, 2, wang.ContractsCount)
	assert.Equal(t, 3500.0, wang.TotalValue)
	assert.Equal(t, "王 公司", wang.Company)
	assert.Equal(t, now.Add(-24*time.Hour), wang.LastContractDate)

	li := result[1]
	assert.Equal(t, 1, li.ContractsCount)
	assert.Equal(t, 0.0, li.TotalValue)
	assert.Equal(t, "李雷 公司", li.Company)
}

func TestAggregatePartnersActiveWindow(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	contracts := map[string]*models.Contract{"c1": {ID: "c1"}, "c2": {ID: "c2"}}

	// The first signature is old, but the newest one decides the status.
	sigs := []models.Signature{
		{ContractID: "c1", SignerName: "陈明", SignerEmail: "chen@example.com", SignedAt: now.Add(-90 * 24 * time.Hour)},
		{ContractID: "c2", SignerName: "陈明", SignerEmail: "chen@example.com", SignedAt: now.Add(-5 * 24 * time.Hour)},
	}
	result := aggregatePartners(sigs, contracts, now)
	require.Len(t, result, 1)
	assert.Equal(t, "active", result[0].Status)

	stale := []models.Signature{
		{ContractID: "c1", SignerName: "陈明", SignerEmail: "chen@example.com", SignedAt: now.Add(-31 * 24 * time.Hour)},
	}
	result = aggregatePartners(stale, contracts, now)
	require.Len(t, result, 1)
	assert.Equal(t, "inactive", result[0].Status)

	boundary := []models.Signature{
		{ContractID: "c1", SignerName: "陈明", SignerEmail: "chen@example.com", SignedAt: now.Add(-30 * 24 * time.Hour)},
	}
	result = aggregatePartners(boundary, contracts, now)
	require.Len(t, result, 1)
	assert.Equal(t, "active", result[0].Status)
}

func TestMemoryGetPartnerStats(t *testing.T) {
	s := newMemoryStore()
	ctx := context.Background()

	partners, err := s.GetPartnerStats(ctx, "user_1")
	require.NoError(t, err)
	require.Len(t, partners, 2)

	emails := []string{partners[0].Email, partners[1].Email}
	assert.Contains(t, emails, "demo@example.com")
	assert.Contains(t, emails, "partner@example.com")

	// The seed signatures are well past the active window.
	for _, p := range partners {
		assert.Equal(t, "inactive", p.Status)
	}

	// Signatures on other users' contracts never leak in.
	partners, err = s.GetPartnerStats(ctx, "user_2")
	require.NoError(t, err)
	assert.Empty(t, partners)
}
