package store

import (
	"sort"
	"strings"
	"time"

	"github.com/YTU94/ai-e-contract/models"
)

// partnerActiveWindow is how recently a partner must have signed to count
// as active.
const partnerActiveWindow = 30 * 24 * time.Hour

// aggregatePartners groups signatures by signer email into partner records.
// Both backends share this after fetching the raw rows, so the behavior is
// identical regardless of where the data lives.
func aggregatePartners(signatures []models.Signature, contracts map[string]*models.Contract, now time.Time) []models.Partner {
	partners := make(map[string]*models.Partner)
	order := make([]string, 0)

	for i := range signatures {
		sig := &signatures[i]
		p, ok := partners[sig.SignerEmail]
		if !ok {
			p = &models.Partner{
				ID:               sig.SignerEmail,
				Name:             sig.SignerName,
				Company:          firstWord(sig.SignerName) + " 公司",
				Email:            sig.SignerEmail,
				LastContractDate: sig.SignedAt,
				Status:           "active",
			}
			partners[sig.SignerEmail] = p
			order = append(order, sig.SignerEmail)
		}

		p.ContractsCount++

		if c := contracts[sig.ContractID]; c != nil {
			if v, ok := c.Metadata.Float("totalValue"); ok {
				p.TotalValue += v
			}
		}

		if sig.SignedAt.After(p.LastContractDate) {
			p.LastContractDate = sig.SignedAt
		}
	}

	result := make([]models.Partner, 0, len(order))
	for _, email := range order {
		p := partners[email]
		if now.Sub(p.LastContractDate) <= partnerActiveWindow {
			p.Status = "active"
		} else {
			p.Status = "inactive"
		}
		result = append(result, *p)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].ContractsCount > result[j].ContractsCount
	})
	return result
}

func firstWord(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return name
	}
	return fields[0]
}
