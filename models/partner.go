package models

import "time"

// Partner is a derived aggregate computed from signatures at read time.
// It has no table and no persistent identity; the signer email doubles as id.
type Partner struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Company          string    `json:"company"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone,omitempty"`
	ContractsCount   int       `json:"contractsCount"`
	TotalValue       float64   `json:"totalValue"`
	LastContractDate time.Time `json:"lastContractDate"`
	Status           string    `json:"status"`
}
