package models

import "time"

// Signature is an append-only signing record. One contract may carry
// multiple signatures.
type Signature struct {
	ID          string    `gorm:"column:id;primaryKey"        json:"id"`
	ContractID  string    `gorm:"column:contract_id;index"    json:"contractId"`
	SignerName  string    `gorm:"column:signer_name"          json:"signerName"`
	SignerEmail string    `gorm:"column:signer_email;index"   json:"signerEmail"`
	SignedAt    time.Time `gorm:"column:signed_at"            json:"signedAt"`
	Signature   string    `gorm:"column:signature;type:text"  json:"signature"`
	IPAddress   string    `gorm:"column:ip_address"           json:"ipAddress,omitempty"`
	UserAgent   string    `gorm:"column:user_agent"           json:"userAgent,omitempty"`
}

func (Signature) TableName() string { return "signatures" }
