package vaultapi

import (
	"github.com/poolvault/vault-ledger/mongodb"
	"github.com/poolvault/vault-ledger/vault"
)

// Operation type alias
type Operation = mongodb.MgoOperation

// MetadataChange type alias
type MetadataChange = mongodb.MgoMetadataChange

// MetadataInfo type alias
type MetadataInfo = vault.MetadataInfo

// ServerInfo server info
type ServerInfo struct {
	Identifier   string `json:"identifier"`
	Owner        string `json:"owner"`
	VaultAccount string `json:"vaultAccount"`
	CustodyMode  string `json:"custodyMode"`
	Version      string `json:"version"`
}

// VaultInfo totals of the ledger and its admin record
type VaultInfo struct {
	TotalLiquidity uint64        `json:"totalLiquidity"`
	TotalShares    uint64        `json:"totalShares"`
	Metadata       *MetadataInfo `json:"metadata"`
}

// BalanceInfo one account's share balance
type BalanceInfo struct {
	Account string `json:"account"`
	Balance uint64 `json:"balance"`
}

// OperationResult result of a committed deposit or redemption
type OperationResult struct {
	Account        string `json:"account"`
	Amount         uint64 `json:"amount"`
	Balance        uint64 `json:"balance"`
	TotalLiquidity uint64 `json:"totalLiquidity"`
	TotalShares    uint64 `json:"totalShares"`
}

// OperationStatistics journal entry counts per operation type
type OperationStatistics struct {
	TotalDeposits int `json:"totalDeposits"`
	TotalRedeems  int `json:"totalRedeems"`
}

// PostResult post result
type PostResult string

// SuccessPostResult success post result
var SuccessPostResult PostResult = "Success"

// ConfigureMetadataArgs arguments of the configureMetadata operation
type ConfigureMetadataArgs struct {
	Caller       string  `json:"caller"`
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	TargetAmount uint64  `json:"targetAmount"`
}
