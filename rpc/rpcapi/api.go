// Package rpcapi provides the JSON-RPC service methods.
package rpcapi

import (
	"net/http"

	"github.com/poolvault/vault-ledger/internal/vaultapi"
	"github.com/poolvault/vault-ledger/params"
)

// RPCAPI rpc api handler
type RPCAPI struct{}

// RPCNullArgs null args
type RPCNullArgs struct{}

// AccountArgs account identifier argument
type AccountArgs struct {
	Account string `json:"account"`
}

// AmountArgs caller and amount arguments
type AmountArgs struct {
	Caller string `json:"caller"`
	Amount uint64 `json:"amount"`
}

// HistoryArgs account history arguments
type HistoryArgs struct {
	Account string `json:"account"`
	Offset  int    `json:"offset"`
	Limit   int    `json:"limit"`
}

// GetVersionInfo api
func (s *RPCAPI) GetVersionInfo(r *http.Request, args *RPCNullArgs, result *string) error {
	*result = params.VersionWithMeta
	return nil
}

// GetServerInfo api
func (s *RPCAPI) GetServerInfo(r *http.Request, args *RPCNullArgs, result *vaultapi.ServerInfo) error {
	res, err := vaultapi.GetServerInfo()
	if err == nil && res != nil {
		*result = *res
	}
	return err
}

// GetVaultInfo api
func (s *RPCAPI) GetVaultInfo(r *http.Request, args *RPCNullArgs, result *vaultapi.VaultInfo) error {
	res, err := vaultapi.GetVaultInfo()
	if err == nil && res != nil {
		*result = *res
	}
	return err
}

// GetBalance api
func (s *RPCAPI) GetBalance(r *http.Request, args *AccountArgs, result *vaultapi.BalanceInfo) error {
	res, err := vaultapi.GetBalance(args.Account)
	if err == nil && res != nil {
		*result = *res
	}
	return err
}

// GetTotalLiquidity api
func (s *RPCAPI) GetTotalLiquidity(r *http.Request, args *RPCNullArgs, result *uint64) error {
	res, err := vaultapi.GetTotalLiquidity()
	if err == nil {
		*result = res
	}
	return err
}

// GetTotalShares api
func (s *RPCAPI) GetTotalShares(r *http.Request, args *RPCNullArgs, result *uint64) error {
	res, err := vaultapi.GetTotalShares()
	if err == nil {
		*result = res
	}
	return err
}

// GetMetadata api
func (s *RPCAPI) GetMetadata(r *http.Request, args *RPCNullArgs, result *vaultapi.MetadataInfo) error {
	res, err := vaultapi.GetMetadata()
	if err == nil && res != nil {
		*result = *res
	}
	return err
}

// Deposit api
func (s *RPCAPI) Deposit(r *http.Request, args *AmountArgs, result *vaultapi.OperationResult) error {
	res, err := vaultapi.Deposit(args.Caller, args.Amount)
	if err == nil && res != nil {
		*result = *res
	}
	return err
}

// Redeem api
func (s *RPCAPI) Redeem(r *http.Request, args *AmountArgs, result *vaultapi.OperationResult) error {
	res, err := vaultapi.Redeem(args.Caller, args.Amount)
	if err == nil && res != nil {
		*result = *res
	}
	return err
}

// ConfigureMetadata api
func (s *RPCAPI) ConfigureMetadata(r *http.Request, args *vaultapi.ConfigureMetadataArgs, result *vaultapi.PostResult) error {
	res, err := vaultapi.ConfigureMetadata(args)
	if err == nil && res != nil {
		*result = *res
	}
	return err
}

// KeyArgs journal entry key argument
type KeyArgs struct {
	Key string `json:"key"`
}

// LimitArgs paging limit argument
type LimitArgs struct {
	Limit int `json:"limit"`
}

// GetOperation api
func (s *RPCAPI) GetOperation(r *http.Request, args *KeyArgs, result *vaultapi.Operation) error {
	res, err := vaultapi.GetOperation(args.Key)
	if err == nil && res != nil {
		*result = *res
	}
	return err
}

// GetOperationStatistics api
func (s *RPCAPI) GetOperationStatistics(r *http.Request, args *RPCNullArgs, result *vaultapi.OperationStatistics) error {
	res, err := vaultapi.GetOperationStatistics()
	if err == nil && res != nil {
		*result = *res
	}
	return err
}

// GetMetadataChangeHistory api
func (s *RPCAPI) GetMetadataChangeHistory(r *http.Request, args *LimitArgs, result *[]*vaultapi.MetadataChange) error {
	res, err := vaultapi.GetMetadataChangeHistory(args.Limit)
	if err == nil && res != nil {
		*result = res
	}
	return err
}

// GetOperationHistory api
func (s *RPCAPI) GetOperationHistory(r *http.Request, args *HistoryArgs, result *[]*vaultapi.Operation) error {
	limit := args.Limit
	if limit == 0 {
		limit = 20
	}
	res, err := vaultapi.GetOperationHistory(args.Account, args.Offset, limit)
	if err == nil && res != nil {
		*result = res
	}
	return err
}
