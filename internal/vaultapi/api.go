// Package vaultapi is the service facade between the rpc surfaces and
// the vault ledger.
package vaultapi

import (
	"errors"
	"time"

	rpcjson "github.com/gorilla/rpc/v2/json2"

	"github.com/poolvault/vault-ledger/log"
	"github.com/poolvault/vault-ledger/mongodb"
	"github.com/poolvault/vault-ledger/params"
	"github.com/poolvault/vault-ledger/vault"
)

var (
	errEmptyAccount = newRPCError(-32097, "empty account identifier")
	errEmptyKey     = newRPCError(-32098, "empty operation key")

	ledger *vault.Ledger
)

func newRPCError(ec rpcjson.ErrorCode, message string) error {
	return &rpcjson.Error{
		Code:    ec,
		Message: message,
	}
}

// Init install the ledger instance served by this api.
func Init(l *vault.Ledger) {
	ledger = l
}

// caller fixable rejections are normal traffic, only custody or
// accounting faults deserve a warning
func logOperationFailure(msg string, err error, ctx ...interface{}) {
	if vault.IsBalanceError(err) {
		log.Info(msg, append(ctx, "err", err)...)
	} else {
		log.Warn(msg, append(ctx, "err", err)...)
	}
}

// mapLedgerError translate ledger sentinels into json-rpc errors with
// stable codes. Transfer failures keep their underlying reason.
func mapLedgerError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, vault.ErrNotAuthorized):
		return newRPCError(-32090, err.Error())
	case errors.Is(err, vault.ErrZeroAmount):
		return newRPCError(-32091, err.Error())
	case errors.Is(err, vault.ErrInsufficientShares):
		return newRPCError(-32092, err.Error())
	case errors.Is(err, vault.ErrInsufficientLiquidity):
		return newRPCError(-32093, err.Error())
	case errors.Is(err, vault.ErrTransferFailed):
		return newRPCError(-32094, err.Error())
	case errors.Is(err, vault.ErrAmountOverflow):
		return newRPCError(-32095, err.Error())
	case errors.Is(err, vault.ErrMetadataTooLong):
		return newRPCError(-32096, err.Error())
	default:
		return newRPCError(-32000, "rpcError: "+err.Error())
	}
}

// GetServerInfo api
func GetServerInfo() (*ServerInfo, error) {
	log.Debug("[api] receive GetServerInfo")
	config := params.GetConfig()
	if config == nil {
		return nil, nil
	}
	return &ServerInfo{
		Identifier:   config.Identifier,
		Owner:        ledger.Owner(),
		VaultAccount: ledger.Account(),
		CustodyMode:  config.Custody.Mode,
		Version:      params.VersionWithMeta,
	}, nil
}

// GetVaultInfo api
func GetVaultInfo() (*VaultInfo, error) {
	log.Debug("[api] receive GetVaultInfo")
	return &VaultInfo{
		TotalLiquidity: ledger.TotalLiquidity(),
		TotalShares:    ledger.TotalShares(),
		Metadata:       ledger.GetMetadata(),
	}, nil
}

// GetBalance api
func GetBalance(account string) (*BalanceInfo, error) {
	log.Debug("[api] receive GetBalance", "account", account)
	if account == "" {
		return nil, errEmptyAccount
	}
	return &BalanceInfo{
		Account: account,
		Balance: ledger.GetBalance(account),
	}, nil
}

// GetTotalLiquidity api
func GetTotalLiquidity() (uint64, error) {
	return ledger.TotalLiquidity(), nil
}

// GetTotalShares api
func GetTotalShares() (uint64, error) {
	return ledger.TotalShares(), nil
}

// GetMetadata api
func GetMetadata() (*MetadataInfo, error) {
	return ledger.GetMetadata(), nil
}

// Deposit api
func Deposit(caller string, amount uint64) (*OperationResult, error) {
	log.Info("[api] receive Deposit", "caller", caller, "amount", amount)
	if caller == "" {
		return nil, errEmptyAccount
	}
	minted, err := ledger.Deposit(caller, amount)
	if err != nil {
		logOperationFailure("[api] deposit failed", err, "caller", caller, "amount", amount)
		return nil, mapLedgerError(err)
	}
	result := &OperationResult{
		Account:        caller,
		Amount:         minted,
		Balance:        ledger.GetBalance(caller),
		TotalLiquidity: ledger.TotalLiquidity(),
		TotalShares:    ledger.TotalShares(),
	}
	addOperationToJournal(mongodb.OpTypeDeposit, result)
	return result, nil
}

// Redeem api
func Redeem(caller string, shareAmount uint64) (*OperationResult, error) {
	log.Info("[api] receive Redeem", "caller", caller, "shareAmount", shareAmount)
	if caller == "" {
		return nil, errEmptyAccount
	}
	returned, err := ledger.Redeem(caller, shareAmount)
	if err != nil {
		logOperationFailure("[api] redeem failed", err, "caller", caller, "shareAmount", shareAmount)
		return nil, mapLedgerError(err)
	}
	result := &OperationResult{
		Account:        caller,
		Amount:         returned,
		Balance:        ledger.GetBalance(caller),
		TotalLiquidity: ledger.TotalLiquidity(),
		TotalShares:    ledger.TotalShares(),
	}
	addOperationToJournal(mongodb.OpTypeRedeem, result)
	return result, nil
}

// ConfigureMetadata api
func ConfigureMetadata(args *ConfigureMetadataArgs) (*PostResult, error) {
	log.Info("[api] receive ConfigureMetadata", "caller", args.Caller)
	err := ledger.ConfigureMetadata(args.Caller, args.Name, args.Description, args.TargetAmount)
	if err != nil {
		log.Warn("[api] configure metadata failed", "caller", args.Caller, "err", err)
		return nil, mapLedgerError(err)
	}
	addMetadataChangeToJournal(args)
	return &SuccessPostResult, nil
}

// GetOperationHistory api
func GetOperationHistory(account string, offset, limit int) ([]*Operation, error) {
	log.Debug("[api] receive GetOperationHistory", "account", account, "offset", offset, "limit", limit)
	if account == "" {
		return nil, errEmptyAccount
	}
	if !mongodb.HasSession() {
		return []*Operation{}, nil
	}
	return mongodb.FindOperationHistory(account, offset, limit)
}

// GetOperation api
func GetOperation(key string) (*Operation, error) {
	log.Debug("[api] receive GetOperation", "key", key)
	if key == "" {
		return nil, errEmptyKey
	}
	if !mongodb.HasSession() {
		return nil, mongodb.ErrItemNotFound
	}
	return mongodb.FindOperation(key)
}

// GetOperationStatistics api
func GetOperationStatistics() (*OperationStatistics, error) {
	log.Debug("[api] receive GetOperationStatistics")
	stat := &OperationStatistics{}
	if !mongodb.HasSession() {
		return stat, nil
	}
	deposits, err := mongodb.CountOperations(mongodb.OpTypeDeposit)
	if err != nil {
		return nil, err
	}
	redeems, err := mongodb.CountOperations(mongodb.OpTypeRedeem)
	if err != nil {
		return nil, err
	}
	stat.TotalDeposits = deposits
	stat.TotalRedeems = redeems
	return stat, nil
}

// GetMetadataChangeHistory api
func GetMetadataChangeHistory(limit int) ([]*MetadataChange, error) {
	log.Debug("[api] receive GetMetadataChangeHistory", "limit", limit)
	if !mongodb.HasSession() {
		return []*MetadataChange{}, nil
	}
	return mongodb.FindLatestMetadataChanges(limit)
}

// journal writes never fail the already committed operation
func addOperationToJournal(opType string, result *OperationResult) {
	if !mongodb.HasSession() {
		return
	}
	err := mongodb.AddOperation(&mongodb.MgoOperation{
		Type:           opType,
		Account:        result.Account,
		Amount:         result.Amount,
		TotalShares:    result.TotalShares,
		TotalLiquidity: result.TotalLiquidity,
		Timestamp:      time.Now().Unix(),
	})
	if err != nil {
		log.Warn("[api] add operation to journal failed", "type", opType, "account", result.Account, "err", err)
	}
}

func addMetadataChangeToJournal(args *ConfigureMetadataArgs) {
	if !mongodb.HasSession() {
		return
	}
	mc := &mongodb.MgoMetadataChange{
		Caller:       args.Caller,
		TargetAmount: args.TargetAmount,
		Timestamp:    time.Now().Unix(),
	}
	if args.Name != nil {
		mc.Name = *args.Name
	}
	if args.Description != nil {
		mc.Description = *args.Description
	}
	if err := mongodb.AddMetadataChange(mc); err != nil {
		log.Warn("[api] add metadata change to journal failed", "caller", args.Caller, "err", err)
	}
}
