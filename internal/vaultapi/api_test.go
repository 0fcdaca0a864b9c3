package vaultapi

import (
	"testing"

	rpcjson "github.com/gorilla/rpc/v2/json2"
	"github.com/stretchr/testify/assert"

	"github.com/poolvault/vault-ledger/custody"
	"github.com/poolvault/vault-ledger/params"
	"github.com/poolvault/vault-ledger/vault"
)

const (
	testOwner   = "vault-admin"
	testAccount = "vault-custody"
)

func setupTestAPI(t *testing.T) *custody.Bank {
	t.Helper()
	params.SetConfig(&params.VaultServerConfig{
		Identifier: "PoolVaultTest",
		Vault:      &params.VaultConfig{Owner: testOwner, Account: testAccount},
		Custody:    &params.CustodyConfig{Mode: params.CustodyModeBank},
		APIServer:  &params.APIServerConfig{Port: 11556},
	})
	bank := custody.NewBank()
	assert.NoError(t, bank.Fund("alice", 1000000000))
	Init(vault.New(testOwner, testAccount, bank))
	return bank
}

func rpcErrorCode(t *testing.T, err error) rpcjson.ErrorCode {
	t.Helper()
	rpcErr, ok := err.(*rpcjson.Error)
	assert.True(t, ok, "expect *rpcjson.Error, got %T", err)
	return rpcErr.Code
}

func TestServerInfo(t *testing.T) {
	setupTestAPI(t)

	info, err := GetServerInfo()
	assert.NoError(t, err)
	assert.Equal(t, "PoolVaultTest", info.Identifier)
	assert.Equal(t, testOwner, info.Owner)
	assert.Equal(t, testAccount, info.VaultAccount)
	assert.Equal(t, params.CustodyModeBank, info.CustodyMode)
}

func TestDepositAndRedeemThroughAPI(t *testing.T) {
	bank := setupTestAPI(t)

	result, err := Deposit("alice", 100000000)
	assert.NoError(t, err)
	assert.Equal(t, uint64(100000000), result.Amount)
	assert.Equal(t, uint64(100000000), result.Balance)
	assert.Equal(t, uint64(100000000), result.TotalLiquidity)
	assert.Equal(t, uint64(100000000), result.TotalShares)

	custodied, err := bank.CustodyBalance(testAccount)
	assert.NoError(t, err)
	assert.Equal(t, uint64(100000000), custodied)

	result, err = Redeem("alice", 40000000)
	assert.NoError(t, err)
	assert.Equal(t, uint64(40000000), result.Amount)
	assert.Equal(t, uint64(60000000), result.Balance)
	assert.Equal(t, uint64(60000000), result.TotalShares)

	balance, err := GetBalance("alice")
	assert.NoError(t, err)
	assert.Equal(t, uint64(60000000), balance.Balance)
}

func TestAPIErrorCodes(t *testing.T) {
	setupTestAPI(t)

	_, err := Deposit("alice", 0)
	assert.Equal(t, rpcjson.ErrorCode(-32091), rpcErrorCode(t, err))

	_, err = Redeem("alice", 10)
	assert.Equal(t, rpcjson.ErrorCode(-32092), rpcErrorCode(t, err))

	// alice has custody funds but bob has none, the transfer fails
	_, err = Deposit("bob", 10)
	assert.Equal(t, rpcjson.ErrorCode(-32094), rpcErrorCode(t, err))

	_, err = ConfigureMetadata(&ConfigureMetadataArgs{Caller: "mallory"})
	assert.Equal(t, rpcjson.ErrorCode(-32090), rpcErrorCode(t, err))

	_, err = Deposit("", 10)
	assert.Equal(t, rpcjson.ErrorCode(-32097), rpcErrorCode(t, err))
}

func TestConfigureMetadataThroughAPI(t *testing.T) {
	setupTestAPI(t)

	name := "Alpha Pool"
	result, err := ConfigureMetadata(&ConfigureMetadataArgs{
		Caller:       testOwner,
		Name:         &name,
		TargetAmount: 5000000,
	})
	assert.NoError(t, err)
	assert.Equal(t, SuccessPostResult, *result)

	meta, err := GetMetadata()
	assert.NoError(t, err)
	assert.Equal(t, "Alpha Pool", *meta.Name)
	assert.Equal(t, uint64(5000000), meta.TargetAmount)
}

func TestOperationHistoryWithoutJournal(t *testing.T) {
	setupTestAPI(t)

	// no mongodb session in tests, history is empty but not an error
	history, err := GetOperationHistory("alice", 0, 20)
	assert.NoError(t, err)
	assert.Len(t, history, 0)
}
