package custody

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBankTransfer(t *testing.T) {
	bank := NewBank()
	assert.NoError(t, bank.Fund("alice", 1000))

	assert.NoError(t, bank.Transfer("alice", "vault", 400))

	balance, err := bank.CustodyBalance("alice")
	assert.NoError(t, err)
	assert.Equal(t, uint64(600), balance)
	balance, err = bank.CustodyBalance("vault")
	assert.NoError(t, err)
	assert.Equal(t, uint64(400), balance)
}

func TestBankTransferInsufficientFunds(t *testing.T) {
	bank := NewBank()
	assert.NoError(t, bank.Fund("alice", 100))

	err := bank.Transfer("alice", "vault", 101)
	assert.True(t, errors.Is(err, ErrInsufficientFunds))

	// a failed transfer moves nothing
	balance, _ := bank.CustodyBalance("alice")
	assert.Equal(t, uint64(100), balance)
	balance, _ = bank.CustodyBalance("vault")
	assert.Equal(t, uint64(0), balance)
}

func TestBankTransferOverflow(t *testing.T) {
	bank := NewBank()
	assert.NoError(t, bank.Fund("alice", 10))
	assert.NoError(t, bank.Fund("vault", math.MaxUint64))

	err := bank.Transfer("alice", "vault", 1)
	assert.True(t, errors.Is(err, ErrBalanceOverflow))
	balance, _ := bank.CustodyBalance("alice")
	assert.Equal(t, uint64(10), balance)
}

func TestBankTransferSameAccount(t *testing.T) {
	bank := NewBank()
	assert.NoError(t, bank.Fund("alice", 10))
	err := bank.Transfer("alice", "alice", 1)
	assert.True(t, errors.Is(err, ErrSameAccount))
}

func TestBankUnknownAccount(t *testing.T) {
	bank := NewBank()
	err := bank.Transfer("ghost", "vault", 1)
	assert.True(t, errors.Is(err, ErrInsufficientFunds))
}
