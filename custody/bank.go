// Package custody provides implementations of the vault's external
// value-transfer capability.
package custody

import (
	"errors"
	"sync"

	"github.com/poolvault/vault-ledger/common"
	"github.com/poolvault/vault-ledger/log"
)

// common errors
var (
	ErrInsufficientFunds = errors.New("insufficient custody funds")
	ErrBalanceOverflow   = errors.New("custody balance overflow")
	ErrSameAccount       = errors.New("transfer from and to the same account")
)

// Bank is an in-process custodian holding its own account table.
// Each transfer either fully moves the amount or fails without
// touching any balance. It backs local deployments and tests.
type Bank struct {
	mu       sync.Mutex
	accounts map[string]uint64
}

// NewBank create an empty custody bank.
func NewBank() *Bank {
	return &Bank{
		accounts: make(map[string]uint64),
	}
}

// Fund credit an account, e.g. to seed depositors in local mode.
func (b *Bank) Fund(account string, amount uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	newBalance, ok := common.SafeAddUint64(b.accounts[account], amount)
	if !ok {
		return ErrBalanceOverflow
	}
	b.accounts[account] = newBalance
	return nil
}

// Transfer move amount between two custody accounts atomically.
func (b *Bank) Transfer(from, to string, amount uint64) error {
	if from == to {
		return ErrSameAccount
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	newFrom, ok := common.SafeSubUint64(b.accounts[from], amount)
	if !ok {
		return ErrInsufficientFunds
	}
	newTo, ok := common.SafeAddUint64(b.accounts[to], amount)
	if !ok {
		return ErrBalanceOverflow
	}

	b.accounts[from] = newFrom
	b.accounts[to] = newTo
	log.Trace("custody transfer done", "from", from, "to", to, "amount", amount)
	return nil
}

// CustodyBalance return the balance held for an account.
func (b *Bank) CustodyBalance(account string) (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.accounts[account], nil
}
