// Package vault implements the share accounting ledger of a pooled
// deposit vault. Contributors deposit a fungible unit of value and
// receive shares redeemable 1:1 back into the deposited value.
package vault

import (
	"sync"

	"github.com/poolvault/vault-ledger/common"
	"github.com/poolvault/vault-ledger/log"
)

// Ledger is the vault share accounting state machine.
//
// Mutating operations (ConfigureMetadata, Deposit, Redeem) serialize
// through one mutex held for the operation's full duration, custody
// transfer included, so no operation ever observes another's partial
// effects. Read projections take the lock briefly and see a consistent
// snapshot.
//
// Invariants after every committed operation:
//
//	totalShares == sum of all balance entries
//	totalLiquidity == totalShares
//	no balance entry and no total is ever negative (all uint64,
//	underflow is rejected before mutation)
type Ledger struct {
	mu sync.RWMutex

	owner   string // fixed at creation, immutable
	account string // the vault's own custody account

	custodian Custodian
	store     SnapshotStore // optional

	meta           Metadata
	totalLiquidity uint64
	totalShares    uint64
	balances       map[string]uint64
}

// New creates an empty ledger owned by the given principal.
// account is the custody account the vault holds pooled value under.
func New(owner, account string, custodian Custodian) *Ledger {
	return &Ledger{
		owner:     owner,
		account:   account,
		custodian: custodian,
		balances:  make(map[string]uint64),
	}
}

// Owner return the principal authorized to configure metadata.
func (l *Ledger) Owner() string {
	return l.owner
}

// Account return the vault's custody account.
func (l *Ledger) Account() string {
	return l.account
}

// ConfigureMetadata overwrite the descriptive admin record.
// Only the vault owner may call it. A nil name or description clears
// the field. Fails with ErrNotAuthorized for any other caller and with
// ErrMetadataTooLong if a field exceeds its length limit; no field is
// changed on failure.
func (l *Ledger) ConfigureMetadata(caller string, name, description *string, targetAmount uint64) error {
	if caller != l.owner {
		return ErrNotAuthorized
	}
	if name != nil && len(*name) > MaxNameLength {
		return ErrMetadataTooLong
	}
	if description != nil && len(*description) > MaxDescriptionLength {
		return ErrMetadataTooLong
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.meta = Metadata{
		Name:         copyString(name),
		Description:  copyString(description),
		TargetAmount: targetAmount,
	}
	l.persistLocked()
	return nil
}

// Deposit move amount from the caller's custody account into the vault
// and mint the same number of shares to the caller.
//
// The custody transfer and the ledger credit are one unit: a failed
// transfer leaves the ledger untouched, and an amount that would
// overflow the accounting is rejected before any value moves.
// Returns the number of shares minted, which equals amount.
func (l *Ledger) Deposit(caller string, amount uint64) (uint64, error) {
	if amount == 0 {
		return 0, ErrZeroAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// reject overflow before moving any value
	newLiquidity, ok := common.SafeAddUint64(l.totalLiquidity, amount)
	if !ok {
		return 0, ErrAmountOverflow
	}
	newShares, ok := common.SafeAddUint64(l.totalShares, amount)
	if !ok {
		return 0, ErrAmountOverflow
	}
	newBalance, ok := common.SafeAddUint64(l.balances[caller], amount)
	if !ok {
		return 0, ErrAmountOverflow
	}

	if err := l.custodian.Transfer(caller, l.account, amount); err != nil {
		return 0, wrapTransferError(err)
	}

	l.balances[caller] = newBalance
	l.totalLiquidity = newLiquidity
	l.totalShares = newShares
	l.persistLocked()
	return amount, nil
}

// Redeem burn shareAmount of the caller's shares and move the same
// amount of value from the vault back to the caller's custody account.
//
// Validation order is fixed: zero amount, then the caller's own share
// balance, then vault wide liquidity. The liquidity check is
// unreachable while the invariants hold but guards against bookkeeping
// drift. The ledger decrements are applied before the outbound
// transfer and rolled back if the transfer fails, so a failed
// redemption leaves no observable state change.
// Returns the amount of value returned, which equals shareAmount.
func (l *Ledger) Redeem(caller string, shareAmount uint64) (uint64, error) {
	if shareAmount == 0 {
		return 0, ErrZeroAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	balance := l.balances[caller]
	newBalance, ok := common.SafeSubUint64(balance, shareAmount)
	if !ok {
		return 0, ErrInsufficientShares
	}
	newLiquidity, ok := common.SafeSubUint64(l.totalLiquidity, shareAmount)
	if !ok {
		return 0, ErrInsufficientLiquidity
	}
	newShares, ok := common.SafeSubUint64(l.totalShares, shareAmount)
	if !ok {
		return 0, ErrInsufficientLiquidity
	}

	l.setBalanceLocked(caller, newBalance)
	l.totalLiquidity = newLiquidity
	l.totalShares = newShares

	if err := l.custodian.Transfer(l.account, caller, shareAmount); err != nil {
		// compensating rollback, additions cannot overflow here
		l.setBalanceLocked(caller, balance)
		l.totalLiquidity = newLiquidity + shareAmount
		l.totalShares = newShares + shareAmount
		return 0, wrapTransferError(err)
	}

	l.persistLocked()
	return shareAmount, nil
}

// setBalanceLocked write back a balance entry without storing zero
// sentinels, absence of an entry is a zero balance.
func (l *Ledger) setBalanceLocked(account string, balance uint64) {
	if balance == 0 {
		delete(l.balances, account)
	} else {
		l.balances[account] = balance
	}
}

// GetBalance return the share balance of an account, zero if the
// account never deposited.
func (l *Ledger) GetBalance(account string) uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balances[account]
}

// TotalLiquidity return the vault's own accounting of total value held
// on behalf of all depositors.
func (l *Ledger) TotalLiquidity() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.totalLiquidity
}

// TotalShares return the total share supply.
func (l *Ledger) TotalShares() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.totalShares
}

// GetMetadata return the descriptive admin record and the owner.
func (l *Ledger) GetMetadata() *MetadataInfo {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return &MetadataInfo{
		Owner:        l.owner,
		Name:         copyString(l.meta.Name),
		Description:  copyString(l.meta.Description),
		TargetAmount: l.meta.TargetAmount,
	}
}

// CheckIntegrity verify the accounting invariants hold.
// It is used by the audit worker and after snapshot restore.
func (l *Ledger) CheckIntegrity() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return checkIntegrity(l.totalLiquidity, l.totalShares, l.balances)
}

func checkIntegrity(totalLiquidity, totalShares uint64, balances map[string]uint64) error {
	var sum uint64
	for account, balance := range balances {
		if balance == 0 {
			log.Warn("zero balance entry materialized", "account", account)
		}
		newSum, ok := common.SafeAddUint64(sum, balance)
		if !ok {
			return ErrAmountOverflow
		}
		sum = newSum
	}
	if sum != totalShares {
		return ErrLedgerCorrupt
	}
	if totalLiquidity != totalShares {
		return ErrLedgerCorrupt
	}
	return nil
}
