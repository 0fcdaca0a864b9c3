package vault

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	testOwner   = "vault-admin"
	testAccount = "vault-custody"
)

// stubCustodian records transfer calls and fails on demand.
type stubCustodian struct {
	mu       sync.Mutex
	calls    int
	failWith error
}

func (c *stubCustodian) Transfer(from, to string, amount uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return c.failWith
}

func newTestLedger() (*Ledger, *stubCustodian) {
	custodian := &stubCustodian{}
	return New(testOwner, testAccount, custodian), custodian
}

func TestDeposit(t *testing.T) {
	ledger, custodian := newTestLedger()

	minted, err := ledger.Deposit("alice", 100000000)
	assert.NoError(t, err)
	assert.Equal(t, uint64(100000000), minted)
	assert.Equal(t, uint64(100000000), ledger.GetBalance("alice"))
	assert.Equal(t, uint64(100000000), ledger.TotalLiquidity())
	assert.Equal(t, uint64(100000000), ledger.TotalShares())
	assert.Equal(t, 1, custodian.calls)
}

func TestDepositThenRedeem(t *testing.T) {
	ledger, _ := newTestLedger()

	_, err := ledger.Deposit("alice", 100000000)
	assert.NoError(t, err)
	_, err = ledger.Deposit("bob", 50000000)
	assert.NoError(t, err)

	returned, err := ledger.Redeem("bob", 25000000)
	assert.NoError(t, err)
	assert.Equal(t, uint64(25000000), returned)
	assert.Equal(t, uint64(25000000), ledger.GetBalance("bob"))
	assert.Equal(t, uint64(100000000), ledger.GetBalance("alice"))
	assert.Equal(t, uint64(125000000), ledger.TotalLiquidity())
	assert.Equal(t, uint64(125000000), ledger.TotalShares())
	assert.NoError(t, ledger.CheckIntegrity())
}

func TestRoundTrip(t *testing.T) {
	ledger, _ := newTestLedger()

	_, err := ledger.Deposit("alice", 700)
	assert.NoError(t, err)

	_, err = ledger.Deposit("carol", 12345)
	assert.NoError(t, err)
	_, err = ledger.Redeem("carol", 12345)
	assert.NoError(t, err)

	assert.Equal(t, uint64(0), ledger.GetBalance("carol"))
	assert.Equal(t, uint64(700), ledger.TotalLiquidity())
	assert.Equal(t, uint64(700), ledger.TotalShares())
	// a fully redeemed account leaves no zero sentinel behind
	_, exist := ledger.balances["carol"]
	assert.False(t, exist)
}

func TestZeroAmount(t *testing.T) {
	ledger, custodian := newTestLedger()

	_, err := ledger.Deposit("alice", 0)
	assert.True(t, errors.Is(err, ErrZeroAmount))
	_, err = ledger.Redeem("alice", 0)
	assert.True(t, errors.Is(err, ErrZeroAmount))

	// no transfer may be attempted for a rejected amount
	assert.Equal(t, 0, custodian.calls)
	assert.Equal(t, uint64(0), ledger.TotalShares())
	assert.Equal(t, uint64(0), ledger.TotalLiquidity())
}

func TestRedeemInsufficientShares(t *testing.T) {
	ledger, custodian := newTestLedger()

	_, err := ledger.Deposit("carol", 10000000)
	assert.NoError(t, err)

	_, err = ledger.Redeem("carol", 20000000)
	assert.True(t, errors.Is(err, ErrInsufficientShares))
	assert.Equal(t, uint64(10000000), ledger.GetBalance("carol"))
	assert.Equal(t, uint64(10000000), ledger.TotalLiquidity())
	assert.Equal(t, 1, custodian.calls) // only the deposit transferred
}

func TestRedeemInsufficientLiquidity(t *testing.T) {
	ledger, _ := newTestLedger()

	_, err := ledger.Deposit("alice", 500)
	assert.NoError(t, err)

	// force bookkeeping drift to reach the defense in depth check
	ledger.mu.Lock()
	ledger.totalLiquidity = 100
	ledger.mu.Unlock()

	_, err = ledger.Redeem("alice", 500)
	assert.True(t, errors.Is(err, ErrInsufficientLiquidity))
	assert.Equal(t, uint64(500), ledger.GetBalance("alice"))
}

func TestRedeemErrorOrdering(t *testing.T) {
	ledger, _ := newTestLedger()

	_, err := ledger.Deposit("alice", 100)
	assert.NoError(t, err)

	// zero amount wins over everything
	_, err = ledger.Redeem("nobody", 0)
	assert.True(t, errors.Is(err, ErrZeroAmount))

	// both the caller's balance and total liquidity are exceeded,
	// the caller's own balance must be reported first
	_, err = ledger.Redeem("alice", 1000)
	assert.True(t, errors.Is(err, ErrInsufficientShares))

	// balance covers the amount but drifted liquidity does not
	ledger.mu.Lock()
	ledger.totalLiquidity = 50
	ledger.mu.Unlock()
	_, err = ledger.Redeem("alice", 100)
	assert.True(t, errors.Is(err, ErrInsufficientLiquidity))
}

func TestDepositTransferFailure(t *testing.T) {
	ledger, custodian := newTestLedger()
	custodian.failWith = errors.New("custody account frozen")

	_, err := ledger.Deposit("alice", 100)
	assert.True(t, IsTransferFailed(err))
	assert.Contains(t, err.Error(), "custody account frozen")

	assert.Equal(t, uint64(0), ledger.GetBalance("alice"))
	assert.Equal(t, uint64(0), ledger.TotalLiquidity())
	assert.Equal(t, uint64(0), ledger.TotalShares())
}

func TestRedeemTransferFailureRollsBack(t *testing.T) {
	ledger, custodian := newTestLedger()

	_, err := ledger.Deposit("alice", 300)
	assert.NoError(t, err)

	custodian.failWith = errors.New("gateway unreachable")
	_, err = ledger.Redeem("alice", 200)
	assert.True(t, IsTransferFailed(err))

	// the speculative decrements must not survive the failed transfer
	assert.Equal(t, uint64(300), ledger.GetBalance("alice"))
	assert.Equal(t, uint64(300), ledger.TotalLiquidity())
	assert.Equal(t, uint64(300), ledger.TotalShares())
	assert.NoError(t, ledger.CheckIntegrity())
}

func TestDepositOverflow(t *testing.T) {
	ledger, custodian := newTestLedger()

	_, err := ledger.Deposit("alice", math.MaxUint64)
	assert.NoError(t, err)

	transfersBefore := custodian.calls
	_, err = ledger.Deposit("bob", 1)
	assert.True(t, errors.Is(err, ErrAmountOverflow))
	// overflow is rejected before any value moves
	assert.Equal(t, transfersBefore, custodian.calls)
	assert.Equal(t, uint64(0), ledger.GetBalance("bob"))
	assert.Equal(t, uint64(math.MaxUint64), ledger.TotalShares())
}

func TestConfigureMetadata(t *testing.T) {
	ledger, _ := newTestLedger()

	name := "Alpha Pool"
	description := "pooled deposits"
	err := ledger.ConfigureMetadata(testOwner, &name, &description, 1000000)
	assert.NoError(t, err)

	meta := ledger.GetMetadata()
	assert.Equal(t, testOwner, meta.Owner)
	assert.Equal(t, "Alpha Pool", *meta.Name)
	assert.Equal(t, "pooled deposits", *meta.Description)
	assert.Equal(t, uint64(1000000), meta.TargetAmount)

	// clearing works and does not touch balances or totals
	err = ledger.ConfigureMetadata(testOwner, nil, nil, 0)
	assert.NoError(t, err)
	meta = ledger.GetMetadata()
	assert.Nil(t, meta.Name)
	assert.Nil(t, meta.Description)
	assert.Equal(t, uint64(0), ledger.TotalShares())
}

func TestConfigureMetadataNotAuthorized(t *testing.T) {
	ledger, _ := newTestLedger()

	name := "original"
	assert.NoError(t, ledger.ConfigureMetadata(testOwner, &name, nil, 7))

	evil := "hijacked"
	err := ledger.ConfigureMetadata("mallory", &evil, nil, 0)
	assert.True(t, errors.Is(err, ErrNotAuthorized))

	meta := ledger.GetMetadata()
	assert.Equal(t, "original", *meta.Name)
	assert.Equal(t, uint64(7), meta.TargetAmount)
}

func TestConfigureMetadataTooLong(t *testing.T) {
	ledger, _ := newTestLedger()

	longName := string(make([]byte, MaxNameLength+1))
	err := ledger.ConfigureMetadata(testOwner, &longName, nil, 0)
	assert.True(t, errors.Is(err, ErrMetadataTooLong))

	longDescription := string(make([]byte, MaxDescriptionLength+1))
	err = ledger.ConfigureMetadata(testOwner, nil, &longDescription, 0)
	assert.True(t, errors.Is(err, ErrMetadataTooLong))
}

func TestReadsAreRepeatable(t *testing.T) {
	ledger, _ := newTestLedger()
	_, err := ledger.Deposit("alice", 42)
	assert.NoError(t, err)

	assert.Equal(t, ledger.GetBalance("alice"), ledger.GetBalance("alice"))
	assert.Equal(t, ledger.TotalShares(), ledger.TotalShares())
	assert.Equal(t, ledger.TotalLiquidity(), ledger.TotalLiquidity())
	assert.Equal(t, ledger.GetMetadata(), ledger.GetMetadata())
}

func TestConcurrentOperations(t *testing.T) {
	ledger, _ := newTestLedger()

	const workers = 8
	const rounds = 200

	var wg sync.WaitGroup
	accounts := []string{"acc0", "acc1", "acc2", "acc3", "acc4", "acc5", "acc6", "acc7"}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(account string) {
			defer wg.Done()
			for j := 0; j < rounds; j++ {
				_, err := ledger.Deposit(account, 10)
				assert.NoError(t, err)
				if j%2 == 0 {
					_, err = ledger.Redeem(account, 10)
					assert.NoError(t, err)
				}
				_ = ledger.GetBalance(account)
				_ = ledger.TotalShares()
			}
		}(accounts[i])
	}
	wg.Wait()

	// every account deposited rounds*10 and redeemed rounds/2*10
	perAccount := uint64(rounds*10 - (rounds/2)*10)
	var expectTotal uint64
	for _, account := range accounts {
		assert.Equal(t, perAccount, ledger.GetBalance(account))
		expectTotal += perAccount
	}
	assert.Equal(t, expectTotal, ledger.TotalShares())
	assert.Equal(t, expectTotal, ledger.TotalLiquidity())
	assert.NoError(t, ledger.CheckIntegrity())
}
