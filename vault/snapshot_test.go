package vault

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type memStore struct {
	data map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (s *memStore) Put(key, value []byte) error {
	s.data[string(key)] = value
	return nil
}

func (s *memStore) Get(key []byte) ([]byte, error) {
	return s.data[string(key)], nil
}

func (s *memStore) Has(key []byte) (bool, error) {
	_, exist := s.data[string(key)]
	return exist, nil
}

func TestSnapshotRoundTrip(t *testing.T) {
	store := newMemStore()

	ledger, _ := newTestLedger()
	ledger.SetSnapshotStore(store)

	_, err := ledger.Deposit("alice", 1000)
	assert.NoError(t, err)
	_, err = ledger.Deposit("bob", 250)
	assert.NoError(t, err)
	_, err = ledger.Redeem("bob", 50)
	assert.NoError(t, err)
	name := "Alpha Pool"
	assert.NoError(t, ledger.ConfigureMetadata(testOwner, &name, nil, 5000))

	restored, _ := newTestLedger()
	assert.NoError(t, restored.LoadSnapshot(store))
	assert.Equal(t, uint64(1000), restored.GetBalance("alice"))
	assert.Equal(t, uint64(200), restored.GetBalance("bob"))
	assert.Equal(t, uint64(1200), restored.TotalLiquidity())
	assert.Equal(t, uint64(1200), restored.TotalShares())
	assert.Equal(t, "Alpha Pool", *restored.GetMetadata().Name)
	assert.NoError(t, restored.CheckIntegrity())
}

func TestSnapshotNotFound(t *testing.T) {
	ledger, _ := newTestLedger()
	err := ledger.LoadSnapshot(newMemStore())
	assert.True(t, errors.Is(err, ErrSnapshotNotFound))
}

func TestSnapshotCorruptRejected(t *testing.T) {
	store := newMemStore()

	ledger, _ := newTestLedger()
	ledger.SetSnapshotStore(store)
	_, err := ledger.Deposit("alice", 100)
	assert.NoError(t, err)

	// tamper with the stored totals
	data := store.data[string(snapshotKey)]
	tampered := []byte(`{"owner":"vault-admin","totalLiquidity":999,"totalShares":100,"balances":{"alice":100}}`)
	assert.NotEqual(t, string(data), string(tampered))
	store.data[string(snapshotKey)] = tampered

	restored, _ := newTestLedger()
	err = restored.LoadSnapshot(store)
	assert.True(t, errors.Is(err, ErrLedgerCorrupt))
	// a rejected snapshot must leave the fresh ledger untouched
	assert.Equal(t, uint64(0), restored.TotalShares())
}
