package vault

import (
	"encoding/json"
	"time"

	"github.com/poolvault/vault-ledger/log"
)

var snapshotKey = []byte("vault-ledger-snapshot")

// Snapshot is the persisted form of the whole ledger state.
type Snapshot struct {
	Owner          string            `json:"owner"`
	Metadata       Metadata          `json:"metadata"`
	TotalLiquidity uint64            `json:"totalLiquidity"`
	TotalShares    uint64            `json:"totalShares"`
	Balances       map[string]uint64 `json:"balances"`
	Timestamp      int64             `json:"timestamp"`
}

// SetSnapshotStore attach a persistent store. Every committed mutation
// writes a full snapshot; a write failure is logged and does not fail
// the already committed operation (the in-memory state is the source
// of truth for the life of the process).
func (l *Ledger) SetSnapshotStore(store SnapshotStore) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.store = store
	l.persistLocked()
}

// LoadSnapshot restore the last persisted state from the given store.
// It must be called before the first operation. The restored state is
// rejected with ErrLedgerCorrupt if it violates the accounting
// invariants, and with ErrSnapshotNotFound if nothing is stored.
func (l *Ledger) LoadSnapshot(store SnapshotStore) error {
	exist, err := store.Has(snapshotKey)
	if err != nil {
		return err
	}
	if !exist {
		return ErrSnapshotNotFound
	}
	data, err := store.Get(snapshotKey)
	if err != nil {
		return err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return err
	}
	if snap.Balances == nil {
		snap.Balances = make(map[string]uint64)
	}
	for account, balance := range snap.Balances {
		if balance == 0 {
			delete(snap.Balances, account)
		}
	}
	if err := checkIntegrity(snap.TotalLiquidity, snap.TotalShares, snap.Balances); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if snap.Owner != l.owner {
		// the owner is fixed by deployment config, not by the snapshot
		log.Warn("snapshot owner differs from configured owner", "snapshot", snap.Owner, "configured", l.owner)
	}
	l.meta = snap.Metadata
	l.totalLiquidity = snap.TotalLiquidity
	l.totalShares = snap.TotalShares
	l.balances = snap.Balances
	l.store = store
	log.Info("ledger snapshot restored",
		"accounts", len(snap.Balances),
		"totalLiquidity", snap.TotalLiquidity,
		"totalShares", snap.TotalShares,
		"snapshotTime", snap.Timestamp)
	return nil
}

func (l *Ledger) persistLocked() {
	if l.store == nil {
		return
	}
	balances := make(map[string]uint64, len(l.balances))
	for account, balance := range l.balances {
		balances[account] = balance
	}
	snap := &Snapshot{
		Owner:          l.owner,
		Metadata:       l.meta,
		TotalLiquidity: l.totalLiquidity,
		TotalShares:    l.totalShares,
		Balances:       balances,
		Timestamp:      time.Now().Unix(),
	}
	data, err := json.Marshal(snap)
	if err != nil {
		log.Error("marshal ledger snapshot failed", "err", err)
		return
	}
	if err := l.store.Put(snapshotKey, data); err != nil {
		log.Error("write ledger snapshot failed", "err", err)
	}
}
