package vault

// metadata field limits
const (
	MaxNameLength        = 64
	MaxDescriptionLength = 256
)

// Metadata is the descriptive admin record of the vault.
// Name and Description are optional, nil means unset.
// None of these fields is ever read by the deposit/redeem logic.
type Metadata struct {
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	TargetAmount uint64  `json:"targetAmount"`
}

// MetadataInfo is the read projection of the admin record,
// extended with the immutable vault owner.
type MetadataInfo struct {
	Owner        string  `json:"owner"`
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	TargetAmount uint64  `json:"targetAmount"`
}

// Custodian is the external value-transfer capability.
// A call either fully moves amount from one custody account to the
// other or fails without moving anything. Calling it twice moves value
// twice, so the ledger calls it exactly once per deposit/redeem attempt.
type Custodian interface {
	Transfer(from, to string, amount uint64) error
}

// SnapshotStore persists encoded ledger snapshots.
// *leveldb.Database satisfies this interface.
type SnapshotStore interface {
	Put(key []byte, value []byte) error
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
