package mongodb

const (
	tbOperations      string = "VaultOperations"
	tbMetadataChanges string = "MetadataChanges"
)

// operation types of journal entries
const (
	OpTypeDeposit string = "deposit"
	OpTypeRedeem  string = "redeem"
)

// MgoOperation is a committed deposit or redemption.
// TotalShares and TotalLiquidity are the ledger totals after the
// operation committed, so the journal doubles as an audit trail.
type MgoOperation struct {
	Key            string `bson:"_id"`
	Type           string `bson:"type"`
	Account        string `bson:"account"`
	Amount         uint64 `bson:"amount"`
	TotalShares    uint64 `bson:"totalshares"`
	TotalLiquidity uint64 `bson:"totalliquidity"`
	Timestamp      int64  `bson:"timestamp"`
}

// MgoMetadataChange is a committed metadata configuration.
type MgoMetadataChange struct {
	Key          string `bson:"_id"`
	Caller       string `bson:"caller"`
	Name         string `bson:"name,omitempty"`
	Description  string `bson:"description,omitempty"`
	TargetAmount uint64 `bson:"targetamount"`
	Timestamp    int64  `bson:"timestamp"`
}
