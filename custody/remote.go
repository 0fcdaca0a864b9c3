package custody

import (
	"errors"
	"fmt"

	"github.com/poolvault/vault-ledger/log"
	"github.com/poolvault/vault-ledger/rpc/client"
)

// Remote forwards transfers to an external custody gateway over
// JSON-RPC. The gateway is trusted to apply each transfer atomically;
// any error reply or transport failure counts as a failed transfer
// and the caller must not assume value moved.
type Remote struct {
	gatewayURL string
	timeout    int // seconds
}

// NewRemote create a custodian forwarding to the given gateway url.
func NewRemote(gatewayURL string, timeoutSeconds int) *Remote {
	if timeoutSeconds <= 0 {
		timeoutSeconds = 60
	}
	return &Remote{
		gatewayURL: gatewayURL,
		timeout:    timeoutSeconds,
	}
}

type transferArgs struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount uint64 `json:"amount"`
}

// Transfer call the gateway's custody_transfer method.
func (r *Remote) Transfer(from, to string, amount uint64) error {
	if from == to {
		return ErrSameAccount
	}
	var result string
	args := &transferArgs{From: from, To: to, Amount: amount}
	err := client.RPCPostWithTimeout(&result, r.timeout, r.gatewayURL, "custody_transfer", args)
	if err != nil {
		log.Warn("remote custody transfer failed", "from", from, "to", to, "amount", amount, "err", err)
		return err
	}
	if result != "Success" {
		return fmt.Errorf("custody gateway replied %q", result)
	}
	return nil
}

// CustodyBalance query the gateway for an account's custody balance.
func (r *Remote) CustodyBalance(account string) (uint64, error) {
	var result uint64
	err := client.RPCPostWithTimeout(&result, r.timeout, r.gatewayURL, "custody_balance", account)
	if err != nil {
		return 0, errors.New("custody balance query failed: " + err.Error())
	}
	return result, nil
}
