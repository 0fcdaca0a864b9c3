// Package worker runs the background jobs of the vault server.
package worker

import (
	"time"

	"github.com/poolvault/vault-ledger/log"
	"github.com/poolvault/vault-ledger/params"
	"github.com/poolvault/vault-ledger/rpc/client"
	"github.com/poolvault/vault-ledger/vault"
)

const interval = 10 * time.Millisecond

// BalanceQuerier can report the value actually custodied for an
// account. Both custody.Bank and custody.Remote satisfy it.
type BalanceQuerier interface {
	CustodyBalance(account string) (uint64, error)
}

var (
	auditedLedger  *vault.Ledger
	custodyQuerier BalanceQuerier
)

// StartWork start vault server work
func StartWork(ledger *vault.Ledger, querier BalanceQuerier) {
	log.Info("worker: start server worker")

	client.InitHTTPClient()
	auditedLedger = ledger
	custodyQuerier = querier

	if params.AuditEnabled() {
		go StartAuditJob()
		time.Sleep(interval)
	}

	go WatchConfigDynamically()
}
