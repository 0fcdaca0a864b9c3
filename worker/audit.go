package worker

import (
	"fmt"
	"time"

	"github.com/poolvault/vault-ledger/log"
	"github.com/poolvault/vault-ledger/params"
	"github.com/poolvault/vault-ledger/tools"
)

// StartAuditJob periodically verify the accounting invariants and the
// vault's solvency against its custody balance. Findings are always
// logged; configured receivers additionally get an email alert.
func StartAuditJob() {
	log.Info("start audit job", "cycle", params.GetAuditCycle())
	for {
		auditOnce()
		time.Sleep(time.Duration(params.GetAuditCycle()) * time.Second)
	}
}

func auditOnce() {
	totalLiquidity := auditedLedger.TotalLiquidity()
	totalShares := auditedLedger.TotalShares()

	if err := auditedLedger.CheckIntegrity(); err != nil {
		reportAuditFinding("vault ledger integrity check failed",
			fmt.Sprintf("integrity check error: %v\ntotalLiquidity: %v\ntotalShares: %v", err, totalLiquidity, totalShares))
		return
	}

	custodyBalance, err := custodyQuerier.CustodyBalance(auditedLedger.Account())
	if err != nil {
		log.Warn("audit: query custody balance failed", "account", auditedLedger.Account(), "err", err)
		return
	}

	// the ledger must never promise more value than is custodied
	if totalLiquidity > custodyBalance {
		shortfall := totalLiquidity - custodyBalance
		detail := fmt.Sprintf("totalLiquidity: %v\ncustodyBalance: %v\nshortfall: %v", totalLiquidity, custodyBalance, shortfall)
		if shortfall < getAlertThreshold() {
			log.Warn("audit: liquidity shortfall below alert threshold", "detail", detail)
		} else {
			reportAuditFinding("vault ledger over-promises liquidity", detail)
		}
		return
	}

	log.Info("audit pass",
		"totalLiquidity", totalLiquidity,
		"totalShares", totalShares,
		"custodyBalance", custodyBalance)
}

func getAlertThreshold() uint64 {
	audit := params.GetConfig().Audit
	if audit == nil {
		return 0
	}
	return audit.AlertThreshold
}

func reportAuditFinding(subject, content string) {
	log.Error("audit finding", "subject", subject, "detail", content)

	audit := params.GetConfig().Audit
	if audit == nil || len(audit.AlertReceiver) == 0 {
		return
	}
	subject = fmt.Sprintf("[%v] %v", params.GetIdentifier(), subject)
	if err := tools.SendEmail(audit.AlertReceiver, nil, subject, content); err != nil {
		log.Warn("send audit alert email failed", "err", err)
	}
}
