package restapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/poolvault/vault-ledger/custody"
	"github.com/poolvault/vault-ledger/internal/vaultapi"
	"github.com/poolvault/vault-ledger/params"
	"github.com/poolvault/vault-ledger/vault"
)

func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()
	params.SetConfig(&params.VaultServerConfig{
		Identifier: "PoolVaultTest",
		Vault:      &params.VaultConfig{Owner: "vault-admin", Account: "vault-custody"},
		Custody:    &params.CustodyConfig{Mode: params.CustodyModeBank},
		APIServer:  &params.APIServerConfig{Port: 11556},
	})
	bank := custody.NewBank()
	assert.NoError(t, bank.Fund("alice", 500000))
	vaultapi.Init(vault.New("vault-admin", "vault-custody", bank))

	r := mux.NewRouter()
	r.HandleFunc("/serverinfo", ServerInfoHandler).Methods("GET")
	r.HandleFunc("/balance/{account}", BalanceHandler).Methods("GET")
	r.HandleFunc("/deposit/{account}/{amount}", DepositHandler).Methods("POST")
	r.HandleFunc("/redeem/{account}/{amount}", RedeemHandler).Methods("POST")
	return r
}

func doRequest(t *testing.T, router *mux.Router, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestDepositAndBalanceHandlers(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, "POST", "/deposit/alice/300000")
	assert.Equal(t, http.StatusOK, rec.Code)

	var result vaultapi.OperationResult
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, uint64(300000), result.Amount)
	assert.Equal(t, uint64(300000), result.TotalShares)

	rec = doRequest(t, router, "GET", "/balance/alice")
	assert.Equal(t, http.StatusOK, rec.Code)

	var balance vaultapi.BalanceInfo
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &balance))
	assert.Equal(t, uint64(300000), balance.Balance)
}

func TestHandlerFailures(t *testing.T) {
	router := newTestRouter(t)

	// malformed amount never reaches the ledger
	rec := doRequest(t, router, "POST", "/deposit/alice/notanumber")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "wrong amount")

	rec = doRequest(t, router, "POST", "/redeem/alice/100")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "insufficient shares")
}
