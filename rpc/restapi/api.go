// Package restapi provides the REST handlers of the vault service.
package restapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/poolvault/vault-ledger/internal/vaultapi"
	"github.com/poolvault/vault-ledger/params"
)

func writeResponse(w http.ResponseWriter, resp interface{}, err error) {
	if err == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		jsonData, _ := json.Marshal(resp)
		_, _ = w.Write(jsonData)
	} else {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintln(w, err.Error())
	}
}

func getAmountParam(r *http.Request, name string) (uint64, error) {
	vars := mux.Vars(r)
	amount, err := strconv.ParseUint(vars[name], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("wrong %v: %v", name, err)
	}
	return amount, nil
}

// ServerInfoHandler handler
func ServerInfoHandler(w http.ResponseWriter, r *http.Request) {
	res, err := vaultapi.GetServerInfo()
	writeResponse(w, res, err)
}

// VersionInfoHandler handler
func VersionInfoHandler(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, params.VersionWithMeta, nil)
}

// VaultInfoHandler handler
func VaultInfoHandler(w http.ResponseWriter, r *http.Request) {
	res, err := vaultapi.GetVaultInfo()
	writeResponse(w, res, err)
}

// BalanceHandler handler
func BalanceHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	res, err := vaultapi.GetBalance(vars["account"])
	writeResponse(w, res, err)
}

// TotalLiquidityHandler handler
func TotalLiquidityHandler(w http.ResponseWriter, r *http.Request) {
	res, err := vaultapi.GetTotalLiquidity()
	writeResponse(w, res, err)
}

// TotalSharesHandler handler
func TotalSharesHandler(w http.ResponseWriter, r *http.Request) {
	res, err := vaultapi.GetTotalShares()
	writeResponse(w, res, err)
}

// MetadataHandler handler
func MetadataHandler(w http.ResponseWriter, r *http.Request) {
	res, err := vaultapi.GetMetadata()
	writeResponse(w, res, err)
}

// DepositHandler handler
func DepositHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	amount, err := getAmountParam(r, "amount")
	if err != nil {
		writeResponse(w, nil, err)
		return
	}
	res, err := vaultapi.Deposit(vars["account"], amount)
	writeResponse(w, res, err)
}

// RedeemHandler handler
func RedeemHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	amount, err := getAmountParam(r, "amount")
	if err != nil {
		writeResponse(w, nil, err)
		return
	}
	res, err := vaultapi.Redeem(vars["account"], amount)
	writeResponse(w, res, err)
}

// ConfigureMetadataHandler handler
func ConfigureMetadataHandler(w http.ResponseWriter, r *http.Request) {
	var args vaultapi.ConfigureMetadataArgs
	if err := json.NewDecoder(r.Body).Decode(&args); err != nil {
		writeResponse(w, nil, fmt.Errorf("decode request body error: %v", err))
		return
	}
	res, err := vaultapi.ConfigureMetadata(&args)
	writeResponse(w, res, err)
}

func getHistoryParams(r *http.Request) (offset, limit int, err error) {
	vals := r.URL.Query()
	offset, limit = 0, 20

	if vals.Get("offset") != "" {
		offset, err = strconv.Atoi(vals.Get("offset"))
		if err != nil || offset < 0 {
			return 0, 0, fmt.Errorf("wrong offset")
		}
	}
	if vals.Get("limit") != "" {
		limit, err = strconv.Atoi(vals.Get("limit"))
		if err != nil || limit <= 0 {
			return 0, 0, fmt.Errorf("wrong limit")
		}
	}
	return offset, limit, nil
}

// OperationHandler handler
func OperationHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	res, err := vaultapi.GetOperation(vars["key"])
	writeResponse(w, res, err)
}

// StatisticsHandler handler
func StatisticsHandler(w http.ResponseWriter, r *http.Request) {
	res, err := vaultapi.GetOperationStatistics()
	writeResponse(w, res, err)
}

// MetadataHistoryHandler handler
func MetadataHistoryHandler(w http.ResponseWriter, r *http.Request) {
	_, limit, err := getHistoryParams(r)
	if err != nil {
		writeResponse(w, nil, err)
		return
	}
	res, err := vaultapi.GetMetadataChangeHistory(limit)
	writeResponse(w, res, err)
}

// OperationHistoryHandler handler
func OperationHistoryHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	offset, limit, err := getHistoryParams(r)
	if err != nil {
		writeResponse(w, nil, err)
		return
	}
	res, err := vaultapi.GetOperationHistory(vars["account"], offset, limit)
	writeResponse(w, res, err)
}
