// Package server starts the vault api service.
package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/didip/tollbooth/v6"
	"github.com/didip/tollbooth/v6/limiter"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/rpc/v2"
	rpcjson "github.com/gorilla/rpc/v2/json2"

	"github.com/poolvault/vault-ledger/log"
	"github.com/poolvault/vault-ledger/params"
	"github.com/poolvault/vault-ledger/rpc/restapi"
	"github.com/poolvault/vault-ledger/rpc/rpcapi"
)

// StartAPIServer start api server
func StartAPIServer() {
	router := initRouter()

	apiPort := params.GetAPIPort()
	apiServer := params.GetConfig().APIServer
	allowedOrigins := apiServer.AllowedOrigins

	corsOptions := []handlers.CORSOption{
		handlers.AllowedMethods([]string{"GET", "POST"}),
	}
	if len(allowedOrigins) != 0 {
		corsOptions = append(corsOptions,
			handlers.AllowedHeaders([]string{"X-Requested-With", "Content-Type"}),
			handlers.AllowedOrigins(allowedOrigins),
		)
	}

	handler := handlers.CORS(corsOptions...)(router)
	if apiServer.MaxRequestsLimit > 0 {
		lmt := tollbooth.NewLimiter(float64(apiServer.MaxRequestsLimit), &limiter.ExpirableOptions{
			DefaultExpirationTTL: time.Hour,
		})
		handler = tollbooth.LimitHandler(lmt, handler)
	}

	log.Info("JSON RPC service listen and serving", "port", apiPort, "allowedOrigins", allowedOrigins, "maxRequestsLimit", apiServer.MaxRequestsLimit)
	svr := http.Server{
		Addr:         fmt.Sprintf(":%v", apiPort),
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		Handler:      handler,
	}
	go func() {
		if err := svr.ListenAndServe(); err != nil {
			log.Error("ListenAndServe error", "err", err)
		}
	}()
}

func initRouter() *mux.Router {
	r := mux.NewRouter()

	rpcserver := rpc.NewServer()
	rpcserver.RegisterCodec(rpcjson.NewCodec(), "application/json")
	_ = rpcserver.RegisterService(new(rpcapi.RPCAPI), "vault")

	r.Handle("/rpc", rpcserver)
	r.HandleFunc("/serverinfo", restapi.ServerInfoHandler).Methods("GET")
	r.HandleFunc("/versioninfo", restapi.VersionInfoHandler).Methods("GET")
	r.HandleFunc("/vaultinfo", restapi.VaultInfoHandler).Methods("GET")
	r.HandleFunc("/balance/{account}", restapi.BalanceHandler).Methods("GET")
	r.HandleFunc("/totalliquidity", restapi.TotalLiquidityHandler).Methods("GET")
	r.HandleFunc("/totalshares", restapi.TotalSharesHandler).Methods("GET")
	r.HandleFunc("/metadata", restapi.MetadataHandler).Methods("GET")
	r.HandleFunc("/history/{account}", restapi.OperationHistoryHandler).Methods("GET")
	r.HandleFunc("/operation/{key}", restapi.OperationHandler).Methods("GET")
	r.HandleFunc("/statistics", restapi.StatisticsHandler).Methods("GET")
	r.HandleFunc("/metadatahistory", restapi.MetadataHistoryHandler).Methods("GET")
	r.HandleFunc("/deposit/{account}/{amount}", restapi.DepositHandler).Methods("POST")
	r.HandleFunc("/redeem/{account}/{amount}", restapi.RedeemHandler).Methods("POST")
	r.HandleFunc("/metadata", restapi.ConfigureMetadataHandler).Methods("POST")

	methodsExcludesGet := []string{"POST", "HEAD", "PUT", "DELETE", "CONNECT", "OPTIONS", "TRACE", "PATCH"}
	methodsExcludesPost := []string{"GET", "HEAD", "PUT", "DELETE", "CONNECT", "OPTIONS", "TRACE", "PATCH"}
	methodsExcludesGetAndPost := []string{"HEAD", "PUT", "DELETE", "CONNECT", "OPTIONS", "TRACE", "PATCH"}

	r.HandleFunc("/serverinfo", warnHandler).Methods(methodsExcludesGet...)
	r.HandleFunc("/versioninfo", warnHandler).Methods(methodsExcludesGet...)
	r.HandleFunc("/vaultinfo", warnHandler).Methods(methodsExcludesGet...)
	r.HandleFunc("/balance/{account}", warnHandler).Methods(methodsExcludesGet...)
	r.HandleFunc("/totalliquidity", warnHandler).Methods(methodsExcludesGet...)
	r.HandleFunc("/totalshares", warnHandler).Methods(methodsExcludesGet...)
	r.HandleFunc("/history/{account}", warnHandler).Methods(methodsExcludesGet...)
	r.HandleFunc("/operation/{key}", warnHandler).Methods(methodsExcludesGet...)
	r.HandleFunc("/statistics", warnHandler).Methods(methodsExcludesGet...)
	r.HandleFunc("/metadatahistory", warnHandler).Methods(methodsExcludesGet...)
	r.HandleFunc("/deposit/{account}/{amount}", warnHandler).Methods(methodsExcludesPost...)
	r.HandleFunc("/redeem/{account}/{amount}", warnHandler).Methods(methodsExcludesPost...)
	r.HandleFunc("/metadata", warnHandler).Methods(methodsExcludesGetAndPost...)

	return r
}

func warnHandler(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintf(w, "Forbid '%v' on '%v'\n", r.Method, r.RequestURI)
}
