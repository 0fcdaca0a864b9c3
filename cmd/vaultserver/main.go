package main

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/poolvault/vault-ledger/cmd/utils"
	"github.com/poolvault/vault-ledger/custody"
	"github.com/poolvault/vault-ledger/internal/vaultapi"
	"github.com/poolvault/vault-ledger/leveldb"
	"github.com/poolvault/vault-ledger/log"
	"github.com/poolvault/vault-ledger/mongodb"
	"github.com/poolvault/vault-ledger/params"
	rpcserver "github.com/poolvault/vault-ledger/rpc/server"
	"github.com/poolvault/vault-ledger/tools"
	"github.com/poolvault/vault-ledger/vault"
	"github.com/poolvault/vault-ledger/worker"
)

var (
	clientIdentifier = "vaultserver"
	// Git SHA1 commit hash of the release (set via linker flags)
	gitCommit = ""
	gitDate   = ""
	// The app that holds all commands and flags.
	app = utils.NewApp(clientIdentifier, gitCommit, gitDate, "the vault ledger server command line interface")
)

// custodian moves value and can report custody balances
type custodian interface {
	vault.Custodian
	worker.BalanceQuerier
}

func initApp() {
	app.Action = vaultserver
	app.HideVersion = true // we have a command to print the version
	app.Commands = []*cli.Command{
		utils.LicenseCommand,
		utils.VersionCommand,
	}
	app.Flags = []cli.Flag{
		utils.ConfigFileFlag,
		utils.LogFileFlag,
		utils.LogRotationFlag,
		utils.LogMaxAgeFlag,
		utils.VerbosityFlag,
		utils.JSONFormatFlag,
		utils.ColorFormatFlag,
	}
	sort.Sort(cli.CommandsByName(app.Commands))
}

func main() {
	initApp()
	if err := app.Run(os.Args); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func vaultserver(ctx *cli.Context) error {
	utils.SetLogger(ctx)
	if ctx.NArg() > 0 {
		return fmt.Errorf("invalid command: %q", ctx.Args().Get(0))
	}
	configFile := utils.GetConfigFilePath(ctx)
	config := params.LoadConfig(configFile)

	cust := initCustodian(config)
	ledger := vault.New(config.Vault.Owner, config.Vault.Account, cust)

	var snapshotDB *leveldb.Database
	if config.LevelDB != nil {
		snapshotDB = initSnapshotStore(config, ledger, cust)
	}

	if config.MongoDB != nil {
		dbConfig := config.MongoDB
		mongodb.MongoServerInit([]string{dbConfig.DBURL}, dbConfig.DBName, dbConfig.UserName, dbConfig.Password)
	}
	if config.Email != nil {
		tools.InitEmailConfig(config.Email.Server, config.Email.Port, config.Email.From, config.Email.FromName, config.Email.Password)
	}

	vaultapi.Init(ledger)

	worker.StartWork(ledger, cust)
	time.Sleep(100 * time.Millisecond)
	rpcserver.StartAPIServer()

	utils.WaitAndCleanup(func() {
		if snapshotDB != nil {
			if err := snapshotDB.Close(); err != nil {
				log.Error("close snapshot store failed", "err", err)
			}
		}
		log.Info("vaultserver exit")
	})
	return nil
}

func initCustodian(config *params.VaultServerConfig) custodian {
	switch config.Custody.Mode {
	case params.CustodyModeBank:
		bank := custody.NewBank()
		for _, seed := range config.Custody.Seeds {
			if err := bank.Fund(seed.Account, seed.Amount); err != nil {
				log.Fatalf("seed custody account %v failed: %v", seed.Account, err)
			}
			log.Info("seed custody account", "account", seed.Account, "amount", seed.Amount)
		}
		return bank
	case params.CustodyModeRemote:
		return custody.NewRemote(config.Custody.GatewayURL, params.GetCustodyRPCTimeout())
	default:
		log.Fatalf("unknown custody mode '%v'", config.Custody.Mode)
		return nil
	}
}

func initSnapshotStore(config *params.VaultServerConfig, ledger *vault.Ledger, cust custodian) *leveldb.Database {
	cache, handles := params.GetLevelDBCacheAndHandles()
	db, err := leveldb.New(config.LevelDB.DataDir, cache, handles, false)
	if err != nil {
		log.Fatalf("open snapshot store failed: %v", err)
	}

	err = ledger.LoadSnapshot(db)
	switch {
	case err == nil:
		restoreBankCustody(config, ledger, cust)
	case errors.Is(err, vault.ErrSnapshotNotFound):
		log.Info("no ledger snapshot found, start with empty ledger")
		ledger.SetSnapshotStore(db)
	default:
		log.Fatalf("load ledger snapshot failed: %v", err)
	}
	return db
}

// restoreBankCustody refund the in-process custody bank after a
// snapshot restore, the bank's balances live only in memory.
func restoreBankCustody(config *params.VaultServerConfig, ledger *vault.Ledger, cust custodian) {
	bank, ok := cust.(*custody.Bank)
	if !ok {
		return
	}
	liquidity := ledger.TotalLiquidity()
	if liquidity == 0 {
		return
	}
	if err := bank.Fund(config.Vault.Account, liquidity); err != nil {
		log.Fatalf("restore custody bank vault balance failed: %v", err)
	}
	log.Info("restored custody bank vault balance", "account", config.Vault.Account, "amount", liquidity)
}
