package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/poolvault/vault-ledger/cmd/utils"
	"github.com/poolvault/vault-ledger/log"
	"github.com/poolvault/vault-ledger/rpc/client"
)

var (
	clientIdentifier = "vaultadmin"
	gitCommit        = ""
	gitDate          = ""
	app              = utils.NewApp(clientIdentifier, gitCommit, gitDate, "the vault ledger admin command line interface")
)

var (
	callerFlag = &cli.StringFlag{
		Name:     "caller",
		Usage:    "caller identifier (must be the vault owner for admin operations)",
		Required: true,
	}
	nameFlag = &cli.StringFlag{
		Name:  "name",
		Usage: "vault display name (max 64 chars)",
	}
	descriptionFlag = &cli.StringFlag{
		Name:  "description",
		Usage: "vault description (max 256 chars)",
	}
	targetAmountFlag = &cli.Uint64Flag{
		Name:  "target",
		Usage: "vault target amount",
	}
	offsetFlag = &cli.IntFlag{
		Name:  "offset",
		Usage: "history offset",
	}
	limitFlag = &cli.IntFlag{
		Name:  "limit",
		Usage: "history page size",
		Value: 20,
	}
)

func initApp() {
	app.HideVersion = true
	app.Commands = []*cli.Command{
		utils.LicenseCommand,
		utils.VersionCommand,
		{
			Action: configureMetadata,
			Name:   "configmeta",
			Usage:  "Configure the vault metadata (owner only)",
			Flags: []cli.Flag{
				utils.ServerURLFlag,
				callerFlag,
				nameFlag,
				descriptionFlag,
				targetAmountFlag,
			},
		},
		{
			Action:    serverInfo,
			Name:      "serverinfo",
			Usage:     "Print vault server info",
			Flags:     []cli.Flag{utils.ServerURLFlag},
			ArgsUsage: " ",
		},
		{
			Action:    vaultInfo,
			Name:      "vaultinfo",
			Usage:     "Print vault totals and metadata",
			Flags:     []cli.Flag{utils.ServerURLFlag},
			ArgsUsage: " ",
		},
		{
			Action:    balance,
			Name:      "balance",
			Usage:     "Print an account's share balance",
			Flags:     []cli.Flag{utils.ServerURLFlag},
			ArgsUsage: "<account>",
		},
		{
			Action:    operationHistory,
			Name:      "history",
			Usage:     "Print an account's deposit and redeem history",
			Flags:     []cli.Flag{utils.ServerURLFlag, offsetFlag, limitFlag},
			ArgsUsage: "<account>",
		},
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

func printResult(result interface{}) {
	jsonData, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(jsonData))
}

type configureMetadataArgs struct {
	Caller       string  `json:"caller"`
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	TargetAmount uint64  `json:"targetAmount"`
}

func configureMetadata(ctx *cli.Context) error {
	client.InitHTTPClient()
	args := &configureMetadataArgs{
		Caller:       ctx.String(callerFlag.Name),
		TargetAmount: ctx.Uint64(targetAmountFlag.Name),
	}
	if ctx.IsSet(nameFlag.Name) {
		name := ctx.String(nameFlag.Name)
		args.Name = &name
	}
	if ctx.IsSet(descriptionFlag.Name) {
		description := ctx.String(descriptionFlag.Name)
		args.Description = &description
	}
	var result string
	err := client.RPCPost(&result, utils.GetServerURL(ctx), "vault.ConfigureMetadata", args)
	if err != nil {
		return err
	}
	fmt.Println(result)
	return nil
}

func serverInfo(ctx *cli.Context) error {
	client.InitHTTPClient()
	var result map[string]interface{}
	err := client.RPCPost(&result, utils.GetServerURL(ctx), "vault.GetServerInfo")
	if err != nil {
		return err
	}
	printResult(result)
	return nil
}

func vaultInfo(ctx *cli.Context) error {
	client.InitHTTPClient()
	var result map[string]interface{}
	err := client.RPCPost(&result, utils.GetServerURL(ctx), "vault.GetVaultInfo")
	if err != nil {
		return err
	}
	printResult(result)
	return nil
}

type accountArgs struct {
	Account string `json:"account"`
}

func balance(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("miss required position argument <account>")
	}
	client.InitHTTPClient()
	var result map[string]interface{}
	err := client.RPCPost(&result, utils.GetServerURL(ctx), "vault.GetBalance", &accountArgs{Account: ctx.Args().Get(0)})
	if err != nil {
		return err
	}
	printResult(result)
	return nil
}

func operationHistory(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("miss required position argument <account>")
	}
	client.InitHTTPClient()

	// history is served on the rest surface
	baseURL := strings.TrimSuffix(utils.GetServerURL(ctx), "/rpc")
	url := fmt.Sprintf("%v/history/%v", baseURL, ctx.Args().Get(0))
	params := map[string]string{
		"offset": fmt.Sprintf("%v", ctx.Int(offsetFlag.Name)),
		"limit":  fmt.Sprintf("%v", ctx.Int(limitFlag.Name)),
	}

	var result []map[string]interface{}
	err := client.RPCGetRequest(&result, url, params, nil, 60)
	if err != nil {
		return err
	}
	printResult(result)
	return nil
}
