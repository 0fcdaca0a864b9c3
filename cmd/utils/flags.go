package utils

import (
	"github.com/urfave/cli/v2"

	"github.com/poolvault/vault-ledger/log"
)

// common flags
var (
	ConfigFileFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Specify config file",
	}
	LogFileFlag = &cli.StringFlag{
		Name:  "log.file",
		Usage: "Specify log file, support rotate",
	}
	LogRotationFlag = &cli.Uint64Flag{
		Name:  "log.rotate",
		Usage: "log rotation time (unit hour)",
		Value: 24,
	}
	LogMaxAgeFlag = &cli.Uint64Flag{
		Name:  "log.maxage",
		Usage: "log max age (unit day)",
		Value: 30,
	}
	VerbosityFlag = &cli.Uint64Flag{
		Name:    "verbosity",
		Aliases: []string{"v"},
		Usage:   "log verbosity (0:panic, 1:fatal, 2:error, 3:warn, 4:info, 5:debug, 6:trace)",
		Value:   4,
	}
	JSONFormatFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "output log in json format",
	}
	ColorFormatFlag = &cli.BoolFlag{
		Name:  "color",
		Usage: "output log in color text format",
		Value: true,
	}
	ServerURLFlag = &cli.StringFlag{
		Name:  "server",
		Usage: "vault server rpc address",
		Value: "http://127.0.0.1:11556/rpc",
	}
)

// SetLogger set log level, format and output file from flags.
func SetLogger(ctx *cli.Context) {
	logLevel := ctx.Uint64(VerbosityFlag.Name)
	jsonFormat := ctx.Bool(JSONFormatFlag.Name)
	colorFormat := ctx.Bool(ColorFormatFlag.Name)
	log.SetLogger(uint32(logLevel), jsonFormat, colorFormat)

	logFile := ctx.String(LogFileFlag.Name)
	if logFile != "" {
		logRotation := ctx.Uint64(LogRotationFlag.Name)
		logMaxAge := ctx.Uint64(LogMaxAgeFlag.Name)
		log.SetLogFile(logFile, logRotation, logMaxAge)
	}
}

// GetConfigFilePath specified by the config file flag.
func GetConfigFilePath(ctx *cli.Context) string {
	return ctx.String(ConfigFileFlag.Name)
}

// GetServerURL specified by the server flag.
func GetServerURL(ctx *cli.Context) string {
	return ctx.String(ServerURLFlag.Name)
}
