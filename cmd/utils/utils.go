// Package utils provides common helpers of the command line tools.
package utils

import (
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/poolvault/vault-ledger/log"
	"github.com/poolvault/vault-ledger/params"
)

var (
	clientIdentifier string
	gitCommit        string
	gitDate          string

	// TopWaitGroup wait group of top level goroutines
	TopWaitGroup = new(sync.WaitGroup)
	// CleanupChan is closed when the process is shutting down
	CleanupChan = make(chan struct{})
)

// NewApp creates an app with sane defaults.
func NewApp(identifier, gitcommit, gitdate, usage string) *cli.App {
	clientIdentifier = identifier
	gitCommit = gitcommit
	gitDate = gitdate
	app := cli.NewApp()
	app.Name = filepath.Base(os.Args[0])
	app.Version = params.VersionWithCommit(gitCommit, gitDate)
	app.Usage = usage
	return app
}

// WaitAndCleanup wait the exit signal then run the cleanup func.
func WaitAndCleanup(cleanup func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	sig := <-ch
	log.Info("receive exit signal", "signal", sig)
	close(CleanupChan)
	TopWaitGroup.Wait()
	cleanup()
}
