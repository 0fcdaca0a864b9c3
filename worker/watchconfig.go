package worker

import (
	"os"

	"github.com/fsnotify/fsnotify"

	"github.com/poolvault/vault-ledger/cmd/utils"
	"github.com/poolvault/vault-ledger/log"
	"github.com/poolvault/vault-ledger/params"
)

// WatchConfigDynamically watch the config file and hot-reload the
// audit settings on edits. Everything else (owner, custody mode, api
// server) stays fixed for the life of the process.
func WatchConfigDynamically() {
	configFile := params.GetConfigFilePath()
	if configFile == "" {
		log.Warn("config file path is empty")
		return
	}

	watch, err := fsnotify.NewWatcher()
	if err != nil {
		log.Error("fsnotify.NewWatcher failed", "err", err)
		return
	}

	err = watch.Add(configFile)
	if err != nil {
		log.Error("watch.Add config file failed", "err", err)
		return
	}

	utils.TopWaitGroup.Add(1)
	go startWatcher(watch)
}

func startWatcher(watch *fsnotify.Watcher) {
	log.Info("start fsnotify watch")
	defer func() {
		log.Info("stop fsnotify watch")
		_ = watch.Close()
		utils.TopWaitGroup.Done()
	}()

	ops := []fsnotify.Op{
		fsnotify.Create,
		fsnotify.Write,
	}

	for {
		select {
		case <-utils.CleanupChan:
			return
		case ev, ok := <-watch.Events:
			if !ok {
				continue
			}
			log.Trace("fsnotify watch event", "event", ev)
			for _, op := range ops {
				if ev.Op&op == op {
					if err := reloadAuditConfig(ev.Name); err != nil {
						log.Info("reload audit config error", "configFile", ev.Name, "err", err)
					}
					break
				}
			}
		case werr, ok := <-watch.Errors:
			if !ok {
				continue
			}
			log.Warn("fsnotify watch error", "err", werr)
		}
	}
}

func reloadAuditConfig(fileName string) error {
	fileStat, _ := os.Stat(fileName)
	// ignore if file is not exist, or is directory, or is empty file
	if fileStat == nil || fileStat.IsDir() || fileStat.Size() == 0 {
		return nil
	}
	config, err := params.DecodeConfigFile(fileName)
	if err != nil {
		return err
	}
	params.ApplyAuditConfig(config)
	log.Info("reload audit config success", "configFile", fileName, "cycle", params.GetAuditCycle())
	return nil
}
