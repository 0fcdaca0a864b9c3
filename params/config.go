// Package params holds the vault server configuration decoded from a
// toml file.
package params

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/poolvault/vault-ledger/common"
	"github.com/poolvault/vault-ledger/log"
)

const (
	defaultAPIPort      = 11556
	defaultRPCTimeout   = 60 // seconds
	defaultAuditCycle   = 30 // seconds
	defaultLevelDBCache = 16 // MiB
)

// custody modes
const (
	CustodyModeBank   = "bank"
	CustodyModeRemote = "remote"
)

var (
	locConfigFile     string
	vaultConfig       *VaultServerConfig
	loadConfigStarter sync.Once
)

// VaultServerConfig config items (decode from toml file)
type VaultServerConfig struct {
	Identifier string
	Vault      *VaultConfig
	Custody    *CustodyConfig
	APIServer  *APIServerConfig
	LevelDB    *LevelDBConfig  `toml:",omitempty" json:",omitempty"`
	MongoDB    *MongoDBConfig  `toml:",omitempty" json:",omitempty"`
	Audit      *AuditConfig    `toml:",omitempty" json:",omitempty"`
	Email      *EmailConfig    `toml:",omitempty" json:",omitempty"`
}

// VaultConfig the ledger's fixed deployment parameters
type VaultConfig struct {
	Owner   string // principal allowed to configure metadata
	Account string // the vault's own custody account
}

// CustodyConfig how value actually moves
type CustodyConfig struct {
	Mode       string // 'bank' or 'remote'
	GatewayURL string `toml:",omitempty" json:",omitempty"`
	RPCTimeout int    `toml:",omitempty" json:",omitempty"`

	// initial balances for bank mode (local and test deployments)
	Seeds []*CustodySeed `toml:",omitempty" json:",omitempty"`
}

// CustodySeed initial custody funding of an account
type CustodySeed struct {
	Account string
	Amount  uint64
}

// APIServerConfig api service config
type APIServerConfig struct {
	Port             int
	AllowedOrigins   []string
	MaxRequestsLimit int
}

// LevelDBConfig ledger snapshot store config
type LevelDBConfig struct {
	DataDir string
	Cache   int `toml:",omitempty" json:",omitempty"`
	Handles int `toml:",omitempty" json:",omitempty"`
}

// MongoDBConfig operation journal config
type MongoDBConfig struct {
	DBURL    string
	DBName   string
	UserName string `json:"-"`
	Password string `json:"-"`
}

// AuditConfig invariant audit worker config
type AuditConfig struct {
	Enable        bool
	CycleSeconds  uint64 `toml:",omitempty" json:",omitempty"`
	// liquidity shortfalls below this amount are logged but not mailed
	AlertThreshold uint64   `toml:",omitempty" json:",omitempty"`
	AlertReceiver  []string `toml:",omitempty" json:",omitempty"`
}

// EmailConfig alert email config
type EmailConfig struct {
	Server   string
	Port     int
	From     string
	FromName string `toml:",omitempty" json:",omitempty"`
	Password string `json:"-"`
}

// GetConfig get vault server config
func GetConfig() *VaultServerConfig {
	return vaultConfig
}

// SetConfig set vault server config
func SetConfig(config *VaultServerConfig) {
	vaultConfig = config
}

// GetAPIPort get api service port
func GetAPIPort() int {
	apiPort := GetConfig().APIServer.Port
	if apiPort == 0 {
		apiPort = defaultAPIPort
	}
	return apiPort
}

// GetIdentifier get identifier
func GetIdentifier() string {
	return GetConfig().Identifier
}

// GetVaultConfig get vault deployment config
func GetVaultConfig() *VaultConfig {
	return GetConfig().Vault
}

// GetCustodyConfig get custody config
func GetCustodyConfig() *CustodyConfig {
	return GetConfig().Custody
}

// GetCustodyRPCTimeout get custody gateway rpc timeout in seconds
func GetCustodyRPCTimeout() int {
	timeout := GetCustodyConfig().RPCTimeout
	if timeout == 0 {
		timeout = defaultRPCTimeout
	}
	return timeout
}

// GetAuditCycle get the audit interval in seconds
func GetAuditCycle() uint64 {
	audit := GetConfig().Audit
	if audit == nil || audit.CycleSeconds == 0 {
		return defaultAuditCycle
	}
	return audit.CycleSeconds
}

// AuditEnabled is the audit worker enabled
func AuditEnabled() bool {
	audit := GetConfig().Audit
	return audit != nil && audit.Enable
}

// GetLevelDBCacheAndHandles get snapshot store sizing with defaults
func GetLevelDBCacheAndHandles() (cache, handles int) {
	cfg := GetConfig().LevelDB
	cache = cfg.Cache
	if cache == 0 {
		cache = defaultLevelDBCache
	}
	handles = cfg.Handles
	if handles == 0 {
		handles = 16
	}
	return cache, handles
}

// GetConfigFilePath get the loaded config file path
func GetConfigFilePath() string {
	return locConfigFile
}

// ApplyAuditConfig install the hot-reloadable audit and email sections
// from a freshly decoded config. All other sections are ignored.
func ApplyAuditConfig(config *VaultServerConfig) {
	vaultConfig.Audit = config.Audit
	vaultConfig.Email = config.Email
}

// LoadConfig load config only once
func LoadConfig(configFile string) *VaultServerConfig {
	loadConfigStarter.Do(func() {
		if configFile == "" {
			log.Fatalf("LoadConfig error: no config file specified")
		}
		log.Println("Config file is", configFile)
		config, err := DecodeConfigFile(configFile)
		if err != nil {
			log.Fatalf("LoadConfig error: %v", err)
		}
		SetConfig(config)
		locConfigFile = configFile

		var bs []byte
		if log.JSONFormat {
			bs, _ = json.Marshal(config)
		} else {
			bs, _ = json.MarshalIndent(config, "", "  ")
		}
		log.Println("LoadConfig finished.", string(bs))
	})
	return vaultConfig
}

// DecodeConfigFile decode and check a config file without installing
// it. The config file watcher uses it to validate edits before
// applying hot-reloadable items.
func DecodeConfigFile(configFile string) (*VaultServerConfig, error) {
	if !common.FileExist(configFile) {
		return nil, fmt.Errorf("config file %v not exist", configFile)
	}
	config := &VaultServerConfig{}
	if _, err := toml.DecodeFile(configFile, &config); err != nil {
		return nil, fmt.Errorf("toml decode file error: %v", err)
	}
	if err := CheckConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}
