package params

import (
	"errors"
	"fmt"
	"net/url"
)

// CheckConfig check config items
func CheckConfig(config *VaultServerConfig) (err error) {
	if config.Identifier == "" {
		return errors.New("server must config non empty 'Identifier'")
	}
	if config.Vault == nil {
		return errors.New("server must config 'Vault'")
	}
	if err = config.Vault.CheckConfig(); err != nil {
		return err
	}
	if config.Custody == nil {
		return errors.New("server must config 'Custody'")
	}
	if err = config.Custody.CheckConfig(); err != nil {
		return err
	}
	if config.APIServer == nil {
		return errors.New("server must config 'APIServer'")
	}
	if config.LevelDB != nil && config.LevelDB.DataDir == "" {
		return errors.New("'LevelDB' must config non empty 'DataDir'")
	}
	if config.MongoDB != nil {
		if err = config.MongoDB.CheckConfig(); err != nil {
			return err
		}
	}
	if config.Audit != nil && config.Audit.Enable && len(config.Audit.AlertReceiver) != 0 {
		if config.Email == nil {
			return errors.New("audit alert receivers need 'Email' config")
		}
		if err = config.Email.CheckConfig(); err != nil {
			return err
		}
	}
	return nil
}

// CheckConfig check vault config
func (c *VaultConfig) CheckConfig() error {
	if c.Owner == "" {
		return errors.New("'Vault' must config non empty 'Owner'")
	}
	if c.Account == "" {
		return errors.New("'Vault' must config non empty 'Account'")
	}
	if c.Owner == c.Account {
		return errors.New("'Vault' owner and custody account must differ")
	}
	return nil
}

// CheckConfig check custody config
func (c *CustodyConfig) CheckConfig() error {
	switch c.Mode {
	case CustodyModeBank:
		if c.GatewayURL != "" {
			return errors.New("bank custody must not config 'GatewayURL'")
		}
	case CustodyModeRemote:
		if c.GatewayURL == "" {
			return errors.New("remote custody must config 'GatewayURL'")
		}
		if _, err := url.ParseRequestURI(c.GatewayURL); err != nil {
			return fmt.Errorf("wrong custody 'GatewayURL': %v", err)
		}
		if len(c.Seeds) != 0 {
			return errors.New("remote custody must not config 'Seeds'")
		}
	default:
		return fmt.Errorf("unknown custody mode '%v'", c.Mode)
	}
	for _, seed := range c.Seeds {
		if seed.Account == "" {
			return errors.New("custody seed must config non empty 'Account'")
		}
	}
	return nil
}

// CheckConfig check mongodb config
func (c *MongoDBConfig) CheckConfig() error {
	if c.DBURL == "" {
		return errors.New("'MongoDB' must config non empty 'DBURL'")
	}
	if c.DBName == "" {
		return errors.New("'MongoDB' must config non empty 'DBName'")
	}
	return nil
}

// CheckConfig check email config
func (c *EmailConfig) CheckConfig() error {
	if c.Server == "" || c.Port == 0 {
		return errors.New("'Email' must config 'Server' and 'Port'")
	}
	if c.From == "" {
		return errors.New("'Email' must config non empty 'From'")
	}
	return nil
}
