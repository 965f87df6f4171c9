package db

import (
	"errors"
	"fmt"
)

// ToDBConfig builds the client settings from the yaml section. Credentials must be present,
// either from the file or from the environment overrides applied before.
func (c DBConfigYaml) ToDBConfig() (DBConfig, error) {
	if c.ConnectionStr == "" || c.Username == "" || c.Password == "" {
		return DBConfig{}, errors.New("couldn't read DB credentials")
	}
	return DBConfig{
		URI:              fmt.Sprintf(`mongodb%s://%s:%s@%s`, c.ConnectionPrefix, c.Username, c.Password, c.ConnectionStr),
		DBNamePrefix:     c.DBNamePrefix,
		Timeout:          c.Timeout,
		NoCursorTimeout:  c.UseNoCursorTimeout,
		MaxPoolSize:      uint64(c.MaxPoolSize),
		IdleConnTimeout:  c.IdleConnTimeout,
		RunIndexCreation: c.RunIndexCreation,
	}, nil
}
