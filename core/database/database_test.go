package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnect(t *testing.T) {
	t.Run("Invalid Connection", func(t *testing.T) {
		cfg := Config{
			Host:           "localhost",
			Port:           9999, // Unused port
			User:           "root",
			Password:       "wrongpassword",
			Name:           "object_resolver",
			TimeoutSeconds: 1,
		}

		db, err := Connect(cfg)
		assert.Error(t, err)
		assert.Nil(t, db)
	})
}

func TestDSN(t *testing.T) {
	cfg := Config{Host: "db", Port: 3307, User: "app", Password: "p@ss:word", Name: "resolver", TimeoutSeconds: 7}
	assert.Equal(t,
		"app:p%40ss%3Aword@tcp(db:3307)/resolver?charset=utf8mb4&parseTime=True&loc=UTC&timeout=7s&readTimeout=7s&writeTimeout=7s",
		DSN(cfg))

	cfg.TimeoutSeconds = 0
	assert.Contains(t, DSN(cfg), "timeout=30s")
}
