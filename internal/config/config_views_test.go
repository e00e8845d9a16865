// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerConfigFromArgs_Defaults(t *testing.T) {
	cfg, err := serverConfigFromArgs([]string{"-d", filepath.Join(t.TempDir(), "relay.db")})
	require.NoError(t, err)

	assert.Equal(t, DefaultServerAddress, cfg.Server.HTTPAddress)
	assert.Equal(t, DefaultGRPCAddress, cfg.Server.GRPCAddress)
	assert.Equal(t, DriverSQLite, cfg.Storage.DB.Driver)
	assert.Equal(t, DefaultFlushInterval, cfg.Workers.FlushInterval)
	assert.Equal(t, DefaultIdleRoomTTL, cfg.Workers.IdleRoomTTL)
	assert.Equal(t, DefaultPingInterval, cfg.Sync.PingInterval)
}

func TestServerConfigFromArgs_MissingDSN(t *testing.T) {
	_, err := serverConfigFromArgs(nil)
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}

func TestServerConfigFromArgs_UnsupportedDriver(t *testing.T) {
	_, err := serverConfigFromArgs([]string{"-driver", "oracle", "-d", "x"})
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}

func TestClientConfigFromArgs_Defaults(t *testing.T) {
	cfg, err := clientConfigFromArgs([]string{"-d", filepath.Join(t.TempDir(), "templates.db"), "-room", "studio"})
	require.NoError(t, err)

	assert.Equal(t, DefaultRelayURL, cfg.Adapter.HTTPAddress)
	assert.Equal(t, DefaultWSEndpoint, cfg.Adapter.WSEndpoint)
	assert.Equal(t, "studio", cfg.Sync.Room)
	assert.Equal(t, DefaultDebounceWindow, cfg.Sync.DebounceWindow)
	assert.Equal(t, DefaultSettleDelay, cfg.Sync.SettleDelay)
	assert.Equal(t, DefaultReconnectTimeout, cfg.Sync.ReconnectTimeout)
}

func TestClientConfig_Validate(t *testing.T) {
	valid := func() *ClientConfig {
		return &ClientConfig{
			Storage: Storage{DB: DB{Driver: DriverSQLite, DSN: "templates.db"}},
			Adapter: Adapter{HTTPAddress: DefaultRelayURL, WSEndpoint: DefaultWSEndpoint, RequestTimeout: DefaultRequestTimeout},
			Sync: Sync{
				Room:             "r",
				DebounceWindow:   DefaultDebounceWindow,
				SettleDelay:      DefaultSettleDelay,
				ReconnectTimeout: DefaultReconnectTimeout,
				PingInterval:     DefaultPingInterval,
				WriteTimeout:     DefaultWriteTimeout,
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *ClientConfig)
		wantErr error
	}{
		{name: "valid", mutate: func(c *ClientConfig) {}},
		{name: "memory dsn", mutate: func(c *ClientConfig) { c.Storage.DB.DSN = ":memory:" }, wantErr: ErrInvalidStorageConfigs},
		{name: "no relay url", mutate: func(c *ClientConfig) { c.Adapter.HTTPAddress = "" }, wantErr: ErrInvalidAdapterConfigs},
		{name: "no ws endpoint", mutate: func(c *ClientConfig) { c.Adapter.WSEndpoint = "" }, wantErr: ErrInvalidAdapterConfigs},
		{name: "empty room", mutate: func(c *ClientConfig) { c.Sync.Room = "" }, wantErr: ErrInvalidSyncConfigs},
		{name: "zero debounce", mutate: func(c *ClientConfig) { c.Sync.DebounceWindow = 0 }, wantErr: ErrInvalidSyncConfigs},
		{name: "zero settle", mutate: func(c *ClientConfig) { c.Sync.SettleDelay = 0 }, wantErr: ErrInvalidSyncConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestServerConfig_Validate(t *testing.T) {
	cfg := &ServerConfig{
		Storage: Storage{DB: DB{Driver: DriverPostgres, DSN: "postgres://localhost/canvas"}},
		Server:  Server{HTTPAddress: DefaultServerAddress, RequestTimeout: DefaultRequestTimeout},
		Sync:    Sync{PingInterval: DefaultPingInterval, WriteTimeout: DefaultWriteTimeout},
		Workers: Workers{FlushInterval: DefaultFlushInterval, IdleRoomTTL: DefaultIdleRoomTTL},
	}
	require.NoError(t, cfg.validate())

	cfg.Workers.FlushInterval = 0
	assert.ErrorIs(t, cfg.validate(), ErrInvalidWorkerConfigs)

	cfg.Workers.FlushInterval = DefaultFlushInterval
	cfg.Server.HTTPAddress = ""
	assert.ErrorIs(t, cfg.validate(), ErrInvalidServerConfigs)
}
