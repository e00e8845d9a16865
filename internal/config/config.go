// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// relay server and the client. It aggregates all sub-configurations and is
// populated by merging defaults, environment variables, command-line flags,
// and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the version string and
	// the client log file location.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the relational database backend.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP and
	// gRPC servers of the relay.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the client's view of the relay: REST base URL and
	// websocket endpoint.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Sync holds the timing parameters of a sync session and its
	// replication channel.
	Sync Sync `envPrefix:"SYNC_"`

	// Workers holds configuration for the relay's background workers.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Storage groups the configuration for storage backends.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`
}

// App holds application-level configuration values.
type App struct {
	// Version is the semantic version string of the running application.
	// Exposed via the /api/version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogPath is the file the client writes its logs to. Empty means a
	// "logs" file next to the executable.
	// Env: APP_LOG_PATH
	LogPath string `env:"LOG_PATH"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address the HTTP and websocket server listens
	// on, in "host:port" format.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the TCP address of the gRPC health server.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout bounds a single REST request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// Driver selects the SQL dialect: "sqlite3" or "postgres".
	// Env: STORAGE_DB_DRIVER
	Driver string `env:"DRIVER"`

	// DSN is the Data Source Name used to open the database connection
	// (a file path for sqlite3, a URL for postgres).
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Adapter holds the addresses the client uses to reach the relay.
type Adapter struct {
	// HTTPAddress is the base URL of the relay's REST API
	// (e.g. "http://localhost:8080").
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// WSEndpoint is the websocket endpoint rooms are joined under
	// (e.g. "ws://localhost:8080/ws"). The room name is appended as the
	// last path segment.
	// Env: ADAPTER_WS_ENDPOINT
	WSEndpoint string `env:"WS_ENDPOINT"`

	// RequestTimeout bounds a single REST call to the relay.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Sync holds timing parameters of the sync engine and replication channel.
type Sync struct {
	// Room is the room joined on start.
	// Env: SYNC_ROOM
	Room string `env:"ROOM"`

	// DebounceWindow is the quiet period after the last local mutation
	// before a snapshot is published.
	// Env: SYNC_DEBOUNCE_WINDOW
	DebounceWindow time.Duration `env:"DEBOUNCE_WINDOW"`

	// SettleDelay is how long the loop guard stays raised after a remote
	// apply finishes.
	// Env: SYNC_SETTLE_DELAY
	SettleDelay time.Duration `env:"SETTLE_DELAY"`

	// ReconnectTimeout is the pause between reconnect attempts.
	// Env: SYNC_RECONNECT_TIMEOUT
	ReconnectTimeout time.Duration `env:"RECONNECT_TIMEOUT"`

	// PingInterval is the websocket keepalive period.
	// Env: SYNC_PING_INTERVAL
	PingInterval time.Duration `env:"PING_INTERVAL"`

	// WriteTimeout bounds a single websocket frame write.
	// Env: SYNC_WRITE_TIMEOUT
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// FlushInterval is how often dirty room documents are persisted.
	// Env: WORKERS_FLUSH_INTERVAL
	FlushInterval time.Duration `env:"FLUSH_INTERVAL"`

	// IdleRoomTTL is how long an empty room stays in memory before it is
	// evicted.
	// Env: WORKERS_IDLE_ROOM_TTL
	IdleRoomTTL time.Duration `env:"IDLE_ROOM_TTL"`
}

// Default values applied before any other source.
const (
	DefaultServerAddress     = "localhost:8080"
	DefaultGRPCAddress       = "localhost:9090"
	DefaultRequestTimeout    = 10 * time.Second
	DefaultRelayURL          = "http://localhost:8080"
	DefaultWSEndpoint        = "ws://localhost:8080/ws"
	DefaultDriver            = DriverSQLite
	DefaultRoom              = "default"
	DefaultDebounceWindow    = 500 * time.Millisecond
	DefaultSettleDelay       = 100 * time.Millisecond
	DefaultReconnectTimeout  = 2 * time.Second
	DefaultPingInterval      = 15 * time.Second
	DefaultWriteTimeout      = 5 * time.Second
	DefaultFlushInterval     = 2 * time.Second
	DefaultIdleRoomTTL       = 10 * time.Minute
	DefaultAppVersion        = "dev"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{Version: DefaultAppVersion},
		Storage: Storage{
			DB: DB{Driver: DefaultDriver},
		},
		Server: Server{
			HTTPAddress:    DefaultServerAddress,
			GRPCAddress:    DefaultGRPCAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
		Adapter: Adapter{
			HTTPAddress:    DefaultRelayURL,
			WSEndpoint:     DefaultWSEndpoint,
			RequestTimeout: DefaultRequestTimeout,
		},
		Sync: Sync{
			Room:             DefaultRoom,
			DebounceWindow:   DefaultDebounceWindow,
			SettleDelay:      DefaultSettleDelay,
			ReconnectTimeout: DefaultReconnectTimeout,
			PingInterval:     DefaultPingInterval,
			WriteTimeout:     DefaultWriteTimeout,
		},
		Workers: Workers{
			FlushInterval: DefaultFlushInterval,
			IdleRoomTTL:   DefaultIdleRoomTTL,
		},
	}
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources using the process arguments.
func GetStructuredConfig() (*StructuredConfig, error) {
	return loadStructuredConfig(os.Args[1:])
}

func loadStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(args).
		withJSON().
		build()
}
