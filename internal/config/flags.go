// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses configuration flags from args.
//
// Flags:
//
//	-a relay HTTP/websocket address in format [host]:[port]
//	-grpc-address relay gRPC health address in format [host]:[port]
//	-driver database driver (sqlite3 or postgres)
//	-d database DSN
//	-c/-config json file path with configs
//	-request-timeout relay request timeout (e.g., "30s", "1m")
//	-relay relay REST base URL used by the client
//	-ws relay websocket endpoint used by the client
//	-room room to join
//	-debounce local change debounce window
//	-settle loop guard settle delay
//	-reconnect pause between reconnect attempts
//	-ping websocket keepalive period
//	-write-timeout websocket write deadline
//	-flush-interval document flush period
//	-idle-room-ttl idle room eviction age
//	-log client log file path
func parseFlags(args []string) (*StructuredConfig, error) {
	var serverAddress, grpcServerAddress NetAddress
	var driver, databaseDSN, jsonConfigPath, logPath string
	var relayURL, wsEndpoint, room string
	var requestTimeout time.Duration
	var debounce, settle, reconnect, ping, writeTimeout time.Duration
	var flushInterval, idleRoomTTL time.Duration

	name := "canvas-sync"
	if len(os.Args) > 0 {
		name = os.Args[0]
	}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.Var(&grpcServerAddress, "grpc-address", "Net grpc server address host:port")
	fs.StringVar(&driver, "driver", "", "Database driver (sqlite3, postgres)")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&relayURL, "relay", "", "Relay REST base URL")
	fs.StringVar(&wsEndpoint, "ws", "", "Relay websocket endpoint")
	fs.StringVar(&room, "room", "", "Room to join")
	fs.DurationVar(&debounce, "debounce", 0, "Local change debounce window")
	fs.DurationVar(&settle, "settle", 0, "Loop guard settle delay")
	fs.DurationVar(&reconnect, "reconnect", 0, "Pause between reconnect attempts")
	fs.DurationVar(&ping, "ping", 0, "Websocket keepalive period")
	fs.DurationVar(&writeTimeout, "write-timeout", 0, "Websocket write deadline")
	fs.DurationVar(&flushInterval, "flush-interval", 0, "Document flush period")
	fs.DurationVar(&idleRoomTTL, "idle-room-ttl", 0, "Idle room eviction age")
	fs.StringVar(&logPath, "log", "", "Client log file path")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			LogPath: logPath,
		},
		Storage: Storage{
			DB: DB{
				Driver: driver,
				DSN:    databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			GRPCAddress:    grpcServerAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			HTTPAddress:    relayURL,
			WSEndpoint:     wsEndpoint,
			RequestTimeout: requestTimeout,
		},
		Sync: Sync{
			Room:             room,
			DebounceWindow:   debounce,
			SettleDelay:      settle,
			ReconnectTimeout: reconnect,
			PingInterval:     ping,
			WriteTimeout:     writeTimeout,
		},
		Workers: Workers{
			FlushInterval: flushInterval,
			IdleRoomTTL:   idleRoomTTL,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
