// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"net"
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

// listFlag is a comma separated list flag.
type listFlag []string

func (l *listFlag) String() string {
	return strings.Join(*l, ",")
}

func (l *listFlag) Set(s string) error {
	*l = nil
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*l = append(*l, part)
		}
	}
	return nil
}

// parseFlags parses all configuration flags from args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-driver database driver (sqlite3 or pgx)
//	-d database DSN
//	-c/-config json file path with configs
//	-hash-key ETAPI token hash key
//	-log-level log level
//	-hidden-root hidden subtree root note id
//	-weak-parents comma separated weak branch parent ids
//	-forbidden-parents comma separated forbidden parent ids
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-session-timeout protected session timeout
//	-erase-interval background erase interval
//	-erasure-grace attachment erasure grace period
//	-session-check-interval protected session expiry check interval
func parseFlags(name string, args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)

	var serverAddress NetAddress
	var driver, databaseDSN, jsonConfigPath, hashKey, logLevel, hiddenRoot string
	var weakParents, forbiddenParents listFlag
	var requestTimeout, sessionTimeout, eraseInterval, erasureGrace, sessionCheckInterval time.Duration

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&driver, "driver", "", "Database driver (sqlite3, pgx)")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&hashKey, "hash-key", "", "ETAPI token hash key")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.StringVar(&hiddenRoot, "hidden-root", "", "Hidden subtree root note id")
	fs.Var(&weakParents, "weak-parents", "Comma separated weak branch parent ids")
	fs.Var(&forbiddenParents, "forbidden-parents", "Comma separated forbidden parent ids")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&sessionTimeout, "session-timeout", 0, "Protected session timeout")
	fs.DurationVar(&eraseInterval, "erase-interval", 0, "Erase worker interval")
	fs.DurationVar(&erasureGrace, "erasure-grace", 0, "Attachment erasure grace period")
	fs.DurationVar(&sessionCheckInterval, "session-check-interval", 0, "Protected session expiry check interval")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			HashKey:           hashKey,
			LogLevel:          logLevel,
			HiddenRootID:      hiddenRoot,
			WeakBranchParents: weakParents,
			ForbiddenParents:  forbiddenParents,
		},
		Storage: Storage{
			DB: DB{
				Driver: driver,
				DSN:    databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Security: Security{
			ProtectedSessionTimeout: sessionTimeout,
		},
		Workers: Workers{
			EraseInterval:          eraseInterval,
			AttachmentErasureGrace: erasureGrace,
			SessionExpiryInterval:  sessionCheckInterval,
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
