package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
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

// ParseFlags parses configuration flags from args into a partial config.
// Unset flags leave their fields zero so lower-priority sources can fill
// them. Positional arguments after the flags end up in Args.
//
// Flags:
//
//	-c/-config json file path with configs
//	-d workspace database DSN
//	-schema-version vault schema version to write
//	-recovery-dir recovery snapshot directory
//	-worker-binary worker executable path
//	-worker-mode process or inprocess
//	-worker-timeout reply wait bound (e.g., "30s")
//	-scan-timeout reply wait bound for breach scans (e.g., "5m")
//	-v verbose worker logging
//	-leaks-url breach range endpoint
//	-leaks-timeout per-request timeout (e.g., "30s")
//	-leaks-concurrency max in-flight range requests
//	-idle-timeout session idle lock (e.g., "10m")
//	-a range mock listen address in format [host]:[port]
//	-fixture range mock fixture file
func ParseFlags(name string, args []string) (*StructuredConfig, error) {
	var (
		jsonConfigPath   string
		databaseDSN      string
		schemaVersion    int
		recoveryDir      string
		workerBinary     string
		workerMode       string
		workerTimeout    time.Duration
		scanTimeout      time.Duration
		verbose          bool
		leaksURL         string
		leaksTimeout     time.Duration
		leaksConcurrency int
		idleTimeout      time.Duration
		rangeMockAddress NetAddress
		fixturePath      string
	)

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&databaseDSN, "d", "", "Workspace database DSN")
	fs.IntVar(&schemaVersion, "schema-version", 0, "Vault schema version to write")
	fs.StringVar(&recoveryDir, "recovery-dir", "", "Recovery snapshot directory")
	fs.StringVar(&workerBinary, "worker-binary", "", "Worker executable path")
	fs.StringVar(&workerMode, "worker-mode", "", "Worker mode: process or inprocess")
	fs.DurationVar(&workerTimeout, "worker-timeout", 0, "Worker reply timeout (e.g., 30s)")
	fs.DurationVar(&scanTimeout, "scan-timeout", 0, "Breach scan reply timeout (e.g., 5m)")
	fs.BoolVar(&verbose, "v", false, "Verbose worker logging")
	fs.StringVar(&leaksURL, "leaks-url", "", "Breach range endpoint")
	fs.DurationVar(&leaksTimeout, "leaks-timeout", 0, "Range request timeout (e.g., 30s)")
	fs.IntVar(&leaksConcurrency, "leaks-concurrency", 0, "Max in-flight range requests")
	fs.DurationVar(&idleTimeout, "idle-timeout", 0, "Session idle lock timeout (e.g., 10m)")
	fs.Var(&rangeMockAddress, "a", "Range mock net address host:port")
	fs.StringVar(&fixturePath, "fixture", "", "Range mock fixture file")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		Vault: Vault{
			SchemaVersion: schemaVersion,
			RecoveryDir:   recoveryDir,
		},
		Worker: Worker{
			BinaryPath:  workerBinary,
			Mode:        workerMode,
			Timeout:     workerTimeout,
			ScanTimeout: scanTimeout,
			Verbose:     verbose,
		},
		Leaks: Leaks{
			BaseURL:        leaksURL,
			RequestTimeout: leaksTimeout,
			MaxConcurrent:  leaksConcurrency,
		},
		Storage: Storage{
			DB: DB{DSN: databaseDSN},
		},
		Session: Session{
			IdleTimeout: idleTimeout,
		},
		RangeMock: RangeMock{
			Address:     rangeMockAddress.String(),
			FixturePath: fixturePath,
		},
		JSONFilePath: jsonConfigPath,
		Args:         fs.Args(),
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

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
