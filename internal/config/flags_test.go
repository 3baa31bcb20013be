package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetAddress_String(t *testing.T) {
	tests := []struct {
		name     string
		addr     NetAddress
		expected string
	}{
		{name: "empty address", addr: NetAddress{}, expected: ""},
		{name: "localhost with port", addr: NetAddress{Host: "localhost", Port: 8080}, expected: "localhost:8080"},
		{name: "IP address with port", addr: NetAddress{Host: "127.0.0.1", Port: 9090}, expected: "127.0.0.1:9090"},
		{name: "only port no host", addr: NetAddress{Port: 8080}, expected: ":8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.addr.String())
		})
	}
}

func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
		expected    NetAddress
	}{
		{name: "localhost", input: "localhost:8089", expected: NetAddress{Host: "localhost", Port: 8089}},
		{name: "ipv4", input: "127.0.0.1:9000", expected: NetAddress{Host: "127.0.0.1", Port: 9000}},
		{name: "all interfaces", input: ":9000", expected: NetAddress{Port: 9000}},
		{name: "missing port", input: "localhost", expectError: true},
		{name: "port not a number", input: "localhost:http", expectError: true},
		{name: "port out of range", input: "localhost:70000", expectError: true},
		{name: "zero port", input: "localhost:0", expectError: true},
		{name: "hostname", input: "example.com:80", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a NetAddress
			err := a.Set(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, a)
		})
	}
}

func TestParseFlags_AllFlags(t *testing.T) {
	cfg, err := ParseFlags("vault", []string{
		"-c", "/etc/vault.json",
		"-d", "/tmp/ws.db",
		"-schema-version", "1",
		"-recovery-dir", "/tmp/rec",
		"-worker-binary", "/bin/vault",
		"-worker-mode", "inprocess",
		"-worker-timeout", "15s",
		"-scan-timeout", "3m",
		"-v",
		"-leaks-url", "http://localhost:8089/range",
		"-leaks-timeout", "5s",
		"-leaks-concurrency", "2",
		"-idle-timeout", "1m",
		"-a", "localhost:9999",
		"-fixture", "/tmp/f.txt",
		"vault.pvault",
	})
	require.NoError(t, err)

	assert.Equal(t, "/etc/vault.json", cfg.JSONFilePath)
	assert.Equal(t, "/tmp/ws.db", cfg.Storage.DB.DSN)
	assert.Equal(t, 1, cfg.Vault.SchemaVersion)
	assert.Equal(t, "/tmp/rec", cfg.Vault.RecoveryDir)
	assert.Equal(t, "/bin/vault", cfg.Worker.BinaryPath)
	assert.Equal(t, "inprocess", cfg.Worker.Mode)
	assert.Equal(t, 15*time.Second, cfg.Worker.Timeout)
	assert.Equal(t, 3*time.Minute, cfg.Worker.ScanTimeout)
	assert.True(t, cfg.Worker.Verbose)
	assert.Equal(t, "http://localhost:8089/range", cfg.Leaks.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Leaks.RequestTimeout)
	assert.Equal(t, 2, cfg.Leaks.MaxConcurrent)
	assert.Equal(t, time.Minute, cfg.Session.IdleTimeout)
	assert.Equal(t, "localhost:9999", cfg.RangeMock.Address)
	assert.Equal(t, "/tmp/f.txt", cfg.RangeMock.FixturePath)
	assert.Equal(t, []string{"vault.pvault"}, cfg.Args)
}

func TestParseFlags_NoFlags(t *testing.T) {
	cfg, err := ParseFlags("vault", nil)
	require.NoError(t, err)

	assert.Empty(t, cfg.JSONFilePath)
	assert.Empty(t, cfg.Worker.Mode)
	assert.Zero(t, cfg.Leaks.RequestTimeout)
	assert.Empty(t, cfg.RangeMock.Address)
	assert.Empty(t, cfg.Args)
}

func TestParseFlags_ConfigAlias(t *testing.T) {
	cfg, err := ParseFlags("vault", []string{"-config", "/etc/alias.json"})
	require.NoError(t, err)
	assert.Equal(t, "/etc/alias.json", cfg.JSONFilePath)
}

func TestParseFlags_InvalidValue(t *testing.T) {
	_, err := ParseFlags("vault", []string{"-worker-timeout", "soon"})
	assert.Error(t, err)

	_, err = ParseFlags("vault", []string{"-a", "nohost"})
	assert.Error(t, err)
}
