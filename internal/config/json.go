package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk shape of the JSON config file.
type StructuredJSONConfig struct {
	Vault struct {
		SchemaVersion int    `json:"schema_version"`
		RecoveryDir   string `json:"recovery_dir"`
	} `json:"vault,omitempty"`

	Worker struct {
		BinaryPath  string   `json:"binary_path"`
		Mode        string   `json:"mode"`
		Timeout     Duration `json:"timeout"`
		ScanTimeout Duration `json:"scan_timeout"`
		Verbose     bool     `json:"verbose"`
	} `json:"worker,omitempty"`

	Leaks struct {
		BaseURL        string   `json:"base_url"`
		RequestTimeout Duration `json:"request_timeout"`
		MaxConcurrent  int      `json:"max_concurrent"`
	} `json:"leaks,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Session struct {
		IdleTimeout Duration `json:"idle_timeout"`
		RecentLimit int      `json:"recent_limit"`
	} `json:"session,omitempty"`

	RangeMock struct {
		Address     string `json:"address"`
		FixturePath string `json:"fixture"`
	} `json:"range_mock,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Vault: Vault{
			SchemaVersion: jsonCfg.Vault.SchemaVersion,
			RecoveryDir:   jsonCfg.Vault.RecoveryDir,
		},
		Worker: Worker{
			BinaryPath:  jsonCfg.Worker.BinaryPath,
			Mode:        jsonCfg.Worker.Mode,
			Timeout:     time.Duration(jsonCfg.Worker.Timeout),
			ScanTimeout: time.Duration(jsonCfg.Worker.ScanTimeout),
			Verbose:     jsonCfg.Worker.Verbose,
		},
		Leaks: Leaks{
			BaseURL:        jsonCfg.Leaks.BaseURL,
			RequestTimeout: time.Duration(jsonCfg.Leaks.RequestTimeout),
			MaxConcurrent:  jsonCfg.Leaks.MaxConcurrent,
		},
		Storage: Storage{
			DB: DB{DSN: jsonCfg.Storage.DB.DSN},
		},
		Session: Session{
			IdleTimeout: time.Duration(jsonCfg.Session.IdleTimeout),
			RecentLimit: jsonCfg.Session.RecentLimit,
		},
		RangeMock: RangeMock{
			Address:     jsonCfg.RangeMock.Address,
			FixturePath: jsonCfg.RangeMock.FixturePath,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
