package util

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DataSource_Yahoo  = "yahoo"
	DataSource_Alpaca = "alpaca"
	DataSource_Csv    = "csv"
)

type Config struct {
	DataSource        string        `json:"dataSource" yaml:"dataSource"`
	CsvDir            string        `json:"csvDir" yaml:"csvDir"`
	Alpaca            AlpacaSecrets `json:"alpaca" yaml:"alpaca"`
	FetchWorkers      int           `json:"fetchWorkers" yaml:"fetchWorkers"`
	RequestsPerSecond float64       `json:"requestsPerSecond" yaml:"requestsPerSecond"`
	ScoreExpression   string        `json:"scoreExpression" yaml:"scoreExpression"`
	OutputFile        string        `json:"outputFile" yaml:"outputFile"`
	JsonOutputFile    string        `json:"jsonOutputFile" yaml:"jsonOutputFile"`
	Port              int           `json:"port" yaml:"port"`
}

type AlpacaSecrets struct {
	ApiKey    string `json:"apiKey" yaml:"apiKey"`
	ApiSecret string `json:"apiSecret" yaml:"apiSecret"`
	Endpoint  string `json:"endpoint" yaml:"endpoint"`
}

func DefaultConfig() Config {
	return Config{
		DataSource:        DataSource_Yahoo,
		FetchWorkers:      4,
		RequestsPerSecond: 2,
		OutputFile:        "pair_trade_messages.txt",
		Port:              3009,
	}
}

// DefaultConfigPath follows PAIRSCAN_ENV the same way the logger does
func DefaultConfigPath() string {
	switch strings.ToLower(os.Getenv("PAIRSCAN_ENV")) {
	case "dev":
		return "config-dev.json"
	case "test":
		return "config-test.json"
	}
	return "config.json"
}

// LoadConfig overlays the file at path onto DefaultConfig. A missing file is
// not an error; .yaml/.yml files are parsed as YAML, anything else as JSON.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return &cfg, nil
	}

	f, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &cfg, nil
	} else if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(f, &cfg)
	default:
		err = json.Unmarshal(f, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c Config) Validate() error {
	switch c.DataSource {
	case DataSource_Yahoo:
	case DataSource_Alpaca:
		if c.Alpaca.ApiKey == "" || c.Alpaca.ApiSecret == "" {
			return fmt.Errorf("alpaca data source requires apiKey and apiSecret")
		}
	case DataSource_Csv:
		if c.CsvDir == "" {
			return fmt.Errorf("csv data source requires csvDir")
		}
	default:
		return fmt.Errorf("unknown data source %q", c.DataSource)
	}
	if c.FetchWorkers < 1 {
		return fmt.Errorf("fetchWorkers must be at least 1, got %d", c.FetchWorkers)
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("requestsPerSecond cannot be negative")
	}
	return nil
}

// ParseTickers splits a comma separated list, trims and upper-cases each
// symbol, drops empties and repeats
func ParseTickers(input string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, t := range strings.Split(input, ",") {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
