package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress           string
	DatabaseURI          string
	ChainProviderAddress string
	ChainProviderAPIKey  string
	ContentStoreAddress  string
	AssistantAddress     string
	AssistantModel       string
	WalletAgentAddress   string
	ContractAddress      string
	ScriptCbor           string
	PolicyID             string
	GoldAsset            string
	SilverAsset          string
	PlatinumAsset        string
	SessionSecret        string
	SessionTTL           time.Duration
	ConfirmPollInterval  time.Duration
	WorkerPoolSize       int
	ShutdownTimeout      time.Duration
	MaxConfirmBatch      int
}

const (
	defaultRunAddress          = ":8080"
	defaultSessionSecret       = "change-me-in-production"
	defaultSessionTTL          = 24 * time.Hour
	defaultAssistantModel      = "gemini-1.5-flash"
	defaultConfirmPollInterval = 5 * time.Second
	defaultWorkerPoolSize      = 4
	defaultShutdownTimeout     = 10 * time.Second
	defaultMaxConfirmBatch     = 32
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:           getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:          getString(lookup, "DATABASE_URI", ""),
		ChainProviderAddress: getString(lookup, "CHAIN_PROVIDER_ADDRESS", ""),
		ChainProviderAPIKey:  getString(lookup, "CHAIN_PROVIDER_API_KEY", ""),
		ContentStoreAddress:  getString(lookup, "CONTENT_STORE_ADDRESS", ""),
		AssistantAddress:     getString(lookup, "ASSISTANT_ADDRESS", ""),
		AssistantModel:       getString(lookup, "ASSISTANT_MODEL", defaultAssistantModel),
		WalletAgentAddress:   getString(lookup, "WALLET_AGENT_ADDRESS", ""),
		ContractAddress:      getString(lookup, "CONTRACT_ADDRESS", ""),
		ScriptCbor:           getString(lookup, "SCRIPT_CBOR", ""),
		PolicyID:             getString(lookup, "POLICY_ID", ""),
		GoldAsset:            getString(lookup, "TOKEN_GOLD", "CardafyGold"),
		SilverAsset:          getString(lookup, "TOKEN_SILVER", "CardafySilver"),
		PlatinumAsset:        getString(lookup, "TOKEN_PLATINUM", "CardafyPlatinum"),
		SessionSecret:        getString(lookup, "SESSION_SECRET", defaultSessionSecret),
		SessionTTL:           getDuration(lookup, "SESSION_TTL", defaultSessionTTL),
		ConfirmPollInterval:  getDuration(lookup, "CONFIRM_POLL_INTERVAL", defaultConfirmPollInterval),
		WorkerPoolSize:       getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		ShutdownTimeout:      getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		MaxConfirmBatch:      getInt(lookup, "CONFIRM_BATCH_SIZE", defaultMaxConfirmBatch),
	}

	fs := flag.NewFlagSet("cardafy", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		pollIntervalStr    = cfg.ConfirmPollInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.ChainProviderAddress, "c", cfg.ChainProviderAddress, "Chain data provider base URL")
	fs.StringVar(&cfg.ContentStoreAddress, "content", cfg.ContentStoreAddress, "Content store base URL")
	fs.StringVar(&cfg.AssistantAddress, "assistant", cfg.AssistantAddress, "Assistant endpoint base URL")
	fs.StringVar(&cfg.WalletAgentAddress, "wallet-agent", cfg.WalletAgentAddress, "Wallet agent base URL")
	fs.StringVar(&cfg.ContractAddress, "contract", cfg.ContractAddress, "Escrow script address")
	fs.StringVar(&cfg.PolicyID, "policy", cfg.PolicyID, "Membership token policy ID")
	fs.StringVar(&cfg.SessionSecret, "session-secret", cfg.SessionSecret, "Secret for sealing session tokens")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent confirmation workers")
	fs.StringVar(&pollIntervalStr, "poll-interval", pollIntervalStr, "Interval between confirmation polls")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.IntVar(&cfg.MaxConfirmBatch, "poll-batch", cfg.MaxConfirmBatch, "Maximum orders per confirmation batch")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.ConfirmPollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid poll interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("SESSION_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read session secret file: %w", err)
		}
		cfg.SessionSecret = string(content)
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.MaxConfirmBatch <= 0 {
		cfg.MaxConfirmBatch = defaultMaxConfirmBatch
	}

	if cfg.ConfirmPollInterval <= 0 {
		cfg.ConfirmPollInterval = defaultConfirmPollInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.ChainProviderAddress == "" {
		return nil, fmt.Errorf("chain provider address must be provided")
	}

	if cfg.ContentStoreAddress == "" {
		return nil, fmt.Errorf("content store address must be provided")
	}

	if cfg.WalletAgentAddress == "" {
		return nil, fmt.Errorf("wallet agent address must be provided")
	}

	if cfg.AssistantAddress == "" {
		return nil, fmt.Errorf("assistant address must be provided")
	}

	if cfg.ContractAddress == "" {
		return nil, fmt.Errorf("contract address must be provided")
	}

	if cfg.PolicyID == "" {
		return nil, fmt.Errorf("membership policy ID must be provided")
	}

	if err := validateTierAssets(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validateTierAssets(cfg *Config) error {
	names := map[string]string{
		"gold":     cfg.GoldAsset,
		"silver":   cfg.SilverAsset,
		"platinum": cfg.PlatinumAsset,
	}
	seen := make(map[string]string, len(names))
	for tier, asset := range names {
		if asset == "" {
			return fmt.Errorf("asset name for %s tier must not be empty", tier)
		}
		if other, ok := seen[asset]; ok {
			return fmt.Errorf("asset name %q is shared by %s and %s tiers", asset, other, tier)
		}
		seen[asset] = tier
	}
	return nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
