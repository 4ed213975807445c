package secrets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"chat-powered-ecommerce/backend/pkg/logger"

	vault "github.com/hashicorp/vault/api"
)

var (
	ErrSecretNotFound = errors.New("secret not found")
	ErrNoVaultToken   = errors.New("no vault token provided")
	ErrNoVaultAddress = errors.New("no vault address provided")
)

// VaultConfig holds configuration for the Vault client
type VaultConfig struct {
	Address     string
	Token       string
	Namespace   string
	Timeout     time.Duration
	MaxRetries  int
	SecretsPath string
	Enabled     bool
}

// VaultManager resolves secrets from HashiCorp Vault, caching reads and
// falling back to environment variables when Vault is disabled or a key is
// absent from the secrets path.
type VaultManager struct {
	client *vault.Client
	config VaultConfig
	cache  map[string]string
	mu     sync.RWMutex
	log    *logger.Logger
}

// NewVaultManager creates a Vault manager from VAULT_* environment variables.
// When VAULT_ADDR is unset the manager runs in env-only mode.
func NewVaultManager(log *logger.Logger) (*VaultManager, error) {
	config := VaultConfig{
		Address:     os.Getenv("VAULT_ADDR"),
		Token:       os.Getenv("VAULT_TOKEN"),
		Namespace:   os.Getenv("VAULT_NAMESPACE"),
		SecretsPath: os.Getenv("VAULT_SECRETS_PATH"),
		Enabled:     os.Getenv("VAULT_ADDR") != "",
		Timeout:     10 * time.Second,
		MaxRetries:  3,
	}

	if !config.Enabled {
		return &VaultManager{
			config: config,
			cache:  make(map[string]string),
			log:    log,
		}, nil
	}

	if config.Token == "" {
		return nil, ErrNoVaultToken
	}
	if config.SecretsPath == "" {
		config.SecretsPath = "secret/data/chat-ecommerce"
	}

	vaultConfig := vault.DefaultConfig()
	vaultConfig.Address = config.Address
	vaultConfig.Timeout = config.Timeout
	vaultConfig.MaxRetries = config.MaxRetries

	client, err := vault.NewClient(vaultConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create vault client: %w", err)
	}
	client.SetToken(config.Token)
	if config.Namespace != "" {
		client.SetNamespace(config.Namespace)
	}

	return &VaultManager{
		client: client,
		config: config,
		cache:  make(map[string]string),
		log:    log,
	}, nil
}

// GetSecret retrieves a secret by key, preferring Vault over the environment
func (m *VaultManager) GetSecret(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	if value, ok := m.cache[key]; ok {
		m.mu.RUnlock()
		return value, nil
	}
	m.mu.RUnlock()

	if m.client != nil {
		value, err := m.readFromVault(ctx, key)
		if err == nil {
			m.mu.Lock()
			m.cache[key] = value
			m.mu.Unlock()
			return value, nil
		}
		if !errors.Is(err, ErrSecretNotFound) {
			m.log.Warn("vault read failed, falling back to environment",
				"key", key,
				"error", err.Error(),
			)
		}
	}

	if value := os.Getenv(key); value != "" {
		return value, nil
	}
	return "", ErrSecretNotFound
}

// GetSecretWithDefault retrieves a secret, returning defaultValue when absent
func (m *VaultManager) GetSecretWithDefault(ctx context.Context, key, defaultValue string) string {
	value, err := m.GetSecret(ctx, key)
	if err != nil {
		return defaultValue
	}
	return value
}

func (m *VaultManager) readFromVault(ctx context.Context, key string) (string, error) {
	secret, err := m.client.Logical().ReadWithContext(ctx, m.config.SecretsPath)
	if err != nil {
		return "", fmt.Errorf("vault read: %w", err)
	}
	if secret == nil || secret.Data == nil {
		return "", ErrSecretNotFound
	}

	// KV v2 nests the payload under "data"
	data := secret.Data
	if nested, ok := secret.Data["data"].(map[string]interface{}); ok {
		data = nested
	}

	value, ok := data[key].(string)
	if !ok || value == "" {
		return "", ErrSecretNotFound
	}
	return value, nil
}
