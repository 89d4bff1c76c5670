package repository

import (
	"database/sql"
	"strconv"

	"courseload/internal/model"
)

// SettingsRepository is the persistent key-value settings store shared with
// the extension's options page. Values are read fresh at the start of every
// estimation pass, so changes apply on the next cycle without a restart.
type SettingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) EnsureSchema() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS setting (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	return err
}

func (r *SettingsRepository) GetAll() (map[string]string, error) {
	rows, err := r.db.Query(`SELECT key, value FROM setting`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		values[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return values, nil
}

func (r *SettingsRepository) Set(key, value string) error {
	_, err := r.db.Exec(`
		INSERT INTO setting(key, value) VALUES($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
	`, key, value)
	return err
}

func (r *SettingsRepository) LoadSettings() (*model.Settings, error) {
	values, err := r.GetAll()
	if err != nil {
		return nil, err
	}

	s := &model.Settings{
		LMSBaseURL:           values[model.SettingLMSBaseURL],
		LMSToken:             values[model.SettingLMSToken],
		Provider:             providerConfigFrom(values),
		RefreshMinutes:       intOr(values[model.SettingRefreshMinutes], model.DefaultRefreshMinutes),
		NotificationsEnabled: boolOr(values[model.SettingNotificationsEnabled], true),
		LookaheadDays:        intOr(values[model.SettingLookaheadDays], model.DefaultLookaheadDays),
		BadgesEnabled:        boolOr(values[model.SettingBadgesEnabled], true),
	}
	return s, nil
}

func (r *SettingsRepository) LoadProviderConfig() (*model.ProviderConfig, error) {
	values, err := r.GetAll()
	if err != nil {
		return nil, err
	}
	cfg := providerConfigFrom(values)
	return &cfg, nil
}

func providerConfigFrom(values map[string]string) model.ProviderConfig {
	provider := values[model.SettingProvider]
	if provider == "" {
		provider = model.ProviderNone
	}
	return model.ProviderConfig{
		Provider:     provider,
		OpenAIKey:    values[model.SettingOpenAIKey],
		AnthropicKey: values[model.SettingAnthropicKey],
		Model:        values[model.SettingModel],
		LocalURL:     values[model.SettingLocalURL],
		LocalModel:   values[model.SettingLocalModel],
	}
}

func intOr(value string, fallback int) int {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func boolOr(value string, fallback bool) bool {
	if value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return b
}
