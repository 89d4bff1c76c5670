package model

const (
	ProviderNone      = "none"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderLocal     = "local"
)

// Settings keys as stored in the settings table. The options UI writes
// these; the refresher and estimation engine read them fresh each pass.
const (
	SettingLMSBaseURL           = "lms_base_url"
	SettingLMSToken             = "lms_token"
	SettingProvider             = "provider"
	SettingOpenAIKey            = "openai_api_key"
	SettingAnthropicKey         = "anthropic_api_key"
	SettingModel                = "model"
	SettingLocalURL             = "local_url"
	SettingLocalModel           = "local_model"
	SettingRefreshMinutes       = "refresh_minutes"
	SettingNotificationsEnabled = "notifications_enabled"
	SettingLookaheadDays        = "lookahead_days"
	SettingBadgesEnabled        = "badges_enabled"
)

const (
	DefaultRefreshMinutes = 30
	DefaultLookaheadDays  = 14
)

// ProviderConfig selects the estimation backend for one pass. It is loaded
// from the settings store at the start of every pass, so a changed provider
// or key takes effect on the next cycle without a restart.
type ProviderConfig struct {
	Provider     string
	OpenAIKey    string
	AnthropicKey string
	Model        string
	LocalURL     string
	LocalModel   string
}

type Settings struct {
	LMSBaseURL           string
	LMSToken             string
	Provider             ProviderConfig
	RefreshMinutes       int
	NotificationsEnabled bool
	LookaheadDays        int
	BadgesEnabled        bool
}
