package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	AppEnv     string           `yaml:"app_env"`
	AWS        AWSConfig        `yaml:"aws"`
	SQS        SQSConfig        `yaml:"sqs"`
	Backend    BackendConfig    `yaml:"backend"`
	STT        STTConfig        `yaml:"stt"`
	LLM        LLMConfig        `yaml:"llm"`
	Retry      RetryConfig      `yaml:"retry"`
	Processing ProcessingConfig `yaml:"processing"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type AWSConfig struct {
	Region       string `yaml:"region"`
	VideoBucket  string `yaml:"video_bucket"`
	ResultBucket string `yaml:"result_bucket"`
}

type SQSConfig struct {
	QueueURL                 string `yaml:"queue_url"`
	WaitTimeSeconds          int    `yaml:"wait_time_seconds"`
	VisibilityTimeoutSeconds int    `yaml:"visibility_timeout_seconds"`
}

type BackendConfig struct {
	BaseURL       string `yaml:"base_url"`
	InternalToken string `yaml:"internal_token"`
}

type STTConfig struct {
	URL      string `yaml:"url"`
	APIKeyID string `yaml:"api_key_id"`
	APIKey   string `yaml:"api_key"`
}

type LLMConfig struct {
	APIKey    string `yaml:"api_key"`
	Model     string `yaml:"model"`
	MaxTokens int    `yaml:"max_tokens"`
	BaseURL   string `yaml:"base_url"`
}

type RetryConfig struct {
	MaxRetries   int `yaml:"max_retries"`
	DelaySeconds int `yaml:"delay_seconds"`
}

type ProcessingConfig struct {
	TempDir            string `yaml:"temp_dir"`
	TranscriptMinChars int    `yaml:"transcript_min_chars"`
	TranscriptMaxChars int    `yaml:"transcript_max_chars"`
	TruncateLimitChars int    `yaml:"truncate_limit_chars"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load starts from the built-in defaults, overlays tunables from an
// optional YAML file and then environment variables on top. Credentials
// and endpoints always come from the environment; the file only carries
// non-secret defaults. A value explicitly set to zero survives the
// overlay, so MAX_RETRIES=0 means no retries rather than the default.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config file %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	envStr(&c.AppEnv, "APP_ENV")
	envStr(&c.AWS.Region, "AWS_REGION")
	envStr(&c.AWS.VideoBucket, "VIDEO_BUCKET_NAME")
	envStr(&c.AWS.ResultBucket, "RESULT_BUCKET_NAME")
	envStr(&c.SQS.QueueURL, "SQS_QUEUE_URL")
	envInt(&c.SQS.WaitTimeSeconds, "SQS_WAIT_TIME_SECONDS")
	envInt(&c.SQS.VisibilityTimeoutSeconds, "SQS_VISIBILITY_TIMEOUT_SECONDS")
	envStr(&c.Backend.BaseURL, "BACKEND_BASE_URL")
	envStr(&c.Backend.InternalToken, "BACKEND_INTERNAL_TOKEN")
	envStr(&c.STT.URL, "STT_URL")
	envStr(&c.STT.APIKeyID, "STT_API_KEY_ID")
	envStr(&c.STT.APIKey, "STT_API_KEY")
	envStr(&c.LLM.APIKey, "LLM_API_KEY")
	envStr(&c.LLM.Model, "LLM_MODEL")
	envInt(&c.LLM.MaxTokens, "LLM_MAX_TOKENS")
	envStr(&c.LLM.BaseURL, "LLM_BASE_URL")
	envInt(&c.Retry.MaxRetries, "MAX_RETRIES")
	envInt(&c.Retry.DelaySeconds, "RETRY_DELAY_SECONDS")
	envStr(&c.Processing.TempDir, "TEMP_DIR")
	envStr(&c.Logging.Level, "LOG_LEVEL")
}

func defaultConfig() *Config {
	return &Config{
		AppEnv: "dev",
		AWS: AWSConfig{
			Region:       "ap-northeast-2",
			VideoBucket:  "shortform-video-bucket",
			ResultBucket: "shortform-result-bucket",
		},
		SQS: SQSConfig{
			WaitTimeSeconds:          10,
			VisibilityTimeoutSeconds: 90,
		},
		STT: STTConfig{
			URL: "https://naveropenapi.apigw.ntruss.com/recog/v1/stt?lang=Kor",
		},
		LLM: LLMConfig{
			Model:     "gemini-2.5-flash",
			MaxTokens: 2000,
		},
		Retry: RetryConfig{
			MaxRetries:   3,
			DelaySeconds: 5,
		},
		Processing: ProcessingConfig{
			TempDir:            os.TempDir(),
			TranscriptMinChars: 10,
			TranscriptMaxChars: 100000,
			TruncateLimitChars: 50000,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports every missing required value in a single error so a
// bad deployment fails loudly once. Empty tunables are backfilled for
// callers that build a Config by hand; the retry knobs are left alone
// because zero is a valid setting for them.
func (c *Config) Validate() error {
	var missing []string

	if c.SQS.QueueURL == "" {
		missing = append(missing, "SQS_QUEUE_URL")
	}
	if c.Backend.BaseURL == "" {
		missing = append(missing, "BACKEND_BASE_URL")
	}
	if c.Backend.InternalToken == "" {
		missing = append(missing, "BACKEND_INTERNAL_TOKEN")
	}
	if c.STT.APIKeyID == "" {
		missing = append(missing, "STT_API_KEY_ID")
	}
	if c.STT.APIKey == "" {
		missing = append(missing, "STT_API_KEY")
	}
	if c.LLM.APIKey == "" {
		missing = append(missing, "LLM_API_KEY")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	if c.AppEnv == "" {
		c.AppEnv = "dev"
	}
	if c.AWS.Region == "" {
		c.AWS.Region = "ap-northeast-2"
	}
	if c.AWS.VideoBucket == "" {
		c.AWS.VideoBucket = "shortform-video-bucket"
	}
	if c.AWS.ResultBucket == "" {
		c.AWS.ResultBucket = "shortform-result-bucket"
	}
	if c.SQS.WaitTimeSeconds == 0 {
		c.SQS.WaitTimeSeconds = 10
	}
	if c.SQS.VisibilityTimeoutSeconds == 0 {
		c.SQS.VisibilityTimeoutSeconds = 90
	}
	if c.STT.URL == "" {
		c.STT.URL = "https://naveropenapi.apigw.ntruss.com/recog/v1/stt?lang=Kor"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "gemini-2.5-flash"
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 2000
	}
	if c.Processing.TempDir == "" {
		c.Processing.TempDir = os.TempDir()
	}
	if c.Processing.TranscriptMinChars == 0 {
		c.Processing.TranscriptMinChars = 10
	}
	if c.Processing.TranscriptMaxChars == 0 {
		c.Processing.TranscriptMaxChars = 100000
	}
	if c.Processing.TruncateLimitChars == 0 {
		c.Processing.TruncateLimitChars = 50000
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}

func envStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
