package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

const (
	EnvDev  = "dev"
	EnvProd = "prod"
	EnvTest = "test"
)

const MemoryDatabaseUrl = "memory://"

const (
	MailProviderMailgun = "mailgun"
	MailProviderSES     = "ses"
	MailProviderLog     = "log"

	StorageProviderS3    = "s3"
	StorageProviderGCS   = "gcs"
	StorageProviderLocal = "local"

	ImageProviderDeepAI = "deepai"
	ImageProviderOpenAI = "openai"
)

type Config struct {
	EnvState string

	Host      string
	Port      string
	PublicUrl string
	// PublicUrlDerived is set when PUBLIC_URL was empty and PublicUrl was built from Host and Port.
	PublicUrlDerived bool

	DatabaseUrl   string
	MigrationsDir string

	SecretKey string
	Algorithm string

	MailProvider   string
	MailgunApiKey  string
	MailgunDomain  string
	MailgunApiBase string
	MailFrom       string

	AwsAccessKeyId     string
	AwsSecretAccessKey string
	AwsRegion          string

	StorageProvider    string
	S3BucketName       string
	GcsBucketName      string
	GcsCredentialsFile string
	LocalUploadDir     string
	MaxUploadBytes     int64
	UploadImagesOnly   bool

	ImageProvider string
	DeepAIApiKey  string
	DeepAIApiUrl  string
	OpenAIApiKey  string
	ImagePrompt   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	FeedCacheTTL  time.Duration

	TaskWorkers   int
	TaskQueueSize int

	LogFile  string
	LogLevel string
}

func (c *Config) IsDev() bool  { return c.EnvState == EnvDev }
func (c *Config) IsProd() bool { return c.EnvState == EnvProd }
func (c *Config) IsTest() bool { return c.EnvState == EnvTest }

func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

// Load reads ENV_STATE (default dev) and then every other setting under the
// state's prefix, e.g. DEV_DATABASE_URL. A .env file in the working
// directory is applied first without overriding the process environment.
func Load() (*Config, error) {
	if err := gotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env: %v", err)
	}

	envState := strings.ToLower(os.Getenv("ENV_STATE"))
	if envState == "" {
		envState = EnvDev
	}

	return LoadForState(envState)
}

func LoadForState(envState string) (*Config, error) {
	switch envState {
	case EnvDev, EnvProd, EnvTest:
	default:
		return nil, fmt.Errorf("unknown ENV_STATE %q (expected dev, prod or test)", envState)
	}

	v := viper.New()
	v.SetEnvPrefix(strings.ToUpper(envState))
	v.AutomaticEnv()
	setDefaults(v, envState)

	c := &Config{
		EnvState: envState,

		Host:      v.GetString("HOST"),
		Port:      v.GetString("PORT"),
		PublicUrl: v.GetString("PUBLIC_URL"),

		DatabaseUrl:   v.GetString("DATABASE_URL"),
		MigrationsDir: v.GetString("MIGRATIONS_DIR"),

		SecretKey: v.GetString("SECRET_KEY"),
		Algorithm: v.GetString("ALGORITHM"),

		MailProvider:   strings.ToLower(v.GetString("MAIL_PROVIDER")),
		MailgunApiKey:  v.GetString("MAILGUN_API_KEY"),
		MailgunDomain:  v.GetString("MAILGUN_DOMAIN"),
		MailgunApiBase: v.GetString("MAILGUN_API_BASE"),
		MailFrom:       v.GetString("MAIL_FROM"),

		AwsAccessKeyId:     v.GetString("AWS_ACCESS_KEY_ID"),
		AwsSecretAccessKey: v.GetString("AWS_SECRET_ACCESS_KEY"),
		AwsRegion:          v.GetString("AWS_REGION"),

		StorageProvider:    strings.ToLower(v.GetString("STORAGE_PROVIDER")),
		S3BucketName:       v.GetString("S3_BUCKET_NAME"),
		GcsBucketName:      v.GetString("GCS_BUCKET_NAME"),
		GcsCredentialsFile: v.GetString("GCS_CREDENTIALS_FILE"),
		LocalUploadDir:     v.GetString("LOCAL_UPLOAD_DIR"),
		MaxUploadBytes:     v.GetInt64("MAX_UPLOAD_BYTES"),
		UploadImagesOnly:   v.GetBool("UPLOAD_IMAGES_ONLY"),

		ImageProvider: strings.ToLower(v.GetString("IMAGE_PROVIDER")),
		DeepAIApiKey:  v.GetString("DEEPAI_API_KEY"),
		DeepAIApiUrl:  v.GetString("DEEPAI_API_URL"),
		OpenAIApiKey:  v.GetString("OPENAI_API_KEY"),
		ImagePrompt:   v.GetString("IMAGE_PROMPT"),

		RedisAddr:     v.GetString("REDIS_ADDR"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		RedisDB:       v.GetInt("REDIS_DB"),
		FeedCacheTTL:  v.GetDuration("FEED_CACHE_TTL"),

		TaskWorkers:   v.GetInt("TASK_WORKERS"),
		TaskQueueSize: v.GetInt("TASK_QUEUE_SIZE"),

		LogFile:  v.GetString("LOG_FILE"),
		LogLevel: strings.ToLower(v.GetString("LOG_LEVEL")),
	}

	if c.PublicUrl == "" {
		c.PublicUrl = "http://" + c.Addr()
		c.PublicUrlDerived = true
	}
	c.PublicUrl = strings.TrimRight(c.PublicUrl, "/")

	if c.MailProvider == "" {
		c.MailProvider = defaultMailProvider(c)
	}
	if c.StorageProvider == "" {
		c.StorageProvider = defaultStorageProvider(c)
	}

	if err := c.validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func setDefaults(v *viper.Viper, envState string) {
	v.SetDefault("HOST", "127.0.0.1")
	v.SetDefault("PORT", "8000")
	v.SetDefault("ALGORITHM", "HS256")
	v.SetDefault("IMAGE_PROVIDER", ImageProviderDeepAI)
	v.SetDefault("DEEPAI_API_URL", "https://api.deepai.org/api/text2img")
	v.SetDefault("IMAGE_PROMPT", "A cat is sitting on chair")
	v.SetDefault("MAX_UPLOAD_BYTES", 10*1024*1024)
	v.SetDefault("LOCAL_UPLOAD_DIR", "uploads")
	v.SetDefault("FEED_CACHE_TTL", 30*time.Second)
	v.SetDefault("TASK_WORKERS", 4)
	v.SetDefault("TASK_QUEUE_SIZE", 100)

	switch envState {
	case EnvProd:
		v.SetDefault("LOG_LEVEL", "info")
	case EnvTest:
		setMemoryDatabaseDefault(v)
		v.SetDefault("SECRET_KEY", "test")
		v.SetDefault("LOG_LEVEL", "warn")
		v.SetDefault("TASK_WORKERS", 1)
	default:
		setMemoryDatabaseDefault(v)
		v.SetDefault("LOG_LEVEL", "debug")
	}
}

// setMemoryDatabaseDefault leaves DATABASE_URL empty when DB_HOST is set so
// db.ResolveUrl builds the url from the DB_* parts.
func setMemoryDatabaseDefault(v *viper.Viper) {
	if os.Getenv("DB_HOST") == "" {
		v.SetDefault("DATABASE_URL", MemoryDatabaseUrl)
	}
}

func defaultMailProvider(c *Config) string {
	if c.MailgunApiKey != "" && c.MailgunDomain != "" {
		return MailProviderMailgun
	}
	return MailProviderLog
}

func defaultStorageProvider(c *Config) string {
	if c.S3BucketName != "" {
		return StorageProviderS3
	}
	if c.GcsBucketName != "" {
		return StorageProviderGCS
	}
	return StorageProviderLocal
}

func (c *Config) validate() error {
	if c.IsProd() {
		if c.SecretKey == "" {
			return errors.New("PROD_SECRET_KEY must be set")
		}
		if c.DatabaseUrl == "" && os.Getenv("DB_HOST") == "" {
			return errors.New("PROD_DATABASE_URL or DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, and DB_NAME must be set")
		}
	}

	if c.SecretKey == "" {
		// dev without a key still needs to sign tokens
		c.SecretKey = "dev-secret-key"
	}

	switch c.MailProvider {
	case MailProviderMailgun:
		if c.MailgunApiKey == "" || c.MailgunDomain == "" {
			return errors.New("MAILGUN_API_KEY and MAILGUN_DOMAIN must be set for the mailgun mail provider")
		}
	case MailProviderSES, MailProviderLog:
	default:
		return fmt.Errorf("unknown MAIL_PROVIDER %q", c.MailProvider)
	}

	switch c.StorageProvider {
	case StorageProviderS3:
		if c.S3BucketName == "" {
			return errors.New("S3_BUCKET_NAME must be set for the s3 storage provider")
		}
	case StorageProviderGCS:
		if c.GcsBucketName == "" {
			return errors.New("GCS_BUCKET_NAME must be set for the gcs storage provider")
		}
	case StorageProviderLocal:
	default:
		return fmt.Errorf("unknown STORAGE_PROVIDER %q", c.StorageProvider)
	}

	switch c.ImageProvider {
	case ImageProviderDeepAI, ImageProviderOpenAI:
	default:
		return fmt.Errorf("unknown IMAGE_PROVIDER %q", c.ImageProvider)
	}

	if c.TaskWorkers < 1 {
		return errors.New("TASK_WORKERS must be at least 1")
	}
	if c.MaxUploadBytes <= 0 {
		return errors.New("MAX_UPLOAD_BYTES must be positive")
	}

	return nil
}
