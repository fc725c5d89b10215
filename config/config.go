package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/princinho/stonevitrine/logger"
)

// Configuration holds every setting the server, the CLI and the background jobs need.
// Values come from the environment, optionally seeded by a .env file.
type Configuration struct {
	Address        string `env:"ADDRESS" envDefault:":5000"`
	GinMode        string `env:"GIN_MODE" envDefault:"debug"`
	AllowedOrigins string `env:"ALLOWED_ORIGINS"`

	StoreDriver  string `env:"STORE_DRIVER" envDefault:"mongo"`
	MongoURI     string `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017"`
	DatabaseName string `env:"DATABASE_NAME" envDefault:"sitevitrine"`

	JwtSecret      string `env:"JWT_SECRET" envDefault:"secret_key_change_me"`
	SessionTTLDays int    `env:"SESSION_TTL_DAYS" envDefault:"30"`
	CookieSecure   bool   `env:"COOKIE_SECURE" envDefault:"false"`
	CookieDomain   string `env:"COOKIE_DOMAIN"`

	AdminUser         string `env:"ADMIN_USER" envDefault:"admin"`
	AdminPass         string `env:"ADMIN_PASS" envDefault:"00000000"`
	AdminPasswordSync bool   `env:"ADMIN_PASSWORD_SYNC" envDefault:"true"`
	AdminPath         string `env:"ADMIN_PATH"`

	UploadDriver     string `env:"UPLOAD_DRIVER" envDefault:"local"`
	UploadDir        string `env:"UPLOAD_DIR" envDefault:"uploads"`
	UploadPublicPath string `env:"UPLOAD_PUBLIC_PATH" envDefault:"/uploads"`
	MaxUploadSizeMB  int    `env:"MAX_UPLOAD_SIZE_MB" envDefault:"5"`

	R2Bucket          string `env:"R2_BUCKET"`
	R2AccessKeyID     string `env:"R2_ACCESS_KEY_ID"`
	R2SecretAccessKey string `env:"R2_SECRET_ACCESS_KEY"`
	R2Endpoint        string `env:"R2_ENDPOINT"`
	R2PublicDomain    string `env:"R2_PUBLIC_DOMAIN"`

	GCSBucket       string `env:"GCS_BUCKET"`
	CredentialsFile string `env:"CREDENTIALS_FILE_LOCATION"`

	EmailHost     string `env:"EMAIL_HOST"`
	EmailPort     int    `env:"EMAIL_PORT" envDefault:"587"`
	EmailUser     string `env:"EMAIL_USER"`
	EmailPass     string `env:"EMAIL_PASS"`
	EmailFromName string `env:"EMAIL_FROM_NAME" envDefault:"Bakaba Stone"`

	RateLimitEnabled bool    `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	RateLimitRPS     float64 `env:"RATE_LIMIT_RPS" envDefault:"1"`
	RateLimitBurst   int     `env:"RATE_LIMIT_BURST" envDefault:"5"`
	// Peers whose X-Forwarded-For is believed. The public pages call the API
	// over loopback and forward the visitor address.
	TrustedProxies string `env:"TRUSTED_PROXIES" envDefault:"127.0.0.1,::1"`

	WeeklyReportSchedule string `env:"WEEKLY_REPORT_SCHEDULE" envDefault:"0 0 8 * * MON"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	LogOutput string `env:"LOG_OUTPUT" envDefault:"stdout"`
	LogPath   string `env:"LOG_PATH" envDefault:"logs"`

	APIBaseURL string `env:"API_BASE_URL" envDefault:"http://localhost:5000/api"`
	WebEnabled bool   `env:"WEB_ENABLED" envDefault:"true"`
	WebPrefix  string `env:"WEB_PREFIX" envDefault:"/site"`
}

// Load reads the optional env files and parses the configuration.
func Load(files ...string) (*Configuration, error) {
	if err := godotenv.Load(files...); err != nil {
		logger.App().Info("No .env file found, using system environment variables")
	}

	cfg := &Configuration{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Configuration) Validate() error {
	switch c.StoreDriver {
	case "mongo", "memory":
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q (expected mongo or memory)", c.StoreDriver)
	}

	switch c.UploadDriver {
	case "local":
	case "r2":
		if c.R2Bucket == "" || c.R2AccessKeyID == "" || c.R2SecretAccessKey == "" || c.R2Endpoint == "" {
			return fmt.Errorf("missing R2 env vars (R2_BUCKET, R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY, R2_ENDPOINT)")
		}
	case "gcs":
		if c.GCSBucket == "" {
			return fmt.Errorf("missing GCS_BUCKET env var")
		}
	default:
		return fmt.Errorf("unknown UPLOAD_DRIVER %q (expected local, r2 or gcs)", c.UploadDriver)
	}

	if c.AdminUser == "" || c.AdminPass == "" {
		return fmt.Errorf("missing ADMIN_USER or ADMIN_PASS env vars")
	}
	if c.SessionTTLDays <= 0 {
		return fmt.Errorf("SESSION_TTL_DAYS must be positive")
	}
	if c.AdminPath != "" && !strings.HasPrefix(c.AdminPath, "/") {
		return fmt.Errorf("ADMIN_PATH must start with /")
	}
	return nil
}

func (c *Configuration) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLDays) * 24 * time.Hour
}

func (c *Configuration) MaxUploadBytes() int64 {
	mb := c.MaxUploadSizeMB
	if mb <= 0 {
		mb = 5
	}
	return int64(mb) << 20
}

// Origins returns the trimmed, non-empty entries of ALLOWED_ORIGINS.
func (c *Configuration) Origins() []string {
	return splitList(c.AllowedOrigins)
}

// Proxies returns the entries of TRUSTED_PROXIES; nil trusts no peer.
func (c *Configuration) Proxies() []string {
	return splitList(c.TrustedProxies)
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

func (c *Configuration) SMTPEnabled() bool {
	return c.EmailHost != "" && c.EmailUser != ""
}
