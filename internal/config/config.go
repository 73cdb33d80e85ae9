package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	SessionDriverRedis  = "redis"
	SessionDriverMemory = "memory"
)

type Config struct {
	App struct {
		Port string `mapstructure:"port"`
		Env  string `mapstructure:"env"`
	} `mapstructure:"app"`
	Session struct {
		Driver string        `mapstructure:"driver"`
		TTL    time.Duration `mapstructure:"ttl"`
	} `mapstructure:"session"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`
	DB struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"db"`
	Kafka struct {
		Brokers     []string `mapstructure:"brokers"`
		DeployTopic string   `mapstructure:"deploy_topic"`
		GroupID     string   `mapstructure:"group_id"`
	} `mapstructure:"kafka"`
	Deploy struct {
		Delay      time.Duration `mapstructure:"delay"`
		Timeout    time.Duration `mapstructure:"timeout"`
		BaseDomain string        `mapstructure:"base_domain"`
	} `mapstructure:"deploy"`
	Premium struct {
		CheckoutURL string `mapstructure:"checkout_url"`
	} `mapstructure:"premium"`
	Upload struct {
		MaxImageBytes int64 `mapstructure:"max_image_bytes"`
	} `mapstructure:"upload"`
	Tracing struct {
		OTLPEndpoint string `mapstructure:"otlp_endpoint"`
		ServiceName  string `mapstructure:"service_name"`
	} `mapstructure:"tracing"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.env", "development")
	v.SetDefault("session.driver", SessionDriverMemory)
	v.SetDefault("session.ttl", 2*time.Hour)
	v.SetDefault("redis.db", 0)
	v.SetDefault("kafka.deploy_topic", "portfolio.deploy")
	v.SetDefault("kafka.group_id", "portfolio-deploy-group")
	v.SetDefault("deploy.delay", 3*time.Second)
	v.SetDefault("deploy.timeout", 30*time.Second)
	v.SetDefault("deploy.base_domain", "replit.app")
	v.SetDefault("premium.checkout_url", "https://www.paypal.com/paypalme/")
	v.SetDefault("upload.max_image_bytes", 5<<20)
	v.SetDefault("tracing.service_name", "portfolio-generator")
}

// LoadConfig reads .env, then config.yaml from the given directories (default "."),
// then environment variables, later sources winning.
func LoadConfig(paths ...string) (cfg Config, err error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	if err = godotenv.Load(); err != nil {
		log.Println("warning: .env file not found, use default.")
	}

	v := viper.New()
	setDefaults(v)

	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if err = v.ReadInConfig(); err != nil {
		log.Printf("note: config.yaml not found, read env only. Error: %v", err)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("app.port", "APP_PORT")
	v.BindEnv("app.env", "APP_ENV")
	v.BindEnv("session.driver", "SESSION_DRIVER")
	v.BindEnv("session.ttl", "SESSION_TTL")
	v.BindEnv("redis.addr", "REDIS_ADDR")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("db.dsn", "DB_DSN")
	v.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	v.BindEnv("deploy.delay", "DEPLOY_DELAY")
	v.BindEnv("deploy.base_domain", "DEPLOY_BASE_DOMAIN")
	v.BindEnv("premium.checkout_url", "PREMIUM_CHECKOUT_URL")
	v.BindEnv("upload.max_image_bytes", "UPLOAD_MAX_IMAGE_BYTES")
	v.BindEnv("tracing.otlp_endpoint", "OTEL_EXPORTER_OTLP_ENDPOINT")

	err = v.Unmarshal(&cfg)
	return
}
