package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Event transports the outbox relay can publish to.
const (
	TransportLocal = "local"
	TransportKafka = "kafka"
)

type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"fooddelivery"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// EventTransport is "local" (relay calls the handlers in process) or
	// "kafka" (relay publishes, a consumer group calls the handlers).
	EventTransport     string   `env:"EVENT_TRANSPORT" envDefault:"local"`
	KafkaBrokers       []string `env:"KAFKA_BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	KafkaOrderTopic    string   `env:"KAFKA_ORDER_EVENTS_TOPIC" envDefault:"order-events"`
	KafkaConsumerGroup string   `env:"KAFKA_CONSUMER_GROUP" envDefault:"order-event-handlers"`

	JWTSecret string `env:"JWT_SECRET,required"`

	DeliveryFeeCents        int64 `env:"DELIVERY_FEE_CENTS" envDefault:"5000"`
	CandidatePoolSize       int   `env:"DISPATCH_CANDIDATE_POOL_SIZE" envDefault:"10"`
	MaxActiveOrdersPerRider int   `env:"DISPATCH_MAX_ACTIVE_ORDERS_PER_RIDER" envDefault:"1"`

	OutboxBatchSize     int    `env:"OUTBOX_BATCH_SIZE" envDefault:"50"`
	OutboxMaxAttempts   int    `env:"OUTBOX_MAX_ATTEMPTS" envDefault:"10"`
	OutboxSweepSchedule string `env:"OUTBOX_SWEEP_SCHEDULE" envDefault:"*/10 * * * * *"`

	PushTimeout     time.Duration `env:"PUSH_TIMEOUT" envDefault:"2s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	OTelEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName  string `env:"OTEL_SERVICE_NAME" envDefault:"fooddelivery"`
}

// LoadConfig reads an optional .env file and parses the environment.
// Variables already set in the environment win over the file.
func LoadConfig(dotenvPath string) (Config, error) {
	if dotenvPath != "" {
		if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", dotenvPath, err)
		}
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings env tags cannot express.
func (c Config) Validate() error {
	var errs []error
	if c.EventTransport != TransportLocal && c.EventTransport != TransportKafka {
		errs = append(errs, fmt.Errorf("EVENT_TRANSPORT must be %q or %q, got %q", TransportLocal, TransportKafka, c.EventTransport))
	}
	if c.EventTransport == TransportKafka && len(c.KafkaBrokers) == 0 {
		errs = append(errs, errors.New("KAFKA_BROKERS is required for the kafka transport"))
	}
	if c.DeliveryFeeCents < 0 {
		errs = append(errs, fmt.Errorf("DELIVERY_FEE_CENTS must not be negative, got %d", c.DeliveryFeeCents))
	}
	if c.MaxActiveOrdersPerRider < 1 {
		errs = append(errs, fmt.Errorf("DISPATCH_MAX_ACTIVE_ORDERS_PER_RIDER must be positive, got %d", c.MaxActiveOrdersPerRider))
	}
	return errors.Join(errs...)
}

// DSN builds the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}
