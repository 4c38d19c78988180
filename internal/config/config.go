// Package config provides configuration structures and validation for the
// application. Everything is environment-driven and read once at process
// start: server settings, database connections, the two external model
// endpoints (LLM and Whisper) and the event topic.
package config

import (
	"errors"
	"strings"
	"time"
)

// Config holds the complete application configuration. Each field covers one
// subsystem and is validated during startup.
type Config struct {
	Application ApplicationConfig
	Logging     LoggingConfig
	Server      ServerConfig
	Postgres    PostgresConfig
	MongoDB     MongoDBConfig
	Kafka       KafkaConfig
	Whisper     WhisperConfig
	LLM         LLMConfig
}

// ApplicationConfig contains general application configuration
type ApplicationConfig struct {
	Env  string
	Name string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string
}

// ServerConfig contains HTTP server configuration settings
type ServerConfig struct {
	Port            int           // Port to listen on
	ShutdownTimeout time.Duration // Grace period for server shutdown
	ReadTimeout     time.Duration // Maximum duration for reading entire request
	WriteTimeout    time.Duration // Maximum duration for writing response
	IdleTimeout     time.Duration // Maximum duration to wait for next request
	UseHTTPS        bool          // Serve TLS instead of plain HTTP
	SSLCertFile     string        // Certificate path, required when UseHTTPS
	SSLKeyFile      string        // Key path, required when UseHTTPS
}

// PostgresConfig contains PostgreSQL configuration
type PostgresConfig struct {
	URL             string        // Database connection string
	MaxConns        int32         // Maximum number of open connections
	MinConns        int32         // Minimum number of idle connections
	ConnMaxLifetime time.Duration // Maximum lifetime of a connection
	ConnMaxIdleTime time.Duration // Maximum idle time of a connection
	MigrationsPath  string        // Path to migration files
}

// MongoDBConfig contains MongoDB configuration for the extraction audit trail
type MongoDBConfig struct {
	URI             string
	Database        string
	Timeout         time.Duration
	MaxPoolSize     uint64
	MinPoolSize     uint64
	MaxConnIdleTime time.Duration
}

// KafkaConfig contains configuration for the spending-created event producer
type KafkaConfig struct {
	Brokers           string
	SpendingTopic     string
	NumPartitions     int
	ReplicationFactor int
	WriteTimeout      time.Duration
}

// WhisperConfig contains configuration for the speech-to-text endpoint
type WhisperConfig struct {
	Mode    string        // "local" or "api"; informational, reported by /health
	URL     string        // Transcription endpoint accepting a multipart file
	Timeout time.Duration // Per-request timeout for the outbound call
}

// LLMConfig contains configuration for the chat-completion endpoint
type LLMConfig struct {
	Mode    string        // "local" or "api"; informational, reported by /health
	URL     string        // OpenAI-compatible base URL (".../v1")
	Model   string        // Model identifier sent with each request
	APIKey  string        // Bearer credential; "EMPTY" for local serving
	Timeout time.Duration // Per-request timeout for the outbound call
}

// validate performs comprehensive validation of all configuration values,
// ensuring they meet minimum requirements and logical constraints
func (c *Config) validate() error {
	var validationErrors []string

	// Validate Server config
	if c.Server.Port <= 0 {
		validationErrors = append(validationErrors, "SERVER_PORT must be greater than 0")
	}
	if c.Server.ShutdownTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_SHUTDOWN_TIMEOUT must be greater than 0")
	}
	if c.Server.ReadTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_READ_TIMEOUT must be greater than 0")
	}
	if c.Server.WriteTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_WRITE_TIMEOUT must be greater than 0")
	}
	if c.Server.IdleTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_IDLE_TIMEOUT must be greater than 0")
	}
	if c.Server.UseHTTPS {
		if c.Server.SSLCertFile == "" {
			validationErrors = append(validationErrors, "SSL_CERT_FILE is required when USE_HTTPS is true")
		}
		if c.Server.SSLKeyFile == "" {
			validationErrors = append(validationErrors, "SSL_KEY_FILE is required when USE_HTTPS is true")
		}
	}

	// Validate PostgreSQL config
	if c.Postgres.URL == "" {
		validationErrors = append(validationErrors, "POSTGRES_URL is required")
	}
	if c.Postgres.MaxConns <= 0 {
		validationErrors = append(validationErrors, "POSTGRES_MAX_CONNS must be greater than 0")
	}
	if c.Postgres.MinConns <= 0 {
		validationErrors = append(validationErrors, "POSTGRES_MIN_CONNS must be greater than 0")
	}
	if c.Postgres.ConnMaxLifetime <= 0 {
		validationErrors = append(validationErrors, "POSTGRES_MAX_CONN_LIFETIME must be greater than 0")
	}
	if c.Postgres.ConnMaxIdleTime <= 0 {
		validationErrors = append(validationErrors, "POSTGRES_MAX_CONN_IDLE_TIME must be greater than 0")
	}

	// Validate MongoDB config
	if c.MongoDB.URI == "" {
		validationErrors = append(validationErrors, "MONGO_URI is required")
	}
	if c.MongoDB.Database == "" {
		validationErrors = append(validationErrors, "MONGO_DATABASE is required")
	}
	if c.MongoDB.Timeout <= 0 {
		validationErrors = append(validationErrors, "MONGO_TIMEOUT must be greater than 0")
	}
	if c.MongoDB.MaxPoolSize <= 0 {
		validationErrors = append(validationErrors, "MONGO_MAX_POOL_SIZE must be greater than 0")
	}
	if c.MongoDB.MinPoolSize <= 0 {
		validationErrors = append(validationErrors, "MONGO_MIN_POOL_SIZE must be greater than 0")
	}
	if c.MongoDB.MaxConnIdleTime <= 0 {
		validationErrors = append(validationErrors, "MONGO_MAX_CONN_IDLE_TIME must be greater than 0")
	}

	// Validate Kafka config
	if len(c.Kafka.Brokers) == 0 {
		validationErrors = append(validationErrors, "KAFKA_BROKERS is required")
	}
	if c.Kafka.SpendingTopic == "" {
		validationErrors = append(validationErrors, "KAFKA_SPENDING_TOPIC is required")
	}
	if c.Kafka.WriteTimeout <= 0 {
		validationErrors = append(validationErrors, "KAFKA_WRITE_TIMEOUT must be greater than 0")
	}

	// Validate Whisper config
	if c.Whisper.URL == "" {
		validationErrors = append(validationErrors, "WHISPER_URL is required")
	}
	if c.Whisper.Timeout <= 0 {
		validationErrors = append(validationErrors, "WHISPER_TIMEOUT must be greater than 0")
	}

	// Validate LLM config
	if c.LLM.URL == "" {
		validationErrors = append(validationErrors, "LLM_URL is required")
	}
	if c.LLM.Model == "" {
		validationErrors = append(validationErrors, "LLM_MODEL is required")
	}
	if c.LLM.Timeout <= 0 {
		validationErrors = append(validationErrors, "LLM_TIMEOUT must be greater than 0")
	}

	if len(validationErrors) > 0 {
		return errors.New(strings.Join(validationErrors, ", "))
	}

	return nil
}
