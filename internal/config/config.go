package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server   ServerConfig
	Venue    VenueConfig
	Match    MatchConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	QR       QRConfig
	LogDir   string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type SectorPrice struct {
	Code  string
	Price float64
}

type VenueConfig struct {
	Name           string
	Location       string
	Sectors        []SectorPrice
	Rows           int
	Cols           int
	MaxStands      int
	MinimumBalance float64
	Seed           uint64
}

type MatchConfig struct {
	MinuteDelay     time.Duration
	HalftimePause   time.Duration
	GoalProbability float64
	Referee         string
	KickoffAt       time.Time
}

type DatabaseConfig struct {
	Enabled      bool
	Driver       string // sqlite or postgres
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

type RedisConfig struct {
	Enabled bool
	Addr    string
	LockTTL time.Duration
}

type KafkaConfig struct {
	Brokers  []string
	Topics   TopicConfig
	MockMode bool
	Enabled  bool
}

type TopicConfig struct {
	TicketSold     string
	ConcessionSold string
	MatchEvents    string
}

type QRConfig struct {
	Enabled bool
	Secret  string
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", ":8080"),
			ReadTimeout:  getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getEnvDuration("SERVER_WRITE_TIMEOUT", 0),
			IdleTimeout:  getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Venue: VenueConfig{
			Name:           getEnv("VENUE_NAME", "Estádio José Alvalade"),
			Location:       getEnv("VENUE_LOCATION", "Rua Professor Fernando da Fonseca, Lisboa"),
			Sectors:        getEnvSectors("VENUE_SECTORS", "A:10,B:20,C:30,D:40"),
			Rows:           getEnvInt("VENUE_ROWS", 5),
			Cols:           getEnvInt("VENUE_COLS", 5),
			MaxStands:      getEnvInt("VENUE_MAX_STANDS", 5),
			MinimumBalance: getEnvFloat("VENUE_MINIMUM_BALANCE", 10),
			Seed:           uint64(getEnvInt("VENUE_SEED", 0)),
		},
		Match: MatchConfig{
			MinuteDelay:     getEnvDuration("MATCH_MINUTE_DELAY", time.Second),
			HalftimePause:   getEnvDuration("MATCH_HALFTIME_PAUSE", 2*time.Second),
			GoalProbability: getEnvFloat("MATCH_GOAL_PROBABILITY", 0.10),
			Referee:         getEnv("MATCH_REFEREE", "João Pinheiro"),
			KickoffAt:       getEnvTime("MATCH_KICKOFF", time.Date(2025, 9, 11, 20, 45, 0, 0, time.UTC)),
		},
		Database: DatabaseConfig{
			Enabled:      getEnvBool("DB_ENABLED", true),
			Driver:       getEnv("DB_DRIVER", "sqlite"),
			DSN:          getEnv("DB_DSN", "file:venue.db?cache=shared"),
			MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 25),
			MaxLifetime:  time.Duration(getEnvInt("DB_MAX_LIFETIME_MINUTES", 5)) * time.Minute,
		},
		Redis: RedisConfig{
			Enabled: getEnvBool("REDIS_ENABLED", false),
			Addr:    getEnv("REDIS_ADDR", "localhost:6379"),
			LockTTL: getEnvDuration("REDIS_LOCK_TTL", 10*time.Minute),
		},
		Kafka: KafkaConfig{
			Brokers:  strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			Enabled:  getEnvBool("KAFKA_ENABLED", false),
			MockMode: getEnvBool("KAFKA_MOCK_MODE", false),
			Topics: TopicConfig{
				TicketSold:     getEnv("KAFKA_TOPIC_TICKET_SOLD", "venue.ticket.sold"),
				ConcessionSold: getEnv("KAFKA_TOPIC_CONCESSION_SOLD", "venue.concession.sold"),
				MatchEvents:    getEnv("KAFKA_TOPIC_MATCH_EVENTS", "venue.match.events"),
			},
		},
		QR: QRConfig{
			Enabled: getEnvBool("QR_ENABLED", true),
			Secret:  getEnv("QR_SECRET", "venue-qr-secret-key-32-bytes!!!!"),
		},
		LogDir: getEnv("LOG_DIR", "logs"),
	}
}

// ParseSectors reads "A:10,B:20" into sector prices.
func ParseSectors(raw string) ([]SectorPrice, error) {
	var out []SectorPrice
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		code, price, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("sector %q: want CODE:PRICE", part)
		}
		p, err := strconv.ParseFloat(strings.TrimSpace(price), 64)
		if err != nil {
			return nil, fmt.Errorf("sector %q: %w", part, err)
		}
		out = append(out, SectorPrice{Code: strings.TrimSpace(code), Price: p})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no sectors in %q", raw)
	}
	return out, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvTime(key string, defaultValue time.Time) time.Time {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.Parse(time.RFC3339, value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvSectors(key, defaultValue string) []SectorPrice {
	if value := os.Getenv(key); value != "" {
		if parsed, err := ParseSectors(value); err == nil {
			return parsed
		}
	}
	out, _ := ParseSectors(defaultValue)
	return out
}
