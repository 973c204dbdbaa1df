package config

import (
	"time"

	"github.com/spf13/viper"

	pkgconfig "github.com/imbaesible/lets-meet-server/pkg/config"
)

type Config struct {
	Server    ServerConfig
	WebSocket WebSocketConfig
	Signaling SignalingConfig
	Kafka     KafkaConfig
	Log       LogConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type WebSocketConfig struct {
	PingInterval   time.Duration `mapstructure:"ping_interval"`
	PongWait       time.Duration `mapstructure:"pong_wait"`
	WriteWait      time.Duration `mapstructure:"write_wait"`
	MaxMessageSize int64         `mapstructure:"max_message_size"`
}

// SignalingConfig holds the protocol policy toggles.
type SignalingConfig struct {
	// AllowLazyRoomCreation materializes a room on join-room to an unknown
	// id. When false such joins are rejected with ROOM_NOT_FOUND.
	AllowLazyRoomCreation bool `mapstructure:"allow_lazy_room_creation"`

	// EnforceMembership rejects send-message, start-sharing, stop-sharing
	// and change-name from sessions not bound to the target room.
	EnforceMembership bool `mapstructure:"enforce_membership"`
}

type KafkaConfig struct {
	Enabled    bool
	Brokers    string
	Topic      string
	Partitions int
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	v, err := pkgconfig.Load("./config", "config")
	if err != nil {
		return nil, err
	}

	// Set defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8085)
	v.SetDefault("websocket.ping_interval", "30s")
	v.SetDefault("websocket.pong_wait", "60s")
	v.SetDefault("websocket.write_wait", "10s")
	v.SetDefault("websocket.max_message_size", 65536)
	v.SetDefault("signaling.allow_lazy_room_creation", true)
	v.SetDefault("signaling.enforce_membership", true)
	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", "localhost:9092")
	v.SetDefault("kafka.topic", "room-events")
	v.SetDefault("kafka.partitions", 4)
	v.SetDefault("log.level", "info")

	// Override from environment
	v.BindEnv("server.port", "PORT")
	v.BindEnv("signaling.allow_lazy_room_creation", "ALLOW_LAZY_ROOM_CREATION")
	v.BindEnv("signaling.enforce_membership", "ENFORCE_MEMBERSHIP")
	v.BindEnv("kafka.enabled", "KAFKA_ENABLED")
	v.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	v.BindEnv("kafka.topic", "KAFKA_ROOM_EVENTS_TOPIC")
	v.BindEnv("kafka.partitions", "KAFKA_ROOM_EVENTS_PARTITIONS")
	v.BindEnv("log.level", "LOG_LEVEL")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Parse durations
	cfg.WebSocket.PingInterval = parseDuration(v, "websocket.ping_interval", 30*time.Second)
	cfg.WebSocket.PongWait = parseDuration(v, "websocket.pong_wait", 60*time.Second)
	cfg.WebSocket.WriteWait = parseDuration(v, "websocket.write_wait", 10*time.Second)

	return &cfg, nil
}

func parseDuration(v *viper.Viper, key string, defaultVal time.Duration) time.Duration {
	str := v.GetString(key)
	d, err := time.ParseDuration(str)
	if err != nil {
		return defaultVal
	}
	return d
}
