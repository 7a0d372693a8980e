package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config корневая структура конфигурации приложения.
type Config struct {
	World      WorldConfig      `yaml:"world"`
	Registry   RegistryConfig   `yaml:"registry"`
	Processors ProcessorsConfig `yaml:"processors"`
	Storage    StorageConfig    `yaml:"storage"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Logging    LoggingConfig    `yaml:"logging"`
	Placement  PlacementConfig  `yaml:"placement"`
}

type WorldConfig struct {
	Seed int64 `yaml:"seed"`
	// Размер генерируемой пещерной части
	PieceSize [3]int `yaml:"piece_size"`
	// Позиция части в мире
	PiecePos [3]int `yaml:"piece_pos"`
}

type RegistryConfig struct {
	CatalogDir string `yaml:"catalog_dir"`
}

type ProcessorsConfig struct {
	Path string `yaml:"path"`
}

type StorageConfig struct {
	Path string `yaml:"path"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

// TelemetryConfig включает экспорт трасс OTLP/HTTP
type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Endpoint    string `yaml:"endpoint"`
	ServiceName string `yaml:"service_name"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	Dir   string `yaml:"dir"`
}

type PlacementConfig struct {
	Rotation string `yaml:"rotation"`
	Mirror   string `yaml:"mirror"`
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		World: WorldConfig{
			Seed:      1,
			PieceSize: [3]int{16, 12, 16},
		},
		Storage:   StorageConfig{Path: "data"},
		Telemetry: TelemetryConfig{ServiceName: "structkit"},
		Logging:   LoggingConfig{Level: "info", Dir: "logs"},
		Placement: PlacementConfig{
			Rotation: "none",
			Mirror:   "none",
		},
	}
}

// GetPort возвращает порт метрик с поддержкой fallback значений
func (m *MetricsConfig) GetPort() int {
	return getPortWithEnvFallback(m.Port, "STRUCTKIT_METRICS_PORT", 2112)
}

// getPortWithEnvFallback возвращает порт с приоритетом: config -> env -> default
func getPortWithEnvFallback(configPort int, envVar string, defaultPort int) int {
	// Если порт задан в конфиге и больше 0, используем его
	if configPort > 0 {
		return configPort
	}

	// Пробуем прочитать из environment variable
	if envVal := os.Getenv(envVar); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}

	return defaultPort
}

// Load читает YAML файл конфигурации поверх значений по умолчанию.
// Если path == "", пытается прочитать из ENV STRUCTKIT_CONFIG,
// а без него возвращает конфигурацию по умолчанию.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("STRUCTKIT_CONFIG")
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать конфигурацию: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("ошибка разбора конфигурации %s: %w", path, err)
	}

	return cfg, nil
}
