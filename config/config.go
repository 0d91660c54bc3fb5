package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config es la configuración completa del harness de fixtures.
type Config struct {
	Fixture FixtureConfig `yaml:"fixture"`
	Log     LogConfig     `yaml:"log"`
}

// FixtureConfig controla cómo se inicializa el core simulado.
type FixtureConfig struct {
	// ForkMode activa el modo fork contra un snapshot de la red real.
	// Por defecto false: simulación local determinista.
	ForkMode bool `yaml:"fork_mode"`
	// RPCURL es el endpoint JSON-RPC usado solo en modo fork.
	RPCURL string `yaml:"rpc_url"`
	// CacheDSN es la ruta del cache SQLite de lecturas remotas
	// (":memory:" para tests, "" desactiva el cache).
	CacheDSN string `yaml:"cache_dsn"`
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// DefaultRPCURL es el endpoint público de HyperEVM usado en modo fork
// cuando no hay override.
const DefaultRPCURL = "https://rpc.hyperliquid.xyz/evm"

// Load carga la configuración desde el archivo YAML y el archivo .env si existe.
// Los valores del .env sobreescriben los del YAML para las keys que correspondan.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

// Default devuelve la configuración sin archivo YAML: solo variables de
// entorno y defaults. Es el camino habitual dentro de un TestMain.
func Default() *Config {
	_ = godotenv.Load()

	var cfg Config
	applyEnvOverrides(&cfg)
	setDefaults(&cfg)
	return &cfg
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están presentes.
// Un valor malformado se ignora y cae al default documentado.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HYPERCORE_FORK_MODE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Fixture.ForkMode = b
		}
	}
	if v := os.Getenv("HYPERCORE_RPC_URL"); v != "" {
		cfg.Fixture.RPCURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
func setDefaults(cfg *Config) {
	if cfg.Fixture.RPCURL == "" {
		cfg.Fixture.RPCURL = DefaultRPCURL
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
