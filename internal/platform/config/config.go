package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Env es la configuración del proceso, cargada del entorno con prefijo
// PAWPAL (ej. PAWPAL_HTTP_PORT). La ventana de scheduling también vive acá:
// es configuración, no constante, y un request puede sobreescribirla.
type Env struct {
	AppName   string `envconfig:"APP_NAME" default:"pawpal-planner"`
	HTTPPort  string `envconfig:"HTTP_PORT" default:"8080"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`

	// memory | postgres | sqlite
	StorageDriver string `envconfig:"STORAGE_DRIVER" default:"memory"`
	DBDSN         string `envconfig:"DB_DSN"`
	SQLitePath    string `envconfig:"SQLITE_PATH" default:"pawpal.db"`

	WindowStart           string `envconfig:"WINDOW_START" default:"06:00"`
	WindowEnd             string `envconfig:"WINDOW_END" default:"22:00"`
	SlotMinutes           int    `envconfig:"SLOT_MINUTES" default:"15"`
	BreakThresholdMinutes int    `envconfig:"BREAK_THRESHOLD_MINUTES" default:"30"`
	BreakMinutes          int    `envconfig:"BREAK_MINUTES" default:"15"`
}

const namespace = "PAWPAL"

func Load() (*Env, error) {
	var env Env
	if err := envconfig.Process(namespace, &env); err != nil {
		return nil, fmt.Errorf("failed to load env: %w", err)
	}
	return &env, nil
}
