package router

import (
	"database/sql"
	"net/http"

	mem "pawpal-planner/internal/adapters/storage/memory"
	pg "pawpal-planner/internal/adapters/storage/postgres"
	lite "pawpal-planner/internal/adapters/storage/sqlite"
	"pawpal-planner/internal/domain/owners"
	"pawpal-planner/internal/domain/pets"
	"pawpal-planner/internal/domain/schedule"
	"pawpal-planner/internal/domain/tasks"
	"pawpal-planner/internal/middleware"
	"pawpal-planner/internal/platform/config"
	"pawpal-planner/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

type Options struct {
	Env *config.Env
	Log logger.Logger

	// Opcional: si viene, usa esta conexión Postgres (tests/handoff).
	// Si no, decide por Env.StorageDriver.
	DB *sql.DB
}

func NewRouter(opts Options) http.Handler {
	env := opts.Env
	if env == nil {
		env = &config.Env{StorageDriver: "memory"}
	}
	log := opts.Log
	if log == nil {
		log = logger.NewNop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	// El cliente es una SPA servida aparte; CORS abierto con el header de
	// identidad permitido.
	r.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", "X-Owner-ID"},
	}).Handler)

	r.Use(middleware.OwnerContext())

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	ownersRepo, petsRepo, tasksRepo := buildRepos(env, log, opts.DB)

	// Services por módulo
	ownersSvc := owners.NewService(ownersRepo)
	petsSvc := pets.NewService(petsRepo)
	tasksSvc := tasks.NewService(tasksRepo)

	// Rutas por módulo
	owners.RegisterRoutes(r, ownersSvc)
	pets.RegisterRoutes(r, petsSvc)
	tasks.RegisterRoutes(r, tasksSvc, petsSvc)
	schedule.RegisterRoutes(r, tasksSvc, petsSvc, scheduleDefaults(env, log))

	return r
}

// buildRepos elige el storage: DB explícita > driver del env > in-memory.
// Si el storage persistente falla al abrir, cae a memoria con un warning
// (modo dev; en prod el operador lo ve en el log de arranque).
func buildRepos(env *config.Env, log logger.Logger, db *sql.DB) (owners.Repository, pets.Repository, tasks.Repository) {
	if db == nil {
		switch env.StorageDriver {
		case "postgres":
			if env.DBDSN == "" {
				log.Warn("postgres driver selected but no DSN, falling back to memory", nil)
				break
			}
			opened, err := pg.Open(env.DBDSN)
			if err != nil {
				log.Warn("postgres open failed, falling back to memory", map[string]any{"err": err.Error()})
				break
			}
			db = opened
		case "sqlite":
			opened, err := lite.Open(env.SQLitePath)
			if err != nil {
				log.Warn("sqlite open failed, falling back to memory", map[string]any{"err": err.Error()})
				break
			}
			log.Info("using sqlite storage", map[string]any{"path": env.SQLitePath})
			return lite.NewOwnersRepo(opened), lite.NewPetsRepo(opened), lite.NewTasksRepo(opened)
		}
	}

	if db != nil {
		log.Info("using postgres storage", nil)
		return pg.NewOwnersRepo(db), pg.NewPetsRepo(db), pg.NewTasksRepo(db)
	}

	log.Info("using in-memory storage", nil)
	return mem.NewOwnersRepo(), mem.NewPetsRepo(), mem.NewTasksRepo()
}

// scheduleDefaults arma la config default del engine desde el env.
// Valores inválidos no tumban el server: se loguean y quedan los defaults.
func scheduleDefaults(env *config.Env, log logger.Logger) schedule.Config {
	cfg := schedule.DefaultConfig()

	if env.WindowStart != "" {
		if v, err := tasks.ParseTimeOfDay(env.WindowStart); err == nil {
			cfg.WindowStart = v
		} else {
			log.Warn("invalid WINDOW_START, keeping default", map[string]any{"value": env.WindowStart})
		}
	}
	if env.WindowEnd != "" {
		if v, err := tasks.ParseTimeOfDay(env.WindowEnd); err == nil {
			cfg.WindowEnd = v
		} else {
			log.Warn("invalid WINDOW_END, keeping default", map[string]any{"value": env.WindowEnd})
		}
	}
	if env.SlotMinutes > 0 {
		cfg.SlotMinutes = env.SlotMinutes
	}
	if env.BreakThresholdMinutes > 0 {
		cfg.BreakThresholdMinutes = env.BreakThresholdMinutes
	}
	if env.BreakMinutes > 0 {
		cfg.BreakMinutes = env.BreakMinutes
	}

	return cfg
}
