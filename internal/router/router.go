package router

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "vet-clinic-booking/docs"
	"vet-clinic-booking/internal/adapters/cache"
	mem "vet-clinic-booking/internal/adapters/storage/memory"
	pg "vet-clinic-booking/internal/adapters/storage/postgres"
	"vet-clinic-booking/internal/domain/animaltypes"
	"vet-clinic-booking/internal/domain/appointments"
	"vet-clinic-booking/internal/domain/clients"
	"vet-clinic-booking/internal/middleware"
	"vet-clinic-booking/internal/platform/logger"
	"vet-clinic-booking/internal/platform/metrics"
	"vet-clinic-booking/internal/ports/auth"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // nil => /admin siempre 401

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	Logger   logger.Logger
	Location *time.Location // zona de la clínica; nil => time.Local

	Notifier appointments.Notifier // nil => no se publica nada
	Registry *prometheus.Registry  // nil => registry propio (tests)

	CategoryCacheSize int
	CategoryCacheTTL  time.Duration

	RateLimitPerSecond int // 0 => sin límite
	CORSAllowedOrigins []string

	// SeedDefaults crea las categorías por defecto al arrancar (modo in-memory).
	SeedDefaults bool
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := metrics.New(reg)

	origins := opts.CORSAllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics(m))
	r.Use(chimw.StripSlashes)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	// StripSlashes convierte /swagger/ en /swagger
	r.Get("/swagger", http.RedirectHandler("/swagger/index.html", http.StatusMovedPermanently).ServeHTTP)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var (
		clientRepo      clients.Repository
		animalTypeRepo  animaltypes.Repository
		appointmentRepo appointments.Repository
	)

	if opts.DB != nil {
		clientRepo = pg.NewClientsRepo(opts.DB)
		animalTypeRepo = pg.NewAnimalTypesRepo(opts.DB)
		appointmentRepo = pg.NewAppointmentsRepo(opts.DB)
	} else {
		clientRepo = mem.NewClientRepo()
		animalTypeRepo = mem.NewAnimalTypeRepo()
		appointmentRepo = mem.NewAppointmentRepo()
	}

	if opts.CategoryCacheTTL > 0 {
		animalTypeRepo = cache.NewAnimalTypes(animalTypeRepo, opts.CategoryCacheSize, opts.CategoryCacheTTL, log)
	}

	// Services por módulo
	clientsSvc := clients.NewService(clientRepo)
	animalTypesSvc := animaltypes.NewService(animalTypeRepo)
	appointmentsSvc := appointments.NewService(appointmentRepo, clientsSvc, animalTypesSvc, loc,
		appointments.WithNotifier(opts.Notifier),
		appointments.WithObserver(m),
		appointments.WithLogger(log),
	)

	if opts.SeedDefaults {
		n, err := animalTypesSvc.EnsureDefaults(context.Background(), animaltypes.DefaultNames)
		if err != nil {
			log.Error("seed animal types", map[string]any{"err": err})
		} else if n > 0 {
			log.Info("seeded animal types", map[string]any{"created": n})
		}
	}

	// Rutas públicas (bot y clientes)
	r.Group(func(pr chi.Router) {
		if opts.RateLimitPerSecond > 0 {
			pr.Use(httprate.LimitByIP(opts.RateLimitPerSecond, time.Second))
		}
		clients.RegisterRoutes(pr, clientsSvc)
		animaltypes.RegisterRoutes(pr, animalTypesSvc)
		appointments.RegisterRoutes(pr, appointmentsSvc)
	})

	// Rutas admin
	r.Route("/admin", func(ar chi.Router) {
		ar.Use(middleware.RequireRole(auth.RoleAdmin))
		animaltypes.RegisterAdminRoutes(ar, animalTypesSvc)
		appointments.RegisterAdminRoutes(ar, appointmentsSvc)
	})

	return r
}
