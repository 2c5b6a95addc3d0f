package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"studymesh-backend/application/ports"
	"studymesh-backend/application/services"
	"studymesh-backend/infrastructure/config"
	"studymesh-backend/interfaces/http/rest/handlers"
	"studymesh-backend/interfaces/http/rest/middleware"
	"studymesh-backend/pkg/auth"
	"studymesh-backend/pkg/common"
)

// Router creates and configures the HTTP router.
type Router struct {
	cfg       *config.Config
	materials *services.MaterialService
	graphs    *services.GraphService
	tables    ports.TableStore
	blobs     ports.BlobStore
	extractor ports.TextExtractor
	validator *auth.JWTValidator
	filesDir  string
	logger    *zap.Logger
}

// NewRouter creates a new router instance. tables may be nil when the
// remote backend is not configured; the data routes then answer 503.
func NewRouter(
	cfg *config.Config,
	materials *services.MaterialService,
	graphs *services.GraphService,
	tables ports.TableStore,
	blobs ports.BlobStore,
	extractor ports.TextExtractor,
	validator *auth.JWTValidator,
	filesDir string,
	logger *zap.Logger,
) *Router {
	return &Router{
		cfg:       cfg,
		materials: materials,
		graphs:    graphs,
		tables:    tables,
		blobs:     blobs,
		extractor: extractor,
		validator: validator,
		filesDir:  filesDir,
		logger:    logger,
	}
}

// Setup configures all routes and middleware.
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rt.cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/api/health", rt.healthCheck)

	// Locally stored uploads, only when the local blob store is active.
	if rt.filesDir != "" {
		fs := http.StripPrefix("/files/", http.FileServer(http.Dir(rt.filesDir)))
		router.Get("/files/*", fs.ServeHTTP)
	}

	router.Route("/api", func(r chi.Router) {
		materialHandler := handlers.NewMaterialHandler(rt.materials, rt.logger)
		r.Route("/materials", func(r chi.Router) {
			r.Post("/", materialHandler.CreateMaterial)
			r.Get("/", materialHandler.ListMaterials)
			r.Get("/{materialID}", materialHandler.GetMaterial)
			r.Delete("/{materialID}", materialHandler.DeleteMaterial)
		})
		r.Get("/flashcards", materialHandler.ListFlashcards)

		r.Get("/graph", handlers.NewGraphHandler(rt.graphs, rt.logger).GetGraph)

		r.Post("/upload", handlers.NewUploadHandler(rt.blobs, rt.extractor, rt.materials, rt.logger).Upload)

		stateHandler := handlers.NewStateHandler(rt.materials, rt.logger)
		r.Get("/export", stateHandler.Export)
		r.Post("/import", stateHandler.Import)

		// Generic table access is the admin surface. Privilege is decided
		// here from verified token claims, never from a client-held flag.
		r.Route("/data", func(r chi.Router) {
			r.Use(middleware.Authenticate(rt.validator, rt.logger))
			r.Use(middleware.RequireRole("admin"))

			if rt.tables == nil {
				r.HandleFunc("/*", rt.backendUnavailable)
				return
			}

			dataHandler := handlers.NewDataHandler(rt.tables, rt.logger)
			r.Get("/{table}", dataHandler.GetTable)
			r.Post("/{table}", dataHandler.InsertRow)
			r.Delete("/{table}/{id}", dataHandler.DeleteRow)
		})
	})

	return router
}

// healthCheck handles GET /api/health.
func (rt *Router) healthCheck(w http.ResponseWriter, r *http.Request) {
	common.WriteRawJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Backend proxy server is running",
	})
}

func (rt *Router) backendUnavailable(w http.ResponseWriter, r *http.Request) {
	common.RespondError(w, http.StatusServiceUnavailable, "remote database backend is not configured")
}
