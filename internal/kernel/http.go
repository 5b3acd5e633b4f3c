// Package kernel assembles the HTTP handler: global middleware, health and
// metrics endpoints, static image files and the API routes.
package kernel

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/shashiranjanraj/kalaghar/app/repositories"
	"github.com/shashiranjanraj/kalaghar/app/routes"
	"github.com/shashiranjanraj/kalaghar/app/services"
	"github.com/shashiranjanraj/kalaghar/pkg/cache"
	"github.com/shashiranjanraj/kalaghar/pkg/logger"
	"github.com/shashiranjanraj/kalaghar/pkg/metrics"
	"github.com/shashiranjanraj/kalaghar/pkg/middleware"
	"github.com/shashiranjanraj/kalaghar/pkg/reqid"
	"github.com/shashiranjanraj/kalaghar/pkg/response"
	"github.com/shashiranjanraj/kalaghar/pkg/router"
	"github.com/shashiranjanraj/kalaghar/pkg/storage"
)

// Deps are the long-lived resources the kernel wires into handlers.
type Deps struct {
	Store            *repositories.Store
	Cache            cache.Store
	Disk             storage.Disk
	AllowAdminSignup bool
	MaxUploadBytes   int64
	CORSOrigins      []string
}

type HTTPKernel struct {
	router *router.Router
}

func NewHTTPKernel(d Deps) *HTTPKernel {
	r := router.New()

	// Global middleware stack (outermost → innermost):
	//  1. Prometheus metrics  outermost for accurate total latency
	//  2. Recovery            catches panics before they kill the goroutine
	//  3. Request ID          inject unique ID before anything logs
	//  4. Logger              logs request_id from context
	//  5. CORS
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions(d.CORSOrigins)))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) { response.NotFound(w) })
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/", "home", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("Backend is working"))
	})
	r.Get("/healthz", "health", health(d.Store))
	r.Get("/metrics", "metrics", metrics.Handler())

	if local, ok := d.Disk.(*storage.LocalDisk); ok {
		r.Mount("/storage", http.StripPrefix("/storage", files(http.Dir(local.Root()))))
	}

	routes.RegisterAPI(r, routes.Services{
		Auth:           services.NewAuthService(d.Store.Users, d.AllowAdminSignup),
		Users:          services.NewUserService(d.Store.Users),
		Artworks:       services.NewArtworkService(d.Store.Artworks, d.Disk),
		Orders:         services.NewOrderService(d.Store.Orders, d.Cache),
		MaxUploadBytes: d.MaxUploadBytes,
	})

	return &HTTPKernel{router: r}
}

func (k *HTTPKernel) Handler() http.Handler { return k.router.Handler() }

// Router exposes the route table, e.g. for route:list.
func (k *HTTPKernel) Router() *router.Router { return k.router }

func health(store *repositories.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			logger.WithCtx(r.Context()).Error("health check failed", "driver", store.Driver, "error", err)
			response.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "store": store.Driver})
			return
		}
		response.Success(w, map[string]string{"status": "ok", "store": store.Driver})
	}
}

// files serves stored images without directory listings.
func files(root http.FileSystem) http.Handler {
	fs := http.FileServer(root)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			response.NotFound(w)
			return
		}
		fs.ServeHTTP(w, r)
	})
}
