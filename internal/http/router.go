package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/broadleaf/taskd/internal/service"
	"github.com/broadleaf/taskd/internal/store"
	"github.com/broadleaf/taskd/pkg/httpx"
	"github.com/broadleaf/taskd/pkg/slogx"

	_ "github.com/broadleaf/taskd/api" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	AuthService     *service.AuthService
	IdentityService *service.IdentityService
	TaskService     *service.TaskService
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.CORS(),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerTasks()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			taskd API
//	@version		0.1.0
//	@description	Multi-user task tracking service: account registration, JWT bearer
//	@description	authentication, and per-user task CRUD. Every task operation is scoped
//	@description	to the authenticated owner.
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	r.Mux.Handle("POST /v1/register", &RegisterHandler{AuthService: r.AuthService})
	r.Mux.Handle("POST /v1/token", &TokenHandler{AuthService: r.AuthService})
}

func (r *Router) registerTasks() {
	authn := AuthnMiddleware(r.IdentityService)

	tasks := &TasksHandler{TaskService: r.TaskService}

	r.Mux.Handle("POST /v1/tasks", httpx.Chain(http.HandlerFunc(tasks.Create), authn))
	r.Mux.Handle("GET /v1/tasks", httpx.Chain(http.HandlerFunc(tasks.List), authn))
	r.Mux.Handle("GET /v1/tasks/{id}", httpx.Chain(http.HandlerFunc(tasks.Get), authn))
	r.Mux.Handle("PUT /v1/tasks/{id}", httpx.Chain(http.HandlerFunc(tasks.Update), authn))
	r.Mux.Handle("PATCH /v1/tasks/{id}/complete", httpx.Chain(http.HandlerFunc(tasks.Complete), authn))
	r.Mux.Handle("DELETE /v1/tasks/{id}", httpx.Chain(http.HandlerFunc(tasks.Delete), authn))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
