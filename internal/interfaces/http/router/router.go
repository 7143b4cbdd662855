package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Codesaur1618/Skandaenterpriese/internal/application/authz"
	"github.com/Codesaur1618/Skandaenterpriese/internal/interfaces/http/middleware"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup, gate *authz.Gate)
}

// Router manages HTTP route registration. Every route declares the
// permission it requires, so the route table doubles as the permission
// matrix; the gate check runs in front of the handler.
type Router struct {
	engine     *gin.Engine
	gate       *authz.Gate
	apiVersion string
	middleware []gin.HandlerFunc
	registrars []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// NewRouter creates a new Router instance. The gate enforces the
// per-route permission declarations; a nil gate registers the routes
// without permission checks, which only tests should do.
func NewRouter(engine *gin.Engine, gate *authz.Gate, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		gate:       gate,
		apiVersion: "v1",
		middleware: make([]gin.HandlerFunc, 0),
		registrars: make([]RouteRegistrar, 0),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Use adds middleware applied to every API route, ahead of the
// per-route permission checks
func (r *Router) Use(mw ...gin.HandlerFunc) *Router {
	r.middleware = append(r.middleware, mw...)
	return r
}

// Register adds a RouteRegistrar to be registered later
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// Setup registers all routes with the engine
func (r *Router) Setup() {
	// Create versioned API group
	api := r.engine.Group("/api/" + r.apiVersion)

	if len(r.middleware) > 0 {
		api.Use(r.middleware...)
	}

	// Register all route registrars
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api, r.gate)
	}
}

// DomainGroup creates a route group for a specific domain. Each route
// carries the permission code it requires; PermissionAny marks routes
// open to every authenticated principal.
type DomainGroup struct {
	name       string
	prefix     string
	routes     []routeDefinition
	subgroups  []*DomainGroup
	middleware []gin.HandlerFunc
}

// PermissionAny marks a route that any authenticated principal may call
const PermissionAny = ""

type routeDefinition struct {
	method     string
	path       string
	permission string
	handlers   []gin.HandlerFunc
}

// NewDomainGroup creates a new domain-specific route group
func NewDomainGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{
		name:       name,
		prefix:     prefix,
		routes:     make([]routeDefinition, 0),
		subgroups:  make([]*DomainGroup, 0),
		middleware: make([]gin.HandlerFunc, 0),
	}
}

// Use adds middleware to this group
func (dg *DomainGroup) Use(middleware ...gin.HandlerFunc) *DomainGroup {
	dg.middleware = append(dg.middleware, middleware...)
	return dg
}

// GET registers a GET route guarded by the given permission
func (dg *DomainGroup) GET(path, permission string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.route("GET", path, permission, handlers)
}

// POST registers a POST route guarded by the given permission
func (dg *DomainGroup) POST(path, permission string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.route("POST", path, permission, handlers)
}

// PUT registers a PUT route guarded by the given permission
func (dg *DomainGroup) PUT(path, permission string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.route("PUT", path, permission, handlers)
}

// PATCH registers a PATCH route guarded by the given permission
func (dg *DomainGroup) PATCH(path, permission string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.route("PATCH", path, permission, handlers)
}

// DELETE registers a DELETE route guarded by the given permission
func (dg *DomainGroup) DELETE(path, permission string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.route("DELETE", path, permission, handlers)
}

func (dg *DomainGroup) route(method, path, permission string, handlers []gin.HandlerFunc) *DomainGroup {
	dg.routes = append(dg.routes, routeDefinition{
		method:     method,
		path:       path,
		permission: permission,
		handlers:   handlers,
	})
	return dg
}

// Group creates a sub-group within this domain
func (dg *DomainGroup) Group(name, prefix string) *DomainGroup {
	subgroup := NewDomainGroup(name, prefix)
	dg.subgroups = append(dg.subgroups, subgroup)
	return subgroup
}

// RegisterRoutes implements RouteRegistrar interface
func (dg *DomainGroup) RegisterRoutes(rg *gin.RouterGroup, gate *authz.Gate) {
	// Create group with prefix
	group := rg.Group(dg.prefix)

	// Apply middleware
	if len(dg.middleware) > 0 {
		group.Use(dg.middleware...)
	}

	// Register routes with their permission guard in front
	for _, route := range dg.routes {
		handlers := route.handlers
		if route.permission != PermissionAny && gate != nil {
			guarded := make([]gin.HandlerFunc, 0, len(handlers)+1)
			guarded = append(guarded, middleware.RequirePermission(gate, route.permission))
			guarded = append(guarded, handlers...)
			handlers = guarded
		}

		switch route.method {
		case "GET":
			group.GET(route.path, handlers...)
		case "POST":
			group.POST(route.path, handlers...)
		case "PUT":
			group.PUT(route.path, handlers...)
		case "PATCH":
			group.PATCH(route.path, handlers...)
		case "DELETE":
			group.DELETE(route.path, handlers...)
		}
	}

	// Register subgroups recursively
	for _, subgroup := range dg.subgroups {
		subgroup.RegisterRoutes(group, gate)
	}
}

// Name returns the group name
func (dg *DomainGroup) Name() string {
	return dg.name
}

// Prefix returns the group prefix
func (dg *DomainGroup) Prefix() string {
	return dg.prefix
}
