// Package router assembles the gin engine: middleware chain and domain route groups.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIVersion is the path segment every domain group is mounted under
const APIVersion = "v1"

// RouteRegistrar attaches its routes to a parent group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Mount registers every registrar under /api/<version>
func Mount(engine *gin.Engine, version string, registrars ...RouteRegistrar) *gin.RouterGroup {
	api := engine.Group("/api/" + version)
	for _, r := range registrars {
		r.RegisterRoutes(api)
	}
	return api
}

type route struct {
	method   string
	path     string
	handlers gin.HandlersChain
}

// DomainGroup collects one domain's routes so middleware can be added
// before they are mounted.
type DomainGroup struct {
	name       string
	prefix     string
	middleware gin.HandlersChain
	routes     []route
}

func NewDomainGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{name: name, prefix: prefix}
}

func (g *DomainGroup) Name() string   { return g.name }
func (g *DomainGroup) Prefix() string { return g.prefix }

// Use appends middleware that runs for every route of the group
func (g *DomainGroup) Use(middleware ...gin.HandlerFunc) *DomainGroup {
	g.middleware = append(g.middleware, middleware...)
	return g
}

// Handle adds a route relative to the group prefix
func (g *DomainGroup) Handle(method, path string, handlers ...gin.HandlerFunc) *DomainGroup {
	g.routes = append(g.routes, route{method: method, path: path, handlers: handlers})
	return g
}

func (g *DomainGroup) GET(path string, h ...gin.HandlerFunc) *DomainGroup {
	return g.Handle(http.MethodGet, path, h...)
}

func (g *DomainGroup) POST(path string, h ...gin.HandlerFunc) *DomainGroup {
	return g.Handle(http.MethodPost, path, h...)
}

func (g *DomainGroup) PUT(path string, h ...gin.HandlerFunc) *DomainGroup {
	return g.Handle(http.MethodPut, path, h...)
}

func (g *DomainGroup) PATCH(path string, h ...gin.HandlerFunc) *DomainGroup {
	return g.Handle(http.MethodPatch, path, h...)
}

func (g *DomainGroup) DELETE(path string, h ...gin.HandlerFunc) *DomainGroup {
	return g.Handle(http.MethodDelete, path, h...)
}

// RegisterRoutes implements RouteRegistrar
func (g *DomainGroup) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(g.prefix, g.middleware...)
	for _, r := range g.routes {
		group.Handle(r.method, r.path, r.handlers...)
	}
}
