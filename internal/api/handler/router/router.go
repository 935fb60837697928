package router

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

var (
	WithRoutes = func(routes ...Route) ConfigRouter {
		return func(router *Router) {
			router.AddRoutes(routes...)
		}
	}
)

type Route struct {
	Path        string
	Method      string
	Handler     http.Handler
	Middlewares []func(http.Handler) http.Handler
}

type Router struct {
	router *httprouter.Router
}

type ConfigRouter func(router *Router)

func New(configs ...ConfigRouter) Router {
	r := &Router{
		router: httprouter.New(),
	}
	r.router.HandleOPTIONS = false

	for _, config := range configs {
		config(r)
	}

	return *r
}

func (r Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}

// NotFound replaces the router's 404 handler.
func (r Router) NotFound(h http.Handler) {
	r.router.NotFound = h
}

// AddRoutes registers routes, wrapping each handler in its own middlewares
// (first listed runs first).
func (r Router) AddRoutes(routes ...Route) {
	for _, route := range routes {
		handler := route.Handler
		for i := len(route.Middlewares) - 1; i >= 0; i-- {
			handler = route.Middlewares[i](handler)
		}
		r.router.Handler(route.Method, route.Path, handler)
	}
}
