// Package api wraps a chi router with a small request Context used by the versioned routers.
package api

import (
	"net/http"
)

type RouteMethods interface {
	Get(string, http.HandlerFunc)
	Post(string, http.HandlerFunc)
}

type Router interface {
	ServeHTTP(http.ResponseWriter, *http.Request)

	RouteMethods
}

type API interface {
	Handler() http.Handler

	Get(string, ContextFn, ...MiddleWare)
	Post(string, ContextFn, ...MiddleWare)
}

type api struct {
	router Router
}

func New(router Router) API {
	return &api{
		router: router,
	}
}

func (a *api) Get(s string, context ContextFn, middlewares ...MiddleWare) {
	a.router.Get(s, handler(context, middlewares))
}

func (a *api) Post(s string, context ContextFn, middlewares ...MiddleWare) {
	a.router.Post(s, handler(context, middlewares))
}

func (a *api) Handler() http.Handler {
	return a.router
}

func handler(context ContextFn, middlewares []MiddleWare) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		for _, m := range middlewares {
			m(writer, request)
		}

		context(&ctx{
			writer:  writer,
			request: request,
			status:  http.StatusOK,
		})
	}
}
