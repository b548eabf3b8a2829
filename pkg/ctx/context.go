// Package ctx provides the request context handlers are written against.
//
// Instead of (http.ResponseWriter, *http.Request), a handler receives a
// single *Context with helpers for params, binding, identity, and the
// response envelope:
//
//	func GetStore(c *ctx.Context) {
//	    id, err := c.ParamUint("id")
//	    ...
//	    c.OK("Store retrieved successfully", store)
//	}
//
//	// Register with ctx.Wrap:
//	api.Get("/stores/{id}", "stores.show", ctx.Wrap(GetStore))
package ctx

import (
	"context"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/sarthakjain/storerate/config"
	"github.com/sarthakjain/storerate/pkg/apperr"
	"github.com/sarthakjain/storerate/pkg/bind"
	"github.com/sarthakjain/storerate/pkg/logger"
	"github.com/sarthakjain/storerate/pkg/rbac"
	"github.com/sarthakjain/storerate/pkg/response"
	"github.com/sarthakjain/storerate/pkg/validate"
)

// HandlerFunc is the context-aware handler signature.
type HandlerFunc func(c *Context)

// Wrap converts a HandlerFunc to a standard http.HandlerFunc so it can be
// passed to any router method.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := acquire(w, r)
		defer release(c)
		h(c)
	}
}

// Context wraps a request/response pair and provides the handler API.
type Context struct {
	W http.ResponseWriter
	R *http.Request
}

// pool recycles Context objects to reduce GC pressure.
var pool = sync.Pool{
	New: func() any { return &Context{} },
}

func acquire(w http.ResponseWriter, r *http.Request) *Context {
	c := pool.Get().(*Context)
	c.W = w
	c.R = r
	return c
}

func release(c *Context) {
	c.W = nil
	c.R = nil
	pool.Put(c)
}

// ─── Request helpers ──────────────────────────────────────────────────────────

// Param returns a URL path parameter (e.g. "/stores/{id}" → c.Param("id")).
func (c *Context) Param(key string) string {
	return chi.URLParam(c.R, key)
}

// ParamUint parses a numeric path parameter. A non-numeric value yields a
// BadRequest the caller passes straight to Fail.
func (c *Context) ParamUint(key string) (uint, error) {
	raw := c.Param(key)
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, apperr.BadRequest("Invalid " + key)
	}
	return uint(n), nil
}

// Query returns a query-string value, or "" if not present.
func (c *Context) Query(key string) string {
	return c.R.URL.Query().Get(key)
}

// DefaultQuery returns a query-string value, or def if it is empty.
func (c *Context) DefaultQuery(key, def string) string {
	if v := c.Query(key); v != "" {
		return v
	}
	return def
}

// Context returns the underlying request context.
func (c *Context) Context() context.Context { return c.R.Context() }

// Identity returns the authenticated caller. ok is false on public routes.
func (c *Context) Identity() (rbac.Identity, bool) {
	return rbac.IdentityFromCtx(c.R.Context())
}

// ─── Binding ──────────────────────────────────────────────────────────────────

// BindJSON decodes the JSON body into dest and runs validation. On failure it
// sends a 400 carrying the first field message and returns false; the handler
// should simply return.
func (c *Context) BindJSON(dest any) bool {
	errs, err := bind.JSON(c.R, dest)
	if err != nil {
		c.Error(http.StatusBadRequest, err.Error())
		return false
	}
	if validate.HasErrors(errs) {
		c.Error(http.StatusBadRequest, validate.First(errs))
		return false
	}
	return true
}

// ─── Response helpers ─────────────────────────────────────────────────────────

// OK sends a 200 envelope.
func (c *Context) OK(message string, data any) {
	response.OK(c.W, message, data)
}

// Created sends a 201 envelope.
func (c *Context) Created(message string, data any) {
	response.Created(c.W, message, data)
}

// Error sends an error envelope with the given status and message.
func (c *Context) Error(code int, message string) {
	response.Error(c.W, code, message)
}

// Fail is the single error-translation point: apperr errors keep their status
// and message; anything else becomes a 500 with a generic message, with full
// detail logged server-side (outside production only).
func (c *Context) Fail(err error) {
	if appErr, ok := apperr.From(err); ok {
		c.Error(appErr.Status, appErr.Message)
		return
	}

	log := logger.WithCtx(c.R.Context())
	if config.IsProduction() {
		log.Error("unhandled error", "path", c.R.URL.Path)
	} else {
		log.Error("unhandled error", "path", c.R.URL.Path, "error", err)
	}
	c.Error(http.StatusInternalServerError, "Internal Server Error")
}
