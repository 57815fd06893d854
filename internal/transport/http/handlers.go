// Copyright 2026 The Turnesa Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package http exposes the REST API. Every successful response is wrapped in
// the {statusCode, message, data} envelope; errors carry a bare {message}.
package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/turnesa/turnesa/internal/audit"
	"github.com/turnesa/turnesa/internal/auth"
	"github.com/turnesa/turnesa/internal/catalog"
	"github.com/turnesa/turnesa/internal/provider"
	"github.com/turnesa/turnesa/internal/tenant"
	"github.com/turnesa/turnesa/internal/token"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Handler holds HTTP handlers and dependencies
type Handler struct {
	authService    *auth.Service
	catalog        *catalog.Catalog
	tenants        tenant.Repository
	providerClient *provider.Client
	auditLogger    audit.Logger
	codec          *token.Codec
	cookieName     string
}

// NewHandler creates a new HTTP handler
func NewHandler(
	authService *auth.Service,
	cat *catalog.Catalog,
	tenants tenant.Repository,
	providerClient *provider.Client,
	auditLogger audit.Logger,
	codec *token.Codec,
	cookieName string,
) *Handler {
	return &Handler{
		authService:    authService,
		catalog:        cat,
		tenants:        tenants,
		providerClient: providerClient,
		auditLogger:    auditLogger,
		codec:          codec,
		cookieName:     cookieName,
	}
}

// NewRouter creates a new HTTP router
func NewRouter(h *Handler, rateLimiter *RateLimiter) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(RateLimitMiddleware(rateLimiter))
	r.Use(func(handler http.Handler) http.Handler {
		return otelhttp.NewHandler(handler, "http_request",
			otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
				return r.Method + " " + r.URL.Path
			}),
		)
	})
	r.Use(LoggingMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// Health check
	r.Get("/health", h.HealthCheck)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Public authentication endpoints
		r.Post("/auth/register", h.Register)
		r.Post("/auth/login", h.Login)
		r.Post("/auth/forgot-password", h.ForgotPassword)

		// Protected routes. Tenant context comes from the verified token.
		r.Group(func(r chi.Router) {
			r.Use(h.AuthMiddleware)

			r.Get("/auth/me", h.GetCurrentUser)
			r.Post("/auth/change-password", h.ChangePassword)

			r.Get("/tenants/me", h.GetCurrentTenant)

			r.Route("/services", func(r chi.Router) {
				r.Post("/", h.CreateService)
				r.Get("/", h.ListServices)
				r.Get("/{serviceID}", h.GetService)
				r.Patch("/{serviceID}", h.UpdateService)
				r.Delete("/{serviceID}", h.DeleteService)
			})
		})
	})

	return r
}

// HealthCheck returns the health status
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "turnesa",
	})
}

// envelope is the uniform success shape every endpoint returns.
type envelope struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respond wraps data in the success envelope.
func respond(w http.ResponseWriter, status int, message string, data any) {
	respondJSON(w, status, envelope{
		StatusCode: status,
		Message:    message,
		Data:       data,
	})
}

// respondError never leaks internals: only the message field is exposed.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"message": message,
	})
}

func getIPAddress(r *http.Request) string {
	// Check X-Forwarded-For header first
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	// Check X-Real-IP header
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}
