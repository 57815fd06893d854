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

package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/turnesa/turnesa/internal/catalog"
	"github.com/turnesa/turnesa/internal/observability/logger"
)

// CreateServiceRequest represents a new service offering
type CreateServiceRequest struct {
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Duration       int     `json:"duration"`
	Price          float64 `json:"price"`
	ProfessionalID *string `json:"professionalId"`
}

func (req *CreateServiceRequest) validate() string {
	if strings.TrimSpace(req.Name) == "" {
		return "El nombre es requerido"
	}
	if req.Duration < 1 {
		return "La duración debe ser al menos 1 minuto"
	}
	if req.Price < 0 {
		return "El precio no puede ser negativo"
	}
	return ""
}

// CreateService creates a service within the caller's tenant
func (h *Handler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req CreateServiceRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Cuerpo de la solicitud inválido")
		return
	}

	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	svc, err := h.catalog.Create(r.Context(), catalog.CreateInput{
		Name:           strings.TrimSpace(req.Name),
		Description:    req.Description,
		DurationMin:    req.Duration,
		Price:          req.Price,
		ProfessionalID: req.ProfessionalID,
	}, GetTenantID(r.Context()), GetUserID(r.Context()))
	if err != nil {
		slog.ErrorContext(r.Context(), "service creation failed",
			logger.Error(err),
			logger.TenantID(GetTenantID(r.Context())),
		)
		respondError(w, http.StatusInternalServerError, "No se pudo crear el servicio")
		return
	}

	respond(w, http.StatusCreated, "Servicio creado exitosamente", svc)
}

// ListServices returns every service owned by the caller's tenant
func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.catalog.List(r.Context(), GetTenantID(r.Context()))
	if err != nil {
		slog.ErrorContext(r.Context(), "service listing failed",
			logger.Error(err),
			logger.TenantID(GetTenantID(r.Context())),
		)
		respondError(w, http.StatusInternalServerError, "No se pudieron obtener los servicios")
		return
	}

	// An empty catalog serializes as [] rather than null.
	if services == nil {
		services = []*catalog.Service{}
	}

	respond(w, http.StatusOK, "Servicios obtenidos exitosamente", services)
}

// GetService returns one service. A service owned by another tenant is
// reported as not found, never as forbidden.
func (h *Handler) GetService(w http.ResponseWriter, r *http.Request) {
	svc, err := h.catalog.GetByID(r.Context(), chi.URLParam(r, "serviceID"), GetTenantID(r.Context()))
	if err != nil {
		h.respondServiceError(w, r, err, "obtener")
		return
	}

	respond(w, http.StatusOK, "Servicio obtenido exitosamente", svc)
}

// UpdateServiceRequest carries a partial patch; absent fields stay unchanged
type UpdateServiceRequest struct {
	Name           *string  `json:"name"`
	Description    *string  `json:"description"`
	Duration       *int     `json:"duration"`
	Price          *float64 `json:"price"`
	ProfessionalID *string  `json:"professionalId"`
}

func (req *UpdateServiceRequest) validate() string {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return "El nombre es requerido"
	}
	if req.Duration != nil && *req.Duration < 1 {
		return "La duración debe ser al menos 1 minuto"
	}
	if req.Price != nil && *req.Price < 0 {
		return "El precio no puede ser negativo"
	}
	return ""
}

// UpdateService applies a partial update to a service
func (h *Handler) UpdateService(w http.ResponseWriter, r *http.Request) {
	var req UpdateServiceRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Cuerpo de la solicitud inválido")
		return
	}

	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	svc, err := h.catalog.Update(r.Context(), chi.URLParam(r, "serviceID"), GetTenantID(r.Context()), catalog.Patch{
		Name:           req.Name,
		Description:    req.Description,
		DurationMin:    req.Duration,
		Price:          req.Price,
		ProfessionalID: req.ProfessionalID,
	}, GetUserID(r.Context()))
	if err != nil {
		h.respondServiceError(w, r, err, "actualizar")
		return
	}

	respond(w, http.StatusOK, "Servicio actualizado exitosamente", svc)
}

// DeleteService removes a service permanently
func (h *Handler) DeleteService(w http.ResponseWriter, r *http.Request) {
	err := h.catalog.Delete(r.Context(), chi.URLParam(r, "serviceID"), GetTenantID(r.Context()), GetUserID(r.Context()))
	if err != nil {
		h.respondServiceError(w, r, err, "eliminar")
		return
	}

	respond(w, http.StatusOK, "Servicio eliminado exitosamente", nil)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, err error, action string) {
	if errors.Is(err, catalog.ErrServiceNotFound) {
		respondError(w, http.StatusNotFound, "Servicio no encontrado")
		return
	}
	slog.ErrorContext(r.Context(), "service operation failed",
		logger.Error(err),
		logger.TenantID(GetTenantID(r.Context())),
		logger.UserID(GetUserID(r.Context())),
		logger.ServiceID(chi.URLParam(r, "serviceID")),
		logger.Operation(action),
	)
	respondError(w, http.StatusInternalServerError, "No se pudo "+action+" el servicio")
}
