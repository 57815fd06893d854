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
	"log/slog"
	"net/http"

	"github.com/turnesa/turnesa/internal/observability/logger"
)

// GetCurrentTenant returns the business profile of the caller's own tenant.
// There is no by-ID variant; a session only ever sees its own tenant.
func (h *Handler) GetCurrentTenant(w http.ResponseWriter, r *http.Request) {
	t, err := h.tenants.GetByID(r.Context(), GetTenantID(r.Context()))
	if err != nil {
		slog.ErrorContext(r.Context(), "tenant lookup failed",
			logger.Error(err),
			logger.TenantID(GetTenantID(r.Context())),
		)
		respondError(w, http.StatusNotFound, "Negocio no encontrado")
		return
	}

	respond(w, http.StatusOK, "Negocio obtenido exitosamente", t)
}
