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

	"github.com/turnesa/turnesa/internal/audit"
	"github.com/turnesa/turnesa/internal/auth"
	"github.com/turnesa/turnesa/internal/observability/logger"
	"github.com/turnesa/turnesa/internal/provider"
)

// RegisterRequest represents registration data
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Register creates a tenant and its admin user in one step
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Cuerpo de la solicitud inválido")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		respondError(w, http.StatusBadRequest, "El correo electrónico es requerido")
		return
	}
	if len(req.Password) < 6 {
		respondError(w, http.StatusBadRequest, "La contraseña debe tener al menos 6 caracteres")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "El nombre es requerido")
		return
	}

	result, err := h.authService.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			respondError(w, http.StatusConflict, "El correo electrónico ya está registrado")
			return
		}
		slog.ErrorContext(r.Context(), "registration failed",
			logger.Error(err),
			logger.Email(req.Email),
		)
		respondError(w, http.StatusInternalServerError, "No se pudo completar el registro")
		return
	}

	respond(w, http.StatusCreated, "Usuario registrado exitosamente", result)
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates a user and returns a session token
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Cuerpo de la solicitud inválido")
		return
	}

	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "El correo electrónico y la contraseña son requeridos")
		return
	}

	result, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			// Unknown email and wrong password are indistinguishable here.
			respondError(w, http.StatusUnauthorized, "Credenciales inválidas")
			return
		}
		slog.ErrorContext(r.Context(), "login failed", logger.Error(err))
		respondError(w, http.StatusInternalServerError, "No se pudo iniciar sesión")
		return
	}

	respond(w, http.StatusOK, "Inicio de sesión exitoso", map[string]any{
		"access_token": result.Token,
		"user":         result.User,
	})
}

// ForgotPasswordRequest represents a password recovery request
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword asks the identity provider to send a recovery email
func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Cuerpo de la solicitud inválido")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		respondError(w, http.StatusBadRequest, "El correo electrónico es requerido")
		return
	}

	if err := h.providerClient.SendRecoveryEmail(r.Context(), req.Email); err != nil {
		if errors.Is(err, provider.ErrNotConfigured) {
			respondError(w, http.StatusInternalServerError, "La recuperación de contraseña no está disponible")
			return
		}
		slog.ErrorContext(r.Context(), "recovery email failed",
			logger.Error(err),
			logger.Email(req.Email),
		)
		if errors.Is(err, provider.ErrRecoveryFailed) {
			// Provider rejections (bad address, rate limited) are the caller's
			// problem, not ours.
			respondError(w, http.StatusBadRequest, "No se pudo enviar el correo de recuperación")
			return
		}
		respondError(w, http.StatusInternalServerError, "No se pudo enviar el correo de recuperación")
		return
	}

	h.auditLogger.Log(r.Context(), audit.Event{
		Type:      audit.TypeRecoveryEmail,
		Resource:  "user_credentials",
		IPAddress: getIPAddress(r),
		Metadata:  map[string]any{audit.AttrEmail: req.Email},
	})

	respond(w, http.StatusOK, "Correo de recuperación enviado", nil)
}

// GetCurrentUser returns the authenticated user's redacted view
func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.authService.GetUser(r.Context(), GetUserID(r.Context()))
	if err != nil {
		respondError(w, http.StatusNotFound, "Usuario no encontrado")
		return
	}

	respond(w, http.StatusOK, "Usuario obtenido exitosamente", user.Summarize())
}

// ChangePasswordRequest represents password change data
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// ChangePassword replaces the current user's password
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Cuerpo de la solicitud inválido")
		return
	}

	if len(req.NewPassword) < 6 {
		respondError(w, http.StatusBadRequest, "La contraseña debe tener al menos 6 caracteres")
		return
	}

	err := h.authService.ChangePassword(r.Context(), GetUserID(r.Context()), req.OldPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "La contraseña actual es incorrecta")
			return
		}
		slog.ErrorContext(r.Context(), "password change failed",
			logger.Error(err),
			logger.UserID(GetUserID(r.Context())),
		)
		respondError(w, http.StatusInternalServerError, "No se pudo cambiar la contraseña")
		return
	}

	respond(w, http.StatusOK, "Contraseña actualizada exitosamente", nil)
}
