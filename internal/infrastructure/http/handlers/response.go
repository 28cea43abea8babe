// Package handlers contains the HTTP handlers for the API.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/foyerapp/foyer/internal/application/shared"
	"github.com/foyerapp/foyer/internal/infrastructure/i18n"
	apperrors "github.com/foyerapp/foyer/pkg/errors"
)

// APIResponse is the uniform response envelope
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
	Source  string      `json:"source,omitempty"`
}

// APIError is the error payload of the envelope
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

var defaultMessages = i18n.ForLocale("fr")

// SetDefaultLocale configures the catalog served when a request carries
// no usable Accept-Language header
func SetDefaultLocale(locale string) {
	defaultMessages = i18n.ForLocale(locale)
}

func messages(r *http.Request) i18n.Messages {
	return i18n.ForAcceptLanguage(r.Header.Get("Accept-Language"), defaultMessages)
}

func respondJSON(w http.ResponseWriter, status int, payload APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondData(w http.ResponseWriter, status int, data interface{}) {
	respondJSON(w, status, APIResponse{Success: true, Data: data})
}

// respondResult renders a read served through the degradation envelope.
// Fallback data is still a success, flagged so clients can tell.
func respondResult(w http.ResponseWriter, r *http.Request, data interface{}, source shared.Source) {
	resp := APIResponse{Success: true, Data: data, Source: string(source)}
	if source == shared.SourceFallback {
		resp.Message = messages(r).DegradedNotice
	}
	respondJSON(w, http.StatusOK, resp)
}

func respondError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		logger.Error("unhandled error", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, APIResponse{
			Success: false,
			Error:   &APIError{Code: string(apperrors.CodeInternal), Message: messages(r).InternalError},
		})
		return
	}

	status := appErr.StatusCode()
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", zap.String("code", string(appErr.Code)), zap.Error(err))
	}
	respondJSON(w, status, APIResponse{
		Success: false,
		Error: &APIError{
			Code:    string(appErr.Code),
			Message: localizedMessage(r, appErr),
			Details: appErr.Details,
		},
	})
}

// localizedMessage swaps well-known error codes for catalog strings; other
// codes keep the message the service produced
func localizedMessage(r *http.Request, appErr *apperrors.AppError) string {
	msgs := messages(r)
	switch appErr.Code {
	case apperrors.CodeAIUnavailable:
		return msgs.AIUnavailable
	case apperrors.CodePlanRequired:
		return msgs.PlanRequired
	case apperrors.CodeAccountSuspended:
		return msgs.AccountSuspended
	case apperrors.CodeInternal, apperrors.CodeStorageError:
		return msgs.InternalError
	default:
		return appErr.Message
	}
}
