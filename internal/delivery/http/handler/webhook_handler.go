package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"

	"campus-clinic-api/internal/delivery/dto"
	"campus-clinic-api/internal/usecase"
	"campus-clinic-api/pkg/response"
	"campus-clinic-api/pkg/validator"
)

// WebhookHandler receives identity-provider events. Events land in the
// same users table as password and OAuth signups, so there is a single
// identity source regardless of where the account originated.
type WebhookHandler struct {
	authUsecase usecase.AuthUsecase
	validator   *validator.CustomValidator
	secret      string
}

func NewWebhookHandler(authUsecase usecase.AuthUsecase, validator *validator.CustomValidator, secret string) *WebhookHandler {
	return &WebhookHandler{
		authUsecase: authUsecase,
		validator:   validator,
		secret:      secret,
	}
}

// HandleIdentityEvent processes a signed identity event. Unknown event
// types are acknowledged without action so the provider does not retry.
func (h *WebhookHandler) HandleIdentityEvent(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Failed to read request body", nil)
		return
	}

	if h.secret != "" && !h.verifySignature(body, r.Header.Get("X-Webhook-Signature")) {
		response.Unauthorized(w, "Invalid webhook signature")
		return
	}

	var req dto.IdentityEventRequest
	if err := json.Unmarshal(body, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.authUsecase.HandleIdentityEvent(r.Context(), &req); err != nil {
		response.InternalServerError(w, "Failed to process identity event")
		return
	}

	response.Success(w, http.StatusOK, "Event processed", nil)
}

func (h *WebhookHandler) verifySignature(body []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(h.secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
