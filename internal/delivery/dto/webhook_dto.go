package dto

// IdentityEventRequest is the inbound payload from the external identity
// provider. Only user.created events are handled.
type IdentityEventRequest struct {
	Type string            `json:"type" validate:"required"`
	Data IdentityEventData `json:"data" validate:"required"`
}

type IdentityEventData struct {
	ID        string `json:"id" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	AvatarURL string `json:"avatar_url"`
}
