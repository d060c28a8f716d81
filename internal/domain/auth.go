package domain

type Provider string

const (
	ProviderGoogle Provider = "google"
	ProviderLocal  Provider = "local"
)

// AuthPayload is the claim set carried by an access token.
type AuthPayload struct {
	UserID string `json:"id"`
	Role   Role   `json:"role"`
}

// LoginRequest carries the credentials of one provider; unused fields stay nil.
type LoginRequest struct {
	Email    *string
	Password *string
	GoogleID *string
	Name     *string
	Image    *string
}

type LoginResponse struct {
	Token string `json:"token"`
	User  *Users `json:"user"`
}
