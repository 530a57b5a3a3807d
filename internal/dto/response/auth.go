package response

import (
	"time"

	"rythmons/internal/data/entity"
)

type UserResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	EmailVerified bool      `json:"emailVerified"`
	Image         *string   `json:"image,omitempty"`
	Role          *string   `json:"role,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type SessionResponse struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	IPAddress *string   `json:"ipAddress,omitempty"`
	UserAgent *string   `json:"userAgent,omitempty"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AuthResponse is the {user, session} payload returned on sign-in/sign-up
// and on session lookups.
type AuthResponse struct {
	User    UserResponse    `json:"user"`
	Session SessionResponse `json:"session"`
}

type PrivateDataResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

func NewUserResponse(user *entity.User) UserResponse {
	resp := UserResponse{
		ID:            user.ID.String(),
		Name:          user.Name,
		Email:         user.Email,
		EmailVerified: user.EmailVerified,
		Image:         user.Image,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
	if user.Role != nil {
		role := string(*user.Role)
		resp.Role = &role
	}
	return resp
}

func NewSessionResponse(session *entity.Session) SessionResponse {
	return SessionResponse{
		ID:        session.ID.String(),
		Token:     session.Token.String(),
		UserID:    session.UserID.String(),
		IPAddress: session.IPAddress,
		UserAgent: session.UserAgent,
		ExpiresAt: session.ExpiresAt,
		CreatedAt: session.CreatedAt,
		UpdatedAt: session.UpdatedAt,
	}
}

func NewAuthResponse(user *entity.User, session *entity.Session) *AuthResponse {
	return &AuthResponse{
		User:    NewUserResponse(user),
		Session: NewSessionResponse(session),
	}
}
