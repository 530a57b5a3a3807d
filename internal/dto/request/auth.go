package request

type SignUpRequest struct {
	Name                 string  `json:"name" validate:"required,min=2"`
	Email                string  `json:"email" validate:"required,email"`
	Password             string  `json:"password" validate:"required,min=8,password"`
	PasswordConfirmation string  `json:"passwordConfirmation" validate:"required,eqfield=Password"`
	Role                 *string `json:"role,omitempty" validate:"omitempty,oneof=ARTIST ORGANIZER MEDIA TECH_SERVICE BOTH"`
	Terms                bool    `json:"terms" validate:"eq=true"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ForgetPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8,password"`
}

type UpdateProfileRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=2"`
	Image *string `json:"image,omitempty" validate:"omitempty,url"`
}
