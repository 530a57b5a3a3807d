package entity

type UserRole string

const (
	RoleArtist      UserRole = "ARTIST"
	RoleOrganizer   UserRole = "ORGANIZER"
	RoleMedia       UserRole = "MEDIA"
	RoleTechService UserRole = "TECH_SERVICE"
	RoleBoth        UserRole = "BOTH"
)

type User struct {
	Base
	Name          string    `db:"name"`
	Email         string    `db:"email"`
	EmailVerified bool      `db:"email_verified"`
	Image         *string   `db:"image"`
	Role          *UserRole `db:"role"`
}
