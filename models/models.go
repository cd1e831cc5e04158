package models

import "time"

// Role values mirror the backend user roles.
type Role string

const (
	RoleVatandas Role = "VATANDAS"
	RoleOperator Role = "OPERATOR"
	RoleEkip     Role = "EKIP"
	RoleAdmin    Role = "ADMIN"
)

// ReportStatus values mirror the backend report lifecycle.
type ReportStatus string

const (
	StatusBeklemede   ReportStatus = "BEKLEMEDE"
	StatusInceleniyor ReportStatus = "INCELENIYOR"
	StatusCozuldu     ReportStatus = "COZULDU"
	StatusReddedildi  ReportStatus = "REDDEDILDI"
)

// Priority values mirror the backend report priorities.
type Priority string

const (
	PriorityDusuk  Priority = "DUSUK"
	PriorityOrta   Priority = "ORTA"
	PriorityYuksek Priority = "YUKSEK"
	PriorityAcil   Priority = "ACIL"
)

// User represents a platform user as returned by the backend.
type User struct {
	ID          int64   `json:"id"`
	Email       string  `json:"email"`
	Username    string  `json:"username"`
	FirstName   string  `json:"first_name,omitempty"`
	LastName    string  `json:"last_name,omitempty"`
	Role        Role    `json:"role"`
	RoleDisplay string  `json:"role_display,omitempty"`
	Team        *int64  `json:"team"`
	TeamName    *string `json:"team_name"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	DateJoined  string  `json:"date_joined,omitempty"`
	LastLogin   *string `json:"last_login"`
}

// Category represents a report category. Categories are soft-deactivated,
// never hard-deleted.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active"`
}

// Team represents a staff team.
type Team struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   *string   `json:"description"`
	TeamType      string    `json:"team_type"`
	CreatedBy     int64     `json:"created_by"`
	CreatedByName string    `json:"created_by_name,omitempty"`
	Members       []int64   `json:"members,omitempty"`
	MembersCount  int       `json:"members_count"`
	CreatedAt     time.Time `json:"created_at"`
	IsActive      bool      `json:"is_active"`
}

// Report is the list-view shape of a citizen report. Latitude and longitude
// are only populated on payloads that carry them.
type Report struct {
	ID            int64        `json:"id"`
	Title         string       `json:"title"`
	Status        ReportStatus `json:"status"`
	Priority      Priority     `json:"priority"`
	Reporter      User         `json:"reporter"`
	Category      *Category    `json:"category"`
	AssignedTeam  *Team        `json:"assigned_team"`
	Location      string       `json:"location,omitempty"`
	Latitude      *float64     `json:"latitude,omitempty"`
	Longitude     *float64     `json:"longitude,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
	MediaCount    int          `json:"media_count"`
	CommentCount  int          `json:"comment_count"`
	FirstMediaURL string       `json:"first_media_url,omitempty"`
}

// MediaItem is a single uploaded file attached to a report.
type MediaItem struct {
	ID         int64  `json:"id"`
	File       string `json:"file"`
	FilePath   string `json:"file_path,omitempty"`
	MediaType  string `json:"media_type,omitempty"`
	UploadedAt string `json:"uploaded_at,omitempty"`
}

// Comment is an append-only comment on a report.
type Comment struct {
	ID        int64     `json:"id"`
	User      User      `json:"user"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ReportDetail is the detail-view shape of a report.
type ReportDetail struct {
	Report
	Description string      `json:"description"`
	MediaFiles  []MediaItem `json:"media_files"`
	Comments    []Comment   `json:"comments"`
}

// TokenPair is the credential pair issued by the login endpoint.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Email           string `json:"email" binding:"required"`
	Username        string `json:"username" binding:"required"`
	Password        string `json:"password" binding:"required"`
	PasswordConfirm string `json:"password_confirm" binding:"required"`
	Role            Role   `json:"role,omitempty"`
}

// RefreshRequest is the token refresh payload.
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// RefreshResponse carries the newly issued access token. Some backends
// rotate the refresh token as well.
type RefreshResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

// ChangePasswordRequest is the password change payload.
type ChangePasswordRequest struct {
	OldPassword        string `json:"old_password" binding:"required"`
	NewPassword        string `json:"new_password" binding:"required"`
	NewPasswordConfirm string `json:"new_password_confirm" binding:"required"`
}

// UpdateProfileRequest carries partial profile updates. Nil fields are
// omitted from the outgoing PATCH.
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Address   *string `json:"address,omitempty"`
}

// CategoryPayload is the create/update payload for categories.
type CategoryPayload struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	IsActive    *bool  `json:"is_active,omitempty"`
}

// TeamPayload is the create/update payload for teams.
type TeamPayload struct {
	Name        string  `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	TeamType    string  `json:"team_type,omitempty"`
	Members     []int64 `json:"members,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// ErrorResponse is the error body served to the console frontend.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is a simple acknowledgment body.
type MessageResponse struct {
	Message string `json:"message"`
}
