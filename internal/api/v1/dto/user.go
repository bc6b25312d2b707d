package dto

import "time"

// UserSyncDTO is used for incoming profile sync requests
type UserSyncDTO struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	AvatarURL string `json:"avatar_url" validate:"omitempty,url"`
}

// UserResponseDTO is returned in API responses
type UserResponseDTO struct {
	UserID           string    `json:"user_id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	AvatarURL        string    `json:"avatar_url"`
	Plan             string    `json:"plan"`
	LessonsCompleted int       `json:"lessons_completed"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
