package dto

import "nepshift_backend/internal/models"

type RegisterRequest struct {
	Email    string          `json:"email" validate:"required,email"`
	Password string          `json:"password" validate:"required,min=8"`
	Role     models.UserRole `json:"role" validate:"required,oneof=helper hirer"`
	FullName string          `json:"full_name" validate:"required,min=2,max=100"`
	Phone    string          `json:"phone" validate:"omitempty,max=20"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID       string          `json:"id"`
	Email    string          `json:"email"`
	Role     models.UserRole `json:"role"`
	FullName string          `json:"full_name"`
	Phone    string          `json:"phone,omitempty"`
}
