package dto

import (
	"time"

	"nepshift_backend/internal/models"
)

type PostShiftRequest struct {
	Title       string    `json:"title" validate:"required,min=3,max=120"`
	Description string    `json:"description" validate:"max=2000"`
	Category    string    `json:"category" validate:"required"`
	PayMin      float64   `json:"pay_min" validate:"required,gt=0"`
	PayMax      float64   `json:"pay_max" validate:"required,gt=0"`
	Address     *string   `json:"address,omitempty"`
	City        string    `json:"city" validate:"omitempty,max=80"`
	Latitude    *float64  `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude   *float64  `json:"longitude,omitempty" validate:"omitempty,longitude"`
	Date        time.Time `json:"date" validate:"required"`
	StartTime   string    `json:"start_time" validate:"required,shifttime"`
	EndTime     string    `json:"end_time" validate:"required,shifttime"`
	Skills      []string  `json:"skills,omitempty"`
}

type ApplyRequest struct {
	BidAmount        float64 `json:"bid_amount" validate:"required,gt=0"`
	EstimatedArrival *string `json:"estimated_arrival,omitempty" validate:"omitempty,max=60"`
	Message          *string `json:"message,omitempty" validate:"omitempty,max=500"`
}

type ChangeShiftStatusRequest struct {
	Status models.ShiftStatus `json:"status" validate:"required,oneof=open reserved in-progress completed cancelled"`
}

type ShiftSearchRequest struct {
	City     string   `form:"city"`
	Category string   `form:"category"`
	PayMin   *float64 `form:"pay_min"`
	PayMax   *float64 `form:"pay_max"`
	Page     int      `form:"page"`
	PageSize int      `form:"page_size"`
}

type ShiftResponse struct {
	ID           string                `json:"id"`
	HirerID      string                `json:"hirer_id"`
	Title        string                `json:"title"`
	Description  string                `json:"description,omitempty"`
	Category     string                `json:"category"`
	PayMin       float64               `json:"pay_min"`
	PayMax       float64               `json:"pay_max"`
	Address      *string               `json:"address,omitempty"`
	City         string                `json:"city,omitempty"`
	Latitude     *float64              `json:"latitude,omitempty"`
	Longitude    *float64              `json:"longitude,omitempty"`
	Date         *time.Time            `json:"date,omitempty"`
	StartTime    string                `json:"start_time"`
	EndTime      string                `json:"end_time"`
	Skills       []string              `json:"skills,omitempty"`
	Status       models.ShiftStatus    `json:"status"`
	CreatedAt    time.Time             `json:"created_at"`
	Applications []ApplicationResponse `json:"applications,omitempty"`
}

type ApplicationResponse struct {
	ID               string                   `json:"id"`
	ShiftID          string                   `json:"shift_id"`
	WorkerID         string                   `json:"worker_id"`
	BidAmount        float64                  `json:"bid_amount"`
	EstimatedArrival *string                  `json:"estimated_arrival,omitempty"`
	Message          *string                  `json:"message,omitempty"`
	Status           models.ApplicationStatus `json:"status"`
	AppliedAt        time.Time                `json:"applied_at"`
	Shift            *ShiftResponse           `json:"shift,omitempty"`
}
