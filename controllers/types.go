package controllers

import (
	"github.com/google/uuid"
	"github.com/ishala/illegal-waste-reporter-BE/repository"
)

// APIResponse is the envelope every endpoint answers with.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
	Error   *APIError   `json:"error"`
}

type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type PaginationQuery struct {
	Skip  int `form:"skip" binding:"omitempty,min=0"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=1000"`
}

func (q PaginationQuery) Page() repository.Page {
	return repository.Page{Skip: q.Skip, Limit: q.Limit}.Normalize()
}

type ListMeta struct {
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
	Count int `json:"count"`
}

type ListData struct {
	Items interface{} `json:"items"`
	Meta  ListMeta    `json:"meta"`
}

func listOf(items interface{}, count int, page repository.Page) ListData {
	return ListData{Items: items, Meta: ListMeta{Skip: page.Skip, Limit: page.Limit, Count: count}}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type CheckEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// LoginRequest accepts the OAuth2 password form (username carries the email)
// as well as a JSON body with email.
type LoginRequest struct {
	Username   string `form:"username" json:"username"`
	Email      string `form:"email" json:"email"`
	Password   string `form:"password" json:"password" binding:"required"`
	DeviceName string `form:"device_name" json:"device_name"`
}

type RefreshRequest struct {
	RefreshToken string `form:"refresh_token" json:"refresh_token" binding:"required"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password"`
	Role     *string `json:"role" binding:"omitempty,oneof=user admin"`
}

type CreateReportRequest struct {
	Category       string   `form:"category" binding:"required"`
	Description    string   `form:"description"`
	Latitude       *float64 `form:"latitude" binding:"required"`
	Longitude      *float64 `form:"longitude" binding:"required"`
	Address        string   `form:"address"`
	City           string   `form:"city"`
	ReportStatusID string   `form:"report_status_id" binding:"omitempty,uuid"`
}

type UpdateReportRequest struct {
	Category       *string    `json:"category"`
	Description    *string    `json:"description"`
	Latitude       *float64   `json:"latitude"`
	Longitude      *float64   `json:"longitude"`
	Address        *string    `json:"address"`
	City           *string    `json:"city"`
	ReportStatusID *uuid.UUID `json:"report_status_id"`
}

type ListReportsQuery struct {
	PaginationQuery
	Status string `form:"status"`
	UserID string `form:"user_id" binding:"omitempty,uuid"`
}

type LocationRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
	Address   string   `json:"address"`
	City      string   `json:"city"`
}

type NearbyRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
	RadiusKm  *float64 `json:"radius_km"`
	Limit     int      `json:"limit" binding:"omitempty,min=1,max=1000"`
}

type DistanceQuery struct {
	Latitude  *float64 `form:"latitude" binding:"required"`
	Longitude *float64 `form:"longitude" binding:"required"`
}

type MediaURLQuery struct {
	Expires int64 `form:"expires" binding:"omitempty,min=1,max=604800"`
}

type CreateVerificationRequest struct {
	ReportID     uuid.UUID `json:"report_id" binding:"required"`
	Notes        string    `json:"notes"`
	ReportStatus string    `json:"report_status" binding:"required"`
}

type UpdateVerificationRequest struct {
	Notes string `json:"notes"`
}

type ListVerificationsQuery struct {
	PaginationQuery
	ReportID string `form:"report_id" binding:"omitempty,uuid"`
}
