package api

import (
	"github.com/eventpilot/backend/errs"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	quoteHandler   quoteHandler
	contactHandler contactHandler
	blogHandler    blogPostHandler
	galleryHandler galleryHandler
	venueHandler   venueHandler
	serviceHandler serviceHandler
	adminHandler   adminHandler
	uploadHandler  uploadHandler
}

// MessageResponse is the body of errors and delete confirmations.
type MessageResponse struct {
	Message string `json:"message"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type ValidationErrorResponse struct {
	Message string            `json:"message"`
	Errors  []errs.FieldIssue `json:"errors"`
}

type LoginResponse struct {
	Success bool      `json:"success"`
	Token   string    `json:"token"`
	User    AdminUser `json:"user"`
}

type AdminUser struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

type UploadResponse struct {
	Success  bool   `json:"success"`
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

type UploadErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
