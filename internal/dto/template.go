package dto

import "github.com/noah-isme/interview-flow-api/internal/models"

// CreateTemplateRequest defines a new feedback template.
type CreateTemplateRequest struct {
	Name        string                   `json:"name" validate:"required"`
	Description string                   `json:"description"`
	Sections    []models.TemplateSection `json:"sections" validate:"required,min=1"`
}

// UpdateTemplateRequest replaces an existing template's definition.
type UpdateTemplateRequest struct {
	Name        string                   `json:"name" validate:"required"`
	Description string                   `json:"description"`
	Sections    []models.TemplateSection `json:"sections" validate:"required,min=1"`
}
