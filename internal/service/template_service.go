package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/interview-flow-api/internal/dto"
	"github.com/noah-isme/interview-flow-api/internal/models"
	appErrors "github.com/noah-isme/interview-flow-api/pkg/errors"
)

type templateRepository interface {
	Create(ctx context.Context, template *models.Template) error
	GetByID(ctx context.Context, id string) (*models.Template, error)
	List(ctx context.Context) ([]models.Template, error)
	Update(ctx context.Context, template *models.Template) error
	Delete(ctx context.Context, id string) error
}

// TemplateService manages feedback template definitions.
type TemplateService struct {
	repo      templateRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTemplateService constructs the service.
func NewTemplateService(repo templateRepository, validate *validator.Validate, logger *zap.Logger) *TemplateService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TemplateService{repo: repo, validator: validate, logger: logger}
}

// Create stores a new template after checking its field types.
func (s *TemplateService) Create(ctx context.Context, req dto.CreateTemplateRequest) (*models.Template, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	if err := validateSections(req.Sections); err != nil {
		return nil, err
	}
	template := &models.Template{
		Name:        req.Name,
		Description: req.Description,
		Sections:    req.Sections,
	}
	if err := s.repo.Create(ctx, template); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create template")
	}
	return template, nil
}

// Get returns one template.
func (s *TemplateService) Get(ctx context.Context, id string) (*models.Template, error) {
	template, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "template not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load template")
	}
	return template, nil
}

// List returns all templates.
func (s *TemplateService) List(ctx context.Context) ([]models.Template, error) {
	templates, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list templates")
	}
	return templates, nil
}

// Update replaces a template definition.
func (s *TemplateService) Update(ctx context.Context, id string, req dto.UpdateTemplateRequest) (*models.Template, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	if err := validateSections(req.Sections); err != nil {
		return nil, err
	}
	template, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	template.Name = req.Name
	template.Description = req.Description
	template.Sections = req.Sections
	if err := s.repo.Update(ctx, template); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "template not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update template")
	}
	return template, nil
}

// Delete removes a template.
func (s *TemplateService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "template not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete template")
	}
	return nil
}

func validateSections(sections []models.TemplateSection) error {
	for _, section := range sections {
		if len(section.Fields) == 0 {
			return appErrors.Clone(appErrors.ErrValidation,
				fmt.Sprintf("section %q has no fields", section.Title))
		}
		for _, field := range section.Fields {
			if field.ID == "" {
				return appErrors.Clone(appErrors.ErrValidation,
					fmt.Sprintf("field %q is missing an id", field.Label))
			}
			if !field.Type.IsValid() {
				return appErrors.Clone(appErrors.ErrValidation,
					fmt.Sprintf("field %q has unknown type %q", field.ID, field.Type))
			}
			if field.Type == models.FieldTypeSelect && len(field.Options) == 0 {
				return appErrors.Clone(appErrors.ErrValidation,
					fmt.Sprintf("select field %q requires options", field.ID))
			}
		}
	}
	return nil
}

// ValidateFeedbackContent shape-checks a submitted feedback blob against a
// template: the blob must be a JSON object keyed by field id, required
// fields must be present, and each value's JSON kind must match the field
// type. Field semantics are never interpreted here.
func ValidateFeedbackContent(content json.RawMessage, template *models.Template) error {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(content, &payload); err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "feedback content must be a JSON object")
	}

	for _, field := range template.Fields() {
		raw, ok := payload[field.ID]
		if !ok || string(raw) == "null" {
			if field.Required {
				return appErrors.Clone(appErrors.ErrValidation,
					fmt.Sprintf("required field %q is missing", field.ID))
			}
			continue
		}
		if err := checkFieldKind(field, raw); err != nil {
			return err
		}
	}
	return nil
}

func checkFieldKind(field models.TemplateField, raw json.RawMessage) error {
	switch field.Type {
	case models.FieldTypeRating, models.FieldTypeNumber:
		var n float64
		if err := json.Unmarshal(raw, &n); err != nil {
			return appErrors.Clone(appErrors.ErrValidation,
				fmt.Sprintf("field %q expects a number", field.ID))
		}
	case models.FieldTypeSelect:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return appErrors.Clone(appErrors.ErrValidation,
				fmt.Sprintf("field %q expects a string option", field.ID))
		}
		if len(field.Options) > 0 && !containsString(field.Options, s) {
			return appErrors.Clone(appErrors.ErrValidation,
				fmt.Sprintf("field %q has no option %q", field.ID, s))
		}
	default:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return appErrors.Clone(appErrors.ErrValidation,
				fmt.Sprintf("field %q expects a string value", field.ID))
		}
	}
	return nil
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
