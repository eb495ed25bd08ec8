package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/interview-flow-api/internal/dto"
	"github.com/noah-isme/interview-flow-api/internal/models"
	appErrors "github.com/noah-isme/interview-flow-api/pkg/errors"
)

type templateRepoStub struct {
	templates map[string]*models.Template
	seq       int
}

func newTemplateRepoStub() *templateRepoStub {
	return &templateRepoStub{templates: make(map[string]*models.Template)}
}

func (r *templateRepoStub) Create(ctx context.Context, template *models.Template) error {
	r.seq++
	if template.ID == "" {
		template.ID = "tpl-1"
	}
	copy := *template
	r.templates[template.ID] = &copy
	return nil
}

func (r *templateRepoStub) GetByID(ctx context.Context, id string) (*models.Template, error) {
	if template, ok := r.templates[id]; ok {
		copy := *template
		return &copy, nil
	}
	return nil, sql.ErrNoRows
}

func (r *templateRepoStub) List(ctx context.Context) ([]models.Template, error) {
	result := make([]models.Template, 0, len(r.templates))
	for _, template := range r.templates {
		result = append(result, *template)
	}
	return result, nil
}

func (r *templateRepoStub) Update(ctx context.Context, template *models.Template) error {
	if _, ok := r.templates[template.ID]; !ok {
		return sql.ErrNoRows
	}
	copy := *template
	r.templates[template.ID] = &copy
	return nil
}

func (r *templateRepoStub) Delete(ctx context.Context, id string) error {
	if _, ok := r.templates[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.templates, id)
	return nil
}

func reviewSections() []models.TemplateSection {
	return []models.TemplateSection{{
		ID:    "s1",
		Title: "Review",
		Fields: []models.TemplateField{
			{ID: "summary", Label: "Summary", Type: models.FieldTypeTextarea, Required: true},
			{ID: "rating", Label: "Rating", Type: models.FieldTypeRating},
			{ID: "outcome", Label: "Outcome", Type: models.FieldTypeSelect, Options: []string{"KEEP", "GROW"}},
		},
	}}
}

func TestTemplateServiceCreate(t *testing.T) {
	repo := newTemplateRepoStub()
	svc := NewTemplateService(repo, nil, nil)

	template, err := svc.Create(context.Background(), dto.CreateTemplateRequest{
		Name:     "Half-year review",
		Sections: reviewSections(),
	})
	require.NoError(t, err)
	require.NotEmpty(t, template.ID)
	require.Len(t, template.Fields(), 3)
}

func TestTemplateServiceCreateRejectsBadSections(t *testing.T) {
	repo := newTemplateRepoStub()
	svc := NewTemplateService(repo, nil, nil)
	ctx := context.Background()

	cases := []struct {
		name     string
		sections []models.TemplateSection
	}{
		{"empty section", []models.TemplateSection{{ID: "s1", Title: "Empty"}}},
		{"field without id", []models.TemplateSection{{ID: "s1", Fields: []models.TemplateField{
			{Label: "Nameless", Type: models.FieldTypeText},
		}}}},
		{"unknown field type", []models.TemplateSection{{ID: "s1", Fields: []models.TemplateField{
			{ID: "f1", Type: models.TemplateFieldType("CHECKBOX")},
		}}}},
		{"select without options", []models.TemplateSection{{ID: "s1", Fields: []models.TemplateField{
			{ID: "f1", Type: models.FieldTypeSelect},
		}}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, dto.CreateTemplateRequest{Name: "bad", Sections: tc.sections})
			require.Error(t, err)
			require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
		})
	}
}

func TestTemplateServiceUpdateAndDelete(t *testing.T) {
	repo := newTemplateRepoStub()
	svc := NewTemplateService(repo, nil, nil)
	ctx := context.Background()

	template, err := svc.Create(ctx, dto.CreateTemplateRequest{Name: "v1", Sections: reviewSections()})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, template.ID, dto.UpdateTemplateRequest{Name: "v2", Sections: reviewSections()})
	require.NoError(t, err)
	require.Equal(t, "v2", updated.Name)

	_, err = svc.Update(ctx, "missing", dto.UpdateTemplateRequest{Name: "v2", Sections: reviewSections()})
	require.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)

	require.NoError(t, svc.Delete(ctx, template.ID))
	err = svc.Delete(ctx, template.ID)
	require.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestValidateFeedbackContent(t *testing.T) {
	template := &models.Template{Sections: reviewSections()}

	cases := []struct {
		name    string
		content string
		wantErr bool
	}{
		{"complete payload", `{"summary":"solid","rating":4,"outcome":"KEEP"}`, false},
		{"optional fields omitted", `{"summary":"solid"}`, false},
		{"required missing", `{"rating":4}`, true},
		{"required null", `{"summary":null}`, true},
		{"not an object", `["summary"]`, true},
		{"rating as string", `{"summary":"ok","rating":"four"}`, true},
		{"unknown select option", `{"summary":"ok","outcome":"FIRE"}`, true},
		{"select as number", `{"summary":"ok","outcome":2}`, true},
		{"extra keys tolerated", `{"summary":"ok","legacyField":"x"}`, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateFeedbackContent([]byte(tc.content), template)
			if tc.wantErr {
				require.Error(t, err)
				require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
