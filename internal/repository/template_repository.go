package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/interview-flow-api/internal/models"
)

// TemplateRepository persists feedback templates. Sections are stored as a
// JSON document since the core never queries inside them.
type TemplateRepository struct {
	db *sqlx.DB
}

// NewTemplateRepository constructs the repository.
func NewTemplateRepository(db *sqlx.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

type templateRow struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Sections    []byte    `db:"sections"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (row templateRow) toModel() (*models.Template, error) {
	template := &models.Template{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	if len(row.Sections) > 0 {
		if err := json.Unmarshal(row.Sections, &template.Sections); err != nil {
			return nil, fmt.Errorf("decode template sections: %w", err)
		}
	}
	return template, nil
}

// Create inserts a new template.
func (r *TemplateRepository) Create(ctx context.Context, template *models.Template) error {
	if template.ID == "" {
		template.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if template.CreatedAt.IsZero() {
		template.CreatedAt = now
	}
	template.UpdatedAt = template.CreatedAt

	sections, err := json.Marshal(template.Sections)
	if err != nil {
		return fmt.Errorf("encode template sections: %w", err)
	}
	const query = `INSERT INTO feedback_templates (id, name, description, sections, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.db.ExecContext(ctx, query, template.ID, template.Name, template.Description,
		sections, template.CreatedAt, template.UpdatedAt); err != nil {
		return fmt.Errorf("create template: %w", err)
	}
	return nil
}

// GetByID fetches a template by identifier.
func (r *TemplateRepository) GetByID(ctx context.Context, id string) (*models.Template, error) {
	const query = `SELECT id, name, description, sections, created_at, updated_at
	FROM feedback_templates WHERE id = $1`
	var row templateRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, err
	}
	return row.toModel()
}

// List returns all templates sorted by name.
func (r *TemplateRepository) List(ctx context.Context) ([]models.Template, error) {
	const query = `SELECT id, name, description, sections, created_at, updated_at
	FROM feedback_templates ORDER BY name ASC`
	var rows []templateRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	templates := make([]models.Template, 0, len(rows))
	for _, row := range rows {
		template, err := row.toModel()
		if err != nil {
			return nil, err
		}
		templates = append(templates, *template)
	}
	return templates, nil
}

// Update replaces the template definition.
func (r *TemplateRepository) Update(ctx context.Context, template *models.Template) error {
	sections, err := json.Marshal(template.Sections)
	if err != nil {
		return fmt.Errorf("encode template sections: %w", err)
	}
	template.UpdatedAt = time.Now().UTC()
	const query = `UPDATE feedback_templates SET name = $2, description = $3, sections = $4, updated_at = $5
	WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, template.ID, template.Name, template.Description,
		sections, template.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update template: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update template rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a template.
func (r *TemplateRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM feedback_templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete template rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
