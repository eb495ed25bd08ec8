package models

import "time"

// TemplateFieldType enumerates the field kinds a feedback template may
// collect. The lifecycle core never interprets field semantics; the type
// is only used to shape-check submitted content at the boundary.
type TemplateFieldType string

const (
	FieldTypeText       TemplateFieldType = "TEXT"
	FieldTypeTextarea   TemplateFieldType = "TEXTAREA"
	FieldTypeRating     TemplateFieldType = "RATING"
	FieldTypeDate       TemplateFieldType = "DATE"
	FieldTypeNumber     TemplateFieldType = "NUMBER"
	FieldTypeAttachment TemplateFieldType = "ATTACHMENT"
	FieldTypeSelect     TemplateFieldType = "SELECT"
)

// IsValid reports whether the value is a known field type.
func (t TemplateFieldType) IsValid() bool {
	switch t {
	case FieldTypeText, FieldTypeTextarea, FieldTypeRating, FieldTypeDate,
		FieldTypeNumber, FieldTypeAttachment, FieldTypeSelect:
		return true
	default:
		return false
	}
}

// TemplateField is one input collected during feedback authoring.
type TemplateField struct {
	ID       string            `json:"id"`
	Label    string            `json:"label"`
	Type     TemplateFieldType `json:"type"`
	Required bool              `json:"required"`
	Options  []string          `json:"options,omitempty"`
}

// TemplateSection groups fields under a heading.
type TemplateSection struct {
	ID     string          `json:"id"`
	Title  string          `json:"title"`
	Fields []TemplateField `json:"fields"`
}

// Template describes the form rendered during feedback authoring.
type Template struct {
	ID          string            `db:"id" json:"id"`
	Name        string            `db:"name" json:"name"`
	Description string            `db:"description" json:"description"`
	Sections    []TemplateSection `db:"-" json:"sections"`
	CreatedAt   time.Time         `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time         `db:"updated_at" json:"updatedAt"`
}

// Fields flattens the template's sections into a single field list.
func (t *Template) Fields() []TemplateField {
	var fields []TemplateField
	for _, section := range t.Sections {
		fields = append(fields, section.Fields...)
	}
	return fields
}
