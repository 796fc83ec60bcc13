// Package form holds the transient model a create-or-edit dialog works
// on, its validation rules, and the controller that submits it.
package form

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/affanabid/Hiro/internal/domain"
)

// Model is the form-local representation of a job posting. It differs
// from the wire shape in that RequiredSkills is a decoded list, and no
// identity is carried: the controller holds the ID for edits.
type Model struct {
	Title          string   `json:"title" validate:"min=3"`
	Status         string   `json:"status" validate:"oneof=active closed"`
	Domain         string   `json:"domain" validate:"min=3"`
	Description    string   `json:"description" validate:"required"`
	JobType        string   `json:"jobType" validate:"oneof=remote onsite"`
	JobTime        string   `json:"jobTime" validate:"oneof=part-time full-time"`
	RequiredSkills []string `json:"requiredSkills" validate:"min=1"`
}

// ModelFromRecord prefills a Model from an existing record for the edit
// path. The wire skills string is split on commas with each token
// trimmed; an empty source yields an empty list.
func ModelFromRecord(job domain.JobRecord) Model {
	return Model{
		Title:          job.Title,
		Status:         string(job.Status),
		Domain:         job.Domain,
		Description:    job.Description,
		JobType:        string(job.JobType),
		JobTime:        string(job.JobTime),
		RequiredSkills: domain.SplitSkills(job.RequiredSkills),
	}
}

// Draft maps the model onto the wire representation, joining the skills
// list into the comma-and-space form the API stores.
func (m Model) Draft() domain.JobDraft {
	return domain.JobDraft{
		Title:          m.Title,
		Description:    m.Description,
		Status:         domain.Status(m.Status),
		JobType:        domain.JobType(m.JobType),
		JobTime:        domain.JobTime(m.JobTime),
		RequiredSkills: domain.JoinSkills(m.RequiredSkills),
		Domain:         m.Domain,
	}
}

// ValidationError reports the fields that failed their rules. It never
// reaches the network layer: submission is blocked while any rule fails.
type ValidationError struct {
	Fields map[string]string // field name -> message
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "invalid form fields: " + strings.Join(names, ", ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report errors under the form field names the UI knows.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks every field rule. It is cheap enough to run on each
// change as well as at submit time. A nil return means the model may be
// submitted.
func (m Model) Validate() *ValidationError {
	err := validate.Struct(m)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return &ValidationError{Fields: map[string]string{"form": err.Error()}}
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = messageFor(fe)
	}
	return &ValidationError{Fields: fields}
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s needs at least %s entry", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}
