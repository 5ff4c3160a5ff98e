package ds

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Normalize обрезает пробелы в текстовых полях
func (r *Request) Normalize() {
	r.RequestorName = strings.TrimSpace(r.RequestorName)
	r.ItemRequested = strings.TrimSpace(r.ItemRequested)
}

// Validate проверяет схему документа перед записью в хранилище
func (r *Request) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate request: %w", err)
	}

	fieldErrs := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fieldErrs = append(fieldErrs, FieldError{
			Field:   jsonFieldName(fe.Field()),
			Message: schemaMessage(fe),
		})
	}
	return &ValidationError{Errors: fieldErrs}
}

func jsonFieldName(field string) string {
	switch field {
	case "RequestorName":
		return "requestorName"
	case "ItemRequested":
		return "itemRequested"
	case "CreatedDate":
		return "createdDate"
	case "LastEditedDate":
		return "lastEditedDate"
	case "Status":
		return "status"
	}
	return field
}

func schemaMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "RequestorName":
		if fe.Tag() == "required" {
			return "Requestor name is required"
		}
		return "Requestor name must be between 3-30 characters"
	case "ItemRequested":
		if fe.Tag() == "required" {
			return "Item requested is required"
		}
		return "Item requested must be between 2-100 characters"
	case "Status":
		return "Invalid status value"
	case "LastEditedDate":
		return "Last edited date must not precede created date"
	case "CreatedDate":
		return "Created date is required"
	}
	return fmt.Sprintf("%s failed %s", jsonFieldName(fe.Field()), fe.Tag())
}
