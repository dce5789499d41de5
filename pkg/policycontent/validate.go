package policycontent

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields under their json names so error maps line up with the
	// form field names callers render against.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	if err := v.RegisterValidation("nonblanklist", validateNonBlankList); err != nil {
		panic(err)
	}

	v.RegisterStructValidation(contentStructLevel, ContentInput{})
	v.RegisterStructValidation(workshopStructLevel, WorkshopInput{})

	return v
}

// ValidationResult carries field-scoped validation errors. Field names match
// the json names of the input struct.
type ValidationResult struct {
	Errors map[string]string
}

// Valid reports whether validation produced no errors.
func (r ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// ValidateContent checks a content create input against the per-variant
// rules. Validation is purely local; on failure no request may be issued.
func ValidateContent(input ContentInput) ValidationResult {
	return toResult(validate.Struct(input))
}

// ValidateWorkshop checks a workshop create input.
func ValidateWorkshop(input WorkshopInput) ValidationResult {
	return toResult(validate.Struct(input))
}

// ValidateCollaboration checks a collaboration submission input.
func ValidateCollaboration(input CollaborationInput) ValidationResult {
	return toResult(validate.Struct(input))
}

// validateNonBlankList enforces the "at least one non-blank item" rule: a
// list whose entries all trim to empty is equivalent to an empty list and
// fails.
func validateNonBlankList(fl validator.FieldLevel) bool {
	list, ok := fl.Field().Interface().([]string)
	if !ok {
		return false
	}
	for _, entry := range list {
		if strings.TrimSpace(entry) != "" {
			return true
		}
	}
	return false
}

func contentStructLevel(sl validator.StructLevel) {
	input := sl.Current().Interface().(ContentInput)

	requireList := func(list []string, fieldName string) {
		if !hasNonBlank(list) {
			sl.ReportError(list, fieldName, fieldName, "nonblanklist", "")
		}
	}

	requireList(input.Tags, "Tags")

	switch input.Type {
	case TypePolicyBelief:
		requireList(input.TargetAudience, "TargetAudience")
		requireList(input.KeyRecommendations, "KeyRecommendations")
		requireList(input.Region, "Region")
	case TypePositionalStatement:
		requireList(input.KeyPoints, "KeyPoints")
		requireList(input.CountryFocus, "CountryFocus")
		if input.PageCount <= 0 {
			sl.ReportError(input.PageCount, "PageCount", "PageCount", "gtzero", "")
		}
	default:
		sl.ReportError(input.Type, "Type", "Type", "contenttype", "")
	}

	// An image is required unless a retained URL or a new file is present.
	if input.Image == nil && strings.TrimSpace(input.ImageURL) == "" {
		sl.ReportError(input.Image, "Image", "Image", "imagerequired", "")
	}
}

func workshopStructLevel(sl validator.StructLevel) {
	input := sl.Current().Interface().(WorkshopInput)

	if !hasNonBlank(input.Prerequisites) {
		sl.ReportError(input.Prerequisites, "Prerequisites", "Prerequisites", "nonblanklist", "")
	}
	if !hasNonBlank(input.Materials) {
		sl.ReportError(input.Materials, "Materials", "Materials", "nonblanklist", "")
	}
	if input.Type != "" && !input.Type.IsValid() {
		sl.ReportError(input.Type, "Type", "Type", "workshoptype", "")
	}
	if input.Status != "" && !input.Status.IsValid() {
		sl.ReportError(input.Status, "Status", "Status", "workshopstatus", "")
	}
}

func hasNonBlank(list []string) bool {
	for _, entry := range list {
		if strings.TrimSpace(entry) != "" {
			return true
		}
	}
	return false
}

func toResult(err error) ValidationResult {
	result := ValidationResult{Errors: map[string]string{}}
	if err == nil {
		return result
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		result.Errors["_"] = err.Error()
		return result
	}

	for _, e := range validationErrors {
		field := fieldName(e)
		switch e.Tag() {
		case "required":
			result.Errors[field] = "field is required"
		case "email":
			result.Errors[field] = "invalid email format"
		case "min":
			result.Errors[field] = "must be at least " + e.Param()
		case "nonblanklist":
			result.Errors[field] = "at least one non-blank entry is required"
		case "gtzero":
			result.Errors[field] = "must be greater than zero"
		case "imagerequired":
			result.Errors[field] = "an image file or image URL is required"
		case "contenttype":
			result.Errors[field] = "unknown content type"
		case "workshoptype":
			result.Errors[field] = "unknown workshop type"
		case "workshopstatus":
			result.Errors[field] = "unknown workshop status"
		default:
			result.Errors[field] = "validation failed on " + e.Tag()
		}
	}
	return result
}

// fieldName maps a struct-level reported field to its json name. Struct-level
// ReportError bypasses the tag name function, so translate the handful of
// fields reported that way.
func fieldName(e validator.FieldError) string {
	switch e.Field() {
	case "Tags":
		return "tags"
	case "TargetAudience":
		return "targetAudience"
	case "KeyRecommendations":
		return "keyRecommendations"
	case "Region":
		return "region"
	case "KeyPoints":
		return "keyPoints"
	case "CountryFocus":
		return "countryFocus"
	case "PageCount":
		return "pageCount"
	case "Image":
		return "image"
	case "Type":
		return "type"
	case "Status":
		return "status"
	case "Prerequisites":
		return "prerequisites"
	case "Materials":
		return "materials"
	default:
		return e.Field()
	}
}
