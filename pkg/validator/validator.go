// Package validator wraps go-playground/validator with the platform's
// field rules and returns field-scoped violations the forms can surface
// next to their inputs.
package validator

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/islandguide/admin-api/model"
)

// FieldViolation is one broken rule, addressed by the view-model field
// path the form binds to.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Violations is the full result of validating one submission.
type Violations []FieldViolation

func (v Violations) Error() string {
	msgs := make([]string, 0, len(v))
	for _, fv := range v {
		msgs = append(msgs, fmt.Sprintf("%s: %s", fv.Field, fv.Message))
	}
	return strings.Join(msgs, "; ")
}

var global *validator.Validate

func init() {
	SetValidator(New())
}

// New builds a validator with the platform's custom rules registered.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	_ = v.RegisterValidation("pricerange", validatePriceRange)
	_ = v.RegisterValidation("recurrence", validateRecurrencePattern)

	v.RegisterStructValidation(validateEventCrossFields, model.EventViewModel{})
	v.RegisterStructValidation(validatePartnerTaxonomy, model.PartnerViewModel{})

	return v
}

func SetValidator(v *validator.Validate) {
	global = v
}

func Validator() *validator.Validate {
	return global
}

func validatePriceRange(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	for _, r := range model.PriceRanges {
		if s == r {
			return true
		}
	}
	return false
}

func validateRecurrencePattern(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case model.RecurrenceNone, model.RecurrenceDaily, model.RecurrenceWeekly,
		model.RecurrenceMonthly, model.RecurrenceCustom:
		return true
	}
	return false
}

// Cross-field rules: a custom recurrence needs its pattern text, a
// sponsored event needs an end date.
func validateEventCrossFields(sl validator.StructLevel) {
	vm := sl.Current().Interface().(model.EventViewModel)

	if vm.Recurrence != nil && vm.Recurrence.Pattern == model.RecurrenceCustom &&
		strings.TrimSpace(vm.Recurrence.CustomPattern) == "" {
		sl.ReportError(vm.Recurrence.CustomPattern, "Recurrence.CustomPattern",
			"Recurrence.CustomPattern", "required_with_custom", "")
	}
	if vm.IsSponsored && strings.TrimSpace(vm.SponsorEndDate) == "" {
		sl.ReportError(vm.SponsorEndDate, "SponsorEndDate", "SponsorEndDate",
			"required_with_sponsored", "")
	}
}

// The UI restricts the dropdowns; the API enforces the same taxonomy so a
// programmatic caller cannot persist an inconsistent combination.
func validatePartnerTaxonomy(sl validator.StructLevel) {
	vm := sl.Current().Interface().(model.PartnerViewModel)

	if !model.ValidCategory(vm.Section, vm.MainCategory) {
		sl.ReportError(vm.MainCategory, "MainCategory", "MainCategory", "category_in_section", "")
		return
	}
	if !model.ValidSubcategory(vm.MainCategory, vm.Subcategory) {
		sl.ReportError(vm.Subcategory, "Subcategory", "Subcategory", "subcategory_in_category", "")
	}
}

// Validate checks a candidate view model and returns nil or the list of
// field violations. Any non-validation error (a programming bug, not a
// client error) comes back as a single violation on "_".
func Validate(ctx context.Context, candidate any) Violations {
	err := Validator().StructCtx(ctx, candidate)
	if err == nil {
		return nil
	}

	vErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return Violations{{Field: "_", Message: err.Error()}}
	}

	out := make(Violations, 0, len(vErrors))
	for _, ve := range vErrors {
		out = append(out, FieldViolation{
			Field:   fieldPath(ve.Namespace()),
			Message: messageFor(ve),
		})
	}
	return out
}

// fieldPath strips the root struct name from the namespace so violations
// address form fields ("Recurrence.CustomPattern"), not Go types.
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func messageFor(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "field is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", ve.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", ve.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", ve.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", ve.Param())
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", ve.Param())
	case "pricerange":
		return "must be a known price range"
	case "recurrence":
		return "must be a known recurrence pattern"
	case "required_with_custom":
		return "custom pattern text is required for custom recurrence"
	case "required_with_sponsored":
		return "sponsor end date is required when marking sponsored"
	case "category_in_section":
		return "main category is not valid for the chosen section"
	case "subcategory_in_category":
		return "subcategory is not valid for the chosen main category"
	default:
		return fmt.Sprintf("failed %s validation", ve.Tag())
	}
}
