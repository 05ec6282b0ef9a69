package form

import (
	"errors"
	"regexp"
	"strings"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/stemsi/admission-relay/internal/model"
	"github.com/stemsi/admission-relay/internal/validator"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nonDigit     = regexp.MustCompile(`\D`)
)

const (
	msgInvalidEmail = "Invalid email format"
	msgInvalidPhone = "Phone must be 10 digits"
)

// requiredMessages holds the message shown when a required field is empty.
var requiredMessages = map[model.Field]string{
	model.FieldFullName:        "Full name is required",
	model.FieldEmail:           "Email is required",
	model.FieldPhone:           "Phone number is required",
	model.FieldDateOfBirth:     "Date of birth is required",
	model.FieldGender:          "Gender is required",
	model.FieldNationality:     "Nationality is required",
	model.FieldAddress:         "Address is required",
	model.FieldCity:            "City is required",
	model.FieldState:           "State is required",
	model.FieldPostalCode:      "Postal code is required",
	model.FieldCourse:          "Course selection is required",
	model.FieldIntakeYear:      "Intake year is required",
	model.FieldQualification:   "Educational qualification is required",
	model.FieldPercentageScore: "Percentage score is required",
	model.FieldConsent:         "You must accept terms and conditions",
}

// Result is the outcome of validating a draft.
type Result struct {
	Valid  bool
	Errors map[model.Field]string
}

// NormalizePhone strips every non-digit character.
func NormalizePhone(phone string) string {
	return nonDigit.ReplaceAllString(phone, "")
}

// ValidEmail reports whether email has the local@domain.tld shape.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidateRecord checks rec against every application rule for inst.
// Format checks for email and phone run after the presence checks and
// replace their message for the same field.
func ValidateRecord(inst model.Institution, rec model.ApplicationRecord) Result {
	errs := make(map[model.Field]string)

	if err := validator.Struct(rec); err != nil {
		var ve govalidator.ValidationErrors
		if errors.As(err, &ve) {
			for _, fe := range ve {
				field, perr := model.ParseField(fe.Field())
				if perr != nil {
					continue
				}
				errs[field] = fieldMessage(field, fe)
			}
		}
	}

	if !ValidEmail(rec.Email) {
		errs[model.FieldEmail] = msgInvalidEmail
	}
	if len(NormalizePhone(rec.Phone)) != 10 {
		errs[model.FieldPhone] = msgInvalidPhone
	}

	if _, missing := errs[model.FieldCourse]; !missing && !inst.HasCourse(rec.Course) {
		errs[model.FieldCourse] = "Please select a course offered by " + inst.Name
	}

	return Result{Valid: len(errs) == 0, Errors: errs}
}

func fieldMessage(field model.Field, fe govalidator.FieldError) string {
	switch fe.Tag() {
	case validator.TagFilled, "required":
		if msg, ok := requiredMessages[field]; ok {
			return msg
		}
	case "oneof":
		return field.Label() + " must be one of: " + strings.Join(optionValues(field), ", ")
	}
	return validator.Translate(fe)
}

func optionValues(field model.Field) []string {
	opts := field.Options()
	values := make([]string, len(opts))
	for i, o := range opts {
		values[i] = o.Value
	}
	return values
}
