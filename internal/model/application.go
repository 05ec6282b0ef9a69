package model

import (
	"fmt"
	"strings"
)

// Gender represents the applicant's gender.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// ApplicationRecord is the applicant's form data. Validation tags are
// evaluated by the form controller, never by the relay.
type ApplicationRecord struct {
	FullName    string `json:"fullName" binding:"filled"`
	Email       string `json:"email" binding:"filled"`
	Phone       string `json:"phone" binding:"filled"`
	DateOfBirth string `json:"dateOfBirth" binding:"filled"`
	Gender      Gender `json:"gender" binding:"filled,oneof=male female other"`
	Nationality string `json:"nationality" binding:"filled"`

	Address    string `json:"address" binding:"filled"`
	City       string `json:"city" binding:"filled"`
	State      string `json:"state" binding:"filled"`
	PostalCode string `json:"postalCode" binding:"filled"`

	Course          string `json:"course" binding:"filled"`
	IntakeYear      string `json:"intakeYear" binding:"filled,oneof=2025 2026 2027"`
	Qualification   string `json:"qualification" binding:"filled"`
	PercentageScore string `json:"percentageScore" binding:"filled"`

	InterestedSpecialization string `json:"interestedSpecialization"`
	WorkExperience           string `json:"workExperience"`
	ReferralSource           string `json:"referralSource" binding:"omitempty,oneof=friend website social-media college-fair search-engine advertisement"`

	Consent bool `json:"consent" binding:"required"`
}

// ApplicationPayload is the JSON document the form sends to the relay.
type ApplicationPayload struct {
	ApplicationRecord
	Institution InstitutionToken `json:"institution"`
}

// Set assigns value to the given field. The consent field is parsed as a
// checkbox value.
func (r *ApplicationRecord) Set(f Field, value string) error {
	switch f {
	case FieldFullName:
		r.FullName = value
	case FieldEmail:
		r.Email = value
	case FieldPhone:
		r.Phone = value
	case FieldDateOfBirth:
		r.DateOfBirth = value
	case FieldGender:
		r.Gender = Gender(value)
	case FieldNationality:
		r.Nationality = value
	case FieldAddress:
		r.Address = value
	case FieldCity:
		r.City = value
	case FieldState:
		r.State = value
	case FieldPostalCode:
		r.PostalCode = value
	case FieldCourse:
		r.Course = value
	case FieldIntakeYear:
		r.IntakeYear = value
	case FieldQualification:
		r.Qualification = value
	case FieldPercentageScore:
		r.PercentageScore = value
	case FieldInterestedSpecialization:
		r.InterestedSpecialization = value
	case FieldWorkExperience:
		r.WorkExperience = value
	case FieldReferralSource:
		r.ReferralSource = value
	case FieldConsent:
		r.Consent = ParseCheckbox(value)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownField, int(f))
	}
	return nil
}

// Get returns the field's current value. Consent is rendered as "true" or "".
func (r *ApplicationRecord) Get(f Field) string {
	switch f {
	case FieldFullName:
		return r.FullName
	case FieldEmail:
		return r.Email
	case FieldPhone:
		return r.Phone
	case FieldDateOfBirth:
		return r.DateOfBirth
	case FieldGender:
		return string(r.Gender)
	case FieldNationality:
		return r.Nationality
	case FieldAddress:
		return r.Address
	case FieldCity:
		return r.City
	case FieldState:
		return r.State
	case FieldPostalCode:
		return r.PostalCode
	case FieldCourse:
		return r.Course
	case FieldIntakeYear:
		return r.IntakeYear
	case FieldQualification:
		return r.Qualification
	case FieldPercentageScore:
		return r.PercentageScore
	case FieldInterestedSpecialization:
		return r.InterestedSpecialization
	case FieldWorkExperience:
		return r.WorkExperience
	case FieldReferralSource:
		return r.ReferralSource
	case FieldConsent:
		if r.Consent {
			return "true"
		}
		return ""
	}
	return ""
}

// ParseCheckbox interprets an HTML checkbox or CLI answer.
func ParseCheckbox(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "on", "true", "1", "yes", "y":
		return true
	}
	return false
}
