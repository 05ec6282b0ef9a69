package model

import (
	"errors"
	"fmt"
)

// ErrUnknownField is returned for a field name outside the closed enumeration.
var ErrUnknownField = errors.New("unknown application field")

// Field identifies one attribute of an ApplicationRecord.
type Field int

const (
	FieldFullName Field = iota
	FieldEmail
	FieldPhone
	FieldDateOfBirth
	FieldGender
	FieldNationality
	FieldAddress
	FieldCity
	FieldState
	FieldPostalCode
	FieldCourse
	FieldIntakeYear
	FieldQualification
	FieldPercentageScore
	FieldInterestedSpecialization
	FieldWorkExperience
	FieldReferralSource
	FieldConsent

	fieldCount
)

// InputKind is the HTML control used to capture a field.
type InputKind string

const (
	InputText     InputKind = "text"
	InputEmail    InputKind = "email"
	InputTel      InputKind = "tel"
	InputDate     InputKind = "date"
	InputSelect   InputKind = "select"
	InputTextArea InputKind = "textarea"
	InputCheckbox InputKind = "checkbox"
)

// Section groups fields on the rendered form.
type Section string

const (
	SectionPersonal   Section = "Personal Information"
	SectionAddress    Section = "Address Information"
	SectionAcademic   Section = "Academic Information"
	SectionAdditional Section = "Additional Information"
	SectionTerms      Section = "Terms and Conditions"
)

// Option is a selectable value with its display label.
type Option struct {
	Value string
	Label string
}

type fieldSpec struct {
	name        string
	label       string
	kind        InputKind
	section     Section
	required    bool
	placeholder string
	options     []Option
}

var (
	GenderOptions = []Option{
		{Value: string(GenderMale), Label: "Male"},
		{Value: string(GenderFemale), Label: "Female"},
		{Value: string(GenderOther), Label: "Other"},
	}

	IntakeYearOptions = []Option{
		{Value: "2025", Label: "2025"},
		{Value: "2026", Label: "2026"},
		{Value: "2027", Label: "2027"},
	}

	ReferralSourceOptions = []Option{
		{Value: "friend", Label: "Friend/Family"},
		{Value: "website", Label: "Website"},
		{Value: "social-media", Label: "Social Media"},
		{Value: "college-fair", Label: "College Fair"},
		{Value: "search-engine", Label: "Search Engine"},
		{Value: "advertisement", Label: "Advertisement"},
	}
)

var fieldSpecs = [fieldCount]fieldSpec{
	FieldFullName:                 {name: "fullName", label: "Full Name", kind: InputText, section: SectionPersonal, required: true, placeholder: "John Doe"},
	FieldEmail:                    {name: "email", label: "Email Address", kind: InputEmail, section: SectionPersonal, required: true, placeholder: "john@example.com"},
	FieldPhone:                    {name: "phone", label: "Phone Number", kind: InputTel, section: SectionPersonal, required: true, placeholder: "1234567890"},
	FieldDateOfBirth:              {name: "dateOfBirth", label: "Date of Birth", kind: InputDate, section: SectionPersonal, required: true},
	FieldGender:                   {name: "gender", label: "Gender", kind: InputSelect, section: SectionPersonal, required: true, options: GenderOptions},
	FieldNationality:              {name: "nationality", label: "Nationality", kind: InputText, section: SectionPersonal, required: true, placeholder: "Indian"},
	FieldAddress:                  {name: "address", label: "Address", kind: InputTextArea, section: SectionAddress, required: true, placeholder: "Street address"},
	FieldCity:                     {name: "city", label: "City", kind: InputText, section: SectionAddress, required: true},
	FieldState:                    {name: "state", label: "State", kind: InputText, section: SectionAddress, required: true},
	FieldPostalCode:               {name: "postalCode", label: "Postal Code", kind: InputText, section: SectionAddress, required: true},
	FieldCourse:                   {name: "course", label: "Course", kind: InputSelect, section: SectionAcademic, required: true},
	FieldIntakeYear:               {name: "intakeYear", label: "Intake Year", kind: InputSelect, section: SectionAcademic, required: true, options: IntakeYearOptions},
	FieldQualification:            {name: "qualification", label: "Highest Qualification", kind: InputText, section: SectionAcademic, required: true, placeholder: "e.g., Class XII, B.Tech"},
	FieldPercentageScore:          {name: "percentageScore", label: "Percentage / CGPA", kind: InputText, section: SectionAcademic, required: true, placeholder: "e.g., 85.5"},
	FieldInterestedSpecialization: {name: "interestedSpecialization", label: "Interested Specialization", kind: InputText, section: SectionAcademic, placeholder: "e.g., Data Science, Finance"},
	FieldWorkExperience:           {name: "workExperience", label: "Work Experience", kind: InputText, section: SectionAcademic, placeholder: "e.g., 2 years in IT"},
	FieldReferralSource:           {name: "referralSource", label: "How did you hear about us?", kind: InputSelect, section: SectionAdditional, options: ReferralSourceOptions},
	FieldConsent:                  {name: "consent", label: "I confirm that the information provided is accurate", kind: InputCheckbox, section: SectionTerms, required: true},
}

// Fields returns every field in form order.
func Fields() []Field {
	out := make([]Field, 0, fieldCount)
	for f := Field(0); f < fieldCount; f++ {
		out = append(out, f)
	}
	return out
}

// ParseField resolves a JSON/form field name to its Field.
func ParseField(name string) (Field, error) {
	for f := Field(0); f < fieldCount; f++ {
		if fieldSpecs[f].name == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// Valid reports whether f is a member of the enumeration.
func (f Field) Valid() bool { return f >= 0 && f < fieldCount }

func (f Field) spec() fieldSpec {
	if !f.Valid() {
		return fieldSpec{}
	}
	return fieldSpecs[f]
}

// Name is the JSON and form-post key of the field.
func (f Field) Name() string { return f.spec().name }

func (f Field) String() string {
	if !f.Valid() {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return f.spec().name
}

func (f Field) Label() string       { return f.spec().label }
func (f Field) Kind() InputKind     { return f.spec().kind }
func (f Field) Section() Section    { return f.spec().section }
func (f Field) Required() bool      { return f.spec().required }
func (f Field) Placeholder() string { return f.spec().placeholder }

// Options returns the fixed option set of a select field. Course options
// depend on the institution and are not returned here.
func (f Field) Options() []Option { return f.spec().options }
