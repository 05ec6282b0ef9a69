package templates

import (
	"fmt"
	"html/template"

	"github.com/stemsi/admission-relay/internal/model"
)

// Page names accepted by Renderer.Page.
const (
	PageIndex   = "index"
	PageForm    = "form"
	PageSuccess = "success"
)

// MsgSubmissionFailed is shown when a valid application could not be relayed.
const MsgSubmissionFailed = "We could not submit your application. Please try again."

// Renderer holds one parsed template set per page.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses the layout together with every page's content.
func NewRenderer() (*Renderer, error) {
	contents := map[string]string{
		PageIndex:   Index,
		PageForm:    Form,
		PageSuccess: Success,
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(contents))}
	for name, content := range contents {
		tmpl, err := template.New("layout").Parse(Layout)
		if err != nil {
			return nil, fmt.Errorf("parse layout: %w", err)
		}
		if tmpl, err = tmpl.Parse(content); err != nil {
			return nil, fmt.Errorf("parse %s page: %w", name, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

// Page returns the template set for name, or nil if unknown.
func (r *Renderer) Page(name string) *template.Template {
	return r.pages[name]
}

// Base carries what the layout needs.
type Base struct {
	Title       string
	Description string
	Accent      string
	BackPath    string
}

// IndexView is the data for the index page.
type IndexView struct {
	Base
	Institutions []model.Institution
}

// FieldView is one rendered form control.
type FieldView struct {
	Name        string
	Label       string
	Kind        model.InputKind
	Placeholder string
	Value       string
	Checked     bool
	Required    bool
	Options     []model.Option
	Error       string
}

// SectionView groups the fields of one fieldset.
type SectionView struct {
	Title  string
	Fields []FieldView
}

// FormView is the data for the form page.
type FormView struct {
	Base
	Institution    model.Institution
	Action         string
	Sections       []SectionView
	HasErrors      bool
	Failed         bool
	FailureMessage string
}

// SuccessView is the data for the success page.
type SuccessView struct {
	Base
	Institution model.Institution
}

// NewIndexView builds the index page data.
func NewIndexView() IndexView {
	return IndexView{
		Base: Base{
			Title:       "Apply Now",
			Description: "Submit your university application",
			Accent:      "primary",
		},
		Institutions: model.Institutions(),
	}
}

// NewFormView builds the form page from a draft and its errors.
func NewFormView(inst model.Institution, draft model.ApplicationRecord, errs map[model.Field]string, failed bool) FormView {
	view := FormView{
		Base:        institutionBase(inst),
		Institution: inst,
		Action:      inst.ApplyPath(),
		HasErrors:   len(errs) > 0,
		Failed:      failed,
	}
	view.BackPath = inst.HomePath()
	if failed {
		view.FailureMessage = MsgSubmissionFailed
	}

	var current *SectionView
	for _, f := range model.Fields() {
		if current == nil || current.Title != string(f.Section()) {
			view.Sections = append(view.Sections, SectionView{Title: string(f.Section())})
			current = &view.Sections[len(view.Sections)-1]
		}
		current.Fields = append(current.Fields, newFieldView(inst, f, draft, errs[f]))
	}
	return view
}

// NewSuccessView builds the success page data.
func NewSuccessView(inst model.Institution) SuccessView {
	view := SuccessView{Base: institutionBase(inst), Institution: inst}
	view.Title = "Application Submitted - " + inst.Name
	return view
}

func institutionBase(inst model.Institution) Base {
	return Base{
		Title:       "Apply Now - " + inst.Name,
		Description: "Submit your application to " + inst.Name,
		Accent:      inst.Accent,
	}
}

func newFieldView(inst model.Institution, f model.Field, draft model.ApplicationRecord, errMsg string) FieldView {
	fv := FieldView{
		Name:        f.Name(),
		Label:       f.Label(),
		Kind:        f.Kind(),
		Placeholder: f.Placeholder(),
		Value:       draft.Get(f),
		Required:    f.Required(),
		Options:     f.Options(),
		Error:       errMsg,
	}

	switch f {
	case model.FieldConsent:
		fv.Checked = draft.Consent
	case model.FieldCourse:
		fv.Options = make([]model.Option, len(inst.Courses))
		for i, c := range inst.Courses {
			fv.Options[i] = model.Option{Value: c, Label: c}
		}
		fv.Placeholder = "Select a Course"
	case model.FieldGender:
		fv.Placeholder = "Select Gender"
	case model.FieldIntakeYear:
		fv.Placeholder = "Select Year"
	case model.FieldReferralSource:
		fv.Placeholder = "Select a source"
	}
	return fv
}
