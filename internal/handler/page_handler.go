package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/rs/zerolog"
	"github.com/stemsi/admission-relay/internal/form"
	"github.com/stemsi/admission-relay/internal/metrics"
	"github.com/stemsi/admission-relay/internal/model"
	"github.com/stemsi/admission-relay/internal/templates"
)

// PageHandler serves the server-rendered application form.
type PageHandler struct {
	renderer  *templates.Renderer
	submitter form.Submitter
	log       zerolog.Logger
}

// NewPageHandler creates a new PageHandler. Valid submissions go to submitter.
func NewPageHandler(renderer *templates.Renderer, submitter form.Submitter, log zerolog.Logger) *PageHandler {
	return &PageHandler{
		renderer:  renderer,
		submitter: submitter,
		log:       log.With().Str("component", "page_handler").Logger(),
	}
}

// Index godoc
// GET /
func (h *PageHandler) Index(c *gin.Context) {
	h.render(c, http.StatusOK, templates.PageIndex, templates.NewIndexView())
}

// Landing godoc
// GET /:institution
// Sends the visitor straight to the institution's form.
func (h *PageHandler) Landing(c *gin.Context) {
	inst, ok := h.institution(c)
	if !ok {
		return
	}
	c.Redirect(http.StatusFound, inst.ApplyPath())
}

// ShowForm godoc
// GET /:institution/apply
func (h *PageHandler) ShowForm(c *gin.Context) {
	inst, ok := h.institution(c)
	if !ok {
		return
	}
	view := templates.NewFormView(inst, model.ApplicationRecord{}, nil, false)
	h.render(c, http.StatusOK, templates.PageForm, view)
}

// SubmitForm godoc
// POST /:institution/apply
// Feeds the posted fields through a form controller. Validation errors are
// shown next to their fields; relay failures keep the draft and show a
// generic retry message.
func (h *PageHandler) SubmitForm(c *gin.Context) {
	inst, ok := h.institution(c)
	if !ok {
		return
	}

	ctrl := form.New(inst, h.submitter, h.log)
	for _, f := range model.Fields() {
		if err := ctrl.UpdateField(f, c.PostForm(f.Name())); err != nil {
			h.log.Error().Err(err).Str("field", f.Name()).Msg("failed to update field")
		}
	}

	outcome := ctrl.Submit(c.Request.Context())
	metrics.FormSubmissions.WithLabelValues(outcome.String(), string(inst.Token)).Inc()

	switch outcome {
	case form.OutcomeSubmitted:
		h.render(c, http.StatusOK, templates.PageSuccess, templates.NewSuccessView(inst))
	case form.OutcomeInvalid:
		view := templates.NewFormView(inst, ctrl.Draft(), ctrl.Errors(), false)
		h.render(c, http.StatusUnprocessableEntity, templates.PageForm, view)
	default:
		view := templates.NewFormView(inst, ctrl.Draft(), ctrl.Errors(), true)
		h.render(c, http.StatusBadGateway, templates.PageForm, view)
	}
}

func (h *PageHandler) institution(c *gin.Context) (model.Institution, bool) {
	inst, err := model.ParseInstitution(c.Param("institution"))
	if err != nil {
		c.String(http.StatusNotFound, "404 page not found")
		return model.Institution{}, false
	}
	return inst, true
}

func (h *PageHandler) render(c *gin.Context, status int, page string, data interface{}) {
	tmpl := h.renderer.Page(page)
	if tmpl == nil {
		h.log.Error().Str("page", page).Msg("unknown page template")
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}
	c.Render(status, render.HTML{Template: tmpl, Name: "layout", Data: data})
}
