package validator

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// TagFilled rejects strings that are empty after trimming whitespace.
const TagFilled = "filled"

var (
	once sync.Once

	// trans is the singleton English translator for validation errors.
	trans ut.Translator
)

// Setup registers the validator with English translations and the custom
// rules on Gin's binding engine. Safe to call more than once.
func Setup() {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*govalidator.Validate)
		if !ok {
			return
		}

		// Use JSON tag name for field names in error messages.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		_ = v.RegisterValidation(TagFilled, func(fl govalidator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})

		// Register English translations.
		enLocale := en.New()
		uni := ut.New(enLocale, enLocale)
		trans, _ = uni.GetTranslator("en")
		_ = en_translations.RegisterDefaultTranslations(v, trans)
		_ = v.RegisterTranslation(TagFilled, trans,
			func(ut ut.Translator) error {
				return ut.Add(TagFilled, "{0} is a required field", true)
			},
			func(ut ut.Translator, fe govalidator.FieldError) string {
				msg, _ := ut.T(TagFilled, fe.Field())
				return msg
			},
		)
	})
}

// Struct validates v against its `binding` tags using Gin's engine.
func Struct(v interface{}) error {
	Setup()
	return binding.Validator.ValidateStruct(v)
}

// Translate renders one field error in English.
func Translate(fe govalidator.FieldError) string {
	Setup()
	if trans == nil {
		return fe.Error()
	}
	return fe.Translate(trans)
}

// ErrEmptyBody is returned by Bind when the request carries no body.
var ErrEmptyBody = errors.New("request body is empty")

// Bind decodes the JSON request body into dst and validates it. Numbers are
// kept as json.Number so they re-encode with their original digits.
func Bind(c *gin.Context, dst interface{}) error {
	if c.Request == nil || c.Request.Body == nil {
		return ErrEmptyBody
	}
	dec := json.NewDecoder(c.Request.Body)
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	return Struct(dst)
}
