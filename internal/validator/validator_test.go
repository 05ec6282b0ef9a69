package validator

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	govalidator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name" binding:"filled"`
	Email string `json:"email" binding:"required,email"`
	Level string `json:"level" binding:"omitempty,oneof=low high"`
}

func translated(t *testing.T, err error) map[string]string {
	t.Helper()
	var ve govalidator.ValidationErrors
	require.True(t, errors.As(err, &ve), "not a validation error: %v", err)

	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		fields[fe.Field()] = Translate(fe)
	}
	return fields
}

func TestStruct_Valid(t *testing.T) {
	assert.NoError(t, Struct(sample{Name: "Asha", Email: "asha@example.com"}))
}

func TestStruct_TranslatesWithJSONNames(t *testing.T) {
	err := Struct(sample{Name: "   ", Email: "nope", Level: "mid"})
	require.Error(t, err)

	fields := translated(t, err)
	assert.Equal(t, "name is a required field", fields["name"])
	assert.Equal(t, "email must be a valid email address", fields["email"])
	assert.Contains(t, fields["level"], "must be one of [low high]")
}

func newContext(body string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func TestBind_KeepsNumberDigits(t *testing.T) {
	var payload map[string]interface{}
	require.NoError(t, Bind(newContext(`{"ref":12345678901234567,"score":91.40}`), &payload))

	assert.Equal(t, json.Number("12345678901234567"), payload["ref"])
	assert.Equal(t, json.Number("91.40"), payload["score"])

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"ref":12345678901234567`)
}

func TestBind_ValidatesStructs(t *testing.T) {
	var s sample
	err := Bind(newContext(`{"name":"Asha","email":"nope"}`), &s)
	assert.Equal(t, "email must be a valid email address", translated(t, err)["email"])
}

func TestBind_DecodeErrors(t *testing.T) {
	var payload map[string]interface{}
	assert.Error(t, Bind(newContext(`[1,2]`), &payload))
	assert.Error(t, Bind(newContext(`{"name":`), &payload))

	c := newContext("")
	c.Request.Body = nil
	assert.ErrorIs(t, Bind(c, &payload), ErrEmptyBody)
}
