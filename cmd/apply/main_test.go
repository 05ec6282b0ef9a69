package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stemsi/admission-relay/internal/form"
	"github.com/stemsi/admission-relay/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSubmitter struct {
	errs     []error
	payloads []model.ApplicationPayload
}

func (s *recordingSubmitter) SubmitApplication(_ context.Context, p model.ApplicationPayload) error {
	s.payloads = append(s.payloads, p)
	if len(s.errs) > 0 {
		err := s.errs[0]
		s.errs = s.errs[1:]
		return err
	}
	return nil
}

// answers in form order: option numbers are accepted for selects.
var answers = []string{
	"Asha Rao",
	"asha-at-example",
	"98765 43210",
	"2006-04-12",
	"2", // female
	"Indian",
	"12 MG Road",
	"Bengaluru",
	"Karnataka",
	"560001",
	"1", // Bachelor of Engineering
	"2026",
	"Class XII",
	"91.4",
	"",
	"",
	"4", // college-fair
	"y",
}

func newPrompter(input string, inst model.Institution) (*prompter, *bytes.Buffer) {
	var out bytes.Buffer
	return &prompter{
		in:   bufio.NewReader(strings.NewReader(input)),
		out:  &out,
		inst: inst,
	}, &out
}

func TestRun_ReasksOnlyFailingFields(t *testing.T) {
	sub := &recordingSubmitter{}
	ctrl := form.New(model.Amity, sub, zerolog.Nop())
	input := strings.Join(answers, "\n") + "\nasha@example.com\n"
	p, out := newPrompter(input, model.Amity)

	require.NoError(t, run(context.Background(), ctrl, p))
	require.Len(t, sub.payloads, 1)

	got := sub.payloads[0]
	assert.Equal(t, "asha@example.com", got.Email)
	assert.Equal(t, model.GenderFemale, got.Gender)
	assert.Equal(t, "Bachelor of Engineering", got.Course)
	assert.Equal(t, "2026", got.IntakeYear)
	assert.Equal(t, "college-fair", got.ReferralSource)
	assert.True(t, got.Consent)

	assert.Contains(t, out.String(), "Email Address: Invalid email format")
	assert.Contains(t, out.String(), "Thank you for applying to Amity University")
}

func TestRun_RetriesAfterFailure(t *testing.T) {
	sub := &recordingSubmitter{errs: []error{errors.New("relay down")}}
	ctrl := form.New(model.Amity, sub, zerolog.Nop())
	valid := append([]string(nil), answers...)
	valid[1] = "asha@example.com"
	p, _ := newPrompter(strings.Join(valid, "\n")+"\ny\n", model.Amity)

	require.NoError(t, run(context.Background(), ctrl, p))
	assert.Len(t, sub.payloads, 2)
}

func TestRun_AbandonAfterFailure(t *testing.T) {
	sub := &recordingSubmitter{errs: []error{errors.New("relay down")}}
	ctrl := form.New(model.Amity, sub, zerolog.Nop())
	valid := append([]string(nil), answers...)
	valid[1] = "asha@example.com"
	p, _ := newPrompter(strings.Join(valid, "\n")+"\nn\n", model.Amity)

	assert.EqualError(t, run(context.Background(), ctrl, p), "submission abandoned")
	assert.Equal(t, "Asha Rao", ctrl.Draft().FullName)
}

func TestRun_InputEndsEarly(t *testing.T) {
	ctrl := form.New(model.Amity, &recordingSubmitter{}, zerolog.Nop())
	p, _ := newPrompter("Asha Rao\n", model.Amity)

	assert.Error(t, run(context.Background(), ctrl, p))
}

func TestPrintReview(t *testing.T) {
	var out bytes.Buffer
	printReview(&out, model.ApplicationRecord{FullName: "Asha Rao", Consent: true})

	review := out.String()
	assert.Contains(t, review, "Asha Rao")
	assert.Contains(t, review, "Full Name")
	assert.Contains(t, review, "yes")
}
