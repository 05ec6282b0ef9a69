package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/stemsi/admission-relay/internal/client"
	"github.com/stemsi/admission-relay/internal/config"
	"github.com/stemsi/admission-relay/internal/form"
	"github.com/stemsi/admission-relay/internal/logger"
	"github.com/stemsi/admission-relay/internal/model"
	"golang.org/x/term"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	institution := flag.String("institution", string(model.InstitutionAmity), "institution to apply to (amity|manipal)")
	relayURL := flag.String("relay", "http://localhost:"+cfg.ServerPort, "base URL of the submission relay")
	timeout := flag.Duration("timeout", 15*time.Second, "request timeout")
	flag.Parse()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.New(os.Stderr, cfg.LogLevel, "pretty")

	inst, err := model.ParseInstitution(*institution)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	ctrl := form.New(inst, client.NewRelayClient(*relayURL, *timeout), log)
	p := &prompter{
		in:          bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		interactive: term.IsTerminal(int(os.Stdin.Fd())),
		inst:        inst,
	}

	color.New(color.FgCyan).Fprintf(p.out, "\n=== Application Form: %s ===\n", inst.Name)

	if err := run(context.Background(), ctrl, p); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run fills the whole form, then re-asks only the failing fields until the
// relay accepts the application or the input ends.
func run(ctx context.Context, ctrl *form.Controller, p *prompter) error {
	pending := model.Fields()
	for {
		for _, f := range pending {
			value, err := p.ask(f)
			if err != nil {
				return err
			}
			if err := ctrl.UpdateField(f, value); err != nil {
				return err
			}
		}

		printReview(p.out, ctrl.Draft())

		switch ctrl.Submit(ctx) {
		case form.OutcomeSubmitted:
			color.New(color.FgGreen).Fprintln(p.out, "Application Submitted Successfully!")
			fmt.Fprintf(p.out, "Thank you for applying to %s. We will be in touch within 5-7 business days.\n", ctrl.Institution().Name)
			return nil

		case form.OutcomeInvalid:
			errs := ctrl.Errors()
			pending = pending[:0]
			color.New(color.FgYellow).Fprintln(p.out, "\nPlease correct the following:")
			for _, f := range model.Fields() {
				if msg, ok := errs[f]; ok {
					color.New(color.FgRed).Fprintf(p.out, "  - %s: %s\n", f.Label(), msg)
					pending = append(pending, f)
				}
			}

		case form.OutcomeFailed:
			color.New(color.FgRed).Fprintln(p.out, "We could not submit your application.")
			retry, err := p.confirm("Try again?")
			if err != nil {
				return err
			}
			if !retry {
				return errors.New("submission abandoned")
			}
			pending = nil

		case form.OutcomeBusy:
			time.Sleep(200 * time.Millisecond)
			pending = nil
		}
	}
}

// printReview shows the draft about to be submitted.
func printReview(w io.Writer, draft model.ApplicationRecord) {
	fmt.Fprintln(w)
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Section", "Field", "Value"})
	for _, f := range model.Fields() {
		value := draft.Get(f)
		if f == model.FieldConsent {
			value = "no"
			if draft.Consent {
				value = "yes"
			}
		}
		table.Append([]string{string(f.Section()), f.Label(), value})
	}
	table.Render()
}

type prompter struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
	inst        model.Institution
}

func (p *prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", errors.New("input ended before the form was complete")
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (p *prompter) ask(f model.Field) (string, error) {
	options := f.Options()
	if f == model.FieldCourse {
		options = make([]model.Option, len(p.inst.Courses))
		for i, c := range p.inst.Courses {
			options[i] = model.Option{Value: c, Label: c}
		}
	}

	if p.interactive {
		label := f.Label()
		if !f.Required() {
			label += " (optional)"
		}
		if f == model.FieldConsent {
			label = "I agree to the terms and conditions and privacy policy of " + p.inst.Name + " [y/N]"
		}
		for i, o := range options {
			fmt.Fprintf(p.out, "  %d) %s\n", i+1, o.Label)
		}
		fmt.Fprintf(p.out, "%s: ", label)
	}

	answer, err := p.readLine()
	if err != nil {
		return "", err
	}
	answer = strings.TrimSpace(answer)

	// Accept either the option number or its value.
	if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(options) {
		return options[n-1].Value, nil
	}
	return answer, nil
}

func (p *prompter) confirm(question string) (bool, error) {
	if p.interactive {
		fmt.Fprintf(p.out, "%s [y/N]: ", question)
	}
	answer, err := p.readLine()
	if err != nil {
		return false, err
	}
	return model.ParseCheckbox(answer), nil
}
