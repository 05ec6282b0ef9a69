package templates

// Form renders every section of the application form with inline errors.
const Form = `
{{ define "content" }}
<section class="application">
	<h1>Application Form</h1>
	<p class="subtitle">{{ .Institution.Name }}</p>

	{{ if .Failed }}
		<div class="alert alert-error" role="alert">{{ .FailureMessage }}</div>
	{{ end }}
	{{ if .HasErrors }}
		<div class="alert alert-warning" role="alert">Please correct the highlighted fields.</div>
	{{ end }}

	<form action="{{ .Action }}" method="post" novalidate>
		{{ range .Sections }}
			<fieldset class="section">
				<legend>{{ .Title }}</legend>
				{{ range .Fields }}
					<div class="field{{ if .Required }} required{{ end }}{{ if .Error }} has-error{{ end }}">
						{{ if eq .Kind "checkbox" }}
							<label for="{{ .Name }}">
								<input type="checkbox" id="{{ .Name }}" name="{{ .Name }}" value="on"{{ if .Checked }} checked{{ end }}>
								{{ .Label }}
							</label>
						{{ else }}
							<label for="{{ .Name }}">{{ .Label }}{{ if .Required }} *{{ end }}</label>
							{{ if eq .Kind "select" }}
								<select id="{{ .Name }}" name="{{ .Name }}">
									<option value="">{{ .Placeholder }}</option>
									{{ $current := .Value }}
									{{ range .Options }}
										<option value="{{ .Value }}"{{ if eq .Value $current }} selected{{ end }}>{{ .Label }}</option>
									{{ end }}
								</select>
							{{ else if eq .Kind "textarea" }}
								<textarea id="{{ .Name }}" name="{{ .Name }}" rows="2" placeholder="{{ .Placeholder }}">{{ .Value }}</textarea>
							{{ else }}
								<input type="{{ .Kind }}" id="{{ .Name }}" name="{{ .Name }}" value="{{ .Value }}" placeholder="{{ .Placeholder }}">
							{{ end }}
						{{ end }}
						{{ if .Error }}
							<p class="error" id="{{ .Name }}-error">{{ .Error }}</p>
						{{ end }}
					</div>
				{{ end }}
			</fieldset>
		{{ end }}

		<p class="terms">
			I agree to the terms and conditions and privacy policy of {{ .Institution.Name }}.
			I understand that any false information may result in rejection of my application.
		</p>

		<div class="actions">
			<button type="submit" class="button accent-{{ .Institution.Accent }}">Submit Application</button>
			<a class="button secondary" href="{{ .Institution.HomePath }}">Cancel</a>
		</div>
	</form>
</section>
{{ end }}
`

// Success is shown after the relay accepted the application.
const Success = `
{{ define "content" }}
<section class="submitted">
	<h2>Application Submitted Successfully!</h2>
	<p>
		Thank you for applying to {{ .Institution.Name }}. We have received your application
		and will be in touch within 5-7 business days.
	</p>
	<a class="button accent-{{ .Institution.Accent }}" href="{{ .Institution.HomePath }}">Back to University Page</a>
</section>
{{ end }}
`
