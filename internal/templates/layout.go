package templates

// Layout is the main site template. It includes the header and footer and
// embeds the content for every other page.
const Layout = `
{{ define "layout" }}
<!DOCTYPE html>
<html lang="en">
	<head>
		<meta charset="utf-8">
		<meta name="viewport" content="width=device-width, initial-scale=1">
		<title>{{ .Title }}</title>
		<meta name="description" content="{{ .Description }}">
	</head>
	<body class="accent-{{ .Accent }}">
		<header class="site-header">
			<a class="brand" href="/">Admissions</a>
			{{ if .BackPath }}<a class="back" href="{{ .BackPath }}">&larr; Back</a>{{ end }}
		</header>
		<main>
			{{ template "content" . }}
		</main>
		<footer class="site-footer">
			<p>Applications are reviewed by the admissions office of each institution.</p>
		</footer>
	</body>
</html>
{{ end }}
`

// Index lists the institutions that accept applications.
const Index = `
{{ define "content" }}
<section class="institutions">
	<h1>Apply for Admission</h1>
	<ul>
		{{ range .Institutions }}
			<li class="accent-{{ .Accent }}"><a href="{{ .ApplyPath }}">{{ .Name }}</a></li>
		{{ end }}
	</ul>
</section>
{{ end }}
`
