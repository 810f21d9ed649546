package render

// layoutTemplate is the page shell. Kept deliberately small: docpress renders
// reference pages, not a themed site.
const layoutTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}} · {{.SiteTitle}}</title>
</head>
<body>
<main>
{{.Content}}</main>
<nav class="page-nav">
{{- if .Prev}}
<a rel="prev" href="{{.Prev.Href}}">&larr; {{.Prev.Title}}</a>
{{- end}}
{{- if .Next}}
<a rel="next" href="{{.Next.Href}}">{{.Next.Title}} &rarr;</a>
{{- end}}
</nav>
</body>
</html>
`

// indexTemplate lists every page in set order.
const indexTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.SiteTitle}}</title>
</head>
<body>
<main>
<h1>{{.SiteTitle}}</h1>
{{- if .Description}}
<p>{{.Description}}</p>
{{- end}}
<ol class="toc">
{{- range .Entries}}
<li><a href="{{.Href}}">{{.Title}}</a></li>
{{- end}}
</ol>
</main>
</body>
</html>
`
