package handler

import (
	"html/template"
	"io"

	"admin-hub/internal/domain"
)

var loginPageTemplate = template.Must(template.New("login").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{if .Organization}}{{.Organization.Name}} | {{end}}Sign in</title>
</head>
<body>
<main>
{{if .Organization}}{{if .Organization.LogoURL}}<img src="{{.Organization.LogoURL}}" alt="{{.Organization.Name}}">{{end}}
<h1>{{.Organization.Name}}</h1>{{else}}<h1>Sign in</h1>{{end}}
{{if .Error}}<p role="alert">{{.Error}}</p>{{end}}
<form method="post" action="{{.Action}}">
<label>Username <input name="username" type="text" autocomplete="username" value="{{.Username}}" required></label>
<label>Password <input name="password" type="password" autocomplete="current-password" required></label>
<button type="submit">Sign in</button>
</form>
</main>
</body>
</html>
`))

type loginPage struct {
	Action       string
	Organization *domain.Organization
	Username     string
	Error        string
}

func (p loginPage) render(w io.Writer) error {
	return loginPageTemplate.Execute(w, p)
}
