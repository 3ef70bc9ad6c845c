package callback

import (
	"fmt"
	"html"

	"github.com/csesa/portal-client/internal/model"
)

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>CSESA Portal</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif;
            max-width: 560px;
            margin: 80px auto;
            padding: 20px;
            line-height: 1.6;
        }
        h1 { font-size: 22px; margin-bottom: 12px; }
        .ok { color: #38a169; }
        .err { color: #e53e3e; }
        p { color: #4a5568; }
    </style>
</head>
<body>
    <h1 class="%s">%s</h1>
    <p>%s</p>
    <p>You can close this window and return to the terminal.</p>
</body>
</html>`

func successPage(u *model.User) []byte {
	detail := "You are signed in."
	if u != nil {
		detail = fmt.Sprintf("Signed in as %s &lt;%s&gt;.", html.EscapeString(u.Name), html.EscapeString(u.Email))
	}
	return []byte(fmt.Sprintf(pageTemplate, "ok", "Login successful", detail))
}

func errorPage(err error) []byte {
	return []byte(fmt.Sprintf(pageTemplate, "err", "Login failed", html.EscapeString(err.Error())))
}
