package login

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/a-h/templ"

	"stockboard/frontend/shared/html"
)

// GetLoginScreenHandler renders the login screen.
func GetLoginScreenHandler(w http.ResponseWriter, r *http.Request) {
	errorMessage := r.URL.Query().Get("error")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := GetLoginScreen(errorMessage).Render(r.Context(), w); err != nil {
		http.Error(w, "failed to render login screen", http.StatusInternalServerError)
		return
	}
}

// GetLoginScreen builds the login page component.
func GetLoginScreen(errorMessage string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<section class="login"><h1>Stockboard</h1>`); err != nil {
			return err
		}
		if errorMessage != "" {
			if _, err := fmt.Fprintf(w, `<p class="error">%s</p>`, templ.EscapeString(errorMessage)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `<form method="POST" action="/login">
<label>Username <input type="text" name="username" autocomplete="username" required></label>
<label>Password <input type="password" name="password" autocomplete="current-password" required></label>
<button type="submit">Sign in</button>
</form></section>`)
		return err
	})
	return html.Layout("Sign in - Stockboard", nil, body)
}
