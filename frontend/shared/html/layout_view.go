package html

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Layout wraps a page body in the shared chrome. Nav may be nil for
// unauthenticated screens.
func Layout(title string, nav, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<!doctype html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>%s</title><link rel="stylesheet" href="/assets/app.css"></head><body>`,
			templ.EscapeString(title)); err != nil {
			return err
		}
		if nav != nil {
			if err := nav.Render(ctx, w); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `<main class="page">`); err != nil {
			return err
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</main>`+CSRFFormScript()+`</body></html>`); err != nil {
			return err
		}
		return nil
	})
}

// Fragment concatenates components in order.
func Fragment(parts ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, p := range parts {
			if p == nil {
				continue
			}
			if err := p.Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}

// Markup renders a pre-built HTML string as-is. Callers escape dynamic
// values before building the string.
func Markup(s string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

// Banners renders the transient status/error messages carried over a
// redirect. Either value may be empty.
func Banners(message, errorMessage string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if message != "" {
			if _, err := fmt.Fprintf(w, `<p class="banner banner-ok">%s</p>`, templ.EscapeString(message)); err != nil {
				return err
			}
		}
		if errorMessage != "" {
			if _, err := fmt.Fprintf(w, `<p class="banner banner-error">%s</p>`, templ.EscapeString(errorMessage)); err != nil {
				return err
			}
		}
		return nil
	})
}

// ErrorPanel renders the inline fetch-failure affordance with a retry link.
func ErrorPanel(message, retryURL string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<div class="panel panel-error"><p>%s</p><a class="btn" href="%s">Retry</a></div>`,
			templ.EscapeString(message), templ.EscapeString(retryURL))
		return err
	})
}

// EmptyPanel renders the "no records found" affordance.
func EmptyPanel(message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div class="panel panel-empty"><p>%s</p></div>`, templ.EscapeString(message))
		return err
	})
}
