// Package templates renders templ components into email bodies.
package templates

import (
	"context"

	"github.com/a-h/templ"
)

// Render renders c to an HTML string.
func Render(ctx context.Context, c templ.Component) (string, error) {
	html, err := templ.ToGoHTML(ctx, c)
	if err != nil {
		return "", err
	}
	return string(html), nil
}
