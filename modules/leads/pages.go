package leads

import (
	"slices"

	"github.com/a-h/templ"

	"github.com/dmrmedia/obsidian-landing/handler"
)

// Page is a landing page variant hosting one lead form.
type Page struct {
	Slug string
	Path string
	Form FormKind
}

var pages = []Page{
	{Slug: "home", Path: "/", Form: KindValuation},
	{Slug: "home-valuation", Path: "/home-valuation", Form: KindValuation},
	{Slug: "realtor", Path: "/find-your-local-realtor", Form: KindRealtor},
	{Slug: "moving", Path: "/moving", Form: KindMoving},
}

// Pages returns every landing page.
func Pages() []Page {
	return slices.Clone(pages)
}

// pageFor returns the page named slug if it hosts kind, else the first
// page hosting kind.
func pageFor(slug string, kind FormKind) Page {
	var fallback Page
	for _, p := range pages {
		if p.Form != kind {
			continue
		}
		if p.Slug == slug {
			return p
		}
		if fallback.Slug == "" {
			fallback = p
		}
	}
	return fallback
}

// FormParams contains data for rendering a lead form.
type FormParams struct {
	Form   Form
	Page   Page
	State  FormState
	Values Submission
	Errors handler.ValidationError
}

// Action returns the endpoint the form posts to.
func (p FormParams) Action() string {
	return "/forms/" + string(p.Form.Kind)
}

// Target returns the element id the form is rendered into.
func (p FormParams) Target() string {
	return "lead-form-" + string(p.Form.Kind)
}

// PageParams contains data for rendering a landing page.
type PageParams struct {
	Page Page
	Form FormParams
}

// ThankYouParams contains data for rendering the confirmation page.
type ThankYouParams struct {
	SiteName string
}

// Views renders the pages served by Service.
type Views struct {
	Page     func(PageParams) templ.Component
	Form     func(FormParams) templ.Component
	ThankYou func(ThankYouParams) templ.Component
}
