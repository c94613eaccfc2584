// Package views renders the landing pages, lead forms and error screens.
//
// Markup lives in embedded html/template files and is exposed as
// templ.Component values so it plugs into the handler package responses.
package views

import (
	"context"
	"embed"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	"github.com/dmrmedia/obsidian-landing/handler"
	"github.com/dmrmedia/obsidian-landing/modules/leads"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Views renders pages from parsed templates and loaded copy.
type Views struct {
	content Content
	tmpl    *template.Template
}

// New parses the embedded templates.
func New(content Content) (*Views, error) {
	tmpl, err := template.New("views").
		Funcs(template.FuncMap{"inc": func(i int) int { return i + 1 }}).
		ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Views{content: content, tmpl: tmpl}, nil
}

// Leads returns the renderers used by leads.Service.
func (v *Views) Leads() *leads.Views {
	return &leads.Views{
		Page:     v.Page,
		Form:     v.Form,
		ThankYou: v.ThankYou,
	}
}

// Static serves the embedded stylesheet and assets. Mount it with the
// prefix stripped.
func (v *Views) Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServerFS(sub)
}

type layout struct {
	Site  Site
	Title string
}

type pageData struct {
	layout
	Page PageCopy
	Form formView
}

type thankYouData struct {
	layout
	Copy ThankYouCopy
}

type errorData struct {
	layout
	Copy   ErrorCopy
	Params handler.ErrorPageParams
}

type formView struct {
	ID           string
	Action       string
	Page         string
	State        string
	Heading      string
	Button       string
	Submitting   string
	Microcopy    string
	Failed       bool
	ErrorMessage string
	Fields       []fieldView
}

type fieldView struct {
	Name        string
	Type        string
	Label       string
	Placeholder string
	Pattern     string
	Value       string
	Required    bool
	Textarea    bool
	Select      bool
	Error       string
	Options     []optionView
}

type optionView struct {
	Value    string
	Label    string
	Selected bool
}

// Page renders a full landing page.
func (v *Views) Page(p leads.PageParams) templ.Component {
	pc := v.content.Pages[p.Page.Slug]
	return v.render("page", pageData{
		layout: v.layout(pc.Title),
		Page:   pc,
		Form:   v.formView(p.Form),
	})
}

// Form renders the lead form fragment patched into the page.
func (v *Views) Form(p leads.FormParams) templ.Component {
	return v.render("form", v.formView(p))
}

// ThankYou renders the confirmation page.
func (v *Views) ThankYou(p leads.ThankYouParams) templ.Component {
	l := v.layout(v.content.ThankYou.Title)
	if p.SiteName != "" {
		l.Site.Name = p.SiteName
	}
	return v.render("thank_you", thankYouData{layout: l, Copy: v.content.ThankYou})
}

// ErrorPage renders a full error page for handler.NewErrorHandler.
func (v *Views) ErrorPage(p handler.ErrorPageParams) templ.Component {
	return v.render("error_page", errorData{
		layout: v.layout(v.content.Errors.Title),
		Copy:   v.content.Errors,
		Params: p,
	})
}

// ErrorToast renders a toast notification for handler.NewErrorHandler.
func (v *Views) ErrorToast(p handler.ErrorToastParams) templ.Component {
	return v.render("error_toast", p)
}

func (v *Views) layout(title string) layout {
	site := v.content.Site
	if title == "" {
		title = site.Title
	}
	return layout{Site: site, Title: title}
}

func (v *Views) render(name string, data any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return v.tmpl.ExecuteTemplate(w, name, data)
	})
}

func (v *Views) formView(p leads.FormParams) formView {
	fc := v.content.Forms[string(p.Form.Kind)]
	fv := formView{
		ID:           p.Target(),
		Action:       p.Action(),
		Page:         p.Page.Slug,
		State:        p.State.String(),
		Heading:      fc.Heading,
		Button:       fc.Button,
		Submitting:   fc.Submitting,
		Microcopy:    fc.Microcopy,
		Failed:       p.State == leads.FormError,
		ErrorMessage: fc.Error,
	}

	for _, fd := range p.Form.Fields {
		fcopy := fc.Fields[fd.Name]
		f := fieldView{
			Name:        fd.Name,
			Type:        string(fd.Type),
			Label:       fcopy.Label,
			Placeholder: fcopy.Placeholder,
			Pattern:     fd.Pattern,
			Value:       p.Values.Get(fd.Name),
			Required:    fd.Required,
			Textarea:    fd.Type == leads.FieldTextarea,
			Select:      fd.Type == leads.FieldSelect,
		}
		if f.Label == "" {
			f.Label = leads.FormatFieldName(fd.Name)
		}
		if p.Errors.Has(fd.Name) {
			f.Error = fieldError(f, p.Errors.Get(fd.Name))
		}
		for _, choice := range fd.Choices {
			f.Options = append(f.Options, optionView{
				Value:    choice,
				Label:    optionLabel(fcopy, choice),
				Selected: choice == f.Value,
			})
		}
		fv.Fields = append(fv.Fields, f)
	}
	return fv
}

func fieldError(f fieldView, msg string) string {
	if f.Select {
		return "Please choose " + strings.ToLower(f.Label)
	}
	return f.Label + " " + msg
}

func optionLabel(fc FieldCopy, value string) string {
	if label, ok := fc.Options[value]; ok {
		return label
	}
	return leads.FormatFieldName(strings.ReplaceAll(value, "-", " "))
}
