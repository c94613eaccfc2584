package leads

import (
	"context"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/a-h/templ"
)

// Notice is the content of the email sent for a submission.
type Notice struct {
	SiteName    string
	FormLabel   string
	Lines       []Line
	SubmittedAt time.Time
}

// Subject returns the email subject line.
func (n Notice) Subject() string {
	return "New " + n.FormLabel + " Form Submission - " + n.SiteName
}

// Submitted formats SubmittedAt for display.
func (n Notice) Submitted() string {
	return n.SubmittedAt.Format("January 2, 2006 at 3:04 PM MST")
}

// Details returns the field list as plain text.
func (n Notice) Details() string {
	return FormatText(n.Lines)
}

var noticeTemplate = template.Must(template.New("notice").Parse(`<h2>New {{.FormLabel}} Form Submission</h2>
<p>A new form submission has been received from the {{.SiteName}} website.</p>
<h3>Form Details:</h3>
<pre>{{.Details}}</pre>
<p><strong>Form Type:</strong> {{.FormLabel}}</p>
<p><strong>Submitted:</strong> {{.Submitted}}</p>
`))

// HTML renders the notice body as a component.
func (n Notice) HTML() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return noticeTemplate.Execute(w, n)
	})
}

// Text renders the plain-text body.
func (n Notice) Text() string {
	var b strings.Builder
	b.WriteString("New " + n.FormLabel + " Form Submission\n\n")
	b.WriteString("A new form submission has been received from the " + n.SiteName + " website.\n\n")
	b.WriteString("Form Details:\n")
	b.WriteString(n.Details())
	b.WriteString("\n\nForm Type: " + n.FormLabel + "\n")
	b.WriteString("Submitted: " + n.Submitted() + "\n")
	return b.String()
}
