package leads

import (
	"regexp"
	"slices"

	"github.com/dmrmedia/obsidian-landing/handler"
	"github.com/dmrmedia/obsidian-landing/pkg/validator"
)

// FormKind identifies a lead form variant.
type FormKind string

const (
	KindValuation FormKind = "valuation"
	KindRealtor   FormKind = "realtor"
	KindMoving    FormKind = "moving"
)

// Channel is a delivery channel bit set.
type Channel uint8

const (
	ChannelWebhook Channel = 1 << iota
	ChannelEmail
)

func (c Channel) String() string {
	switch c {
	case ChannelWebhook:
		return "webhook"
	case ChannelEmail:
		return "email"
	}
	return "unknown"
}

// FieldType is the input type a field is rendered with.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldEmail    FieldType = "email"
	FieldTel      FieldType = "tel"
	FieldTextarea FieldType = "textarea"
	FieldSelect   FieldType = "select"
)

// Field describes one input of a form.
type Field struct {
	Name     string
	Type     FieldType
	Required bool

	// Pattern is the HTML pattern attribute; pattern is its anchored form
	// checked on the server.
	Pattern string
	pattern *regexp.Regexp
	hint    string

	Choices []string
}

// Form describes a lead form variant.
type Form struct {
	Kind     FormKind
	Label    string
	Fields   []Field
	Channels Channel
}

// Has reports whether f is delivered through c.
func (f Form) Has(c Channel) bool {
	return f.Channels&c != 0
}

// Field returns the declared field called name.
func (f Form) Field(name string) (Field, bool) {
	i := slices.IndexFunc(f.Fields, func(fd Field) bool { return fd.Name == name })
	if i < 0 {
		return Field{}, false
	}
	return f.Fields[i], true
}

// Validate checks s, as returned by Submission.Clean, against the declared
// fields. Failures are reported as handler.ValidationError.
func (f Form) Validate(s Submission) error {
	var rules []validator.Rule
	for _, fd := range f.Fields {
		value := s[fd.Name]
		if fd.Required {
			rules = append(rules, validator.Required(fd.Name, value))
		}
		switch fd.Type {
		case FieldEmail:
			rules = append(rules, validator.Optional(value, validator.ValidEmail(fd.Name, value)))
		case FieldTextarea:
			rules = append(rules, validator.MaxLen(fd.Name, value, maxFreeTextLen))
		}
		if fd.pattern != nil {
			rules = append(rules, validator.Optional(value, validator.Matches(fd.Name, value, fd.pattern, fd.hint)))
		}
		rules = append(rules, validator.When(len(fd.Choices) > 0,
			validator.Optional(value, validator.InList(fd.Name, value, fd.Choices)),
		)...)
	}

	errs := validator.ExtractValidationErrors(validator.Apply(rules...))
	if len(errs) == 0 {
		return nil
	}
	return handler.ValidationError(errs.Map())
}

var zipPattern = regexp.MustCompile(`^[0-9]{5}$`)

// Timeline choices offered by the realtor form.
var TimelineChoices = []string{"immediately", "1-3-months", "3-6-months", "6-12-months", "just-looking"}

var forms = []Form{
	{
		Kind:  KindValuation,
		Label: "Home Valuation",
		Fields: []Field{
			{Name: "address", Type: FieldText, Required: true},
			{Name: "city", Type: FieldText, Required: true},
			{Name: "zip", Type: FieldText, Required: true, Pattern: "[0-9]{5}", pattern: zipPattern, hint: "5-digit ZIP code"},
			{Name: "name", Type: FieldText, Required: true},
			{Name: "email", Type: FieldEmail, Required: true},
			{Name: "phone", Type: FieldTel},
		},
		Channels: ChannelWebhook | ChannelEmail,
	},
	{
		Kind:  KindRealtor,
		Label: "Realtor Match",
		Fields: []Field{
			{Name: "name", Type: FieldText, Required: true},
			{Name: "phone", Type: FieldTel, Required: true},
			{Name: "email", Type: FieldEmail, Required: true},
			{Name: "location", Type: FieldText, Required: true},
			{Name: "timeline", Type: FieldSelect, Required: true, Choices: TimelineChoices},
		},
		Channels: ChannelEmail,
	},
	{
		Kind:  KindMoving,
		Label: "Moving",
		Fields: []Field{
			{Name: "name", Type: FieldText, Required: true},
			{Name: "phone", Type: FieldTel, Required: true},
			{Name: "email", Type: FieldEmail, Required: true},
			{Name: "reason", Type: FieldTextarea, Required: true},
		},
		Channels: ChannelEmail,
	},
}

// Forms returns every form variant.
func Forms() []Form {
	return slices.Clone(forms)
}

// Lookup finds a form by kind.
func Lookup(kind string) (Form, bool) {
	for _, f := range forms {
		if string(f.Kind) == kind {
			return f, true
		}
	}
	return Form{}, false
}
