package views

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dmrmedia/obsidian-landing/modules/leads"
)

//go:embed content.yaml
var defaultContent []byte

var (
	ErrInvalidContent = errors.New("views: invalid content")
	ErrMissingContent = errors.New("views: missing content")
)

// Config configures where page copy is loaded from.
type Config struct {
	// ContentFile replaces the embedded copy when set.
	ContentFile string `env:"CONTENT_FILE"`
}

// Content is the copy rendered on every page.
type Content struct {
	Site     Site                `yaml:"site"`
	Forms    map[string]FormCopy `yaml:"forms"`
	Pages    map[string]PageCopy `yaml:"pages"`
	ThankYou ThankYouCopy        `yaml:"thank_you"`
	Errors   ErrorCopy           `yaml:"errors"`
}

type Site struct {
	Name            string `yaml:"name"`
	Title           string `yaml:"title"`
	Description     string `yaml:"description"`
	DataStarSrc     string `yaml:"datastar_src"`
	TrackingScript  string `yaml:"tracking_script"`
	TrackingID      string `yaml:"tracking_id"`
	ConversionEvent string `yaml:"conversion_event"`
	Badge           Badge  `yaml:"badge"`
}

type Badge struct {
	Stars string   `yaml:"stars"`
	Lines []string `yaml:"lines"`
}

// FormCopy holds the labels of one lead form.
type FormCopy struct {
	Heading    string               `yaml:"heading"`
	Button     string               `yaml:"button"`
	Submitting string               `yaml:"submitting"`
	Microcopy  string               `yaml:"microcopy"`
	Error      string               `yaml:"error"`
	Fields     map[string]FieldCopy `yaml:"fields"`
}

type FieldCopy struct {
	Label       string            `yaml:"label"`
	Placeholder string            `yaml:"placeholder"`
	Options     map[string]string `yaml:"options"`
}

// PageCopy holds the copy of one landing page.
type PageCopy struct {
	Title          string        `yaml:"title"`
	Hero           Hero          `yaml:"hero"`
	Logos          Logos         `yaml:"logos"`
	ReviewsHeading string        `yaml:"reviews_heading"`
	Reviews        []Testimonial `yaml:"reviews"`
	Badge          bool          `yaml:"badge"`
	Sections       []Section     `yaml:"sections"`
}

type Hero struct {
	Heading    string `yaml:"heading"`
	Subheading string `yaml:"subheading"`
}

type Logos struct {
	Caption string   `yaml:"caption"`
	Names   []string `yaml:"names"`
}

type Testimonial struct {
	Quote  string `yaml:"quote"`
	Author string `yaml:"author"`
}

// Section is a block of a long-form landing page. Kind selects its styling;
// every part is optional.
type Section struct {
	Kind         string        `yaml:"kind"`
	Heading      string        `yaml:"heading"`
	Paragraphs   []string      `yaml:"paragraphs"`
	Lists        []List        `yaml:"lists"`
	Steps        []Step        `yaml:"steps"`
	Team         []Member      `yaml:"team"`
	Testimonials []Testimonial `yaml:"testimonials"`
	Closing      []string      `yaml:"closing"`
	CTA          string        `yaml:"cta"`
	Footnote     string        `yaml:"footnote"`
}

type List struct {
	Title string   `yaml:"title"`
	Items []string `yaml:"items"`
}

type Step struct {
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
}

type Member struct {
	Name string `yaml:"name"`
	Role string `yaml:"role"`
}

// Initial returns the first letter of the member's name.
func (m Member) Initial() string {
	for _, r := range m.Name {
		return string(r)
	}
	return ""
}

type ThankYouCopy struct {
	Title   string   `yaml:"title"`
	Heading string   `yaml:"heading"`
	Lead    string   `yaml:"lead"`
	Lines   []string `yaml:"lines"`
}

type ErrorCopy struct {
	Title string `yaml:"title"`
	Retry string `yaml:"retry"`
	Home  string `yaml:"home"`
}

// DefaultContent returns the embedded copy.
func DefaultContent() (Content, error) {
	return ParseContent(defaultContent)
}

// LoadContent reads copy from path, or the embedded copy if path is empty.
func LoadContent(path string) (Content, error) {
	if path == "" {
		return DefaultContent()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Content{}, fmt.Errorf("read content file: %w", err)
	}
	return ParseContent(data)
}

// ParseContent decodes YAML copy and checks that every form and page has an entry.
func ParseContent(data []byte) (Content, error) {
	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Content{}, errors.Join(ErrInvalidContent, err)
	}
	if err := c.Validate(); err != nil {
		return Content{}, err
	}
	return c, nil
}

// Validate reports forms, fields and pages without copy.
func (c Content) Validate() error {
	var errs []error
	for _, f := range leads.Forms() {
		fc, ok := c.Forms[string(f.Kind)]
		if !ok {
			errs = append(errs, fmt.Errorf("form %q", f.Kind))
			continue
		}
		for _, fd := range f.Fields {
			if _, ok := fc.Fields[fd.Name]; !ok {
				errs = append(errs, fmt.Errorf("field %q of form %q", fd.Name, f.Kind))
			}
		}
	}
	for _, p := range leads.Pages() {
		if _, ok := c.Pages[p.Slug]; !ok {
			errs = append(errs, fmt.Errorf("page %q", p.Slug))
		}
	}
	if len(errs) > 0 {
		return errors.Join(ErrMissingContent, errors.Join(errs...))
	}
	return nil
}
