package leads

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmrmedia/obsidian-landing/handler"
	"github.com/dmrmedia/obsidian-landing/pkg/binder"
	"github.com/dmrmedia/obsidian-landing/pkg/logger"
	"github.com/dmrmedia/obsidian-landing/pkg/ratelimiter"
)

// Service serves the landing pages and the submission endpoints.
type Service struct {
	cfg          Config
	relay        *Relay
	views        *Views
	limiter      ratelimiter.RateLimiter
	log          *slog.Logger
	errorHandler handler.ErrorHandler[handler.Context]
	apiErrors    handler.ErrorHandler[handler.Context]
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithRateLimiter limits submissions per client IP.
func WithRateLimiter(l ratelimiter.RateLimiter) ServiceOption {
	return func(s *Service) {
		s.limiter = l
	}
}

// WithServiceLogger sets the logger used by the service and its API error handler.
func WithServiceLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

func NewService(
	cfg Config,
	relay *Relay,
	views *Views,
	errorHandler handler.ErrorHandler[handler.Context],
	opts ...ServiceOption,
) *Service {
	s := &Service{
		cfg:          cfg,
		relay:        relay,
		views:        views,
		log:          logger.Discard(),
		errorHandler: errorHandler,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Component("leads"))
	s.apiErrors = handler.NewJSONErrorHandler(s.log)
	if s.errorHandler == nil {
		s.errorHandler = handler.NewErrorHandler(s.log, handler.ErrorHandlerConfig{})
	}
	return s
}

// Handle returns the router serving pages and submissions. Unmatched routes
// are rendered by the error handler.
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()
	r.NotFound(handler.Wrap(failWith(handler.ErrNotFound),
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))
	r.MethodNotAllowed(handler.Wrap(failWith(handler.ErrMethodNotAllowed),
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))

	for _, page := range pages {
		r.Get(page.Path, handler.Wrap(s.showPage(page),
			handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
		))
	}
	r.Get(s.cfg.ThankYouPath, handler.Wrap(s.thankYou,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))

	r.Group(func(r chi.Router) {
		if s.limiter != nil {
			r.Use(ratelimiter.Middleware(s.limiter, ratelimiter.ClientIP,
				ratelimiter.WithDeniedHandler(http.HandlerFunc(s.tooManyRequests)),
				ratelimiter.WithLogger(s.log),
			))
		}

		for _, form := range forms {
			r.Post("/api/submit-"+string(form.Kind), handler.Wrap(s.submitJSON(form),
				handler.WithBinders[handler.Context, Payload](binder.JSON()),
				handler.WithErrorHandler[handler.Context, Payload](s.apiErrors),
			))
		}

		r.Post("/forms/{form}", handler.Wrap(s.submitForm,
			handler.WithBinders[handler.Context, Submission](binder.Form()),
			handler.WithErrorHandler[handler.Context, Submission](s.errorHandler),
		))
	})

	return r
}

func failWith(err error) handler.HandlerFunc[handler.Context, struct{}] {
	return func(handler.Context, struct{}) handler.Response {
		return handler.Fail(err)
	}
}

func (s *Service) showPage(page Page) handler.HandlerFunc[handler.Context, struct{}] {
	form, _ := Lookup(string(page.Form))
	return func(ctx handler.Context, _ struct{}) handler.Response {
		return handler.Templ(s.views.Page(PageParams{
			Page: page,
			Form: FormParams{Form: form, Page: page, State: FormIdle, Values: Submission{}},
		}))
	}
}

func (s *Service) thankYou(ctx handler.Context, _ struct{}) handler.Response {
	return handler.Templ(s.views.ThankYou(ThankYouParams{SiteName: s.cfg.SiteName}))
}

// submitJSON relays a JSON submission. Webhook forms answer with the
// destination's reply; email-only forms answer once the notice was attempted.
func (s *Service) submitJSON(form Form) handler.HandlerFunc[handler.Context, Payload] {
	return func(ctx handler.Context, req Payload) handler.Response {
		id := uuid.NewString()
		fields := req.Fields.Clean(form)

		if !form.Has(ChannelWebhook) {
			s.relay.Notify(ctx, form, id, fields)
			return handler.JSON(nil)
		}

		reply, err := s.relay.Forward(ctx, form, id, req.Raw)
		if err != nil {
			return handler.Fail(httpError(err))
		}
		if form.Has(ChannelEmail) {
			s.relay.Notify(ctx, form, id, fields)
		}
		return handler.JSON(reply)
	}
}

// submitForm handles the lead forms posted by the pages, either through
// DataStar or as a plain form submission.
func (s *Service) submitForm(ctx handler.Context, req Submission) handler.Response {
	form, ok := Lookup(chi.URLParam(ctx.Request(), "form"))
	if !ok {
		return handler.Fail(errors.Join(handler.ErrNotFound, ErrUnknownForm))
	}

	page := pageFor(req.Control("page"), form.Kind)
	fields := req.Clean(form)
	id := uuid.NewString()
	log := s.log.With(logger.Form(string(form.Kind)), logger.SubmissionID(id))

	machine := NewFormMachine(ParseFormState(req.Control("state")), log)
	if err := machine.Fire(ctx, EventSubmit, nil); err != nil {
		return handler.Fail(err)
	}

	params := FormParams{Form: form, Page: page, Values: fields}

	if err := form.Validate(fields); err != nil {
		var verr handler.ValidationError
		errors.As(err, &verr)
		log.InfoContext(ctx, "submission rejected", slog.String("fields", strings.Join(fieldNames(verr), ",")))
		return s.renderFailure(ctx, machine, params, verr, http.StatusUnprocessableEntity)
	}

	if form.Has(ChannelWebhook) {
		body, err := json.Marshal(fields)
		if err != nil {
			return handler.Fail(err)
		}
		if _, err := s.relay.Forward(ctx, form, id, body); err != nil {
			return s.renderFailure(ctx, machine, params, nil, http.StatusInternalServerError)
		}
	}
	if form.Has(ChannelEmail) {
		s.relay.Notify(ctx, form, id, fields)
	}

	if err := machine.Fire(ctx, EventSucceed, nil); err != nil {
		return handler.Fail(err)
	}
	return handler.Redirect(s.cfg.ThankYouPath)
}

// renderFailure re-renders the form in the error state: a patch of the form
// for DataStar requests, the whole page with status otherwise.
func (s *Service) renderFailure(ctx handler.Context, machine *FormMachine, params FormParams, verr handler.ValidationError, status int) handler.Response {
	if err := machine.Fire(ctx, EventFail, nil); err != nil {
		return handler.Fail(err)
	}
	params.State = machine.Current()
	params.Errors = verr

	return handler.WithStatus(status, handler.TemplPartial(
		s.views.Form(params),
		s.views.Page(PageParams{Page: params.Page, Form: params}),
		handler.WithTarget("#"+params.Target()),
	))
}

func (s *Service) tooManyRequests(w http.ResponseWriter, r *http.Request) {
	ctx := handler.NewContext(w, r)
	if strings.HasPrefix(r.URL.Path, "/api/") {
		s.apiErrors(ctx, handler.ErrTooManyRequests)
		return
	}
	s.errorHandler(ctx, handler.ErrTooManyRequests)
}

func fieldNames(verr handler.ValidationError) []string {
	names := make([]string, 0, len(verr))
	for name := range verr {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
