// Package handler provides type-safe HTTP request handling for server-rendered
// pages and small JSON APIs.
//
// A handler is a generic function that receives a typed request value, bound
// from the HTTP request by one or more binders, and returns a Response:
//
//	func submit(ctx handler.Context, req leads.Payload) handler.Response {
//		reply, err := relay.Forward(ctx, form, id, req.Raw)
//		if err != nil {
//			return handler.JSONError(err)
//		}
//		return handler.JSON(reply)
//	}
//
//	r.Post("/api/submit-valuation", handler.Wrap(submit,
//		handler.WithBinders[handler.Context, leads.Payload](binder.JSON()),
//	))
//
// # Response Types
//
// JSON envelopes for API routes:
//
//	handler.JSON(data)                        // 200 {"success":true,"data":...}
//	handler.JSONError(err)                    // status and {"error":"...","code":"..."}
//
// Template responses, rendered as HTML for regular requests and as DataStar
// element patches over Server-Sent Events for DataStar requests:
//
//	handler.Templ(component)
//	handler.TemplPartial(partial, full, handler.WithTarget("#lead-form"))
//	handler.WithStatus(http.StatusUnprocessableEntity, resp)
//
// Redirects:
//
//	handler.Redirect("/thank-you")            // 303, or an SSE redirect for DataStar
//
// Failures that should go through the configured ErrorHandler:
//
//	handler.Fail(handler.ErrNotFound)
//
// # Errors
//
// HTTPError carries a status code, a machine-readable key and an optional
// user-facing message. ValidationError collects per-field messages and maps
// to 422 Unprocessable Entity. NewErrorHandler renders error pages or toasts,
// NewJSONErrorHandler renders the JSON envelope.
package handler
