// Package validator builds declarative validation from small Rule values.
//
// Each rule pairs a Check with the field and message it reports. Apply
// evaluates rules and aggregates failures into ValidationErrors:
//
//	err := validator.Apply(
//		validator.Required("email", email),
//		validator.ValidEmail("email", email),
//		validator.Optional(zip, validator.Matches("zip", zip, zipPattern, "ZIP code")),
//		validator.MaxLen("message", message, 5000),
//	)
//	if errs := validator.ExtractValidationErrors(err); errs != nil {
//		details := errs.Map() // field -> messages
//	}
//
// Rules are stateless and safe for concurrent use.
package validator
