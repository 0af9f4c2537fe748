// Package validation validates configuration and inbound requests.
//
// Struct tags are checked with go-playground/validator:
//
//	type SupabaseConfig struct {
//	    URL string `mapstructure:"url" validate:"required,url"`
//	}
//	err := validation.Validate(cfg)
//
// Ad-hoc checks use the collecting Validator:
//
//	v := validation.New()
//	v.Required("function", name).OneOf("backend", backend, names)
//	err := v.Validate()
//
// Both return an *errors.AppError with the per-field failures in Details.
package validation
