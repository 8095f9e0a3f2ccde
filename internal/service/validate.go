// Package service holds the business rules between the HTTP handlers and
// the stores.
//
//	Handler (HTTP layer)     → decodes requests, writes responses
//	Service (business layer) → validates, orchestrates media + store calls
//	Repository (data layer)  → reads/writes the Document Store
//
// Services accept plain input structs and return domain errors from
// internal/apperror. They never see an *http.Request or a status code.
package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sakif/sweet-memories/internal/apperror"
	"github.com/sakif/sweet-memories/internal/media"
)

// validate is safe for concurrent use and caches struct metadata, so one
// instance serves the whole package.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON name so messages match the request body.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateInput runs struct tag validation and folds every failing field
// into a single ValidationFailed error.
func validateInput(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return apperror.ValidationFailed(fields[0], "missing required fields: "+strings.Join(fields, ", "))
}

// validateImage rejects image payloads the media store must not be handed.
func validateImage(image string) error {
	if !media.ValidPayload(image) {
		return apperror.ValidationFailed("image", "image must be a base64 data URI or an http(s) URL")
	}
	return nil
}
