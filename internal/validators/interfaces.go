// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators provides input validation for request models.
//
// Rules are declared with `validate` struct tags on the models and checked
// by [RequestValidator]. Callers receive errors wrapping [ErrValidation]
// whose text names the offending JSON field, suitable for a 400 response.
package validators

import "context"

// Validator validates the provided input and optionally restricts
// validation to specific named fields.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
