// Package application wires the pure scoring core to the store ports:
// it runs scoring, persists computed fields best-effort, saves
// responses, and loads service configuration.
package application

import "github.com/go-playground/validator/v10"

// Package-level validator instance for configuration and input
// validation. Uses go-playground/validator v10 struct tags.
var validate = validator.New()
