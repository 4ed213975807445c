package router

import (
	"chat-powered-ecommerce/backend/pkg/validator"
)

// AddOpenAPIValidation installs request validation against the configured
// schema file. A missing schema path disables validation rather than failing
// startup, since the schema ships separately from the binary.
func (r *Router) AddOpenAPIValidation() error {
	schemaPath := r.Config.OpenAPI.SchemaPath
	if schemaPath == "" {
		r.Logger.Info("OpenAPI validation disabled, no schema path configured")
		return nil
	}

	v, err := validator.NewOpenAPIValidator(schemaPath)
	if err != nil {
		return err
	}
	r.Engine.Use(v.Middleware())
	r.Logger.Info("OpenAPI request validation enabled", "schema", schemaPath)
	return nil
}
