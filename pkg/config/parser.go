package config

import (
	"fmt"
	"gopkg.in/yaml.v3"
	"os"
)

// ConfigLoader defines the interface for loading configs
type ConfigLoader interface {
	Load(path string) (interface{}, error)
	Parse(data []byte) (interface{}, error)
}

type ValidationError struct {
	Field   string
	Message string
}

type Validator interface {
	Validate(config interface{}) []ValidationError
}

// Returns the string representation of validation error
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// DefaultValueSetter Handles the interface for setting default values
type DefaultValueSetter interface {
	SetDefaults(config interface{})
}

// VariableExpander defines the interface for expanding variables
type VariableExpander interface {
	Expand(data []byte) []byte
}

// EnvExpander implements VariableExpander using environment variables
type EnvExpander struct{}

// Expand expands environment variables with the given data
func (e *EnvExpander) Expand(data []byte) []byte {
	expanded := os.Expand(string(data), os.Getenv)
	return []byte(expanded)
}

// GatewayLoader uses ConfigLoader for Gateway configurations
type GatewayLoader struct {
	expander      VariableExpander
	validators    []Validator
	defaultSetter DefaultValueSetter
}

// NewGatewayLoader creates a new GatewayLoader with the given components
func NewGatewayLoader(
	expander VariableExpander,
	defaultSetter DefaultValueSetter,
	validators ...Validator,
) *GatewayLoader {
	return &GatewayLoader{
		expander:      expander,
		validators:    validators,
		defaultSetter: defaultSetter,
	}
}

// Load a new gateway config from YAML file
func (l *GatewayLoader) Load(path string) (interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return l.Parse(data)
}

// Parse parses a yaml config
func (l *GatewayLoader) Parse(data []byte) (interface{}, error) {
	// Expand variables if an expander is configured
	if l.expander != nil {
		data = l.expander.Expand(data)
	}

	// Unmarshal YAML data into Gateway struct
	var gw Gateway
	if err := yaml.Unmarshal(data, &gw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Set default values if a default setter is configured
	if l.defaultSetter != nil {
		l.defaultSetter.SetDefaults(&gw)
	}

	// Validate the gateway configuration
	var allErrors []ValidationError
	for _, validator := range l.validators {
		errors := validator.Validate(&gw)
		allErrors = append(allErrors, errors...)
	}

	// Return any validation errors if there are any
	if len(allErrors) > 0 {
		return nil, fmt.Errorf("validation errors: %v", allErrors)
	}

	return &gw, nil
}

// GatewayDefaults implements DefaultValueSetter for Gateway
type GatewayDefaults struct{}

// SetDefaults sets default values for Gateway
func (d *GatewayDefaults) SetDefaults(config interface{}) {
	gw, ok := config.(*Gateway)
	if !ok {
		return
	}

	// Tokens live 6 hours unless configured otherwise
	if gw.Auth.TokenTTLSeconds <= 0 {
		gw.Auth.TokenTTLSeconds = 6 * 60 * 60
	}

	if gw.Auth.SafetyMarginSeconds <= 0 {
		gw.Auth.SafetyMarginSeconds = 5
	}

	if gw.HTTP == nil {
		gw.HTTP = &HTTP{}
	}
	if gw.HTTP.TimeoutSeconds <= 0 {
		gw.HTTP.TimeoutSeconds = 30
	}
}

// RequiredFieldValidator validates required fields for the gateway
type RequiredFieldValidator struct{}

// Validate checks that all required fields are present
func (v *RequiredFieldValidator) Validate(config interface{}) []ValidationError {
	gw, ok := config.(*Gateway)
	if !ok {
		return []ValidationError{{Field: "config", Message: "not a Gateway"}}
	}

	var errors []ValidationError

	// Check required fields
	if gw.Name == "" {
		errors = append(errors, ValidationError{Field: "name", Message: "is required"})
	}

	if gw.GraphQL.Endpoint == "" {
		errors = append(errors, ValidationError{Field: "graphql.endpoint", Message: "is required"})
	}

	if gw.GraphQL.Documents.WithMileage == "" {
		errors = append(errors, ValidationError{Field: "graphql.documents.with_mileage", Message: "is required"})
	}

	if gw.GraphQL.Documents.WithoutMileage == "" {
		errors = append(errors, ValidationError{Field: "graphql.documents.without_mileage", Message: "is required"})
	}

	if gw.GraphQL.ResponsePath == "" {
		errors = append(errors, ValidationError{Field: "graphql.response_path", Message: "is required"})
	}

	return errors
}

// AuthValidator handles login endpoint validation
type AuthValidator struct{}

// Validate checks that the login configuration is valid
func (v *AuthValidator) Validate(config interface{}) []ValidationError {
	gw, ok := config.(*Gateway)
	if !ok {
		return []ValidationError{{Field: "config", Message: "not a Gateway"}}
	}

	var errors []ValidationError

	if gw.Auth.LoginURL == "" {
		errors = append(errors, ValidationError{Field: "auth.login_url", Message: "is required"})
	}
	if gw.Auth.Username == "" {
		errors = append(errors, ValidationError{Field: "auth.username", Message: "is required"})
	}
	if gw.Auth.Password == "" {
		errors = append(errors, ValidationError{Field: "auth.password", Message: "is required"})
	}

	return errors
}
