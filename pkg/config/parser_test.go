package config

import (
	"os"
	"strings"
	"testing"
)

const validYAML = `
name: used-vehicle-valuation
auth:
  login_url: https://login.example.com/api/login
  username: svc-user
  password: svc-pass
graphql:
  endpoint: https://query.example.com/graphql
  response_path: usedvehicles.usedvehicles
  documents:
    with_mileage: "query ($uvc: String!, $mileage: Int!) { usedvehicles }"
    without_mileage: "query ($uvc: String!) { usedvehicles }"
`

func newTestLoader() *GatewayLoader {
	return NewGatewayLoader(
		&EnvExpander{},
		&GatewayDefaults{},
		&RequiredFieldValidator{},
		&AuthValidator{},
	)
}

func TestGatewayLoader_ValidMinimalConfig(t *testing.T) {
	result, err := newTestLoader().Parse([]byte(validYAML))
	if err != nil {
		t.Fatalf("Failed to parse valid config: %v", err)
	}

	gw, ok := result.(*Gateway)
	if !ok {
		t.Fatal("Parse should return a *Gateway")
	}

	if gw.Name != "used-vehicle-valuation" {
		t.Errorf("Expected name 'used-vehicle-valuation', got %q", gw.Name)
	}
	if gw.Auth.LoginURL != "https://login.example.com/api/login" {
		t.Errorf("Unexpected login URL: %q", gw.Auth.LoginURL)
	}
	if gw.GraphQL.ResponsePath != "usedvehicles.usedvehicles" {
		t.Errorf("Unexpected response path: %q", gw.GraphQL.ResponsePath)
	}
}

func TestGatewayLoader_Defaults(t *testing.T) {
	result, err := newTestLoader().Parse([]byte(validYAML))
	if err != nil {
		t.Fatalf("Failed to parse valid config: %v", err)
	}
	gw := result.(*Gateway)

	if gw.Auth.TokenTTLSeconds != 6*60*60 {
		t.Errorf("Expected 6h default TTL, got %d", gw.Auth.TokenTTLSeconds)
	}
	if gw.Auth.SafetyMarginSeconds != 5 {
		t.Errorf("Expected 5s default safety margin, got %d", gw.Auth.SafetyMarginSeconds)
	}
	if gw.HTTP == nil || gw.HTTP.TimeoutSeconds != 30 {
		t.Errorf("Expected 30s default HTTP timeout, got %+v", gw.HTTP)
	}
}

func TestGatewayLoader_ExplicitValuesKept(t *testing.T) {
	yamlContent := strings.Replace(validYAML, "password: svc-pass",
		"password: svc-pass\n  token_ttl_seconds: 3600\n  safety_margin_seconds: 10", 1)

	result, err := newTestLoader().Parse([]byte(yamlContent))
	if err != nil {
		t.Fatalf("Failed to parse config: %v", err)
	}
	gw := result.(*Gateway)

	if gw.Auth.TokenTTLSeconds != 3600 {
		t.Errorf("Expected TTL 3600, got %d", gw.Auth.TokenTTLSeconds)
	}
	if gw.Auth.SafetyMarginSeconds != 10 {
		t.Errorf("Expected margin 10, got %d", gw.Auth.SafetyMarginSeconds)
	}
}

func TestGatewayLoader_EnvExpansion(t *testing.T) {
	os.Setenv("TEST_VALUATION_PASSWORD", "expanded-secret")
	defer os.Unsetenv("TEST_VALUATION_PASSWORD")

	yamlContent := strings.Replace(validYAML, "password: svc-pass",
		"password: ${TEST_VALUATION_PASSWORD}", 1)

	result, err := newTestLoader().Parse([]byte(yamlContent))
	if err != nil {
		t.Fatalf("Failed to parse config: %v", err)
	}
	gw := result.(*Gateway)

	if gw.Auth.Password != "expanded-secret" {
		t.Errorf("Expected expanded password, got %q", gw.Auth.Password)
	}
}

func TestGatewayLoader_MissingRequiredFields(t *testing.T) {
	tests := []struct {
		name      string
		remove    string
		wantError string
	}{
		{"MissingName", "name: used-vehicle-valuation", "name: is required"},
		{"MissingLoginURL", "login_url: https://login.example.com/api/login", "auth.login_url: is required"},
		{"MissingUsername", "username: svc-user", "auth.username: is required"},
		{"MissingPassword", "password: svc-pass", "auth.password: is required"},
		{"MissingEndpoint", "endpoint: https://query.example.com/graphql", "graphql.endpoint: is required"},
		{"MissingResponsePath", "response_path: usedvehicles.usedvehicles", "graphql.response_path: is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			yamlContent := strings.Replace(validYAML, tt.remove, "", 1)
			_, err := newTestLoader().Parse([]byte(yamlContent))
			if err == nil {
				t.Fatal("Expected a validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantError) {
				t.Errorf("Expected error containing %q, got %v", tt.wantError, err)
			}
		})
	}
}

func TestGatewayLoader_MalformedYAML(t *testing.T) {
	_, err := newTestLoader().Parse([]byte("name: [unclosed"))
	if err == nil {
		t.Fatal("Expected a parse error, got nil")
	}
	if !strings.Contains(err.Error(), "failed to parse YAML") {
		t.Errorf("Expected YAML parse error, got %v", err)
	}
}

func TestGatewayLoader_LoadMissingFile(t *testing.T) {
	_, err := newTestLoader().Load("does/not/exist.yaml")
	if err == nil {
		t.Fatal("Expected an error for a missing file, got nil")
	}
}
