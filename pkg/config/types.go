package config

// Gateway represents the full config for one valuation gateway
type Gateway struct {
	Name    string  `yaml:"name"`                  // Required: Unique identifier
	Auth    Auth    `yaml:"auth"`                  // Required login endpoint configuration
	GraphQL GraphQL `yaml:"graphql"`               // Required query endpoint configuration
	HTTP    *HTTP   `yaml:"http,omitempty"`        // Optional HTTP client tuning
	Version string  `yaml:"version,omitempty"`     // Optional version
	Comment string  `yaml:"description,omitempty"` // Optional description
}

// Auth holds the login endpoint and token lifetime settings
type Auth struct {
	LoginURL string `yaml:"login_url"` // Required token endpoint URL
	Username string `yaml:"username"`  // Required login name
	Password string `yaml:"password"`  // Required login password

	// TokenTTLSeconds is the fixed lifetime granted to an issued token.
	// The issuer does not report expiry, so the gateway tracks it itself.
	TokenTTLSeconds int `yaml:"token_ttl_seconds,omitempty"` // default 21600 (6h)

	// SafetyMarginSeconds is subtracted from the expiry when deciding
	// whether a cached token is still usable.
	SafetyMarginSeconds int `yaml:"safety_margin_seconds,omitempty"` // default 5
}

// GraphQL holds the query endpoint and the two static query documents
type GraphQL struct {
	Endpoint     string    `yaml:"endpoint"`      // Required GraphQL endpoint URL
	Documents    Documents `yaml:"documents"`     // Required query documents
	ResponsePath string    `yaml:"response_path"` // Required dot-delimited result path
}

// Documents holds the two predefined query strings
type Documents struct {
	WithMileage    string `yaml:"with_mileage"`    // Query taking uvc + mileage variables
	WithoutMileage string `yaml:"without_mileage"` // Query taking only the uvc variable
}

// HTTP tunes the shared outbound HTTP client
type HTTP struct {
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty"` // default 30
}
