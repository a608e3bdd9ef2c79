// Package config defines the console's configuration model and the
// providers that load it from YAML files or SQLite databases.
package config

// ConfigProvider defines the interface for configuration data sources
type ConfigProvider interface {
	// Load complete configuration
	LoadConfig() (*ConfigData, error)

	// Get specific configuration sections
	GetRESTConfig() (*RESTServerData, error)
	GetPlannerConfig() (*PlannerData, error)
	GetGeocoderConfig() (*GeocoderData, error)

	IsReadOnly() bool
	Close() error
}

// ConfigData represents the complete configuration structure
type ConfigData struct {
	REST     RESTServerData `json:"rest"`
	Planner  PlannerData    `json:"planner"`
	Geocoder GeocoderData   `json:"geocoder"`
}

// RESTServerData holds the configuration for the console HTTP server
type RESTServerData struct {
	ListenAddr  string   `json:"listen_addr,omitempty"`
	HTTPPort    int      `json:"http_port,omitempty"`
	TLSCertPath string   `json:"tls_cert_path,omitempty"`
	TLSKeyPath  string   `json:"tls_key_path,omitempty"`
	CORSOrigins []string `json:"cors_origins,omitempty"`
}

// PlannerData holds the configuration for the external trip-planning backend
type PlannerData struct {
	BaseURL        string `json:"base_url"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty"`
}

// GeocoderData holds the configuration for the geocoding provider. An empty
// token is valid; location features degrade instead of failing.
type GeocoderData struct {
	Endpoint       string `json:"endpoint,omitempty"`
	Token          string `json:"token,omitempty"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty"`
}
