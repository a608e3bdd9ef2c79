package config

import (
	"os"

	"gopkg.in/yaml.v2"
)

// YAMLProvider implements ConfigProvider for YAML configuration files
type YAMLProvider struct {
	filename string
	config   *ConfigData
}

// NewYAMLProvider creates a new YAML configuration provider
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{
		filename: filename,
	}
}

type restYAML struct {
	ListenAddr  string   `yaml:"listen_addr,omitempty"`
	HTTPPort    int      `yaml:"http_port,omitempty"`
	TLSCertPath string   `yaml:"tls_cert_path,omitempty"`
	TLSKeyPath  string   `yaml:"tls_key_path,omitempty"`
	CORSOrigins []string `yaml:"cors_origins,omitempty"`
}

type plannerYAML struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds,omitempty"`
}

type geocoderYAML struct {
	Endpoint       string `yaml:"endpoint,omitempty"`
	Token          string `yaml:"token,omitempty"`
	TimeoutSeconds int    `yaml:"timeout_seconds,omitempty"`
}

// LoadConfig loads the complete configuration from YAML file
func (y *YAMLProvider) LoadConfig() (*ConfigData, error) {
	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}

	var yamlConfig struct {
		REST     restYAML     `yaml:"rest,omitempty"`
		Planner  plannerYAML  `yaml:"planner"`
		Geocoder geocoderYAML `yaml:"geocoder,omitempty"`
	}

	if err := yaml.Unmarshal(cfgFile, &yamlConfig); err != nil {
		return nil, err
	}

	y.config = &ConfigData{
		REST: RESTServerData{
			ListenAddr:  yamlConfig.REST.ListenAddr,
			HTTPPort:    yamlConfig.REST.HTTPPort,
			TLSCertPath: yamlConfig.REST.TLSCertPath,
			TLSKeyPath:  yamlConfig.REST.TLSKeyPath,
			CORSOrigins: yamlConfig.REST.CORSOrigins,
		},
		Planner: PlannerData{
			BaseURL:        yamlConfig.Planner.BaseURL,
			TimeoutSeconds: yamlConfig.Planner.TimeoutSeconds,
		},
		Geocoder: GeocoderData{
			Endpoint:       yamlConfig.Geocoder.Endpoint,
			Token:          yamlConfig.Geocoder.Token,
			TimeoutSeconds: yamlConfig.Geocoder.TimeoutSeconds,
		},
	}
	return y.config, nil
}

// GetRESTConfig returns the REST server configuration section
func (y *YAMLProvider) GetRESTConfig() (*RESTServerData, error) {
	if err := y.ensureLoaded(); err != nil {
		return nil, err
	}
	return &y.config.REST, nil
}

// GetPlannerConfig returns the trip-planner configuration section
func (y *YAMLProvider) GetPlannerConfig() (*PlannerData, error) {
	if err := y.ensureLoaded(); err != nil {
		return nil, err
	}
	return &y.config.Planner, nil
}

// GetGeocoderConfig returns the geocoder configuration section
func (y *YAMLProvider) GetGeocoderConfig() (*GeocoderData, error) {
	if err := y.ensureLoaded(); err != nil {
		return nil, err
	}
	return &y.config.Geocoder, nil
}

func (y *YAMLProvider) ensureLoaded() error {
	if y.config != nil {
		return nil
	}
	_, err := y.LoadConfig()
	return err
}

// IsReadOnly returns true; YAML files are not written back
func (y *YAMLProvider) IsReadOnly() bool {
	return true
}

// Close is a no-op for YAML providers
func (y *YAMLProvider) Close() error {
	return nil
}
