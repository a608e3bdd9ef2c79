package config

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteProvider implements ConfigProvider for SQLite database configuration
type SQLiteProvider struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteProvider creates a new SQLite configuration provider
func NewSQLiteProvider(dbPath string) (*SQLiteProvider, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	return &SQLiteProvider{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// LoadConfig loads the complete configuration from SQLite database
func (s *SQLiteProvider) LoadConfig() (*ConfigData, error) {
	config := &ConfigData{}

	rest, err := s.GetRESTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load REST config: %w", err)
	}
	config.REST = *rest

	planner, err := s.GetPlannerConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load planner config: %w", err)
	}
	config.Planner = *planner

	geocoder, err := s.GetGeocoderConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load geocoder config: %w", err)
	}
	config.Geocoder = *geocoder

	return config, nil
}

// GetRESTConfig returns the REST server configuration from the database
func (s *SQLiteProvider) GetRESTConfig() (*RESTServerData, error) {
	query := `
		SELECT listen_addr, http_port, tls_cert_path, tls_key_path
		FROM rest_server
		WHERE config_id = (SELECT id FROM configs WHERE name = 'default')
	`

	rest := &RESTServerData{}
	var listenAddr, tlsCertPath, tlsKeyPath sql.NullString
	var httpPort sql.NullInt64

	err := s.db.QueryRow(query).Scan(&listenAddr, &httpPort, &tlsCertPath, &tlsKeyPath)
	if err == sql.ErrNoRows {
		return rest, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query REST config: %w", err)
	}

	if listenAddr.Valid {
		rest.ListenAddr = listenAddr.String
	}
	if httpPort.Valid {
		rest.HTTPPort = int(httpPort.Int64)
	}
	if tlsCertPath.Valid {
		rest.TLSCertPath = tlsCertPath.String
	}
	if tlsKeyPath.Valid {
		rest.TLSKeyPath = tlsKeyPath.String
	}

	origins, err := s.getCORSOrigins()
	if err != nil {
		return nil, err
	}
	rest.CORSOrigins = origins

	return rest, nil
}

func (s *SQLiteProvider) getCORSOrigins() ([]string, error) {
	rows, err := s.db.Query(`
		SELECT origin FROM cors_origins
		WHERE config_id = (SELECT id FROM configs WHERE name = 'default')
		ORDER BY origin
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query CORS origins: %w", err)
	}
	defer rows.Close()

	var origins []string
	for rows.Next() {
		var origin string
		if err := rows.Scan(&origin); err != nil {
			return nil, fmt.Errorf("failed to scan CORS origin row: %w", err)
		}
		origins = append(origins, origin)
	}
	return origins, rows.Err()
}

// GetPlannerConfig returns the trip-planner configuration from the database
func (s *SQLiteProvider) GetPlannerConfig() (*PlannerData, error) {
	query := `
		SELECT base_url, timeout_seconds
		FROM planner
		WHERE config_id = (SELECT id FROM configs WHERE name = 'default')
	`

	planner := &PlannerData{}
	var baseURL sql.NullString
	var timeout sql.NullInt64

	err := s.db.QueryRow(query).Scan(&baseURL, &timeout)
	if err == sql.ErrNoRows {
		return planner, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query planner config: %w", err)
	}

	if baseURL.Valid {
		planner.BaseURL = baseURL.String
	}
	if timeout.Valid {
		planner.TimeoutSeconds = int(timeout.Int64)
	}
	return planner, nil
}

// GetGeocoderConfig returns the geocoder configuration from the database
func (s *SQLiteProvider) GetGeocoderConfig() (*GeocoderData, error) {
	query := `
		SELECT endpoint, token, timeout_seconds
		FROM geocoder
		WHERE config_id = (SELECT id FROM configs WHERE name = 'default')
	`

	geocoder := &GeocoderData{}
	var endpoint, token sql.NullString
	var timeout sql.NullInt64

	err := s.db.QueryRow(query).Scan(&endpoint, &token, &timeout)
	if err == sql.ErrNoRows {
		return geocoder, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query geocoder config: %w", err)
	}

	if endpoint.Valid {
		geocoder.Endpoint = endpoint.String
	}
	if token.Valid {
		geocoder.Token = token.String
	}
	if timeout.Valid {
		geocoder.TimeoutSeconds = int(timeout.Int64)
	}
	return geocoder, nil
}

// IsReadOnly returns false; SQLite configurations can be updated in place
func (s *SQLiteProvider) IsReadOnly() bool {
	return false
}

// Close closes the database connection
func (s *SQLiteProvider) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
