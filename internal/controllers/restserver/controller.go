// Package restserver implements the dispatcher console's HTTP surface: the
// trip-planning proxy, the geocoding endpoints, the log sheet rendering
// endpoint, and the embedded console page.
package restserver

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"sync"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/openhaul/dispatch/internal/geocode"
	"github.com/openhaul/dispatch/internal/log"
	"github.com/openhaul/dispatch/internal/planner"
	"github.com/openhaul/dispatch/pkg/config"
)

var (
	//go:embed all:assets
	content embed.FS
)

// Controller represents the REST server controller
type Controller struct {
	ctx        context.Context
	wg         *sync.WaitGroup
	restConfig config.RESTServerData
	Server     http.Server
	FS         *fs.FS
	logger     *zap.SugaredLogger
	handlers   *Handlers

	Planner  *planner.Client
	Geocoder *geocode.Client
	Resolver *geocode.Resolver
}

// NewController creates a new REST server controller
func NewController(ctx context.Context, wg *sync.WaitGroup, rc config.RESTServerData,
	plannerClient *planner.Client, geocoder *geocode.Client, logger *zap.SugaredLogger) (*Controller, error) {

	if plannerClient == nil {
		return nil, fmt.Errorf("a trip-planner client is required")
	}

	ctrl := &Controller{
		ctx:        ctx,
		wg:         wg,
		restConfig: rc,
		logger:     logger,
		Planner:    plannerClient,
		Geocoder:   geocoder,
		Resolver:   geocode.NewResolver(geocoder),
	}

	// If a ListenAddr was not provided, listen on all interfaces
	if rc.ListenAddr == "" {
		logger.Info("rest.listen_addr not provided; defaulting to 0.0.0.0 (all interfaces)")
		rc.ListenAddr = "0.0.0.0"
	}

	// Set default HTTP port if not specified
	if rc.HTTPPort == 0 {
		logger.Info("rest.http_port not provided; defaulting to 8080")
		rc.HTTPPort = 8080
	}

	if !geocoder.HasToken() {
		logger.Info("no geocoder token configured - location features will degrade to sentinels")
	}

	ctrl.handlers = NewHandlers(ctrl)

	// Set up embedded filesystem for assets
	assetsFS, _ := fs.Sub(fs.FS(content), "assets")
	ctrl.FS = &assetsFS

	router := ctrl.setupRouter()
	ctrl.Server.Addr = fmt.Sprintf("%v:%v", rc.ListenAddr, rc.HTTPPort)
	ctrl.Server.Handler = router

	return ctrl, nil
}

// StartController starts the REST server
func (c *Controller) StartController() error {
	log.Info("Starting REST server controller...")
	c.wg.Add(1)

	go func() {
		defer c.wg.Done()

		if c.restConfig.TLSCertPath != "" && c.restConfig.TLSKeyPath != "" {
			if err := c.Server.ListenAndServeTLS(c.restConfig.TLSCertPath, c.restConfig.TLSKeyPath); err != http.ErrServerClosed {
				log.Errorf("REST server error: %v", err)
			}
		} else {
			if err := c.Server.ListenAndServe(); err != http.ErrServerClosed {
				log.Errorf("REST server error: %v", err)
			}
		}
	}()

	go func() {
		<-c.ctx.Done()
		log.Info("Shutting down the REST server...")
		c.Resolver.Close()
		c.Server.Shutdown(context.Background())
	}()

	return nil
}

// setupRouter configures the HTTP router with all endpoints
func (c *Controller) setupRouter() *mux.Router {
	router := mux.NewRouter()

	router.Use(c.requestIDMiddleware)
	router.Use(c.loggingMiddleware)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/trips/plan", c.handlers.PlanTrip).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/geocode/search", c.handlers.SearchPlaces).Methods(http.MethodGet)
	api.HandleFunc("/geocode/reverse", c.handlers.ReverseGeocode).Methods(http.MethodGet)
	api.HandleFunc("/geocode/retrieve/{id}", c.handlers.RetrieveCoordinates).Methods(http.MethodGet)
	api.HandleFunc("/logsheets/render", c.handlers.RenderLogSheet).Methods(http.MethodPost, http.MethodOptions)

	if len(c.restConfig.CORSOrigins) > 0 {
		api.Use(mux.MiddlewareFunc(handlers.CORS(
			handlers.AllowedOrigins(c.restConfig.CORSOrigins),
			handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
			handlers.AllowedHeaders([]string{"Content-Type"}),
		)))
	}

	// Console page and static assets
	router.HandleFunc("/", c.handlers.ServeIndex).Methods(http.MethodGet)
	router.PathPrefix("/").Handler(http.FileServer(http.FS(*c.FS)))

	return router
}
