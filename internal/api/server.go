// Package api is the HTTP surface the form/view layer talks to. Handlers
// validate at the boundary, then call into the registry, link manager, blob
// store and report builder.
package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Rethinkk/pam-registry/internal/blob"
	"github.com/Rethinkk/pam-registry/internal/config"
	"github.com/Rethinkk/pam-registry/internal/links"
	"github.com/Rethinkk/pam-registry/internal/models"
	"github.com/Rethinkk/pam-registry/internal/notify"
	"github.com/Rethinkk/pam-registry/internal/registry"
	"github.com/Rethinkk/pam-registry/internal/report"
)

// Server wires the registry core behind HTTP handlers.
type Server struct {
	cfg     *config.Config
	svc     *registry.Service
	links   *links.Manager
	blobs   blob.Store
	reports *report.Builder
	hub     *notify.Hub
	logger  *zap.Logger
}

func NewServer(
	cfg *config.Config,
	svc *registry.Service,
	lm *links.Manager,
	blobs blob.Store,
	reports *report.Builder,
	hub *notify.Hub,
	log *zap.Logger,
) *Server {
	return &Server{
		cfg:     cfg,
		svc:     svc,
		links:   lm,
		blobs:   blobs,
		reports: reports,
		hub:     hub,
		logger:  log,
	}
}

// Router builds the gin engine with all routes attached.
func (s *Server) Router() *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		ExposeHeaders:    []string{"Content-Length"},
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		v1.GET("/asset-types", s.listAssetTypes)
		v1.GET("/events", gin.WrapH(s.hub))

		v1.GET("/assets", s.listAssets)
		v1.POST("/assets", s.createAsset)
		v1.GET("/assets/:id", s.getAsset)
		v1.PUT("/assets/:id", s.updateAsset)
		v1.DELETE("/assets/:id", s.deleteAsset)
		v1.GET("/assets/:id/documents", s.listAssetDocuments)
		v1.GET("/assets/:id/people", s.listAssetPeople)

		v1.GET("/documents", s.listDocuments)
		v1.POST("/documents", s.createDocument)
		v1.GET("/documents/:id", s.getDocument)
		v1.DELETE("/documents/:id", s.deleteDocument)
		v1.GET("/documents/:id/file", s.downloadDocument)

		v1.GET("/people", s.listPeople)
		v1.POST("/people", s.createPerson)
		v1.GET("/people/:id", s.getPerson)
		v1.PUT("/people/:id", s.updatePerson)
		v1.DELETE("/people/:id", s.deletePerson)
		v1.GET("/people/:id/documents", s.listPersonDocuments)

		v1.POST("/links/asset-document", s.linkAssetDocument)
		v1.DELETE("/links/asset-document", s.unlinkAssetDocument)
		v1.POST("/links/asset-person", s.linkAssetPerson)
		v1.DELETE("/links/asset-person", s.unlinkAssetPerson)
		v1.POST("/links/document-person", s.linkDocumentPerson)
		v1.DELETE("/links/document-person", s.unlinkDocumentPerson)

		v1.GET("/reports/registry", s.buildReport)
		v1.GET("/reports/categories", s.listReportCategories)
	}

	return router
}

// Run starts the server on the configured port.
func (s *Server) Run() error {
	if s.cfg.ServerPort == "" {
		return errors.New("server port must be specified in configuration")
	}
	s.logger.Info("Starting server", zap.String("port", s.cfg.ServerPort))
	return s.Router().Run(":" + s.cfg.ServerPort)
}

func (s *Server) listAssetTypes(c *gin.Context) {
	c.JSON(http.StatusOK, models.AssetSchemas)
}

// respondError maps core errors onto HTTP responses: validation problems are
// the caller's to fix, anything else is a storage-side failure that must not
// be swallowed.
func (s *Server) respondError(c *gin.Context, err error) {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": verr.Messages})
		return
	}
	s.logger.Error("Request failed",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

func notFound(c *gin.Context, what string) {
	c.JSON(http.StatusNotFound, gin.H{"error": what + " not found"})
}
