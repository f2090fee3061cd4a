package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Rethinkk/pam-registry/internal/links"
	"github.com/Rethinkk/pam-registry/internal/report"
)

type assetDocumentLink struct {
	AssetID    string `json:"assetId" binding:"required"`
	DocumentID string `json:"docId" binding:"required"`
}

type assetPersonLink struct {
	AssetID  string `json:"assetId" binding:"required"`
	PersonID string `json:"personId" binding:"required"`
}

type documentPersonLink struct {
	DocumentID string `json:"docId" binding:"required"`
	PersonID   string `json:"personId" binding:"required"`
	Relation   string `json:"relation" binding:"required,oneof=uploadedBy recipient"`
}

func (s *Server) linkAssetDocument(c *gin.Context) {
	var req assetDocumentLink
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "assetId and docId are required"})
		return
	}
	if err := s.links.LinkAssetDocument(req.AssetID, req.DocumentID); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) unlinkAssetDocument(c *gin.Context) {
	var req assetDocumentLink
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "assetId and docId are required"})
		return
	}
	if err := s.links.UnlinkAssetDocument(req.AssetID, req.DocumentID); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) linkAssetPerson(c *gin.Context) {
	var req assetPersonLink
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "assetId and personId are required"})
		return
	}
	if err := s.links.LinkAssetPerson(req.AssetID, req.PersonID); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) unlinkAssetPerson(c *gin.Context) {
	var req assetPersonLink
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "assetId and personId are required"})
		return
	}
	if err := s.links.UnlinkAssetPerson(req.AssetID, req.PersonID); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) linkDocumentPerson(c *gin.Context) {
	var req documentPersonLink
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "docId, personId and relation (uploadedBy|recipient) are required"})
		return
	}
	if err := s.links.LinkDocumentPerson(req.DocumentID, req.PersonID, links.PersonRelation(req.Relation)); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) unlinkDocumentPerson(c *gin.Context) {
	var req documentPersonLink
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "docId, personId and relation (uploadedBy|recipient) are required"})
		return
	}
	if err := s.links.UnlinkDocumentPerson(req.DocumentID, req.PersonID, links.PersonRelation(req.Relation)); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// buildReport streams a registry PDF. ?kind=total|by-category|by-selection,
// with ?category= or ?id= (repeatable) narrowing the selection.
func (s *Server) buildReport(c *gin.Context) {
	input := report.Input{Kind: report.KindTotal}
	switch c.Query("kind") {
	case "", string(report.KindTotal):
	case string(report.KindByCategory):
		input.Kind = report.KindByCategory
		input.CategoryCode = c.Query("category")
	case string(report.KindBySelection):
		input.Kind = report.KindBySelection
		input.SelectedIDs = c.QueryArray("id")
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown report kind"})
		return
	}

	fileName := "PAM_Report_" + time.Now().Format("20060102-1504") + ".pdf"
	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Header("Content-Type", "application/pdf")
	c.Status(http.StatusOK)
	if err := s.reports.Build(input, c.Writer); err != nil {
		s.logger.Error("Report build failed", zap.Error(err))
	}
}

func (s *Server) listReportCategories(c *gin.Context) {
	cats, err := s.reports.CategoriesInUse()
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cats)
}
