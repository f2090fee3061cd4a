package api

import (
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Rethinkk/pam-registry/internal/models"
)

// listAssets returns all assets, optionally filtered by ?q= (name substring,
// case-insensitive) and ?type= (type code), newest first.
func (s *Server) listAssets(c *gin.Context) {
	assets, err := s.svc.Assets.QueryAll()
	if err != nil {
		s.respondError(c, err)
		return
	}

	q := strings.ToLower(strings.TrimSpace(c.Query("q")))
	typeCode := c.Query("type")
	out := make([]models.Asset, 0, len(assets))
	for _, a := range assets {
		if q != "" && !strings.Contains(strings.ToLower(a.Name), q) {
			continue
		}
		if typeCode != "" && a.TypeCode != typeCode {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	c.JSON(http.StatusOK, out)
}

func (s *Server) createAsset(c *gin.Context) {
	var a models.Asset
	if err := c.ShouldBindJSON(&a); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := models.ValidateAsset(a); err != nil {
		s.respondError(c, err)
		return
	}
	saved, err := s.svc.CreateAsset(a)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

func (s *Server) getAsset(c *gin.Context) {
	a, ok, err := s.svc.Assets.FindByID(c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	if !ok {
		notFound(c, "asset")
		return
	}
	c.JSON(http.StatusOK, a)
}

func (s *Server) updateAsset(c *gin.Context) {
	existing, ok, err := s.svc.Assets.FindByID(c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	if !ok {
		notFound(c, "asset")
		return
	}

	var a models.Asset
	if err := c.ShouldBindJSON(&a); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	// id and display number are immutable
	a.ID = existing.ID
	a.AssetNumber = existing.AssetNumber
	if err := models.ValidateAsset(a); err != nil {
		s.respondError(c, err)
		return
	}
	saved, err := s.svc.Assets.Upsert(a)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (s *Server) deleteAsset(c *gin.Context) {
	removed, err := s.svc.DeleteAsset(c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	if !removed {
		notFound(c, "asset")
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listAssetDocuments(c *gin.Context) {
	docs, err := s.links.DocumentsForAsset(c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

func (s *Server) listAssetPeople(c *gin.Context) {
	people, err := s.links.PersonsForAsset(c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	if people == nil {
		people = []models.Person{}
	}
	c.JSON(http.StatusOK, people)
}
