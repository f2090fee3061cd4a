package api

import (
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Rethinkk/pam-registry/internal/models"
)

func (s *Server) listPeople(c *gin.Context) {
	people, err := s.svc.People.QueryAll()
	if err != nil {
		s.respondError(c, err)
		return
	}
	q := strings.ToLower(strings.TrimSpace(c.Query("q")))
	out := make([]models.Person, 0, len(people))
	for _, p := range people {
		if q != "" && !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Email), q) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	c.JSON(http.StatusOK, out)
}

func (s *Server) createPerson(c *gin.Context) {
	var p models.Person
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := s.validatePerson(c, p); err != nil {
		return
	}
	saved, err := s.svc.People.Upsert(p)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

func (s *Server) getPerson(c *gin.Context) {
	p, ok, err := s.svc.People.FindByID(c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	if !ok {
		notFound(c, "person")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) updatePerson(c *gin.Context) {
	existing, ok, err := s.svc.People.FindByID(c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	if !ok {
		notFound(c, "person")
		return
	}

	var p models.Person
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	p.ID = existing.ID
	if err := s.validatePerson(c, p); err != nil {
		return
	}
	saved, err := s.svc.People.Upsert(p)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (s *Server) deletePerson(c *gin.Context) {
	removed, err := s.svc.DeletePerson(c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	if !removed {
		notFound(c, "person")
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listPersonDocuments(c *gin.Context) {
	docs, err := s.links.DocumentsForPerson(c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

// validatePerson runs the person rules against the current list and writes
// the error response itself. Returns non-nil when the request was rejected.
func (s *Server) validatePerson(c *gin.Context, p models.Person) error {
	existing, err := s.svc.People.QueryAll()
	if err != nil {
		s.respondError(c, err)
		return err
	}
	if err := models.ValidatePerson(p, existing); err != nil {
		s.respondError(c, err)
		return err
	}
	return nil
}
