package api

import (
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Rethinkk/pam-registry/internal/blob"
	"github.com/Rethinkk/pam-registry/internal/models"
)

func (s *Server) listDocuments(c *gin.Context) {
	docs, err := s.svc.Documents.QueryAll()
	if err != nil {
		s.respondError(c, err)
		return
	}
	q := strings.ToLower(strings.TrimSpace(c.Query("q")))
	out := make([]models.Document, 0, len(docs))
	for _, d := range docs {
		if q != "" && !strings.Contains(strings.ToLower(d.Title), q) &&
			!strings.Contains(strings.ToLower(d.FileName), q) {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	c.JSON(http.StatusOK, out)
}

// createDocument takes a multipart form: the file part plus optional title,
// notes, uploadedById and recipientIds fields. The payload goes to the blob
// store first; the record only keeps the reference.
func (s *Server) createDocument(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		s.respondError(c, &models.ValidationError{Messages: []string{"a file is required"}})
		return
	}
	if fileHeader.Size > s.cfg.MaxFileBytes {
		s.respondError(c, &models.ValidationError{
			Messages: []string{"file exceeds the maximum allowed size"},
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		s.respondError(c, err)
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	ref, err := s.blobs.Put(c.Request.Context(), file, fileHeader.Size, contentType)
	if err != nil {
		s.respondError(c, err)
		return
	}

	title := strings.TrimSpace(c.PostForm("title"))
	if title == "" {
		title = fileHeader.Filename
	}
	doc := models.Document{
		Title:        title,
		FileName:     fileHeader.Filename,
		FileSize:     fileHeader.Size,
		MimeType:     contentType,
		FileRef:      ref,
		UploadedByID: c.PostForm("uploadedById"),
		RecipientIDs: c.PostFormArray("recipientIds"),
		Notes:        c.PostForm("notes"),
	}
	if err := models.ValidateDocument(doc); err != nil {
		s.respondError(c, err)
		return
	}
	saved, err := s.svc.CreateDocument(doc)
	if err != nil {
		// the record did not persist; drop the orphaned payload
		if rmErr := s.blobs.Remove(c.Request.Context(), ref); rmErr != nil {
			s.logger.Warn("Failed to remove orphaned payload",
				zap.String("ref", ref), zap.Error(rmErr))
		}
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

func (s *Server) getDocument(c *gin.Context) {
	d, ok, err := s.svc.Documents.FindByID(c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	if !ok {
		notFound(c, "document")
		return
	}
	c.JSON(http.StatusOK, d)
}

func (s *Server) deleteDocument(c *gin.Context) {
	d, ok, err := s.svc.Documents.FindByID(c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	if !ok {
		notFound(c, "document")
		return
	}
	removed, err := s.svc.DeleteDocument(d.ID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if removed && d.FileRef != "" && !blob.IsDataURI(d.FileRef) {
		if err := s.blobs.Remove(c.Request.Context(), d.FileRef); err != nil {
			s.logger.Warn("Failed to remove payload of deleted document",
				zap.String("ref", d.FileRef), zap.Error(err))
		}
	}
	c.Status(http.StatusNoContent)
}

// downloadDocument streams the payload. Legacy records that still inline a
// data: URI are decoded on the fly.
func (s *Server) downloadDocument(c *gin.Context) {
	d, ok, err := s.svc.Documents.FindByID(c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	if !ok {
		notFound(c, "document")
		return
	}

	if blob.IsDataURI(d.FileRef) {
		data, contentType, err := blob.DecodeDataURI(d.FileRef)
		if err != nil {
			s.respondError(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+d.FileName+`"`)
		c.Data(http.StatusOK, contentType, data)
		return
	}

	payload, contentType, err := s.blobs.Get(c.Request.Context(), d.FileRef)
	if err != nil {
		if err == blob.ErrNotFound {
			notFound(c, "document payload")
			return
		}
		s.respondError(c, err)
		return
	}
	defer payload.Close()

	c.Header("Content-Disposition", `attachment; filename="`+d.FileName+`"`)
	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, payload); err != nil {
		s.logger.Error("Failed to stream payload",
			zap.String("ref", d.FileRef), zap.Error(err))
	}
}
