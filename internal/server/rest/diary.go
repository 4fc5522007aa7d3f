package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/diary/internal/common"
	"github.com/dmitrijs2005/diary/internal/server/models"
	"github.com/gin-gonic/gin"
)

// entryRequest is used for both create and update. Pointer fields tell an
// absent field apart from an empty string.
type entryRequest struct {
	Title  *string `json:"title"`
	Writer *string `json:"writer"`
	Date   *string `json:"date"`
	Text   *string `json:"text"`
	Image  *string `json:"image"`
}

func (r *entryRequest) toPatch() *models.EntryPatch {
	return &models.EntryPatch{
		Title:  r.Title,
		Writer: r.Writer,
		Date:   r.Date,
		Text:   r.Text,
		Image:  r.Image,
	}
}

type entryResponse struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Writer string `json:"writer"`
	Date   string `json:"date"`
	Text   string `json:"text"`
	Image  string `json:"image"`
}

func toEntryResponse(e *models.Entry) entryResponse {
	return entryResponse{
		ID:     e.ID,
		Title:  e.Title,
		Writer: e.Writer,
		Date:   e.Date,
		Text:   e.Text,
		Image:  e.Image,
	}
}

func (s *Server) listEntries(c *gin.Context) {
	items, err := s.entries.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, "")
		return
	}

	out := make([]entryResponse, 0, len(items))
	for _, e := range items {
		out = append(out, toEntryResponse(e))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) createEntry(c *gin.Context) {
	var req entryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusUnprocessableEntity, "invalid entry body")
		return
	}

	e, err := s.entries.Create(c.Request.Context(), req.toPatch())
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			handleServiceError(c, err, "title, writer, date, text and image are required")
			return
		}
		handleServiceError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, toEntryResponse(e))
}

func (s *Server) updateEntry(c *gin.Context) {
	var req entryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusUnprocessableEntity, "invalid entry body")
		return
	}

	e, err := s.entries.Update(c.Request.Context(), c.Param("id"), req.toPatch())
	if err != nil {
		s.entryError(c, err)
		return
	}
	c.JSON(http.StatusOK, toEntryResponse(e))
}

func (s *Server) deleteEntry(c *gin.Context) {
	if err := s.entries.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.entryError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Entry deleted successfully"})
}

func (s *Server) entryError(c *gin.Context, err error) {
	if errors.Is(err, common.ErrorNotFound) {
		handleServiceError(c, err, detailEntryNotFound)
		return
	}
	handleServiceError(c, err, "")
}

func (s *Server) presignUpload(c *gin.Context) {
	key, url, err := s.images.PresignUpload(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "upload_url": url})
}

func (s *Server) presignDownload(c *gin.Context) {
	url, err := s.images.PresignDownload(c.Request.Context(), c.Query("key"))
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			handleServiceError(c, err, "query parameter key is required")
			return
		}
		handleServiceError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
