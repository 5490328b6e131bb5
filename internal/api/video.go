package api

import (
	"errors"
	"log"
	"net/http"

	"actor-portfolio/internal/media"

	"github.com/gin-gonic/gin"
)

type VideoHandler struct {
	streamer *media.Streamer
}

func NewVideoHandler(streamer *media.Streamer) *VideoHandler {
	return &VideoHandler{streamer: streamer}
}

// ServeVideo streams a media file, honouring a single byte range.
func (h *VideoHandler) ServeVideo(c *gin.Context) {
	resp, err := h.streamer.Open(c.Param("filename"), c.GetHeader("Range"))
	if err != nil {
		if !errors.Is(err, media.ErrNotFound) {
			log.Printf("Error opening video %q: %v", c.Param("filename"), err)
		}
		c.JSON(http.StatusNotFound, gin.H{"error": msgVideoNotFound})
		return
	}
	defer resp.Close()

	resp.Header(c.Writer.Header())
	c.Status(resp.Status)
	c.Writer.WriteHeaderNow()

	if c.Request.Method == http.MethodHead {
		return
	}

	n, err := resp.WriteTo(c.Request.Context(), c.Writer)
	if err != nil {
		// Short of Content-Length, so net/http closes the connection.
		log.Printf("Video stream %q aborted after %d/%d bytes: %v", c.Param("filename"), n, resp.ContentLength, err)
		c.Abort()
	}
}

// ListVideos returns the names of the streamable media files.
func (h *VideoHandler) ListVideos(c *gin.Context) {
	names, err := h.streamer.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list videos"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"videos": names})
}
