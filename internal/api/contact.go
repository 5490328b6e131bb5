package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"actor-portfolio/internal/mailer"
	"actor-portfolio/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	msgThanks      = "Thank you for your message! I will get back to you soon."
	msgInvalidMail = "Please enter a valid email address."
	msgRateLimited = "Too many messages. Please try again later."
	msgSendFailed  = "Sorry, there was an error sending your message. Please try again or contact me directly."
)

type InquiryStore interface {
	Create(ctx context.Context, inquiry *models.ContactInquiry) error
	UpdateEmailStatus(ctx context.Context, uuid, status, errMsg string) error
}

type MailQueue interface {
	Submit(job mailer.Job) bool
}

type RateLimiter interface {
	Allow(key string) bool
}

// ContactRequest accepts both JSON and form posts. Length limits match the
// varchar(255) columns of models.ContactInquiry.
type ContactRequest struct {
	Name         string `json:"name" form:"name" binding:"required,max=255"`
	Email        string `json:"email" form:"email" binding:"required,email,max=255"`
	Production   string `json:"production" form:"production" binding:"max=255"`
	Role         string `json:"role" form:"role" binding:"max=255"`
	Timeline     string `json:"timeline" form:"timeline" binding:"max=255"`
	Message      string `json:"message" form:"message" binding:"required"`
	ResumeAttach bool   `json:"resume_attach" form:"resume_attach"`
}

type ContactHandler struct {
	store   InquiryStore
	mail    MailQueue
	limiter RateLimiter
}

func NewContactHandler(store InquiryStore, mail MailQueue, limiter RateLimiter) *ContactHandler {
	return &ContactHandler{store: store, mail: mail, limiter: limiter}
}

func isJSON(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), gin.MIMEJSON)
}

func (h *ContactHandler) reply(c *gin.Context, status int, success bool, message, formStatus string) {
	if isJSON(c) {
		c.JSON(status, gin.H{"success": success, "message": message})
		return
	}
	c.Redirect(http.StatusSeeOther, "/contact?status="+formStatus)
}

// Submit validates, stores and queues a contact form submission.
func (h *ContactHandler) Submit(c *gin.Context) {
	if h.limiter != nil && !h.limiter.Allow(c.ClientIP()) {
		log.Printf("Contact form rate limited for %s", c.ClientIP())
		h.reply(c, http.StatusTooManyRequests, false, msgRateLimited, "limited")
		return
	}

	var req ContactRequest
	if err := c.ShouldBind(&req); err != nil {
		h.reply(c, http.StatusBadRequest, false, validationMessage(err), "error")
		return
	}

	inquiry := &models.ContactInquiry{
		UUID:            uuid.New().String(),
		Name:            strings.TrimSpace(req.Name),
		Email:           strings.TrimSpace(req.Email),
		Production:      strings.TrimSpace(req.Production),
		Role:            strings.TrimSpace(req.Role),
		Timeline:        strings.TrimSpace(req.Timeline),
		Message:         strings.TrimSpace(req.Message),
		ResumeRequested: req.ResumeAttach,
		ClientIP:        c.ClientIP(),
		EmailStatus:     models.EmailStatusQueued,
	}
	if err := h.store.Create(c.Request.Context(), inquiry); err != nil {
		log.Printf("Error saving contact inquiry from %s: %v", inquiry.Email, err)
		h.reply(c, http.StatusInternalServerError, false, msgSendFailed, "error")
		return
	}

	job := mailer.Job{
		ID: inquiry.UUID,
		Inquiry: mailer.Inquiry{
			Name:            inquiry.Name,
			Email:           inquiry.Email,
			Production:      inquiry.Production,
			Role:            inquiry.Role,
			Timeline:        inquiry.Timeline,
			Message:         inquiry.Message,
			ResumeRequested: inquiry.ResumeRequested,
		},
	}
	if !h.mail.Submit(job) {
		if err := h.store.UpdateEmailStatus(c.Request.Context(), inquiry.UUID, models.EmailStatusDropped, "mail queue full"); err != nil {
			log.Printf("Error updating inquiry %s: %v", inquiry.UUID, err)
		}
	}

	h.reply(c, http.StatusOK, true, msgThanks, "sent")
}

// validationMessage reports missing fields first, then a bad address, then
// fields over their length limit.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid request body."
	}
	var missing, tooLong []string
	badEmail := false
	limit := ""
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			missing = append(missing, strings.ToLower(fe.Field()))
		case "email":
			badEmail = true
		case "max":
			tooLong = append(tooLong, strings.ToLower(fe.Field()))
			limit = fe.Param()
		}
	}
	if len(missing) > 0 {
		return "Missing required fields: " + strings.Join(missing, ", ")
	}
	if badEmail {
		return msgInvalidMail
	}
	if len(tooLong) > 0 {
		return "Fields too long (max " + limit + " characters): " + strings.Join(tooLong, ", ")
	}
	return "Invalid request body."
}

// RecordEmailResult stores each delivery outcome on its inquiry.
func RecordEmailResult(store InquiryStore) mailer.ResultFunc {
	return func(job mailer.Job, err error) {
		status, errMsg := models.EmailStatusSent, ""
		if err != nil {
			status, errMsg = models.EmailStatusFailed, err.Error()
		}
		if uerr := store.UpdateEmailStatus(context.Background(), job.ID, status, errMsg); uerr != nil {
			log.Printf("Error updating inquiry %s: %v", job.ID, uerr)
		}
	}
}
