package controllers

import (
	"fmt"
	"net/http"
	"time"

	"clinic-cart-service/models"
	"clinic-cart-service/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type FeedbackController struct {
	Feedback *services.FeedbackService
	Logger   *zap.Logger
}

func NewFeedbackController(feedback *services.FeedbackService, logger *zap.Logger) *FeedbackController {
	return &FeedbackController{
		Feedback: feedback,
		Logger:   logger,
	}
}

// Submit records a feedback entry
func (fc *FeedbackController) Submit(c *gin.Context) {
	var entry models.FeedbackEntry
	if err := c.ShouldBindJSON(&entry); err != nil {
		fc.Logger.Warn("invalid feedback payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	saved, err := fc.Feedback.Record(c.Request.Context(), entry)
	if err != nil {
		writeError(c, fc.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// ExportCSV streams all feedback as a CSV download
func (fc *FeedbackController) ExportCSV(c *gin.Context) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition",
		fmt.Sprintf("attachment; filename=feedback_%d.csv", time.Now().Unix()))

	if err := fc.Feedback.ExportCSV(c.Request.Context(), c.Writer); err != nil {
		fc.Logger.Error("feedback export failed", zap.Error(err))
		c.Status(http.StatusInternalServerError)
	}
}
