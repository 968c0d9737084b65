package services

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"clinic-cart-service/apperrors"
	"clinic-cart-service/models"
	"clinic-cart-service/repository"

	"go.uber.org/zap"
)

// FeedbackService records visitor feedback and exports it as CSV for the
// clinic staff.
type FeedbackService struct {
	log    repository.FeedbackLog
	logger *zap.Logger
}

func NewFeedbackService(log repository.FeedbackLog, logger *zap.Logger) *FeedbackService {
	return &FeedbackService{log: log, logger: logger}
}

// Record validates and appends one feedback entry. Email is optional;
// rating must be 1 to 5.
func (s *FeedbackService) Record(ctx context.Context, entry models.FeedbackEntry) (*models.FeedbackEntry, error) {
	entry.Name = strings.TrimSpace(entry.Name)
	entry.Mobile = strings.TrimSpace(entry.Mobile)
	entry.Service = strings.TrimSpace(entry.Service)

	if entry.Name == "" || entry.Mobile == "" || entry.Service == "" {
		return nil, apperrors.ErrInvalidFeedback
	}
	if entry.Rating < 1 || entry.Rating > 5 {
		return nil, apperrors.ErrInvalidFeedback
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	if err := s.log.Append(ctx, entry); err != nil {
		s.logger.Error("feedback append failed", zap.Error(err))
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &entry, nil
}

var csvHeader = []string{"Name", "Mobile", "Email", "Service", "Rating", "Feedback", "Date"}

// ExportCSV writes all recorded feedback to w, header first.
func (s *FeedbackService) ExportCSV(ctx context.Context, w io.Writer) error {
	entries, err := s.log.List(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, fe := range entries {
		row := []string{
			fe.Name,
			fe.Mobile,
			fe.Email,
			fe.Service,
			strconv.Itoa(fe.Rating),
			fe.Comment,
			fe.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
