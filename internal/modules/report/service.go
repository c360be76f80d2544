package report

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"sportshub/internal/domain"
	"sportshub/internal/notification"
	"sportshub/internal/pkg/validator"
	"sportshub/internal/repository"
)

type Service struct {
	reports    ReportRepository
	users      UserReader
	mailer     Mailer
	tasks      TaskRunner
	adminEmail string
}

func NewService(reports ReportRepository, users UserReader, mailer Mailer, tasks TaskRunner, adminEmail string) *Service {
	return &Service{
		reports:    reports,
		users:      users,
		mailer:     mailer,
		tasks:      tasks,
		adminEmail: adminEmail,
	}
}

func validateReport(req CreateReportRequest) error {
	errs := validator.Validate(req)
	if errs == nil {
		return nil
	}
	for _, tag := range errs {
		if tag == "required" {
			return ErrMissingFields
		}
	}
	switch {
	case errs["Title"] != "":
		return ErrTitleLength
	case errs["Description"] != "":
		return ErrDescriptionLength
	default:
		return ErrInvalidCategory
	}
}

func (s *Service) Submit(ctx context.Context, actor domain.Actor, req CreateReportRequest) (*domain.Report, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.Category = strings.TrimSpace(req.Category)
	if err := validateReport(req); err != nil {
		return nil, err
	}

	rep := &domain.Report{
		UserID:      actor.ID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Status:      domain.ReportPending,
	}
	if err := s.reports.Create(ctx, rep); err != nil {
		return nil, err
	}

	saved := *rep
	s.tasks.Submit("report.admin_alert", func(ctx context.Context) error {
		return s.mailer.Send(ctx, notification.Message{
			To:      s.adminEmail,
			Subject: "New Problem Report: " + saved.Title,
			Body: fmt.Sprintf("A new problem has been reported:\n\nCategory: %s\n\nDescription: %s\n\nPlease check the admin dashboard to respond.",
				saved.Category, saved.Description),
		})
	})
	s.tasks.Submit("report.confirmation", func(ctx context.Context) error {
		u, err := s.users.GetByID(ctx, saved.UserID)
		if err != nil {
			return err
		}
		return s.mailer.Send(ctx, notification.Message{
			To:      u.Email,
			Subject: "Problem Report Confirmation",
			Body: fmt.Sprintf("Hi %s,\n\nYour problem report %q has been submitted successfully. We will review it shortly.\n\nThank you,\nSports Hub Team",
				u.Username, saved.Title),
		})
	})

	return rep, nil
}

func (s *Service) MyReports(ctx context.Context, actor domain.Actor) ([]domain.Report, error) {
	return s.reports.ListByUser(ctx, actor.ID)
}

func (s *Service) List(ctx context.Context, rawStatus string) ([]domain.Report, error) {
	status := domain.ReportStatus(strings.TrimSpace(rawStatus))
	if status != "" && !status.Valid() {
		return nil, ErrInvalidStatus
	}
	return s.reports.List(ctx, status)
}

func (s *Service) Respond(ctx context.Context, id int64, req RespondRequest) (*domain.Report, error) {
	response := strings.TrimSpace(req.Response)
	status := domain.ReportStatus(strings.TrimSpace(req.Status))
	if response == "" || status == "" {
		return nil, ErrMissingResponse
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	rep, err := s.reports.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.reports.Respond(ctx, id, response, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	rep.Response = response
	rep.Status = status

	if rep.User != nil {
		owner := *rep.User
		title := rep.Title
		s.tasks.Submit("report.response", func(ctx context.Context) error {
			return s.mailer.Send(ctx, notification.Message{
				To:      owner.Email,
				Subject: "Update on Your Report: " + title,
				Body: fmt.Sprintf("Hi %s,\n\nWe have an update on your reported issue %q.\n\nStatus: %s\n\nResponse: %s\n\nThank you,\nSports Hub Team",
					owner.Username, title, status, response),
			})
		})
	}
	return rep, nil
}
