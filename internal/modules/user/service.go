package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"sportshub/internal/document"
	"sportshub/internal/domain"
	"sportshub/internal/modules/auth"
	"sportshub/internal/notification"
	"sportshub/internal/repository"
)

type Service struct {
	users      UserRepository
	bookings   BookingReader
	docs       Documents
	mailer     Mailer
	tasks      TaskRunner
	adminEmail string
}

func NewService(users UserRepository, bookings BookingReader, docs Documents, mailer Mailer, tasks TaskRunner, adminEmail string) *Service {
	return &Service{
		users:      users,
		bookings:   bookings,
		docs:       docs,
		mailer:     mailer,
		tasks:      tasks,
		adminEmail: adminEmail,
	}
}

func (s *Service) ActiveUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.ListActive(ctx)
}

func (s *Service) NonAdminUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.ListNonAdmin(ctx)
}

func (s *Service) load(ctx context.Context, id int64) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

// editable loads a live, non-admin account.
func (s *Service) editable(ctx context.Context, id int64) (*domain.User, error) {
	u, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.IsDeleted {
		return nil, ErrNotFound
	}
	if u.Role == domain.RoleAdmin {
		return nil, ErrAdminTarget
	}
	return u, nil
}

func (s *Service) UpdateUser(ctx context.Context, id int64, req UpdateUserRequest) (*domain.User, error) {
	u, err := s.editable(ctx, id)
	if err != nil {
		return nil, err
	}

	account := auth.Account{
		Username: strings.TrimSpace(req.Username),
		Email:    strings.TrimSpace(req.Email),
		Phone:    strings.TrimSpace(req.Phone),
		Role:     strings.TrimSpace(req.Role),
	}
	err = auth.ValidateAccount(ctx, account, nil, func(ctx context.Context, username string) (bool, error) {
		return s.users.UsernameTaken(ctx, username, id)
	})
	if err != nil {
		return nil, err
	}

	u.Username = account.Username
	u.Email = account.Email
	u.Phone = account.Phone
	u.Role = domain.UserRole(account.Role)
	if req.Details != nil {
		u.Details = &domain.UserDetails{
			AddressLine1: req.Details.AddressLine1,
			AddressLine2: req.Details.AddressLine2,
			AddressLine3: req.Details.AddressLine3,
		}
	}

	if err := s.users.UpdateProfile(ctx, u); err != nil {
		switch {
		case errors.Is(err, repository.ErrUsernameTaken):
			return nil, auth.ErrUsernameTaken
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.notify("user.updated", *u, "Profile Updated by Admin",
		fmt.Sprintf("Hi %s, your profile has been updated by admin. If this wasn't you, please contact support.", u.Username))
	return u, nil
}

// DeleteUser deactivates the account; the row and its bookings stay.
func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	u, err := s.editable(ctx, id)
	if err != nil {
		return err
	}
	if err := s.users.SetDeleted(ctx, id, true); err != nil {
		return err
	}

	s.notify("user.deactivated", *u, "Account Deactivated by Admin",
		fmt.Sprintf("Hi %s, your account has been deactivated by an administrator.", u.Username))
	return nil
}

func (s *Service) RestoreUser(ctx context.Context, id int64) error {
	u, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := s.users.SetDeleted(ctx, id, false); err != nil {
		return err
	}

	s.notify("user.restored", *u, "Account Restored",
		fmt.Sprintf("Hi %s, your account has been restored by an administrator.", u.Username))
	return nil
}

func (s *Service) Profile(ctx context.Context, id int64) (*Profile, error) {
	u, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	bookings, err := s.bookings.List(ctx, repository.BookingFilter{
		UserID:    id,
		SortField: repository.SortByCreatedAt,
	})
	if err != nil {
		return nil, err
	}

	p := &Profile{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Phone:    u.Phone,
		Role:     u.Role,
		Status:   StatusActive,
		Address:  u.Details,
		Bookings: bookings,
	}
	if u.IsDeleted {
		p.Status = StatusDeactivated
	}

	p.BookingStats.Total = len(bookings)
	for _, b := range bookings {
		switch b.Status {
		case domain.BookingPending:
			p.BookingStats.Pending++
		case domain.BookingApproved:
			p.BookingStats.Approved++
		case domain.BookingRejected:
			p.BookingStats.Rejected++
		}
	}
	return p, nil
}

// SendUserList renders the active users and mails the PDF to the admin inbox.
func (s *Service) SendUserList() {
	s.tasks.Submit("user.list_pdf", func(ctx context.Context) error {
		users, err := s.users.ListActive(ctx)
		if err != nil {
			return err
		}
		path, err := s.docs.UserList(users)
		if err != nil {
			return err
		}
		att, err := notification.FileAttachment(path, document.ContentType)
		if err != nil {
			return err
		}
		return s.mailer.Send(ctx, notification.Message{
			To:          s.adminEmail,
			Subject:     "Registered Users PDF",
			Body:        "Attached is the latest list of registered users.",
			Attachments: []notification.Attachment{att},
		})
	})
}

func (s *Service) notify(name string, u domain.User, subject, body string) {
	s.tasks.Submit(name, func(ctx context.Context) error {
		return s.mailer.Send(ctx, notification.Message{To: u.Email, Subject: subject, Body: body})
	})
}
