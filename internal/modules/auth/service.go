package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"sportshub/internal/document"
	"sportshub/internal/domain"
	"sportshub/internal/notification"
	"sportshub/internal/pkg/validator"
	"sportshub/internal/repository"
)

type Service struct {
	users            UserRepository
	tokens           TokenIssuer
	guard            LoginGuard
	docs             Documents
	mailer           Mailer
	tasks            TaskRunner
	allowAdminSignup bool
}

func NewService(
	users UserRepository,
	tokens TokenIssuer,
	guard LoginGuard,
	docs Documents,
	mailer Mailer,
	tasks TaskRunner,
	allowAdminSignup bool,
) *Service {
	return &Service{
		users:            users,
		tokens:           tokens,
		guard:            guard,
		docs:             docs,
		mailer:           mailer,
		tasks:            tasks,
		allowAdminSignup: allowAdminSignup,
	}
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// ValidateAccount applies the account rules in a fixed order. taken is consulted right
// after the username pattern; a nil password skips the password rules.
func ValidateAccount(ctx context.Context, a Account, password *string, taken func(ctx context.Context, username string) (bool, error)) error {
	a.Username = strings.TrimSpace(a.Username)
	a.Email = strings.TrimSpace(a.Email)
	a.Phone = strings.TrimSpace(a.Phone)

	errs := validator.Validate(a)
	for _, f := range []string{"Username", "Email", "Phone"} {
		if errs[f] == "required" {
			return ErrMissingFields
		}
	}
	if password != nil && *password == "" {
		return ErrMissingFields
	}
	if errs["Username"] != "" {
		return ErrInvalidUsername
	}

	if taken != nil {
		exists, err := taken(ctx, a.Username)
		if err != nil {
			return err
		}
		if exists {
			return ErrUsernameTaken
		}
	}

	switch {
	case errs["Email"] != "":
		return ErrInvalidEmail
	case errs["Phone"] != "":
		return ErrInvalidPhone
	case password != nil && !validator.IsStrongPassword(*password):
		return ErrWeakPassword
	}

	if !domain.UserRole(strings.TrimSpace(a.Role)).Valid() {
		return ErrInvalidRole
	}
	return nil
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	account := Account{
		Username: strings.TrimSpace(req.Username),
		Email:    strings.TrimSpace(req.Email),
		Phone:    strings.TrimSpace(req.Phone),
		Role:     strings.TrimSpace(req.Role),
	}

	err := ValidateAccount(ctx, account, &req.Password, func(ctx context.Context, username string) (bool, error) {
		return s.users.UsernameTaken(ctx, username, 0)
	})
	if err != nil {
		return nil, err
	}
	if domain.UserRole(account.Role) == domain.RoleAdmin && !s.allowAdminSignup {
		return nil, ErrAdminSignup
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		Username:     account.Username,
		PasswordHash: hash,
		Role:         domain.UserRole(account.Role),
		Email:        account.Email,
		Phone:        account.Phone,
		Details: &domain.UserDetails{
			AddressLine1: req.AddressLine1,
			AddressLine2: req.AddressLine2,
			AddressLine3: req.AddressLine3,
		},
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	s.welcome(*u)
	return u, nil
}

func (s *Service) welcome(u domain.User) {
	s.tasks.Submit("auth.welcome", func(ctx context.Context) error {
		return s.mailer.Send(ctx, notification.Message{
			To:      u.Email,
			Subject: "Email Acknowledgement",
			Body:    fmt.Sprintf("Hello %s,\n\nAccount created successfully.\n\n- Team", u.Username),
		})
	})

	s.tasks.Submit("auth.registration_details", func(ctx context.Context) error {
		path, err := s.docs.RegistrationDetails(u)
		if err != nil {
			return err
		}
		att, err := notification.FileAttachment(path, document.ContentType)
		if err != nil {
			return err
		}
		return s.mailer.Send(ctx, notification.Message{
			To:          u.Email,
			Subject:     "Your Registration Details",
			Body:        "Please find attached your registration details.",
			Attachments: []notification.Attachment{att},
		})
	})
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, ErrMissingFields
	}

	locked, err := s.guard.Locked(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("check lockout: %w", err)
	}
	if locked {
		return nil, ErrLoginLocked
	}

	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, s.failedAttempt(ctx, username)
		}
		return nil, err
	}
	if u.IsDeleted {
		return nil, ErrAccountDeactivated
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, s.failedAttempt(ctx, username)
	}

	if err := s.guard.Reset(ctx, username); err != nil {
		return nil, fmt.Errorf("reset lockout: %w", err)
	}

	token, err := s.tokens.GenerateToken(u.ID, u.Username, string(u.Role))
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &LoginResult{
		Token: token,
		User:  UserPublic{ID: u.ID, Username: u.Username, Role: u.Role},
	}, nil
}

func (s *Service) failedAttempt(ctx context.Context, username string) error {
	if _, err := s.guard.Fail(ctx, username); err != nil {
		return fmt.Errorf("record failed login: %w", err)
	}
	return ErrInvalidCredentials
}

func (s *Service) ChangePassword(ctx context.Context, actor domain.Actor, req ChangePasswordRequest) error {
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return ErrMissingFields
	}

	u, err := s.users.GetByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidCredentials
		}
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)) != nil {
		return ErrInvalidCredentials
	}
	if !validator.IsStrongPassword(req.NewPassword) {
		return ErrWeakPassword
	}

	hash, err := HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, u.ID, hash)
}
