package application

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-user-registration/config"
	"github.com/oksasatya/go-ddd-user-registration/internal/domain/entity"
	repo "github.com/oksasatya/go-ddd-user-registration/internal/domain/repository"
	vo "github.com/oksasatya/go-ddd-user-registration/internal/domain/valueobject"
	"github.com/oksasatya/go-ddd-user-registration/pkg/mailer"
	tpl "github.com/oksasatya/go-ddd-user-registration/pkg/mailer/templates"
)

const msgMissingCredentials = "Email and password are required."

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
)

var (
	registrationsTotal    = expvar.NewInt("registrations_total")
	registrationsRejected = expvar.NewInt("registrations_rejected_total")
)

// JobPublisher enqueues background jobs (welcome emails).
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// UserIndexer makes new users searchable.
type UserIndexer interface {
	IndexUser(ctx context.Context, u *entity.User, registeredAt time.Time) error
}

type RegistrationService struct {
	Repo      repo.UserRepository
	Publisher JobPublisher // optional
	Indexer   UserIndexer  // optional
	Logger    *logrus.Logger
	Cfg       *config.Config

	now func() time.Time
}

func NewRegistrationService(r repo.UserRepository, pub JobPublisher, idx UserIndexer, logger *logrus.Logger, cfg *config.Config) *RegistrationService {
	return &RegistrationService{
		Repo:      r,
		Publisher: pub,
		Indexer:   idx,
		Logger:    logger,
		Cfg:       cfg,
		now:       time.Now,
	}
}

type RegisterInput struct {
	Email    string
	Password string
}

type RegisterOutput struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Register validates the credentials, rejects an email that is already stored and
// persists a new user under a fresh ID. Welcome mail and search indexing are best
// effort and never fail the call.
func (s *RegistrationService) Register(ctx context.Context, in RegisterInput) (*RegisterOutput, error) {
	u, err := s.register(ctx, in)
	if err != nil {
		registrationsRejected.Add(1)
		return nil, err
	}
	registrationsTotal.Add(1)

	registeredAt := s.now()
	s.enqueueWelcome(ctx, u, registeredAt)
	s.index(ctx, u, registeredAt)

	return &RegisterOutput{ID: u.ID().String(), Email: u.Email().String()}, nil
}

func (s *RegistrationService) register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	if in.Email == "" || in.Password == "" {
		return nil, vo.NewValidationError(msgMissingCredentials)
	}
	email, err := vo.NewEmail(in.Email)
	if err != nil {
		return nil, err
	}
	password, err := vo.NewPasswordFromPlainText(in.Password)
	if err != nil {
		return nil, err
	}

	existing, err := s.Repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailAlreadyRegistered
	}

	u := entity.NewUser(vo.GenerateID(), email, password)
	if err := s.Repo.Save(ctx, u); err != nil {
		if errors.Is(err, repo.ErrEmailConflict) {
			// lost a race with a concurrent registration
			return nil, ErrEmailAlreadyRegistered
		}
		return nil, fmt.Errorf("save user: %w", err)
	}
	if s.Logger != nil {
		s.Logger.WithField("user_id", u.ID().String()).Info("user registered")
	}
	return u, nil
}

func (s *RegistrationService) enqueueWelcome(ctx context.Context, u *entity.User, at time.Time) {
	if s.Publisher == nil || s.Cfg == nil || !s.Cfg.MailSendEnabled {
		return
	}
	data := tpl.NewWelcomeData(s.Cfg, u.Email().String(), tpl.WithTime(at))
	if err := s.Publisher.PublishJSON(ctx, mailer.NewWelcomeJob(u.Email().String(), data)); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID().String()).Warn("failed to publish welcome email job")
	}
}

func (s *RegistrationService) index(ctx context.Context, u *entity.User, at time.Time) {
	if s.Indexer == nil {
		return
	}
	if err := s.Indexer.IndexUser(ctx, u, at); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID().String()).Warn("es index failed")
	}
}
