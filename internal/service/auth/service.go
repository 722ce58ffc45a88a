package auth

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/clinic-admin/internal/model"
	"github.com/jwalitptl/clinic-admin/internal/repository"
	"github.com/jwalitptl/clinic-admin/pkg/auth"
	"github.com/jwalitptl/clinic-admin/pkg/errors"
)

// AdminDisplayName is how the administrator appears in the session.
const AdminDisplayName = "CEO"

type Service struct {
	admins     repository.AdminRepository
	therapists repository.TherapistRepository
	jwtSvc     auth.JWTService
}

func NewService(admins repository.AdminRepository, therapists repository.TherapistRepository, jwtSvc auth.JWTService) *Service {
	return &Service{
		admins:     admins,
		therapists: therapists,
		jwtSvc:     jwtSvc,
	}
}

// Login accepts the administrator's username or a therapist's email, each
// with its stored password.
func (s *Service) Login(ctx context.Context, req model.LoginRequest) (*model.TokenResponse, error) {
	session, err := s.authenticate(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.jwtSvc.GenerateAccessToken(*session)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	log.Info().Str("user", session.Email).Bool("admin", session.IsAdmin).Msg("login")
	return &model.TokenResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt.Unix(),
		Session:     *session,
	}, nil
}

func (s *Service) authenticate(ctx context.Context, username, password string) (*model.Session, error) {
	admin, err := s.admins.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get admin user: %w", err)
	}
	if admin.Username != "" && username == admin.Username && password == admin.Password {
		return &model.Session{Email: admin.Username, Name: AdminDisplayName, IsAdmin: true}, nil
	}

	t, err := s.therapists.FindByCredentials(ctx, username, password)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errors.Unauthorized(model.ErrInvalidCredentials)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check credentials: %w", err)
	}
	return &model.Session{Email: t.Email, Name: t.Name, TherapistID: t.ID}, nil
}

// ValidateToken returns the claims of a live, unrevoked token.
func (s *Service) ValidateToken(token string) (*model.TokenClaims, error) {
	claims, err := s.jwtSvc.ValidateToken(token)
	if err != nil {
		return nil, errors.Unauthorized(err)
	}
	return claims, nil
}

func (s *Service) Logout(claims *model.TokenClaims) {
	s.jwtSvc.Revoke(claims)
}

// ChangePassword sets a new password for the logged-in user.
func (s *Service) ChangePassword(ctx context.Context, session model.Session, req model.ChangePasswordRequest) error {
	if req.NewPassword != req.ConfirmPassword {
		return errors.BadRequest("passwords do not match", nil)
	}
	if len(req.NewPassword) < model.MinPasswordLength {
		return errors.BadRequest(fmt.Sprintf("password must be at least %d characters", model.MinPasswordLength), nil)
	}

	if session.IsAdmin {
		admin, err := s.admins.Get(ctx)
		if err != nil {
			return fmt.Errorf("failed to get admin user: %w", err)
		}
		if admin.Username != session.Email {
			return errors.NotFound("user", nil)
		}
		if err := s.admins.SetPassword(ctx, req.NewPassword); err != nil {
			return fmt.Errorf("failed to change password: %w", err)
		}
		return nil
	}

	found, err := s.therapists.SetPassword(ctx, session.Email, req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}
	if !found {
		return errors.NotFound("user", nil)
	}
	return nil
}
