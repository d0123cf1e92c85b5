package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dkurilov/notehub/internal/common"
	"github.com/dkurilov/notehub/internal/dbx"
	"github.com/dkurilov/notehub/internal/logging"
	"github.com/dkurilov/notehub/internal/server/auth"
	"github.com/dkurilov/notehub/internal/server/config"
	"github.com/dkurilov/notehub/internal/server/googleauth"
	"github.com/dkurilov/notehub/internal/server/models"
	"github.com/dkurilov/notehub/internal/server/repositories/repomanager"
	userrepo "github.com/dkurilov/notehub/internal/server/repositories/users"
)

// IdentityService reconciles a verified Google identity with the local user
// store: every successful verification resolves to exactly one user record,
// creating or linking as needed, and ends with a minted access token.
type IdentityService struct {
	db                          *sql.DB
	repos                       repomanager.RepositoryManager
	verifier                    googleauth.Verifier
	logger                      logging.Logger
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

// NewIdentityService constructs an IdentityService.
func NewIdentityService(db *sql.DB, m repomanager.RepositoryManager, v googleauth.Verifier, l logging.Logger, cfg *config.Config) *IdentityService {
	return &IdentityService{
		db:                          db,
		repos:                       m,
		verifier:                    v,
		logger:                      l.With("module", "identity"),
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// Authenticate verifies the provider access token, resolves the external
// identity to a local user inside one transaction, and issues a bearer
// token for that user.
//
// Error policy: a provider rejection propagates as common.ErrExternalAuth;
// any other failure is logged in full here and replaced by
// common.ErrAuthenticationFailed so no internal detail reaches the caller.
func (s *IdentityService) Authenticate(ctx context.Context, providerToken string) (*models.User, string, error) {
	profile, err := s.verifier.Verify(ctx, providerToken)
	if err != nil {
		if errors.Is(err, common.ErrExternalAuth) {
			s.logger.Warn(ctx, "provider rejected token", "error", err.Error())
			return nil, "", common.ErrExternalAuth
		}
		s.logger.Error(ctx, "token introspection failed", "error", err.Error())
		return nil, "", common.ErrAuthenticationFailed
	}

	var user *models.User
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var resolveErr error
		user, resolveErr = s.resolve(ctx, s.repos.Users(tx), profile)
		return resolveErr
	})
	if err != nil {
		s.logger.Error(ctx, "identity resolution failed",
			"error", err.Error(), "provider_id", profile.Subject)
		return nil, "", common.ErrAuthenticationFailed
	}

	token, err := auth.GenerateToken(user.Username, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		s.logger.Error(ctx, "token generation failed", "error", err.Error())
		return nil, "", common.ErrAuthenticationFailed
	}

	return user, token, nil
}

// resolve maps a verified profile to exactly one user record.
//
// Outcomes:
//  1. no match           — create a user with a username derived from the
//     email local-part (numeric suffix on collision).
//  2. email match only   — link the provider id and picture onto the record.
//  3. provider id on file — steady-state login, no writes.
func (s *IdentityService) resolve(ctx context.Context, repo userrepo.Repository, profile *googleauth.Profile) (*models.User, error) {
	user, err := repo.GetByGoogleIDOrEmail(ctx, profile.Subject, profile.Email)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}

		username, err := s.deriveUsername(ctx, repo, profile.Email)
		if err != nil {
			return nil, err
		}

		created := &models.User{
			Email:    profile.Email,
			Username: username,
			GoogleID: &profile.Subject,
		}
		if profile.Picture != "" {
			created.ProfilePicture = &profile.Picture
		}
		return repo.Create(ctx, created)
	}

	if user.GoogleID == nil || *user.GoogleID == "" {
		var picture *string
		if profile.Picture != "" {
			picture = &profile.Picture
		}
		return repo.LinkGoogleAccount(ctx, user.ID, profile.Subject, picture)
	}

	return user, nil
}

// deriveUsername takes the email local-part and appends an incrementing
// numeric suffix (starting at 1) until the candidate is free. Usernames are
// sparse, so the loop terminates quickly in practice.
func (s *IdentityService) deriveUsername(ctx context.Context, repo userrepo.Repository, email string) (string, error) {
	base := email
	if i := strings.Index(email, "@"); i > 0 {
		base = email[:i]
	}

	candidate := base
	for suffix := 1; ; suffix++ {
		taken, err := repo.UsernameExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s%d", base, suffix)
	}
}
