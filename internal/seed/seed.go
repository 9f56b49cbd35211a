package seed

import (
	"context"
	"errors"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/prepsphere/backend/internal/app/models"
	appRepos "github.com/prepsphere/backend/internal/app/repositories"
	pkgAuth "github.com/prepsphere/backend/internal/pkg/auth"
)

// Default bootstrap accounts. Passwords can be overridden through the
// environment; the defaults are only suitable for local development.
const (
	defaultAdminEmail = "admin@prepsphere.app"
	defaultTPOEmail   = "tpo@prepsphere.app"
)

// CreateDefaultData creates the bootstrap admin and placement-officer
// accounts if they do not exist yet.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default accounts...")
	var finalErr error

	accounts := []struct {
		email     string
		firstName string
		lastName  string
		role      appModels.RoleType
		envVar    string
	}{
		{defaultAdminEmail, "Portal", "Admin", appModels.RoleAdmin, "SEED_ADMIN_PASSWORD"},
		{defaultTPOEmail, "Placement", "Officer", appModels.RoleTPO, "SEED_TPO_PASSWORD"},
	}

	for _, account := range accounts {
		exists, err := userRepo.EmailExists(ctx, account.email)
		if err != nil {
			lgr.Error().Err(err).Str("email", account.email).Msg("Error checking default account")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if exists {
			continue
		}

		password := os.Getenv(account.envVar)
		if password == "" {
			password = "changeme123"
		}

		hash, err := pkgAuth.HashPassword(password)
		if err != nil {
			lgr.Error().Err(err).Str("email", account.email).Msg("Error hashing default account password")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		user := &appModels.User{
			Email:        account.email,
			PasswordHash: &hash,
			FirstName:    account.firstName,
			LastName:     account.lastName,
			Role:         account.role,
			IsActive:     true,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			lgr.Error().Err(err).Str("email", account.email).Msg("Error creating default account")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		lgr.Info().
			Str("email", account.email).
			Str("role", string(account.role)).
			Msg("Default account created")
	}

	return finalErr
}
