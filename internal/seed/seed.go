package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	appModels "github.com/lilnurik/uniadmit/internal/app/models"
	appRepos "github.com/lilnurik/uniadmit/internal/app/repositories"
	"github.com/lilnurik/uniadmit/internal/config"
	"github.com/lilnurik/uniadmit/internal/pkg/apperrors"
	"github.com/lilnurik/uniadmit/internal/pkg/auth"
)

// CreateDefaultData seeds the first admin account and a starter faculty set.
// Everything here is idempotent so it runs on every startup.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	adminRepo := appRepos.NewAdminRepository(dbPool)
	facultyRepo := appRepos.NewFacultyRepository(dbPool)

	var finalErr error

	if cfg.Admin.Password == "" {
		lgr.Warn().Msg("No admin password configured, skipping admin seed")
	} else {
		hash, err := auth.HashPassword(cfg.Admin.Password)
		if err != nil {
			lgr.Error().Err(err).Msg("Error hashing seed admin password")
			finalErr = errors.Join(finalErr, err)
		} else {
			id, err := adminRepo.Create(ctx, &appModels.Admin{
				Username:     cfg.Admin.Username,
				PasswordHash: hash,
			})
			if err != nil {
				lgr.Error().Err(err).Msg("Error creating default admin")
				finalErr = errors.Join(finalErr, err)
			} else if id > 0 {
				lgr.Info().Str("username", cfg.Admin.Username).Msg("Default admin account created")
			}
		}
	}

	starters := []struct {
		name    string
		program appModels.Program
	}{
		{"Computer Science", appModels.ProgramBachelor},
		{"Economics", appModels.ProgramBachelor},
		{"Computer Science", appModels.ProgramMaster},
	}

	for _, s := range starters {
		faculty := &appModels.Faculty{
			Name:     appModels.FormatFacultyName(s.name, s.program),
			Program:  s.program,
			IsActive: true,
		}
		if _, err := facultyRepo.Create(ctx, faculty); err != nil && !errors.Is(err, apperrors.ErrFacultyAlreadyExists) {
			lgr.Error().Err(err).Str("name", faculty.Name).Msg("Error creating starter faculty")
			finalErr = errors.Join(finalErr, err)
		}
	}

	return finalErr
}
