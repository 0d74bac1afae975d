// Package seed loads the bootstrap user accounts from a CSV file. There is
// no registration endpoint; the seed file is the only way accounts come into
// existence.
package seed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/assignhub/assignhub/internal/app/models"
	"github.com/assignhub/assignhub/internal/app/repositories"
	"github.com/assignhub/assignhub/internal/pkg/apperrors"
	"github.com/assignhub/assignhub/internal/pkg/auth"
)

// csvColumns is the required header of the seed file, in order.
var csvColumns = []string{"first_name", "last_name", "email", "password"}

// LoadUsers reads the CSV at path and creates an account per row. Rows whose
// email already exists are skipped, so the seed is safe to re-run. A missing
// file is logged and ignored; the service can still serve requests, it just
// has no accounts to authenticate.
func LoadUsers(ctx context.Context, path string, users repositories.UserStore, lgr zerolog.Logger) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			lgr.Warn().Str("path", path).Msg("User seed file not found, skipping account seeding")
			return nil
		}
		return fmt.Errorf("error opening seed file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = len(csvColumns)

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("error reading seed header: %w", err)
	}
	for i, col := range csvColumns {
		if strings.TrimSpace(header[i]) != col {
			return fmt.Errorf("unexpected seed header %q, want %v", header, csvColumns)
		}
	}

	created, skipped := 0, 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("error reading seed row: %w", err)
		}

		user, err := buildUser(record)
		if err != nil {
			lgr.Error().Err(err).Str("email", record[2]).Msg("Skipping invalid seed row")
			continue
		}

		exists, err := users.EmailExists(ctx, user.Email)
		if err != nil {
			return fmt.Errorf("error checking seed user %s: %w", user.Email, err)
		}
		if exists {
			skipped++
			continue
		}

		if err := users.Create(ctx, user); err != nil {
			if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
				skipped++
				continue
			}
			return fmt.Errorf("error creating seed user %s: %w", user.Email, err)
		}
		created++
	}

	lgr.Info().Int("created", created).Int("skipped", skipped).Str("path", path).Msg("User accounts seeded")
	return nil
}

// buildUser converts a CSV row into a user with a hashed password.
func buildUser(record []string) (*models.User, error) {
	email := strings.TrimSpace(record[2])
	password := record[3]
	if email == "" || password == "" {
		return nil, errors.New("empty email or password")
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	return &models.User{
		FirstName: strings.TrimSpace(record[0]),
		LastName:  strings.TrimSpace(record[1]),
		Email:     email,
		Password:  hashed,
	}, nil
}
