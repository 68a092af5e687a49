package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/wordpractice/internal/domain"
)

// mapError converts a pgx error about the catalogue of userID into a domain
// error. Context errors keep their identity. An unreachable database becomes
// domain.ErrTransport so sync falls back to the local copy, as it does for the
// HTTP backends.
func mapError(err error, entity string, userID uuid.UUID) error {
	if err == nil {
		return nil
	}
	wrap := func(target error) error {
		return fmt.Errorf("%s of user %s: %w", entity, userID, target)
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return wrap(err)
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return wrap(domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return wrap(domain.ErrAlreadyExists)
		case "23514", "22P02": // check_violation, invalid_text_representation
			return wrap(domain.ErrValidation)
		}
		return wrap(err)
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) || pgconn.Timeout(err) {
		return fmt.Errorf("%s of user %s: %w: %w", entity, userID, domain.ErrTransport, err)
	}
	return wrap(err)
}
