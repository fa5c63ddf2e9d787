package services

import (
	"errors"

	"github.com/jackc/pgx/v4"
)

func isNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
