package service

import (
	"errors"
	"log/slog"

	"github.com/sakif/sweet-memories/internal/apperror"
)

// passThrough keeps typed application errors (validation, not found,
// configuration) as they are and turns anything else into a dependency
// error. Only the latter is logged; a 404 is a normal outcome.
func passThrough(logger *slog.Logger, fallback string, err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	logger.Error(fallback, slog.String("error", err.Error()))
	return apperror.DependencyFailed(fallback, err)
}
