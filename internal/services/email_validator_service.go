package services

import (
	"context"
)

type EmailValidator interface {
	Validate(ctx context.Context, email string) error
}

type LocalValidator struct{}

func NewLocalValidator() *LocalValidator {
	return &LocalValidator{}
}

func (v *LocalValidator) Validate(
	ctx context.Context,
	email string,
) error {
	// Format was already checked at the boundary, so just accept
	return nil
}
