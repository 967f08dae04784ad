package directory

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Service wraps directory business rules around a Repository. Constraint
// violations are detected before the write so a rejected request never
// reaches the database; the column constraints remain the backstop.
type Service struct {
	repo     Repository
	validate *validator.Validate
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, validate: validator.New()}
}

// Create stores a new user and returns it with its assigned id.
func (s *Service) Create(ctx context.Context, params CreateParams) (*User, error) {
	if err := s.checkParams(params); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, params)
}

// Get returns the user with the given id.
func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	return s.repo.Get(ctx, id)
}

// GetByUsername returns the user with the given username.
func (s *Service) GetByUsername(ctx context.Context, username string) (*User, error) {
	return s.repo.GetByUsername(ctx, username)
}

// Update overwrites the provided fields of the user with the given id. A
// username change is re-checked against the uniqueness invariant.
func (s *Service) Update(ctx context.Context, id int64, params UpdateParams) (*User, error) {
	if params.IsEmpty() {
		return nil, fmt.Errorf("%w: update requires at least one field", ErrConstraint)
	}
	if err := s.checkParams(params); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, params)
}

// Delete removes the user with the given id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// DeleteByUsername removes the user with the given username.
func (s *Service) DeleteByUsername(ctx context.Context, username string) error {
	return s.repo.DeleteByUsername(ctx, username)
}

func (s *Service) checkParams(params any) error {
	err := s.validate.Struct(params)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		first := fieldErrs[0]
		return &FieldError{Field: first.Field(), Rule: first.Tag()}
	}
	return fmt.Errorf("directory: validate params: %w", err)
}
