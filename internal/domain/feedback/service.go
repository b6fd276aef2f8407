// Package feedback collects user feedback about the service itself. It is
// the one part of the API with state; everything else is computed per
// request.
package feedback

import (
	"context"
	"regexp"
	"strings"

	"github.com/medfin/medfin/internal/platform/errs"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*Feedback, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, errs.Validation("name", req.Name, "must not be empty")
	}
	if !emailPattern.MatchString(req.Email) {
		return nil, errs.Validation("email", req.Email, "must be a valid email address")
	}
	if !validCategory(req.Category) {
		return nil, errs.Validation("category", req.Category, "must be one of "+strings.Join(Categories, ", "))
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, errs.Validation("rating", req.Rating, "must be between 1 and 5")
	}
	f := &Feedback{
		Name:     strings.TrimSpace(req.Name),
		Email:    req.Email,
		Category: req.Category,
		Rating:   req.Rating,
		Comments: strings.TrimSpace(req.Comments),
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Feedback, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	return s.repo.Stats(ctx)
}

func validCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}
