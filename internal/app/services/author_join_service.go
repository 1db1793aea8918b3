package services

import (
	"context"

	"github.com/yigit/collegesocial/internal/app/models"
)

// AuthorLookup resolves a batch of student ids to author summaries.
type AuthorLookup interface {
	GetAuthorSummaries(ctx context.Context, ids []int64) (map[int64]models.AuthorSummary, error)
}

// AuthorJoinService attaches roster store authors to content store posts.
type AuthorJoinService struct {
	students AuthorLookup
}

// NewAuthorJoinService creates a new AuthorJoinService
func NewAuthorJoinService(students AuthorLookup) *AuthorJoinService {
	return &AuthorJoinService{students: students}
}

// Attach sets Author on every post whose author exists, with one lookup for the whole
// batch. Order and every other field are preserved; unknown authors leave Author nil.
func (s *AuthorJoinService) Attach(ctx context.Context, posts []models.Post) ([]models.Post, error) {
	if len(posts) == 0 {
		return []models.Post{}, nil
	}

	seen := make(map[int64]struct{}, len(posts))
	ids := make([]int64, 0, len(posts))
	for _, p := range posts {
		if _, ok := seen[p.AuthorID]; ok {
			continue
		}
		seen[p.AuthorID] = struct{}{}
		ids = append(ids, p.AuthorID)
	}

	authors, err := s.students.GetAuthorSummaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]models.Post, len(posts))
	for i, p := range posts {
		if a, ok := authors[p.AuthorID]; ok {
			author := a
			p.Author = &author
		} else {
			p.Author = nil
		}
		out[i] = p
	}
	return out, nil
}
