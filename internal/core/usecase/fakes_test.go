package usecase

import (
	"context"
	"fmt"

	"recommendation-service/internal/core/domain"

	"github.com/google/uuid"
)

// In-memory заглушки портов для тестов use case'ов.

type fakeInvestorRepo struct {
	investors map[uuid.UUID]*domain.Investor
	err       error
}

func newFakeInvestorRepo(investors ...*domain.Investor) *fakeInvestorRepo {
	m := make(map[uuid.UUID]*domain.Investor, len(investors))
	for _, inv := range investors {
		m[inv.ID] = inv
	}
	return &fakeInvestorRepo{investors: m}
}

func (f *fakeInvestorRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Investor, error) {
	if f.err != nil {
		return nil, f.err
	}
	inv, ok := f.investors[id]
	if !ok {
		return nil, fmt.Errorf("investor %s: %w", id, domain.ErrInvestorNotFound)
	}
	return inv, nil
}

type fakeListingStorage struct {
	listings []domain.Listing
	saved    [][]domain.Listing
	findErr  error
	saveErr  error
}

func (f *fakeListingStorage) FindAvailable(ctx context.Context) ([]domain.Listing, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.listings, nil
}

func (f *fakeListingStorage) GetByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	for i := range f.listings {
		if f.listings[i].ID == id {
			return &f.listings[i], nil
		}
	}
	return nil, fmt.Errorf("listing %s: %w", id, domain.ErrListingNotFound)
}

func (f *fakeListingStorage) BatchSave(ctx context.Context, listings []domain.Listing) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, listings)
	return nil
}

type fakeRecommendationRepo struct {
	recs      map[uuid.UUID]*domain.Recommendation
	saveErr   error
	updateErr error
}

func newFakeRecommendationRepo(recs ...*domain.Recommendation) *fakeRecommendationRepo {
	m := make(map[uuid.UUID]*domain.Recommendation, len(recs))
	for _, r := range recs {
		m[r.ID] = r
	}
	return &fakeRecommendationRepo{recs: m}
}

func (f *fakeRecommendationRepo) Save(ctx context.Context, rec domain.Recommendation) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.recs[rec.ID] = &rec
	return nil
}

func (f *fakeRecommendationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Recommendation, error) {
	rec, ok := f.recs[id]
	if !ok {
		return nil, fmt.Errorf("recommendation %s: %w", id, domain.ErrRecommendationNotFound)
	}
	copied := *rec
	return &copied, nil
}

func (f *fakeRecommendationRepo) FindPaginatedByInvestor(ctx context.Context, investorID uuid.UUID, limit, offset int) (*domain.PaginatedRecommendations, error) {
	items := []domain.Recommendation{}
	for _, r := range f.recs {
		if r.InvestorID == investorID {
			items = append(items, *r)
		}
	}
	return &domain.PaginatedRecommendations{
		Items:        items,
		TotalCount:   int64(len(items)),
		CurrentPage:  offset/limit + 1,
		ItemsPerPage: limit,
	}, nil
}

func (f *fakeRecommendationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RecommendationStatus) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	rec, ok := f.recs[id]
	if !ok {
		return fmt.Errorf("recommendation %s: %w", id, domain.ErrRecommendationNotFound)
	}
	rec.Status = status
	return nil
}

type fakeEventsPublisher struct {
	published []domain.Recommendation
	err       error
}

func (f *fakeEventsPublisher) PublishRecommendationCreated(ctx context.Context, rec domain.Recommendation) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, rec)
	return nil
}
