package services

import (
	"context"
	"testing"

	"parfumerie_back_end/internal/models"
	"parfumerie_back_end/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func reviewsWithRatings(ratings ...int) []models.Review {
	reviews := make([]models.Review, 0, len(ratings))
	for _, r := range ratings {
		reviews = append(reviews, models.Review{UserID: primitive.NewObjectID(), Rating: r})
	}
	return reviews
}

func TestAverageRating(t *testing.T) {
	tests := []struct {
		name    string
		ratings []int
		want    float64
	}{
		{"aucun avis", nil, 0},
		{"un seul avis", []int{4}, 4},
		{"moyenne exacte", []int{4, 5}, 4.5},
		{"arrondi au dixième supérieur", []int{1, 2, 2}, 1.7},
		{"arrondi au dixième inférieur", []int{5, 5, 3}, 4.3},
		{"toutes les notes identiques", []int{5, 5, 5, 5}, 5},
		{"notes extrêmes", []int{1, 5}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AverageRating(reviewsWithRatings(tt.ratings...)))
		})
	}
}

type fakeProductStore struct {
	products map[primitive.ObjectID]models.Product
	setAvg   map[primitive.ObjectID]float64
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{
		products: make(map[primitive.ObjectID]models.Product),
		setAvg:   make(map[primitive.ObjectID]float64),
	}
}

func (f *fakeProductStore) List(context.Context) ([]models.Product, error) {
	out := make([]models.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProductStore) Get(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, store.ErrProductNotFound
	}
	return &p, nil
}

func (f *fakeProductStore) ByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Product, error) {
	out := make(map[primitive.ObjectID]models.Product)
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (f *fakeProductStore) AddReview(_ context.Context, id primitive.ObjectID, review models.Review, newAverage float64) error {
	p, ok := f.products[id]
	if !ok {
		return store.ErrProductNotFound
	}
	for _, r := range p.Reviews {
		if r.UserID == review.UserID {
			return store.ErrAlreadyReviewed
		}
	}
	p.Reviews = append(p.Reviews, review)
	p.AverageRating = newAverage
	f.products[id] = p
	return nil
}

func (f *fakeProductStore) SetAverageRating(_ context.Context, id primitive.ObjectID, average float64) error {
	f.setAvg[id] = average
	p := f.products[id]
	p.AverageRating = average
	f.products[id] = p
	return nil
}

func (f *fakeProductStore) AppendImage(_ context.Context, id primitive.ObjectID, url string) error {
	p, ok := f.products[id]
	if !ok {
		return store.ErrProductNotFound
	}
	p.Images = append(p.Images, url)
	f.products[id] = p
	return nil
}

func TestRepairRating(t *testing.T) {
	fake := newFakeProductStore()
	prev := store.Products
	store.Products = fake
	t.Cleanup(func() { store.Products = prev })

	id := primitive.NewObjectID()

	t.Run("répare une moyenne qui a dérivé", func(t *testing.T) {
		product := models.Product{
			ID:            id,
			Reviews:       reviewsWithRatings(4, 5),
			AverageRating: 3.2, // valeur stockée périmée
		}
		fake.products[id] = product

		require.NoError(t, RepairRating(context.Background(), &product))
		assert.Equal(t, 4.5, product.AverageRating)
		assert.Equal(t, 4.5, fake.setAvg[id])
	})

	t.Run("ne réécrit pas une moyenne correcte", func(t *testing.T) {
		fake2 := newFakeProductStore()
		store.Products = fake2

		product := models.Product{ID: id, Reviews: reviewsWithRatings(3), AverageRating: 3}
		require.NoError(t, RepairRating(context.Background(), &product))
		assert.Empty(t, fake2.setAvg)
	})

	t.Run("liste vide vaut zéro", func(t *testing.T) {
		product := models.Product{ID: id, Reviews: nil, AverageRating: 2.5}
		require.NoError(t, RepairRating(context.Background(), &product))
		assert.Equal(t, 0.0, product.AverageRating)
	})
}
