package field

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	Repository

	fields     map[int64]*Field
	created    *Field
	updated    *Field
	lastFilter Filter
}

func newFakeRepository(fields ...*Field) *fakeRepository {
	r := &fakeRepository{fields: map[int64]*Field{}}
	for _, f := range fields {
		r.fields[f.ID] = f
	}
	return r
}

func (r *fakeRepository) Create(ctx context.Context, f *Field) error {
	f.ID = int64(len(r.fields) + 1)
	copied := *f
	r.created = &copied
	r.fields[f.ID] = &copied
	return nil
}

func (r *fakeRepository) GetByID(ctx context.Context, id int64) (*Field, error) {
	if f, ok := r.fields[id]; ok {
		copied := *f
		return &copied, nil
	}
	return nil, ErrNotFound
}

func (r *fakeRepository) List(ctx context.Context, filter Filter) ([]*Field, int, error) {
	r.lastFilter = filter
	return nil, 0, nil
}

func (r *fakeRepository) Update(ctx context.Context, f *Field) error {
	copied := *f
	r.updated = &copied
	r.fields[f.ID] = &copied
	return nil
}

func (r *fakeRepository) Deactivate(ctx context.Context, id int64) error {
	f, ok := r.fields[id]
	if !ok {
		return ErrNotFound
	}
	f.IsActive = false
	return nil
}

func TestCreateField(t *testing.T) {
	repo := newFakeRepository()
	s := NewService(repo, nil)

	f, err := s.Create(context.Background(), CreateRequest{
		Name:         "  Lapangan Senayan A  ",
		SportType:    "futsal",
		PricePerHour: 150,
	})
	require.NoError(t, err)
	assert.Equal(t, "Lapangan Senayan A", f.Name)
	assert.Equal(t, "IDR", f.Currency)
	assert.True(t, f.IsActive)
}

func TestCreateFieldValidation(t *testing.T) {
	s := NewService(newFakeRepository(), nil)

	_, err := s.Create(context.Background(), CreateRequest{Name: "  ", PricePerHour: 100})
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = s.Create(context.Background(), CreateRequest{Name: "Court", PricePerHour: 0})
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestSearchForcesActiveOnly(t *testing.T) {
	repo := newFakeRepository()
	s := NewService(repo, nil)

	_, _, err := s.Search(context.Background(), Filter{ActiveOnly: false})
	require.NoError(t, err)
	assert.True(t, repo.lastFilter.ActiveOnly)

	_, _, err = s.ListAll(context.Background(), Filter{})
	require.NoError(t, err)
	assert.False(t, repo.lastFilter.ActiveOnly)
}

func TestUpdateFieldPatch(t *testing.T) {
	repo := newFakeRepository(&Field{ID: 3, Name: "Old", PricePerHour: 100, Currency: "IDR", IsActive: true})
	s := NewService(repo, nil)

	name := "New Name"
	price := 175.0
	f, err := s.Update(context.Background(), 3, UpdateRequest{Name: &name, PricePerHour: &price})
	require.NoError(t, err)
	assert.Equal(t, "New Name", f.Name)
	assert.Equal(t, 175.0, f.PricePerHour)
	assert.Equal(t, "IDR", f.Currency)

	bad := 0.0
	_, err = s.Update(context.Background(), 3, UpdateRequest{PricePerHour: &bad})
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestDeleteFieldIsSoft(t *testing.T) {
	repo := newFakeRepository(&Field{ID: 5, Name: "Court", IsActive: true})
	s := NewService(repo, nil)

	require.NoError(t, s.Delete(context.Background(), 5))
	assert.False(t, repo.fields[5].IsActive)

	assert.ErrorIs(t, s.Delete(context.Background(), 99), ErrNotFound)
}
