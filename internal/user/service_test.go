package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkasetya/field-booking-backend/internal/auth"
)

type fakeRepository struct {
	Repository

	byEmail   map[string]*User
	byID      map[string]*User
	created   *User
	createErr error
	updated   *User
	lastLogin *time.Time
}

func newFakeRepository(users ...*User) *fakeRepository {
	r := &fakeRepository{
		byEmail: map[string]*User{},
		byID:    map[string]*User{},
	}
	for _, u := range users {
		r.byEmail[u.Email] = u
		r.byID[u.ID] = u
	}
	return r
}

func (r *fakeRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	if u, ok := r.byEmail[email]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, ErrNotFound
}

func (r *fakeRepository) GetByID(ctx context.Context, id string) (*User, error) {
	if u, ok := r.byID[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, ErrNotFound
}

func (r *fakeRepository) Create(ctx context.Context, u *User) error {
	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.byEmail[u.Email]; ok {
		return ErrEmailAlreadyUsed
	}
	u.ID = "user-" + u.Email
	u.CreatedAt = time.Now().UTC()
	copied := *u
	r.created = &copied
	r.byEmail[u.Email] = &copied
	r.byID[u.ID] = &copied
	return nil
}

func (r *fakeRepository) UpdateLastLogin(ctx context.Context, id string, t time.Time) error {
	r.lastLogin = &t
	return nil
}

func (r *fakeRepository) Update(ctx context.Context, u *User) error {
	copied := *u
	r.updated = &copied
	r.byID[u.ID] = &copied
	return nil
}

func (r *fakeRepository) Stats(ctx context.Context) (*Stats, error) {
	s := Stats{}
	for _, u := range r.byID {
		s.TotalUsers++
		if u.IsActive {
			s.ActiveUsers++
		}
		switch u.Role {
		case RoleAdmin:
			s.Admins++
		case RoleCustomer:
			s.Customers++
		}
	}
	return &s, nil
}

func newTestService(repo *fakeRepository) Service {
	hasher := auth.NewBcryptPasswordHasherWithCost(4)
	tokens := auth.NewJWTManager("test-secret", 15*time.Minute, 24*time.Hour)
	return NewService(repo, hasher, tokens)
}

func TestRegister(t *testing.T) {
	repo := newFakeRepository()
	s := newTestService(repo)

	u, pair, err := s.Register(context.Background(), RegisterInput{
		Name:     "Arka Setya",
		Email:    "  Arka@Example.COM ",
		Password: "supersecret",
	})
	require.NoError(t, err)

	assert.Equal(t, "arka@example.com", u.Email)
	assert.Equal(t, RoleCustomer, u.Role)
	assert.True(t, u.IsActive)
	assert.NotEqual(t, "supersecret", u.PasswordHash)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	require.NotNil(t, repo.created)
}

func TestRegisterValidation(t *testing.T) {
	s := newTestService(newFakeRepository())

	_, _, err := s.Register(context.Background(), RegisterInput{Name: "A", Email: " ", Password: "supersecret"})
	assert.ErrorIs(t, err, ErrEmailRequired)

	_, _, err = s.Register(context.Background(), RegisterInput{Name: "  ", Email: "a@b.com", Password: "supersecret"})
	assert.ErrorIs(t, err, ErrNameRequired)

	_, _, err = s.Register(context.Background(), RegisterInput{Name: "A", Email: "a@b.com", Password: "short"})
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeRepository(&User{ID: "u1", Email: "taken@example.com", IsActive: true})
	s := newTestService(repo)

	_, _, err := s.Register(context.Background(), RegisterInput{
		Name:     "Someone",
		Email:    "taken@example.com",
		Password: "supersecret",
	})
	assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
}

func registeredUser(t *testing.T, s Service) (*User, *TokenPair) {
	t.Helper()
	u, pair, err := s.Register(context.Background(), RegisterInput{
		Name:     "Arka",
		Email:    "arka@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	return u, pair
}

func TestLogin(t *testing.T) {
	repo := newFakeRepository()
	s := newTestService(repo)
	registeredUser(t, s)

	u, pair, err := s.Login(context.Background(), "arka@example.com", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, "arka@example.com", u.Email)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotNil(t, repo.lastLogin)
	assert.NotNil(t, u.LastLoginAt)
}

func TestLoginWrongPassword(t *testing.T) {
	s := newTestService(newFakeRepository())
	registeredUser(t, s)

	_, _, err := s.Login(context.Background(), "arka@example.com", "wrongpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	s := newTestService(newFakeRepository())

	_, _, err := s.Login(context.Background(), "nobody@example.com", "supersecret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	repo := newFakeRepository()
	s := newTestService(repo)
	u, _ := registeredUser(t, s)
	repo.byEmail[u.Email].IsActive = false

	_, _, err := s.Login(context.Background(), u.Email, "supersecret")
	assert.ErrorIs(t, err, ErrInactiveUser)
}

func TestRefresh(t *testing.T) {
	repo := newFakeRepository()
	s := newTestService(repo)
	_, pair := registeredUser(t, s)

	fresh, err := s.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, fresh.AccessToken)
	assert.NotEmpty(t, fresh.RefreshToken)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	s := newTestService(newFakeRepository())
	_, pair := registeredUser(t, s)

	_, err := s.Refresh(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshDeactivatedUser(t *testing.T) {
	repo := newFakeRepository()
	s := newTestService(repo)
	u, pair := registeredUser(t, s)
	repo.byID[u.ID].IsActive = false

	_, err := s.Refresh(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInactiveUser)
}

func TestUpdateProfile(t *testing.T) {
	repo := newFakeRepository()
	s := newTestService(repo)
	u, _ := registeredUser(t, s)

	name := "Arka S."
	phone := "+62-812-0000"
	got, err := s.UpdateProfile(context.Background(), u.ID, ProfileUpdate{Name: &name, Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "Arka S.", got.Name)
	assert.Equal(t, phone, *got.Phone)
	require.NotNil(t, repo.updated)
}

func TestUpdateProfilePasswordTooShort(t *testing.T) {
	repo := newFakeRepository()
	s := newTestService(repo)
	u, _ := registeredUser(t, s)

	short := "short"
	_, err := s.UpdateProfile(context.Background(), u.ID, ProfileUpdate{Password: &short})
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestChangeRole(t *testing.T) {
	repo := newFakeRepository()
	s := newTestService(repo)
	u, _ := registeredUser(t, s)

	got, err := s.ChangeRole(context.Background(), u.ID, RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, got.Role)

	_, err = s.ChangeRole(context.Background(), u.ID, Role("superuser"))
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestDeactivate(t *testing.T) {
	repo := newFakeRepository()
	s := newTestService(repo)
	u, _ := registeredUser(t, s)

	require.NoError(t, s.Deactivate(context.Background(), u.ID))
	assert.False(t, repo.byID[u.ID].IsActive)

	assert.ErrorIs(t, s.Deactivate(context.Background(), "missing"), ErrNotFound)
}

func TestUserStats(t *testing.T) {
	repo := newFakeRepository(
		&User{ID: "u1", Email: "a@example.com", Role: RoleCustomer, IsActive: true},
		&User{ID: "u2", Email: "b@example.com", Role: RoleAdmin, IsActive: true},
		&User{ID: "u3", Email: "c@example.com", Role: RoleCustomer, IsActive: false},
	)
	s := newTestService(repo)

	got, err := s.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.TotalUsers)
	assert.Equal(t, int64(2), got.ActiveUsers)
	assert.Equal(t, int64(1), got.Admins)
	assert.Equal(t, int64(2), got.Customers)
}
