package users

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/brightsmile/clinic-backend/internal/domain"
)

type memRepo struct {
	byID    map[uuid.UUID]*User
	byEmail map[string]*User
}

func newMemRepo() *memRepo {
	return &memRepo{
		byID:    make(map[uuid.UUID]*User),
		byEmail: make(map[string]*User),
	}
}

func (r *memRepo) GetByID(_ context.Context, id uuid.UUID) (*User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memRepo) List(_ context.Context) ([]User, error) {
	out := make([]User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, *u)
	}
	return out, nil
}

func (r *memRepo) Create(_ context.Context, u *User) (*User, error) {
	if _, taken := r.byEmail[u.Email]; taken {
		return nil, ErrEmailTaken
	}
	cp := *u
	cp.ID = uuid.New()
	r.byID[cp.ID] = &cp
	r.byEmail[cp.Email] = &cp
	out := cp
	return &out, nil
}

func (r *memRepo) Update(_ context.Context, u *User) (*User, error) {
	old, ok := r.byID[u.ID]
	if !ok {
		return nil, ErrUserNotFound
	}
	delete(r.byEmail, old.Email)
	cp := *u
	r.byID[cp.ID] = &cp
	r.byEmail[cp.Email] = &cp
	out := cp
	return &out, nil
}

func (r *memRepo) Delete(_ context.Context, id uuid.UUID) error {
	u, ok := r.byID[id]
	if !ok {
		return ErrUserNotFound
	}
	delete(r.byEmail, u.Email)
	delete(r.byID, id)
	return nil
}

func newTestService() (*Service, *memRepo) {
	repo := newMemRepo()
	return NewService(repo, "test-secret"), repo
}

func TestRegisterCreatesPatient(t *testing.T) {
	svc, _ := newTestService()

	u, err := svc.Register(context.Background(), "Maria Santos", "  Maria@Example.COM ", "0917 555 0101", "supersecret")
	require.NoError(t, err)

	assert.Equal(t, RolePatient, u.Role)
	assert.Equal(t, "maria@example.com", u.Email)
	assert.NotEqual(t, "supersecret", u.PasswordHash)

	// Stored hash verifies against the original password.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("supersecret")))
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService()

	cases := []struct {
		name            string
		userName, email string
		password        string
	}{
		{"empty name", "", "a@b.com", "supersecret"},
		{"bad email", "Maria", "not-an-email", "supersecret"},
		{"short password", "Maria", "a@b.com", "short"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.userName, tc.email, "", tc.password)
			assert.True(t, domain.IsValidation(err), "want validation error, got %v", err)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), "Maria", "maria@example.com", "", "supersecret")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "Other Maria", "maria@example.com", "", "differentpw")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginIssuesParsableToken(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Register(context.Background(), "Maria", "maria@example.com", "", "supersecret")
	require.NoError(t, err)

	u, token, err := svc.Login(context.Background(), "MARIA@example.com", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, created.ID, u.ID)
	require.NotEmpty(t, token)

	claims, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, created.ID.String(), claims.Subject)
	assert.Equal(t, RolePatient, claims.Role)
}

func TestLoginBadCredentials(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), "Maria", "maria@example.com", "", "supersecret")
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "maria@example.com", "wrongpassword")
	assert.ErrorIs(t, err, ErrBadCredentials)

	// Unknown email yields the same error so callers cannot probe accounts.
	_, _, err = svc.Login(context.Background(), "nobody@example.com", "supersecret")
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestParseTokenRejectsOtherSecret(t *testing.T) {
	svc, _ := newTestService()
	other := NewService(newMemRepo(), "another-secret")

	_, err := svc.Register(context.Background(), "Maria", "maria@example.com", "", "supersecret")
	require.NoError(t, err)

	_, token, err := svc.Login(context.Background(), "maria@example.com", "supersecret")
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestCreateStaffAssignsRole(t *testing.T) {
	svc, _ := newTestService()

	u, err := svc.CreateStaff(context.Background(), "Front Desk", "desk@clinic.ph", "", "supersecret", RoleStaff)
	require.NoError(t, err)
	assert.Equal(t, RoleStaff, u.Role)

	_, err = svc.CreateStaff(context.Background(), "Nobody", "x@clinic.ph", "", "supersecret", Role("janitor"))
	assert.True(t, domain.IsValidation(err))
}

func TestUpdateKeepsPasswordHash(t *testing.T) {
	svc, repo := newTestService()

	created, err := svc.Register(context.Background(), "Maria", "maria@example.com", "", "supersecret")
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), User{
		ID:    created.ID,
		Name:  "Maria Santos",
		Email: "maria.santos@example.com",
		Role:  RolePatient,
	})
	require.NoError(t, err)
	assert.Equal(t, "Maria Santos", updated.Name)
	assert.Equal(t, "maria.santos@example.com", updated.Email)

	stored, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("supersecret")))
}
