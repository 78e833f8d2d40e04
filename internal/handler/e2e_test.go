package handler

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"contacts_api/internal/model"
	"contacts_api/internal/repository"
	"contacts_api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func (r *memUserRepo) Create(_ context.Context, u *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email || existing.Name == u.Name {
			return repository.ErrDuplicate
		}
	}
	r.users[u.ID] = u
	return nil
}

func (r *memUserRepo) find(match func(*model.User) bool) *model.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			return u
		}
	}
	return nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	return r.find(func(u *model.User) bool { return u.Email == email }), nil
}

func (r *memUserRepo) FindByName(_ context.Context, name string) (*model.User, error) {
	return r.find(func(u *model.User) bool { return u.Name == name }), nil
}

func (r *memUserRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	u, _ := r.FindByName(ctx, name)
	return u != nil, nil
}

// Signup, signin, create and list run through the real router, middleware
// and services. Contact storage is backed by pgxmock.
func TestSignUpSignInCreateList(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	jwtUtil := newJWT()
	authSvc := service.NewAuthService(&memUserRepo{users: map[string]*model.User{}}, jwtUtil, testLogger)
	contactSvc := service.NewContactService(mock, testLogger)
	r := newTestRouter(authSvc, contactSvc, jwtUtil, mock)

	w := doRequest(r, http.MethodPost, "/signup", "", gin.H{"name": "Jo", "email": "jo@x.com", "password": "pw12345678"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(r, http.MethodPost, "/signin", "", gin.H{"email": "jo@x.com", "password": "pw12345678"})
	require.Equal(t, http.StatusOK, w.Code)
	signin := decodeBody(t, w)
	assert.Equal(t, "bearer", signin["token_type"])
	token, _ := signin["access_token"].(string)
	require.NotEmpty(t, token)

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM users WHERE name = \$1\)`).
		WithArgs("Jo").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM contacts WHERE email = \$1 OR phone = \$2\)`).
		WithArgs("a@x.com", "+1").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec("INSERT INTO contacts").
		WithArgs(pgxmock.AnyArg(), "Jo", "A", "a@x.com", "+1", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectQuery(`FROM contacts WHERE owner = \$1`).
		WithArgs("Jo").
		WillReturnRows(pgxmock.NewRows([]string{"contact_id", "owner", "name", "email", "phone", "created_at", "updated_at"}).
			AddRow("c1", "Jo", "A", "a@x.com", "+1", now, now))
	mock.ExpectCommit()

	w = doRequest(r, http.MethodPost, "/contacts/create", token, gin.H{"name": "A", "email": "a@x.com", "phone": "+1"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Contact saved successfully!", decodeBody(t, w)["message"])

	w = doRequest(r, http.MethodGet, "/contacts/", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decodeBody(t, w)
	assert.Equal(t, "1", list["count"])
	contacts := list["contacts"].([]any)
	require.Len(t, contacts, 1)
	assert.Equal(t, "A", contacts[0].(map[string]any)["name"])

	assert.NoError(t, mock.ExpectationsWereMet())
}
