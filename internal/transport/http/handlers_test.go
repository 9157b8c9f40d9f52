package http

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"

	"github.com/task-manager-app/backend/internal/domain"
	"github.com/task-manager-app/backend/internal/service"
	"github.com/task-manager-app/backend/internal/util"
)

// In-memory repositories backing the handler tests. They mimic the store's
// contract: sql.ErrNoRows for misses and a 23505 PgError for duplicate
// emails.

type memUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]*domain.User)}
}

func (r *memUserRepo) Create(ctx context.Context, nombre, email string, passwordHash, passwordSalt []byte) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return nil, &pgconn.PgError{Code: "23505"}
		}
	}
	now := time.Now()
	user := &domain.User{
		ID:           uuid.New(),
		Nombre:       nombre,
		Email:        email,
		PasswordHash: append([]byte(nil), passwordHash...),
		PasswordSalt: append([]byte(nil), passwordSalt...),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.users[user.ID] = user
	return user, nil
}

func (r *memUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *memUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (r *memUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash, passwordSalt []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return sql.ErrNoRows
	}
	user.PasswordHash = append([]byte(nil), passwordHash...)
	user.PasswordSalt = append([]byte(nil), passwordSalt...)
	return nil
}

func (r *memUserRepo) SetResetToken(ctx context.Context, id uuid.UUID, tokenHash []byte, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return sql.ErrNoRows
	}
	user.ResetTokenHash = append([]byte(nil), tokenHash...)
	user.ResetTokenExpiresAt = &expiresAt
	return nil
}

func (r *memUserRepo) FindByResetTokenHash(ctx context.Context, tokenHash []byte, now time.Time) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ResetTokenHash != nil && bytes.Equal(u.ResetTokenHash, tokenHash) &&
			u.ResetTokenExpiresAt != nil && now.Before(*u.ResetTokenExpiresAt) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *memUserRepo) ClearResetToken(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return sql.ErrNoRows
	}
	user.ResetTokenHash = nil
	user.ResetTokenExpiresAt = nil
	return nil
}

type memTaskRepo struct {
	mu    sync.Mutex
	users *memUserRepo
	tasks map[uuid.UUID]*domain.Task
	order []uuid.UUID
}

func newMemTaskRepo(users *memUserRepo) *memTaskRepo {
	return &memTaskRepo{users: users, tasks: make(map[uuid.UUID]*domain.Task)}
}

func (r *memTaskRepo) Create(ctx context.Context, userID uuid.UUID, titulo string, descripcion *string, prioridad domain.Priority, fechaVencimiento *time.Time) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	task := &domain.Task{
		ID:               uuid.New(),
		Titulo:           titulo,
		Descripcion:      descripcion,
		Prioridad:        prioridad,
		UserID:           userID,
		FechaVencimiento: fechaVencimiento,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	r.tasks[task.ID] = task
	r.order = append(r.order, task.ID)
	clone := *task
	return &clone, nil
}

func (r *memTaskRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.tasks[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *task
	return &clone, nil
}

func (r *memTaskRepo) FindDetailByID(ctx context.Context, id uuid.UUID) (*domain.TaskDetail, error) {
	task, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	owner, err := r.users.FindByID(ctx, task.UserID)
	if err != nil {
		return nil, err
	}
	return &domain.TaskDetail{Task: *task, OwnerNombre: owner.Nombre, OwnerEmail: owner.Email}, nil
}

func (r *memTaskRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.TaskDetail, error) {
	r.mu.Lock()
	ids := append([]uuid.UUID(nil), r.order...)
	r.mu.Unlock()

	details := []domain.TaskDetail{}
	for _, id := range ids {
		task, err := r.FindByID(ctx, id)
		if err != nil || task.UserID != userID {
			continue
		}
		detail, err := r.FindDetailByID(ctx, id)
		if err != nil {
			return nil, err
		}
		details = append(details, *detail)
	}
	return details, nil
}

func (r *memTaskRepo) Update(ctx context.Context, id uuid.UUID, update domain.TaskUpdate) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.tasks[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	if update.Titulo != nil {
		task.Titulo = *update.Titulo
	}
	if update.Descripcion != nil {
		task.Descripcion = update.Descripcion
	}
	if update.Completada != nil {
		task.Completada = *update.Completada
	}
	if update.Prioridad != nil {
		task.Prioridad = *update.Prioridad
	}
	if update.FechaVencimiento != nil {
		task.FechaVencimiento = update.FechaVencimiento
	}
	task.UpdatedAt = time.Now()
	clone := *task
	return &clone, nil
}

func (r *memTaskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tasks, id)
	return nil
}

type captureMailer struct {
	mu    sync.Mutex
	email string
	token string
	err   error
}

func (m *captureMailer) SendPasswordReset(ctx context.Context, email, plainToken string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.email = email
	m.token = plainToken
	return m.err
}

func newTestServer(t *testing.T) (*echo.Echo, *captureMailer) {
	t.Helper()
	users := newMemUserRepo()
	tasks := newMemTaskRepo(users)
	tokens := util.NewJWTManager("test-secret", time.Hour)
	mailer := &captureMailer{}

	e := NewRouter([]string{"*"})
	RegisterUsers(e, service.NewAuthService(users, tokens, mailer, 10*time.Minute), tokens)
	RegisterTasks(e, service.NewTaskService(tasks), tokens)
	return e, mailer
}

func doJSON(t *testing.T, e *echo.Echo, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func registerFor(t *testing.T, e *echo.Echo, nombre, email string) string {
	t.Helper()
	rec := doJSON(t, e, "POST", "/api/users/register", "", map[string]string{
		"nombre":   nombre,
		"email":    email,
		"password": "secreta123",
	})
	if rec.Code != 201 {
		t.Fatalf("register %s: status %d body %s", email, rec.Code, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	decodeBody(t, rec, &resp)
	if resp.Token == "" {
		t.Fatalf("register %s: empty token", email)
	}
	return resp.Token
}
