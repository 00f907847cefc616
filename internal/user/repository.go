package user

import (
	"context"
	"errors"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound    = errors.New("user not found")
	ErrInvalidID   = errors.New("invalid user id")
	ErrEmailExists = errors.New("email already registered")
)

// Update lists the fields applied to a stored user. The four text fields
// are written unconditionally with whatever the client sent, empty or not;
// callers must resend every field they want preserved. Avatar is written
// only when a new file was uploaded.
type Update struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Avatar    *string
}

// Fields returns the field-name → new-value mapping this update applies.
func (u Update) Fields() map[string]any {
	fields := map[string]any{
		"firstName": u.FirstName,
		"lastName":  u.LastName,
		"email":     u.Email,
		"password":  u.Password,
	}
	if u.Avatar != nil {
		fields["avatar"] = *u.Avatar
	}
	return fields
}

type Repository interface {
	Create(ctx context.Context, user User) (User, error)
	List(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	Update(ctx context.Context, id string, update Update) (User, error)
	Delete(ctx context.Context, id string) error
}

// InMemoryRepository keeps users in insertion order. It backs the test
// suite and behaves like the Mongo repository, including id validation.
type InMemoryRepository struct {
	mu    sync.RWMutex
	users []User
}

func NewInMemoryRepository(seed []User) *InMemoryRepository {
	repo := &InMemoryRepository{users: make([]User, 0, len(seed))}
	for _, user := range seed {
		if user.ID.IsZero() {
			user.ID = primitive.NewObjectID()
		}
		repo.users = append(repo.users, user)
	}
	return repo
}

func (r *InMemoryRepository) Create(_ context.Context, user User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	r.users = append(r.users, user)
	return user, nil
}

func (r *InMemoryRepository) List(_ context.Context) ([]User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]User, len(r.users))
	copy(users, r.users)
	return users, nil
}

func (r *InMemoryRepository) GetByID(_ context.Context, id string) (User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return User{}, ErrInvalidID
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.ID == oid {
			return user, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *InMemoryRepository) GetByEmail(_ context.Context, email string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *InMemoryRepository) Update(_ context.Context, id string, update Update) (User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return User{}, ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, user := range r.users {
		if user.ID == oid {
			user.FirstName = update.FirstName
			user.LastName = update.LastName
			user.Email = update.Email
			user.Password = update.Password
			if update.Avatar != nil {
				user.Avatar = *update.Avatar
			}
			r.users[i] = user
			return user, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, user := range r.users {
		if user.ID == oid {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
