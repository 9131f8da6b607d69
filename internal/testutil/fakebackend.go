// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"taskdeck/internal/store"
	"taskdeck/internal/task"
)

// FakeBackend is an in-memory implementation of store.TaskStore and
// store.UserStore for testing.
type FakeBackend struct {
	mu    sync.RWMutex
	seq   int
	users []store.User
	pass  map[string]string // email -> password
	tasks []task.Task

	// Error injection for testing
	ListErr       error
	CreateErr     error
	ReplaceErr    error
	DeleteErr     error
	LoginErr      error
	FindErr       error
	CreateUserErr error

	// Call counters
	ListCalls       int
	CreateCalls     int
	ReplaceCalls    int
	DeleteCalls     int
	LoginCalls      int
	FindCalls       int
	CreateUserCalls int
}

// NewFakeBackend creates an empty fake backend.
func NewFakeBackend() *FakeBackend {
	return &FakeBackend{pass: make(map[string]string)}
}

// AddUser seeds an account and returns its id.
func (f *FakeBackend) AddUser(email, password string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	id := fmt.Sprintf("user-%d", f.seq)
	f.users = append(f.users, store.User{ID: id, Email: email})
	f.pass[email] = password
	return id
}

// AddTask seeds a task record as the backend would store it.
func (f *FakeBackend) AddTask(t task.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, t)
}

// TaskByID returns the stored record for id.
func (f *FakeBackend) TaskByID(id string) (task.Task, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, t := range f.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return task.Task{}, false
}

// List implements store.TaskStore.
func (f *FakeBackend) List(ctx context.Context, userID string) ([]task.Task, error) {
	f.mu.Lock()
	f.ListCalls++
	f.mu.Unlock()
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	var out []task.Task
	for _, t := range f.tasks {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

// Create implements store.TaskStore.
func (f *FakeBackend) Create(ctx context.Context, t task.Task) (task.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreateCalls++
	if f.CreateErr != nil {
		return task.Task{}, f.CreateErr
	}
	if t.ID == "" {
		f.seq++
		t.ID = fmt.Sprintf("task-%d", f.seq)
	}
	f.tasks = append(f.tasks, t)
	return t, nil
}

// Replace implements store.TaskStore.
func (f *FakeBackend) Replace(ctx context.Context, t task.Task) (task.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ReplaceCalls++
	if f.ReplaceErr != nil {
		return task.Task{}, f.ReplaceErr
	}
	for i, existing := range f.tasks {
		if existing.ID == t.ID {
			f.tasks[i] = t
			return t, nil
		}
	}
	return task.Task{}, &store.RemoteError{Op: "replace task", Status: 404, Err: fmt.Errorf("unexpected status 404")}
}

// Delete implements store.TaskStore.
func (f *FakeBackend) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeleteCalls++
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return &store.RemoteError{Op: "delete task", Status: 404, Err: fmt.Errorf("unexpected status 404")}
}

// Login implements store.UserStore.
func (f *FakeBackend) Login(ctx context.Context, email, password string) (store.Credentials, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LoginCalls++
	if f.LoginErr != nil {
		return store.Credentials{}, f.LoginErr
	}
	if stored, ok := f.pass[email]; ok && stored == password {
		for _, u := range f.users {
			if u.Email == email {
				return store.Credentials{
					Token:     "fake-token-" + u.ID,
					UserID:    u.ID,
					ExpiresAt: time.Now().Add(24 * time.Hour),
				}, nil
			}
		}
	}
	return store.Credentials{}, &store.RemoteError{Op: "login", Status: 401, Err: fmt.Errorf("unexpected status 401")}
}

// FindByEmail implements store.UserStore.
func (f *FakeBackend) FindByEmail(ctx context.Context, email string) ([]store.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.FindCalls++
	if f.FindErr != nil {
		return nil, f.FindErr
	}
	var out []store.User
	for _, u := range f.users {
		if u.Email == email {
			out = append(out, u)
		}
	}
	return out, nil
}

// CreateUser implements store.UserStore.
func (f *FakeBackend) CreateUser(ctx context.Context, email, password string) (store.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreateUserCalls++
	if f.CreateUserErr != nil {
		return store.User{}, f.CreateUserErr
	}
	f.seq++
	u := store.User{ID: fmt.Sprintf("user-%d", f.seq), Email: email}
	f.users = append(f.users, u)
	f.pass[email] = password
	return u, nil
}
