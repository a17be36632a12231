package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"

	"labstock/internal/auth"
	"labstock/internal/models"
)

var userColumns = []string{"username", "salt", "hash", "iterations", "role"}

// UserStore is the flat-file credential directory. Every read loads the whole
// file and every mutation rewrites it.
type UserStore struct {
	path string
	mu   sync.Mutex
}

func NewUserStore(path string) *UserStore {
	return &UserStore{path: path}
}

// Load reads the full directory. A missing file is an empty directory, not an
// error. Files written before the role column existed still load: the first
// row keeps its historical admin meaning, the rest default to staff.
func (s *UserStore) Load() ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *UserStore) load() ([]models.User, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read users file: %w", err)
	}

	var users []models.User
	for i, rec := range records {
		if i == 0 && len(rec) > 0 && rec[0] == "username" {
			continue
		}
		if len(rec) < 4 {
			continue
		}
		iters, _ := strconv.Atoi(rec[3])
		u := models.User{
			Username:   rec[0],
			Salt:       rec[1],
			Hash:       rec[2],
			Iterations: iters,
		}
		if len(rec) > 4 && rec[4] != "" {
			u.Role = rec[4]
		} else if len(users) == 0 {
			u.Role = models.RoleAdmin
		} else {
			u.Role = models.RoleStaff
		}
		users = append(users, u)
	}
	return users, nil
}

func (s *UserStore) save(users []models.User) error {
	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.Write(userColumns); err != nil {
		f.Close()
		return err
	}
	for _, u := range users {
		rec := []string{u.Username, u.Salt, u.Hash, strconv.Itoa(u.Iterations), u.Role}
		if err := w.Write(rec); err != nil {
			f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Lookup returns the record for an exact username match.
func (s *UserStore) Lookup(username string) (models.User, error) {
	users, err := s.Load()
	if err != nil {
		return models.User{}, err
	}
	for _, u := range users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

// Verify recomputes the stored digest and fails closed on any mismatch,
// unknown user, or read error.
func (s *UserStore) Verify(username, password string) bool {
	u, err := s.Lookup(username)
	if err != nil {
		return false
	}
	return auth.CheckPassword(password, u.Salt, u.Hash, u.Iterations)
}

// Create appends a new user at DefaultIterations. The first user created into
// an empty directory becomes the admin regardless of the requested role.
func (s *UserStore) Create(username, password, role string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users, err := s.load()
	if err != nil {
		return models.User{}, err
	}
	for _, u := range users {
		if u.Username == username {
			return models.User{}, fmt.Errorf("user %q: %w", username, ErrDuplicate)
		}
	}
	salt, err := auth.NewSalt()
	if err != nil {
		return models.User{}, err
	}
	if role != models.RoleAdmin {
		role = models.RoleStaff
	}
	if len(users) == 0 {
		role = models.RoleAdmin
	}
	u := models.User{
		Username:   username,
		Salt:       salt,
		Hash:       auth.HashPassword(password, salt, auth.DefaultIterations),
		Iterations: auth.DefaultIterations,
		Role:       role,
	}
	users = append(users, u)
	if err := s.save(users); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// Delete removes the record by exact username match.
func (s *UserStore) Delete(username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	users, err := s.load()
	if err != nil {
		return err
	}
	kept := users[:0]
	found := false
	for _, u := range users {
		if u.Username == username {
			found = true
			continue
		}
		kept = append(kept, u)
	}
	if !found {
		return fmt.Errorf("user %q: %w", username, ErrNotFound)
	}
	return s.save(kept)
}
