// Package store keeps the API stand-in's data in memory: accounts with
// bcrypt-hashed passwords, chat sessions, doctors and appointments.
package store

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/gynecare/internal/client/models"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 8
	minReasonLength   = 10
	fieldRequired     = "This field is required."
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// FieldErrors maps a request field to its messages, the shape of a 400 reply.
type FieldErrors map[string][]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e[k], ", "))
	}
	return strings.Join(parts, "; ")
}

func (e FieldErrors) add(field, msg string) {
	e[field] = append(e[field], msg)
}

func (e FieldErrors) err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

type account struct {
	user         models.User
	passwordHash []byte
}

type Store struct {
	mu sync.RWMutex

	users        map[int64]*account
	chats        map[int64]*models.ChatSession
	doctors      []models.Doctor
	appointments map[int64]*models.Appointment

	nextUserID, nextChatID, nextMessageID, nextAppointmentID int64

	bcryptCost int
	now        func() time.Time
}

type Option func(*Store)

// WithBcryptCost sets the hashing cost; tests use bcrypt.MinCost.
func WithBcryptCost(cost int) Option {
	return func(s *Store) { s.bcryptCost = cost }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New returns a store seeded with the doctor directory.
func New(opts ...Option) *Store {
	s := &Store{
		users:        make(map[int64]*account),
		chats:        make(map[int64]*models.ChatSession),
		appointments: make(map[int64]*models.Appointment),
		bcryptCost:   bcrypt.DefaultCost,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.seedDoctors()
	return s
}

func (s *Store) seedDoctors() {
	seed := []models.Doctor{
		{
			FirstName: "Maria", LastName: "Holm", Email: "maria.holm@gynecare.example",
			Specialization: "Gynecology", Qualification: "MD, FACOG", ExperienceYears: 14,
			Bio:          "General gynecology, menstrual disorders and preventive care.",
			Availability: map[string]any{"monday": []string{"09:00-13:00"}, "wednesday": []string{"12:00-17:00"}},
		},
		{
			FirstName: "Elena", LastName: "Petrova", Email: "elena.petrova@gynecare.example",
			Specialization: "Reproductive Endocrinology", Qualification: "MD, PhD", ExperienceYears: 9,
			Bio:          "Fertility, PCOS and hormonal disorders.",
			Availability: map[string]any{"tuesday": []string{"10:00-16:00"}, "friday": []string{"09:00-12:00"}},
		},
		{
			FirstName: "Sofia", LastName: "Lind", Email: "sofia.lind@gynecare.example",
			Specialization: "Obstetrics", Qualification: "MD", ExperienceYears: 6,
			Bio:          "Pregnancy care and postpartum follow-up.",
			Availability: map[string]any{"thursday": []string{"08:00-14:00"}},
		},
	}
	for i := range seed {
		seed[i].ID = int64(i + 1)
		seed[i].User = int64(1000 + i + 1)
	}
	s.doctors = seed
}

func (s *Store) findByLoginLocked(login string) *account {
	for _, a := range s.users {
		if strings.EqualFold(a.user.Email, login) || a.user.Username == login {
			return a
		}
	}
	return nil
}

func (s *Store) emailTakenLocked(email string, except int64) bool {
	for id, a := range s.users {
		if id != except && strings.EqualFold(a.user.Email, email) {
			return true
		}
	}
	return false
}

// CreateUser registers a patient account.
func (s *Store) CreateUser(reg models.Registration) (models.User, error) {
	fe := FieldErrors{}
	if strings.TrimSpace(reg.Email) == "" {
		fe.add("email", fieldRequired)
	}
	if strings.TrimSpace(reg.Username) == "" {
		fe.add("username", fieldRequired)
	}
	if reg.Password == "" {
		fe.add("password", fieldRequired)
	} else if len(reg.Password) < minPasswordLength {
		fe.add("password", fmt.Sprintf("This password is too short. It must contain at least %d characters.", minPasswordLength))
	}
	if reg.Age <= 0 {
		fe.add("age", "Ensure this value is greater than or equal to 1.")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.users {
		if a.user.Username == reg.Username && reg.Username != "" {
			fe.add("username", "A user with that username already exists.")
			break
		}
	}
	if reg.Email != "" && s.emailTakenLocked(reg.Email, 0) {
		fe.add("email", "user with this email already exists.")
	}
	if err := fe.err(); err != nil {
		return models.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), s.bcryptCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	s.nextUserID++
	u := models.User{
		ID:          s.nextUserID,
		Username:    reg.Username,
		Email:       reg.Email,
		FirstName:   reg.FirstName,
		LastName:    reg.LastName,
		UserType:    models.UserTypePatient,
		Age:         reg.Age,
		PhoneNumber: reg.PhoneNumber,
	}
	s.users[u.ID] = &account{user: u, passwordHash: hash}
	return u, nil
}

// Authenticate checks a password against the account found by email or
// username.
func (s *Store) Authenticate(login, password string) (models.User, error) {
	s.mu.RLock()
	a := s.findByLoginLocked(login)
	s.mu.RUnlock()

	if a == nil {
		return models.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return a.user, nil
}

func (s *Store) User(id int64) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return a.user, nil
}

func (s *Store) UpdateUser(id int64, upd models.ProfileUpdate) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}

	fe := FieldErrors{}
	if upd.Email != nil {
		if strings.TrimSpace(*upd.Email) == "" {
			fe.add("email", "This field may not be blank.")
		} else if s.emailTakenLocked(*upd.Email, id) {
			fe.add("email", "user with this email already exists.")
		}
	}
	if upd.FirstName != nil && strings.TrimSpace(*upd.FirstName) == "" {
		fe.add("first_name", "This field may not be blank.")
	}
	if upd.LastName != nil && strings.TrimSpace(*upd.LastName) == "" {
		fe.add("last_name", "This field may not be blank.")
	}
	if upd.Age != nil && *upd.Age <= 0 {
		fe.add("age", "Ensure this value is greater than or equal to 1.")
	}
	if err := fe.err(); err != nil {
		return models.User{}, err
	}

	u := &a.user
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.FirstName != nil {
		u.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		u.LastName = *upd.LastName
	}
	if upd.Age != nil {
		u.Age = *upd.Age
	}
	if upd.PhoneNumber != nil {
		u.PhoneNumber = *upd.PhoneNumber
	}
	return *u, nil
}
