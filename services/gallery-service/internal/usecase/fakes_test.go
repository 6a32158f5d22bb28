package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/model"
	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/repository"
	"github.com/vasapolrittideah/art-gallery-api/shared/mailer"
)

var errDuplicateKey = mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key"}}}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// fakeUserRepo mirrors the storage semantics of the mongo repository, including
// the unique email index.
type fakeUserRepo struct {
	mu        sync.Mutex
	users     map[bson.ObjectID]*model.User
	deleteErr error
	seq       int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[bson.ObjectID]*model.User)}
}

func cloneUser(u *model.User) *model.User {
	c := *u
	return &c
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return nil, errDuplicateKey
		}
	}

	r.seq++
	user.ID = bson.NewObjectID()
	user.CreatedAt = time.Unix(int64(r.seq), 0)
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = cloneUser(user)

	return cloneUser(user), nil
}

func (r *fakeUserRepo) lookup(id string) (*model.User, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	user, ok := r.users[objectID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return user, nil
}

func (r *fakeUserRepo) GetUser(_ context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, err := r.lookup(id)
	if err != nil {
		return nil, err
	}
	return cloneUser(user), nil
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			return cloneUser(user), nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeUserRepo) UpdateUser(
	_ context.Context,
	id string,
	params repository.UpdateUserParams,
) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if params == (repository.UpdateUserParams{}) {
		return nil, repository.ErrNoFieldsToUpdate
	}

	user, err := r.lookup(id)
	if err != nil {
		return nil, err
	}

	if params.Username != nil {
		user.Username = *params.Username
	}
	if params.PasswordHash != nil {
		user.PasswordHash = *params.PasswordHash
	}
	if params.Bio != nil {
		user.Bio = *params.Bio
	}
	if params.ProfileImage != nil {
		user.ProfileImage = *params.ProfileImage
	}
	if params.ContactInfo != nil {
		user.ContactInfo = params.ContactInfo
	}
	if params.IsActive != nil {
		user.IsActive = *params.IsActive
	}

	return cloneUser(user), nil
}

func (r *fakeUserRepo) DeleteUser(_ context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.deleteErr != nil {
		return nil, r.deleteErr
	}

	user, err := r.lookup(id)
	if err != nil {
		return nil, err
	}
	delete(r.users, user.ID)

	return user, nil
}

func (r *fakeUserRepo) filtered(params repository.FilterUsersParams) []*model.User {
	var out []*model.User
	for _, user := range r.users {
		if params.Role != nil && user.Role != *params.Role {
			continue
		}
		if params.IsActive != nil && user.IsActive != *params.IsActive {
			continue
		}
		out = append(out, cloneUser(user))
	}

	sort.Slice(out, func(i, j int) bool {
		if params.SortDesc {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out
}

func (r *fakeUserRepo) ListUsers(_ context.Context, params repository.FilterUsersParams) ([]*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return page(r.filtered(params), params.Limit, params.Offset), nil
}

func (r *fakeUserRepo) CountUsers(_ context.Context, params repository.FilterUsersParams) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return int64(len(r.filtered(params))), nil
}

func (r *fakeUserRepo) ToggleActive(_ context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, err := r.lookup(id)
	if err != nil {
		return nil, err
	}
	if user.Role != model.RoleArtist {
		return nil, mongo.ErrNoDocuments
	}
	user.IsActive = !user.IsActive

	return cloneUser(user), nil
}

func (r *fakeUserRepo) VerifyEmail(_ context.Context, token string, now time.Time) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.EmailVerificationToken == token &&
			user.EmailVerificationExpiresAt != nil &&
			user.EmailVerificationExpiresAt.After(now) {
			user.IsEmailVerified = true
			user.EmailVerificationToken = ""
			user.EmailVerificationExpiresAt = nil
			return cloneUser(user), nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeUserRepo) SetResetCode(_ context.Context, id, code string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, err := r.lookup(id)
	if err != nil {
		return err
	}
	user.ResetPasswordCode = code
	user.ResetPasswordCodeExpiresAt = &expiresAt

	return nil
}

func (r *fakeUserRepo) ClearResetCode(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, err := r.lookup(id)
	if err != nil {
		return err
	}
	user.ResetPasswordCode = ""
	user.ResetPasswordCodeExpiresAt = nil

	return nil
}

func (r *fakeUserRepo) ConsumeResetCode(
	_ context.Context,
	email, code, passwordHash string,
	now time.Time,
) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email &&
			user.ResetPasswordCode == code &&
			user.ResetPasswordCodeExpiresAt != nil &&
			user.ResetPasswordCodeExpiresAt.After(now) {
			user.PasswordHash = passwordHash
			user.ResetPasswordCode = ""
			user.ResetPasswordCodeExpiresAt = nil
			return cloneUser(user), nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeUserRepo) ClearExpiredSecrets(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, user := range r.users {
		if user.EmailVerificationExpiresAt != nil && !user.EmailVerificationExpiresAt.After(now) {
			user.EmailVerificationToken = ""
			user.EmailVerificationExpiresAt = nil
			n++
		}
		if user.ResetPasswordCodeExpiresAt != nil && !user.ResetPasswordCodeExpiresAt.After(now) {
			user.ResetPasswordCode = ""
			user.ResetPasswordCodeExpiresAt = nil
			n++
		}
	}
	return n, nil
}

// stored returns the raw record for assertions.
func (r *fakeUserRepo) stored(email string) *model.User {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			return cloneUser(user)
		}
	}
	return nil
}

func (r *fakeUserRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

type fakeArtworkRepo struct {
	mu       sync.Mutex
	artworks map[bson.ObjectID]*model.Artwork
	seq      int
}

func newFakeArtworkRepo() *fakeArtworkRepo {
	return &fakeArtworkRepo{artworks: make(map[bson.ObjectID]*model.Artwork)}
}

func cloneArtwork(a *model.Artwork) *model.Artwork {
	c := *a
	c.Images = append([]string(nil), a.Images...)
	return &c
}

func (r *fakeArtworkRepo) CreateArtwork(_ context.Context, artwork *model.Artwork) (*model.Artwork, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	artwork.ID = bson.NewObjectID()
	artwork.CreatedAt = time.Unix(int64(r.seq), 0)
	if artwork.Status == "" {
		artwork.Status = model.ArtworkStatusAvailable
	}
	r.artworks[artwork.ID] = cloneArtwork(artwork)

	return cloneArtwork(artwork), nil
}

func (r *fakeArtworkRepo) lookup(id string) (*model.Artwork, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	artwork, ok := r.artworks[objectID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return artwork, nil
}

func (r *fakeArtworkRepo) GetArtwork(_ context.Context, id string) (*model.Artwork, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	artwork, err := r.lookup(id)
	if err != nil {
		return nil, err
	}
	return cloneArtwork(artwork), nil
}

func (r *fakeArtworkRepo) UpdateArtwork(
	_ context.Context,
	id string,
	params repository.UpdateArtworkParams,
) (*model.Artwork, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	artwork, err := r.lookup(id)
	if err != nil {
		return nil, err
	}

	if params.Title != nil {
		artwork.Title = *params.Title
	}
	if params.Description != nil {
		artwork.Description = *params.Description
	}
	if params.Status != nil {
		artwork.Status = *params.Status
	}
	if params.Price != nil {
		artwork.Price = params.Price
	}
	if params.Sold != nil {
		artwork.Sold = *params.Sold
	}

	return cloneArtwork(artwork), nil
}

func (r *fakeArtworkRepo) DeleteArtwork(_ context.Context, id string) (*model.Artwork, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	artwork, err := r.lookup(id)
	if err != nil {
		return nil, err
	}
	delete(r.artworks, artwork.ID)

	return artwork, nil
}

func (r *fakeArtworkRepo) filtered(params repository.FilterArtworksParams) []*model.Artwork {
	var out []*model.Artwork
	for _, a := range r.artworks {
		if params.ArtistID != nil && a.ArtistID.Hex() != *params.ArtistID {
			continue
		}
		if params.CategoryID != nil && a.CategoryID != *params.CategoryID {
			continue
		}
		if params.Sold != nil && a.Sold != *params.Sold {
			continue
		}
		if params.Status != nil && a.Status != *params.Status {
			continue
		}
		if params.Search != nil {
			q := strings.ToLower(*params.Search)
			if !strings.Contains(strings.ToLower(a.Title), q) &&
				!strings.Contains(strings.ToLower(a.Description), q) {
				continue
			}
		}
		out = append(out, cloneArtwork(a))
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	return out
}

func (r *fakeArtworkRepo) ListArtworks(
	_ context.Context,
	params repository.FilterArtworksParams,
) ([]*model.Artwork, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return page(r.filtered(params), params.Limit, params.Offset), nil
}

func (r *fakeArtworkRepo) CountArtworks(_ context.Context, params repository.FilterArtworksParams) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return int64(len(r.filtered(params))), nil
}

func (r *fakeArtworkRepo) DeleteArtworksByArtist(_ context.Context, artistID string) ([]*model.Artwork, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := r.filtered(repository.FilterArtworksParams{ArtistID: &artistID})
	for _, a := range removed {
		delete(r.artworks, a.ID)
	}
	return removed, nil
}

type fakeCategoryRepo struct {
	mu         sync.Mutex
	categories map[bson.ObjectID]*model.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[bson.ObjectID]*model.Category)}
}

func (r *fakeCategoryRepo) CreateCategory(_ context.Context, category *model.Category) (*model.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.categories {
		if c.Name == category.Name {
			return nil, errDuplicateKey
		}
	}
	category.ID = bson.NewObjectID()
	c := *category
	r.categories[category.ID] = &c

	return category, nil
}

func (r *fakeCategoryRepo) lookup(id string) (*model.Category, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	c, ok := r.categories[objectID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return c, nil
}

func (r *fakeCategoryRepo) GetCategory(_ context.Context, id string) (*model.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, err := r.lookup(id)
	if err != nil {
		return nil, err
	}
	out := *c
	return &out, nil
}

func (r *fakeCategoryRepo) GetCategoryByName(_ context.Context, name string) (*model.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.categories {
		if c.Name == name {
			out := *c
			return &out, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeCategoryRepo) UpdateCategory(
	_ context.Context,
	id string,
	params repository.UpdateCategoryParams,
) (*model.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, err := r.lookup(id)
	if err != nil {
		return nil, err
	}
	if params.Name != nil {
		c.Name = *params.Name
	}
	if params.Description != nil {
		c.Description = *params.Description
	}
	out := *c
	return &out, nil
}

func (r *fakeCategoryRepo) DeleteCategory(_ context.Context, id string) (*model.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, err := r.lookup(id)
	if err != nil {
		return nil, err
	}
	delete(r.categories, c.ID)
	return c, nil
}

func (r *fakeCategoryRepo) ListCategories(
	_ context.Context,
	params repository.FilterCategoriesParams,
) ([]*model.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*model.Category, 0, len(r.categories))
	for _, c := range r.categories {
		cc := *c
		out = append(out, &cc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return page(out, params.Limit, params.Offset), nil
}

func (r *fakeCategoryRepo) CountCategories(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.categories)), nil
}

func page[T any](items []T, limit, offset uint64) []T {
	if offset >= uint64(len(items)) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < uint64(len(items)) {
		items = items[:limit]
	}
	return items
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []mailer.Email
	err  error
}

func (m *fakeMailer) Send(email mailer.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, email)
	return nil
}

func (m *fakeMailer) SendBulk(emails []mailer.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, emails...)
	return nil
}

func (m *fakeMailer) last() mailer.Email {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.sent) == 0 {
		return mailer.Email{}
	}
	return m.sent[len(m.sent)-1]
}

func (m *fakeMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

type fakeStorage struct {
	mu      sync.Mutex
	files   map[string][]byte
	saveErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{files: make(map[string][]byte)}
}

func (s *fakeStorage) Save(_ context.Context, name string, r io.Reader, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.saveErr != nil {
		return s.saveErr
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return err
	}
	s.files[name] = buf.Bytes()
	return nil
}

func (s *fakeStorage) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.files, name)
	return nil
}

func (s *fakeStorage) has(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.files[name]
	return ok
}

func (s *fakeStorage) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}

var errSMTPDown = errors.New("smtp: connection refused")
