package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/sergio11/instangular-rest-api/internal/model"
	"github.com/sergio11/instangular-rest-api/internal/repository"
	"github.com/sergio11/instangular-rest-api/internal/repository/postgres"
	"github.com/sergio11/instangular-rest-api/internal/repository/redisrepo"
)

// In-memory implementations of the postgres repository interfaces plus a
// map-backed cache and a recording publisher, so the service layer can be
// exercised without any external processes.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users: make(map[uuid.UUID]*model.User),
	}
}

func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505"}
}

func (r *fakeUserRepo) Create(_ context.Context, user model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email || existing.Username == user.Username {
			return nil, uniqueViolation()
		}
		if user.FacebookID != nil && existing.FacebookID != nil && *existing.FacebookID == *user.FacebookID {
			return nil, uniqueViolation()
		}
	}

	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	stored := user
	r.users[user.ID] = &stored

	return &user, nil
}

func (r *fakeUserRepo) find(match func(*model.User) bool) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if match(user) {
			found := *user
			return &found, nil
		}
	}

	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	return r.find(func(u *model.User) bool { return u.ID == id })
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	return r.find(func(u *model.User) bool { return u.Username == username })
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	return r.find(func(u *model.User) bool { return u.Email == email })
}

func (r *fakeUserRepo) FindByFacebookID(_ context.Context, facebookID string) (*model.User, error) {
	return r.find(func(u *model.User) bool { return u.FacebookID != nil && *u.FacebookID == facebookID })
}

func (r *fakeUserRepo) FindByConfirmationToken(_ context.Context, token string) (*model.User, error) {
	return r.find(func(u *model.User) bool { return u.ConfirmationToken != nil && *u.ConfirmationToken == token })
}

func (r *fakeUserRepo) FindByResetToken(_ context.Context, token string, issuedAfter time.Time) (*model.User, error) {
	return r.find(func(u *model.User) bool {
		return u.ResetToken != nil && *u.ResetToken == token && u.ResetIssuedAt != nil && u.ResetIssuedAt.After(issuedAfter)
	})
}

func (r *fakeUserRepo) List(_ context.Context, limit int, skip int) ([]*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var users []*model.User
	for _, user := range r.users {
		found := *user
		users = append(users, &found)
	}

	if skip > len(users) {
		skip = len(users)
	}
	users = users[skip:]
	if limit < len(users) {
		users = users[:limit]
	}

	return users, nil
}

func (r *fakeUserRepo) mutate(id uuid.UUID, fn func(*model.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return pgx.ErrNoRows
	}

	fn(user)
	return nil
}

func (r *fakeUserRepo) Activate(_ context.Context, id uuid.UUID) error {
	return r.mutate(id, func(u *model.User) {
		u.Active = true
		u.ConfirmationToken = nil
		u.ConfirmationIssuedAt = nil
	})
}

func (r *fakeUserRepo) SetResetToken(_ context.Context, id uuid.UUID, token string, issuedAt time.Time) error {
	return r.mutate(id, func(u *model.User) {
		u.ResetToken = &token
		u.ResetIssuedAt = &issuedAt
	})
}

func (r *fakeUserRepo) ResetPassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	return r.mutate(id, func(u *model.User) {
		u.PasswordHash = passwordHash
		u.ResetToken = nil
		u.ResetIssuedAt = nil
	})
}

func (r *fakeUserRepo) UpdateByID(_ context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return r.mutate(id, func(u *model.User) {
		for field, value := range updates {
			strValue, _ := value.(string)
			switch field {
			case "fullname":
				u.Fullname = strValue
			case "username":
				u.Username = strValue
			case "email":
				u.Email = strValue
			case "password_hash":
				u.PasswordHash = strValue
			case "website":
				u.Website = &strValue
			case "biography":
				u.Biography = &strValue
			case "mobile_number":
				u.MobileNumber = &strValue
			}
		}
	})
}

func (r *fakeUserRepo) IncrementCounts(_ context.Context, id uuid.UUID, media int, follows int, followedBy int) error {
	return r.mutate(id, func(u *model.User) {
		u.Counts.Media += int64(media)
		u.Counts.Follows += int64(follows)
		u.Counts.FollowedBy += int64(followedBy)
	})
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.users, id)
	return nil
}

type fakeFollowRepo struct {
	mu    sync.Mutex
	edges []model.FollowEdge
	users *fakeUserRepo
}

func newFakeFollowRepo(users *fakeUserRepo) *fakeFollowRepo {
	return &fakeFollowRepo{
		users: users,
	}
}

func (r *fakeFollowRepo) Insert(_ context.Context, edge model.FollowEdge) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.edges {
		if existing.Follower == edge.Follower && existing.Followed == edge.Followed {
			return false, nil
		}
	}

	r.edges = append(r.edges, edge)
	return true, nil
}

func (r *fakeFollowRepo) Delete(_ context.Context, follower uuid.UUID, followed uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.edges {
		if existing.Follower == follower && existing.Followed == followed {
			r.edges = append(r.edges[:i], r.edges[i+1:]...)
			return true, nil
		}
	}

	return false, nil
}

func (r *fakeFollowRepo) summary(id uuid.UUID) *model.UserSummary {
	user, err := r.users.FindByID(context.Background(), id)
	if err != nil {
		return &model.UserSummary{ID: id}
	}

	return &model.UserSummary{
		ID:       user.ID,
		Username: user.Username,
		Fullname: user.Fullname,
	}
}

func (r *fakeFollowRepo) FindFollows(_ context.Context, userID uuid.UUID) ([]*model.UserSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var follows []*model.UserSummary
	for _, edge := range r.edges {
		if edge.Follower == userID {
			follows = append(follows, r.summary(edge.Followed))
		}
	}

	return follows, nil
}

func (r *fakeFollowRepo) FindFollowedBy(_ context.Context, userID uuid.UUID) ([]*model.UserSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var followers []*model.UserSummary
	for _, edge := range r.edges {
		if edge.Followed == userID {
			followers = append(followers, r.summary(edge.Follower))
		}
	}

	return followers, nil
}

func (r *fakeFollowRepo) DeleteAllForUser(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var kept []model.FollowEdge
	for _, edge := range r.edges {
		if edge.Follower != userID && edge.Followed != userID {
			kept = append(kept, edge)
		}
	}
	r.edges = kept

	return nil
}

type fakeMediaRepo struct {
	mu     sync.Mutex
	medias []*model.Media
	users  *fakeUserRepo
}

func newFakeMediaRepo(users *fakeUserRepo) *fakeMediaRepo {
	return &fakeMediaRepo{
		users: users,
	}
}

func (r *fakeMediaRepo) Create(_ context.Context, media model.Media) (*model.Media, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	media.ID = uuid.New()
	media.CreatedAt = time.Now()
	stored := media
	r.medias = append(r.medias, &stored)

	return &media, nil
}

func (r *fakeMediaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.MediaWithOwner, error) {
	r.mu.Lock()
	var found *model.Media
	for _, media := range r.medias {
		if media.ID == id {
			copied := *media
			found = &copied
			break
		}
	}
	r.mu.Unlock()

	if found == nil {
		return nil, pgx.ErrNoRows
	}

	owner, err := r.users.FindByID(ctx, found.UserID)
	if err != nil {
		return nil, err
	}

	return &model.MediaWithOwner{
		Media: *found,
		Owner: model.MediaOwner{
			ID:       owner.ID,
			Fullname: owner.Fullname,
			Username: owner.Username,
		},
	}, nil
}

func (r *fakeMediaRepo) FindByUser(_ context.Context, userID uuid.UUID, limit int, skip int) ([]*model.Media, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var medias []*model.Media
	for _, media := range r.medias {
		if media.UserID == userID {
			copied := *media
			medias = append(medias, &copied)
		}
	}

	return medias, nil
}

func (r *fakeMediaRepo) Search(_ context.Context, lat float64, lon float64, minDistance float64, maxDistance float64) ([]*model.Media, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var medias []*model.Media
	for _, media := range r.medias {
		copied := *media
		medias = append(medias, &copied)
	}

	return medias, nil
}

func (r *fakeMediaRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, media := range r.medias {
		if media.ID == id {
			r.medias = append(r.medias[:i], r.medias[i+1:]...)
			return nil
		}
	}

	return nil
}

func (r *fakeMediaRepo) DeleteAllForUser(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var kept []*model.Media
	for _, media := range r.medias {
		if media.UserID != userID {
			kept = append(kept, media)
		}
	}
	r.medias = kept

	return nil
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments []*model.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{}
}

func (r *fakeCommentRepo) Create(_ context.Context, comment model.Comment) (*model.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	comment.ID = uuid.New()
	comment.CreatedAt = time.Now()
	stored := comment
	r.comments = append(r.comments, &stored)

	return &comment, nil
}

func (r *fakeCommentRepo) FindByMedia(_ context.Context, mediaID uuid.UUID) ([]*model.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var comments []*model.Comment
	for _, comment := range r.comments {
		if comment.MediaID == mediaID {
			copied := *comment
			comments = append(comments, &copied)
		}
	}

	return comments, nil
}

func (r *fakeCommentRepo) DeleteByMedia(_ context.Context, mediaID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var kept []*model.Comment
	for _, comment := range r.comments {
		if comment.MediaID != mediaID {
			kept = append(kept, comment)
		}
	}
	r.comments = kept

	return nil
}

type fakeCache struct {
	mu     sync.Mutex
	values map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		values: make(map[string]string),
	}
}

func (c *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.values[key] = string(data)

	return nil
}

func (c *fakeCache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return c.Set(ctx, key, value, ttl)
}

func (c *fakeCache) Get(_ context.Context, key string) *redis.StringCmd {
	c.mu.Lock()
	defer c.mu.Unlock()

	value, ok := c.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}

	return redis.NewStringResult(value, nil)
}

func (c *fakeCache) Del(_ context.Context, keys ...string) *redis.IntCmd {
	c.mu.Lock()
	defer c.mu.Unlock()

	var removed int64
	for _, key := range keys {
		if _, ok := c.values[key]; ok {
			delete(c.values, key)
			removed++
		}
	}

	return redis.NewIntResult(removed, nil)
}

type recordingPublisher struct {
	mu       sync.Mutex
	messages map[string][][]byte
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{
		messages: make(map[string][][]byte),
	}
}

func (p *recordingPublisher) Publish(queue string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.messages[queue] = append(p.messages[queue], body)
	return nil
}

func (p *recordingPublisher) last(queue string) []byte {
	p.mu.Lock()
	defer p.mu.Unlock()

	published := p.messages[queue]
	if len(published) == 0 {
		return nil
	}

	return published[len(published)-1]
}

type stubVerifier struct {
	err error
}

func (v *stubVerifier) Verify(context.Context, string, string) error {
	return v.err
}

func newTestRepository() (*repository.Repository, *fakeUserRepo, *fakeFollowRepo, *fakeMediaRepo, *fakeCommentRepo) {
	users := newFakeUserRepo()
	follows := newFakeFollowRepo(users)
	medias := newFakeMediaRepo(users)
	comments := newFakeCommentRepo()

	repo := &repository.Repository{
		Postgres: &postgres.PostgresRepository{
			User:    users,
			Follow:  follows,
			Media:   medias,
			Comment: comments,
		},
		Redis: &redisrepo.RedisRepository{
			Default: newFakeCache(),
		},
	}

	return repo, users, follows, medias, comments
}
