package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserFindByID_Unknown(t *testing.T) {
	t.Parallel()

	repo, _, _, _, _ := newTestRepository()
	svc := newTestService(repo, newRecordingPublisher(), &stubVerifier{})

	_, err := svc.User.FindByID(context.Background(), uuid.New())
	require.Equal(t, ErrUserNotFound, err)
}

func TestUserUpdate_RehashesPassword(t *testing.T) {
	t.Parallel()

	repo, _, _, _, _ := newTestRepository()
	svc := newTestService(repo, newRecordingPublisher(), &stubVerifier{})
	ctx := context.Background()

	alice := createActiveUser(t, repo, "alice")

	_, err := svc.User.Update(ctx, *alice, map[string]interface{}{
		"password":  "updated-password",
		"biography": "hello",
	})
	require.NoError(t, err)

	updated, err := repo.Postgres.User.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	require.NotEqual(t, "updated-password", updated.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("updated-password")))
	require.NotNil(t, updated.Biography)
	require.Equal(t, "hello", *updated.Biography)
}

func TestUserUpdate_IgnoresUnknownFields(t *testing.T) {
	t.Parallel()

	repo, _, _, _, _ := newTestRepository()
	svc := newTestService(repo, newRecordingPublisher(), &stubVerifier{})
	ctx := context.Background()

	alice := createActiveUser(t, repo, "alice")

	// Fields outside the whitelist, notably the active flag and counters,
	// must not be writable through the profile update path.
	_, err := svc.User.Update(ctx, *alice, map[string]interface{}{
		"active":   false,
		"fullname": "Alice Updated",
	})
	require.NoError(t, err)

	updated, err := repo.Postgres.User.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	require.True(t, updated.Active)
	require.Equal(t, "Alice Updated", updated.Fullname)
}

func TestUserDelete_Cascades(t *testing.T) {
	t.Parallel()

	repo, users, follows, medias, _ := newTestRepository()
	svc := newTestService(repo, newRecordingPublisher(), &stubVerifier{})
	ctx := context.Background()

	alice := createActiveUser(t, repo, "alice")
	bob := createActiveUser(t, repo, "bob")

	_, err := svc.Follow.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = svc.Follow.Follow(ctx, bob.ID, alice.ID)
	require.NoError(t, err)

	_, err = svc.Media.Create(ctx, alice.ID, createMediaRequest())
	require.NoError(t, err)

	_, err = svc.User.Delete(ctx, *alice)
	require.NoError(t, err)

	_, ok := users.users[alice.ID]
	require.False(t, ok)
	require.Empty(t, follows.edges)
	require.Empty(t, medias.medias)
}

func TestUserDelete_InvalidatesCounterpartLists(t *testing.T) {
	t.Parallel()

	repo, _, _, _, _ := newTestRepository()
	svc := newTestService(repo, newRecordingPublisher(), &stubVerifier{})
	ctx := context.Background()

	alice := createActiveUser(t, repo, "alice")
	bob := createActiveUser(t, repo, "bob")

	_, err := svc.Follow.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = svc.Follow.Follow(ctx, bob.ID, alice.ID)
	require.NoError(t, err)

	// Prime bob's cached lists; both name alice.
	followers, err := svc.Follow.FollowedBy(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, followers, 1)
	follows, err := svc.Follow.Follows(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, follows, 1)

	_, err = svc.User.Delete(ctx, *alice)
	require.NoError(t, err)

	// Deleting alice must not leave her in bob's cached lists.
	followers, err = svc.Follow.FollowedBy(ctx, bob.ID)
	require.NoError(t, err)
	require.Empty(t, followers)
	follows, err = svc.Follow.Follows(ctx, bob.ID)
	require.NoError(t, err)
	require.Empty(t, follows)
}
