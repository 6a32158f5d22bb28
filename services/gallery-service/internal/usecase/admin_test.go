package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/pkg/types"
)

func TestAdmin_ListUsers(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	app.superAdmin(t)
	app.register(t, "Mona", "mona@example.com", "s3cret-pass")
	app.register(t, "Leo", "leo@example.com", "s3cret-pass")

	list, err := app.admin.ListUsers(ctx, types.PageRequest{Page: 1, Limit: 2})
	require.NoError(t, err)

	require.Len(t, list.Users, 2)
	assert.Equal(t, "leo@example.com", list.Users[0].Email)
	assert.Equal(t, "mona@example.com", list.Users[1].Email)
	require.NotNil(t, list.Pagination)
	assert.Equal(t, int64(3), list.Pagination.TotalCount)
	assert.Equal(t, int64(2), list.Pagination.TotalPages)
	assert.Equal(t, uint64(1), list.Pagination.CurrentPage)

	list, err = app.admin.ListUsers(ctx, types.PageRequest{Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, list.Users, 1)
	assert.Equal(t, "admin@gallery.test", list.Users[0].Email)
}

func TestAdmin_ToggleUserStatus(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	admin := app.superAdmin(t)
	artist, _ := app.register(t, "Mona", "mona@example.com", "s3cret-pass")

	toggled, err := app.admin.ToggleUserStatus(ctx, artist.ID.Hex())
	require.NoError(t, err)
	assert.True(t, toggled.IsActive)

	toggled, err = app.admin.ToggleUserStatus(ctx, artist.ID.Hex())
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)

	_, err = app.admin.ToggleUserStatus(ctx, admin.ID.Hex())
	assert.ErrorIs(t, err, ErrNotArtist)
	assert.True(t, app.users.stored("admin@gallery.test").IsActive)

	_, err = app.admin.ToggleUserStatus(ctx, bson.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = app.admin.ToggleUserStatus(ctx, "not-an-id")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAdmin_DeleteUserCascades(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	mona := app.activeArtist(t, "Mona", "mona@example.com", "s3cret-pass")
	leo := app.activeArtist(t, "Leo", "leo@example.com", "s3cret-pass")

	monaArt, err := app.artwork.CreateArtwork(ctx, actorOf(mona), CreateArtworkParams{
		Title:     "Sunrise",
		Thumbnail: &Upload{Filename: "sun.png", ContentType: "image/png", Body: strings.NewReader("png")},
		Images:    []Upload{{Filename: "a.jpg", ContentType: "image/jpeg", Body: strings.NewReader("jpg")}},
	})
	require.NoError(t, err)

	leoArt, err := app.artwork.CreateArtwork(ctx, actorOf(leo), CreateArtworkParams{
		Title:     "Dusk",
		Thumbnail: &Upload{Filename: "dusk.png", ContentType: "image/png", Body: strings.NewReader("png")},
	})
	require.NoError(t, err)

	require.NoError(t, app.admin.DeleteUser(ctx, mona.ID.Hex()))

	assert.Nil(t, app.users.stored("mona@example.com"))
	_, err = app.artwork.GetArtwork(ctx, monaArt.ID.Hex())
	assert.ErrorIs(t, err, ErrArtworkNotFound)
	for _, f := range monaArt.Files() {
		assert.False(t, app.storage.has(f), f)
	}

	_, err = app.artwork.GetArtwork(ctx, leoArt.ID.Hex())
	assert.NoError(t, err)
	assert.True(t, app.storage.has(leoArt.Thumbnail))

	assert.ErrorIs(t, app.admin.DeleteUser(ctx, mona.ID.Hex()), ErrUserNotFound)
}

func TestAdmin_DeleteUserFailure(t *testing.T) {
	app := newTestApp(t)

	artist, _ := app.register(t, "Mona", "mona@example.com", "s3cret-pass")
	app.users.deleteErr = errors.New("connection reset")

	err := app.admin.DeleteUser(context.Background(), artist.ID.Hex())
	assert.EqualError(t, err, "connection reset")
}
