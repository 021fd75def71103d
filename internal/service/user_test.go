package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sandeepk/magshop/internal/hash"
	"github.com/sandeepk/magshop/internal/models"
	"github.com/sandeepk/magshop/internal/repo"
)

func newUserService(t *testing.T) (*UserService, *repo.GormRepo) {
	store := repo.New(initTestDB(t))
	return NewUserService(store), store
}

func TestRegister(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	user := models.User{Username: "alice", Email: "alice@example.com", Age: 19}
	require.NoError(t, svc.Register(ctx, &user, "password"))
	require.NotZero(t, user.ID)
	require.Equal(t, "ROLE_USER", user.Roles)
	require.NotEqual(t, "password", user.PasswordHash)
	require.True(t, hash.CheckPassword(user.PasswordHash, "password"))
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, store := newUserService(t)
	ctx := context.Background()

	first := models.User{Username: "alice", Email: "alice@example.com", Age: 25}
	require.NoError(t, svc.Register(ctx, &first, "password"))

	dup := models.User{Username: "alice", Email: "other@example.com", Age: 30}
	err := svc.Register(ctx, &dup, "password")
	require.ErrorIs(t, err, repo.ErrUserExists)

	total, err := store.CountUsers(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
}

func TestRegisterUnderage(t *testing.T) {
	svc, store := newUserService(t)
	ctx := context.Background()

	user := models.User{Username: "kid", Email: "kid@example.com", Age: 17}
	require.ErrorIs(t, svc.Register(ctx, &user, "password"), ErrUnderage)

	// boundary: exactly 18 is still rejected
	user18 := models.User{Username: "teen", Email: "teen@example.com", Age: 18}
	require.ErrorIs(t, svc.Register(ctx, &user18, "password"), ErrUnderage)

	total, err := store.CountUsers(ctx)
	require.NoError(t, err)
	require.Zero(t, total)
}

func TestUpdateUnderage(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	user := models.User{Username: "alice", Email: "alice@example.com", Age: 25}
	require.NoError(t, svc.Register(ctx, &user, "password"))

	user.Age = 17
	require.ErrorIs(t, svc.Update(ctx, &user), ErrUnderage)
}

func TestCountWithRole(t *testing.T) {
	svc, store := newUserService(t)
	ctx := context.Background()

	admin := models.User{Username: "root", PasswordHash: "x", Roles: "ROLE_ADMIN,ROLE_USER"}
	require.NoError(t, store.CreateUser(ctx, &admin))
	user := models.User{Username: "bob", PasswordHash: "x", Roles: "ROLE_USER"}
	require.NoError(t, store.CreateUser(ctx, &user))

	admins, err := svc.CountWithRole(ctx, "ROLE_ADMIN")
	require.NoError(t, err)
	require.EqualValues(t, 1, admins)

	users, err := svc.CountWithRole(ctx, "ROLE_USER")
	require.NoError(t, err)
	require.EqualValues(t, 2, users)
}

func TestGetByUsername(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	user := models.User{Username: "alice", Email: "alice@example.com", Age: 25}
	require.NoError(t, svc.Register(ctx, &user, "password"))

	found, err := svc.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, user.ID, found.ID)

	_, err = svc.GetByUsername(ctx, "nobody")
	require.ErrorIs(t, err, repo.ErrNotFound)
}

func TestDeleteUser(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	user := models.User{Username: "alice", Email: "alice@example.com", Age: 25}
	require.NoError(t, svc.Register(ctx, &user, "password"))
	require.NoError(t, svc.Delete(ctx, user.ID))
	require.ErrorIs(t, svc.Delete(ctx, user.ID), repo.ErrNotFound)
}
