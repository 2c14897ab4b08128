package store_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/hugh/otp-auth/internal/database/models"
	"github.com/hugh/otp-auth/internal/store"
	"github.com/hugh/otp-auth/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormUsers_CreateAndFind(t *testing.T) {
	ctx := testutil.TestContext(t)
	users := testutil.NewTestStore(t)

	user := &models.User{Name: "Jane", Email: "jane@example.com", PasswordHash: "hash"}
	require.NoError(t, users.Create(ctx, user))
	assert.NotEmpty(t, user.ID)

	byEmail, err := users.FindByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
	assert.False(t, byEmail.IsAccountVerified)
	assert.Empty(t, byEmail.VerifyOTP)
	assert.Zero(t, byEmail.VerifyOTPExpiresAt)

	byID, err := users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane", byID.Name)
}

func TestGormUsers_NotFound(t *testing.T) {
	ctx := testutil.TestContext(t)
	users := testutil.NewTestStore(t)

	_, err := users.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = users.FindByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestGormUsers_DuplicateEmail(t *testing.T) {
	ctx := testutil.TestContext(t)
	users := testutil.NewTestStore(t)

	first := &models.User{Name: "First", Email: "dup@example.com", PasswordHash: "hash-1"}
	require.NoError(t, users.Create(ctx, first))

	second := &models.User{Name: "Second", Email: "dup@example.com", PasswordHash: "hash-2"}
	assert.ErrorIs(t, users.Create(ctx, second), store.ErrDuplicateEmail)

	stored, err := users.FindByEmail(ctx, "dup@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, stored.ID)
	assert.Equal(t, "First", stored.Name)
	assert.Equal(t, "hash-1", stored.PasswordHash)
}

func TestGormUsers_SaveRoundTripsOTPSlots(t *testing.T) {
	ctx := testutil.TestContext(t)
	users := testutil.NewTestStore(t)
	user := testutil.CreateTestUser(t, users)

	user.VerifyOTP = "123456"
	user.VerifyOTPExpiresAt = 1767323045000
	user.ResetOTP = "654321"
	user.ResetOTPExpiresAt = 1767322145000
	require.NoError(t, users.Save(ctx, user))

	stored, err := users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "123456", stored.VerifyOTP)
	assert.Equal(t, int64(1767323045000), stored.VerifyOTPExpiresAt)
	assert.Equal(t, "654321", stored.ResetOTP)
	assert.Equal(t, int64(1767322145000), stored.ResetOTPExpiresAt)

	// clearing writes zero values back
	stored.VerifyOTP = ""
	stored.VerifyOTPExpiresAt = 0
	stored.IsAccountVerified = true
	require.NoError(t, users.Save(ctx, stored))

	again, err := users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, again.VerifyOTP)
	assert.Zero(t, again.VerifyOTPExpiresAt)
	assert.True(t, again.IsAccountVerified)
	assert.Equal(t, "654321", again.ResetOTP)
}

func TestGormUsers_SaveIsIdempotent(t *testing.T) {
	ctx := testutil.TestContext(t)
	users := testutil.NewTestStore(t)
	user := testutil.CreateTestUser(t, users)

	require.NoError(t, users.Save(ctx, user))
	require.NoError(t, users.Save(ctx, user))

	stored, err := users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, stored.Email)
}

func TestGormUsers_SaveUnknown(t *testing.T) {
	ctx := testutil.TestContext(t)
	users := testutil.NewTestStore(t)

	err := users.Save(ctx, &models.User{ID: uuid.NewString(), Name: "Ghost", Email: "ghost@example.com", PasswordHash: "x"})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestGormUsers_Ping(t *testing.T) {
	users := testutil.NewTestStore(t)
	assert.NoError(t, users.Ping(testutil.TestContext(t)))
}
