package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/warrick-io/warrick/internal/shared"
	"github.com/warrick-io/warrick/internal/storage"
)

func newTestService(t *testing.T) (*Service, storage.Store) {
	t.Helper()
	store := storage.NewMemory()
	svc, err := NewService(NewRepository(store, nil), ServiceConfig{SeedPassword: "arvin_hanif", HashCost: bcrypt.MinCost})
	require.NoError(t, err)
	return svc, store
}

func adminCtx() context.Context {
	return shared.ContextWithActor(context.Background(), shared.Actor{UserID: "admin-01", Role: RoleAdmin})
}

func TestSeedAdminCanLogInByUsernameOrMobile(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	u, err := svc.Authenticate(ctx, "arvin_hanif", "arvin_hanif", PortalAdmin)
	require.NoError(t, err)
	require.Equal(t, "admin-01", u.ID)

	_, err = svc.Authenticate(ctx, "01XXXXXXXXX", "arvin_hanif", PortalStandard)
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "arvin_hanif", "wrong", PortalStandard)
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
	_, err = svc.Authenticate(ctx, "", "", PortalStandard)
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestAdminPortalRejectsStaff(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register(adminCtx(), UserInput{Name: "Sadia", Mobile: "01711111111", Password: "secret"})
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), "01711111111", "secret", PortalAdmin)
	require.ErrorIs(t, err, ErrAdminPortal)

	u, err := svc.Authenticate(context.Background(), "01711111111", "secret", PortalStandard)
	require.NoError(t, err)
	require.Equal(t, RoleStaff, u.Role)
	require.Equal(t, "01711111111", u.Username)
}

func TestRegisterRequiresAdminAndPassword(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register(context.Background(), UserInput{Name: "X", Email: "x@y.z", Password: "p"})
	require.ErrorIs(t, err, shared.ErrNoSession)

	staff := shared.ContextWithActor(context.Background(), shared.Actor{UserID: "u", Role: RoleStaff})
	_, err = svc.Register(staff, UserInput{Name: "X", Email: "x@y.z", Password: "p"})
	require.ErrorIs(t, err, shared.ErrAdminRequired)

	_, err = svc.Register(adminCtx(), UserInput{Name: "X", Email: "x@y.z"})
	require.ErrorIs(t, err, ErrInvalidUser)

	_, err = svc.Register(adminCtx(), UserInput{Name: "X", Email: "arvin_hanif", Password: "p"})
	require.ErrorIs(t, err, ErrDuplicateUsername)

	u, err := svc.Register(adminCtx(), UserInput{Name: "X", Email: "x@y.z", Password: "p"})
	require.NoError(t, err)
	require.Equal(t, "x@y.z", u.Username)
	require.NotEmpty(t, u.PasswordHash)

	list, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "admin-01", list[0].ID)
}

func TestDeleteRejectsSelf(t *testing.T) {
	svc, _ := newTestService(t)

	require.ErrorIs(t, svc.Delete(adminCtx(), "admin-01"), ErrSelfDelete)

	u, err := svc.Register(adminCtx(), UserInput{Name: "Tmp", Mobile: "0190", Password: "p"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(adminCtx(), u.ID))
	require.ErrorIs(t, svc.Delete(adminCtx(), u.ID), ErrNotFound)
}

func TestUpdateKeepsPasswordWhenBlank(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	u, err := svc.Register(adminCtx(), UserInput{Name: "Tmp", Mobile: "0190", Password: "first"})
	require.NoError(t, err)

	_, err = svc.Update(adminCtx(), u.ID, UserInput{Name: "Renamed", Mobile: "0190", Role: RoleAdmin})
	require.NoError(t, err)
	got, err := svc.Authenticate(ctx, "0190", "first", PortalAdmin)
	require.NoError(t, err)
	require.Equal(t, "Renamed", got.Name)

	_, err = svc.Update(adminCtx(), u.ID, UserInput{Name: "Renamed", Mobile: "0190", Password: "second"})
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, "0190", "first", PortalStandard)
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestLegacyPlaintextPasswordIsUpgraded(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	legacy := `[{"id":"admin-01","role":"Admin","name":"Arvin Hanif","username":"arvin_hanif","password":"arvin_hanif","mobile":"01XXXXXXXXX"}]`
	require.NoError(t, store.Set(ctx, storage.KeyUsers, []byte(legacy)))

	u, err := svc.Authenticate(ctx, "arvin_hanif", "arvin_hanif", PortalStandard)
	require.NoError(t, err)
	require.Empty(t, u.Password)
	require.NotEmpty(t, u.PasswordHash)

	list, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Empty(t, list[0].Password)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(list[0].PasswordHash), []byte("arvin_hanif")))
}

func TestSessionLifecycle(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	_, err := svc.Current(ctx)
	require.ErrorIs(t, err, shared.ErrNoSession)

	_, err = svc.Login(ctx, "arvin_hanif", "arvin_hanif", PortalStandard)
	require.NoError(t, err)
	current, err := svc.Current(ctx)
	require.NoError(t, err)
	require.Equal(t, "admin-01", current.ID)

	require.NoError(t, svc.Logout(ctx))
	_, err = svc.Current(ctx)
	require.ErrorIs(t, err, shared.ErrNoSession)

	// A whole user object written by older builds still resolves.
	require.NoError(t, store.Set(ctx, storage.KeyAuth, []byte(`{"id":"admin-01","role":"Admin","name":"Arvin Hanif"}`)))
	current, err = svc.Current(ctx)
	require.NoError(t, err)
	require.Equal(t, "Arvin Hanif", current.Name)
}
