package wallet

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/warrick-io/warrick/internal/shared"
	"github.com/warrick-io/warrick/internal/storage"
	"github.com/warrick-io/warrick/internal/users"
)

func newTestService(t *testing.T) (*Service, storage.Store) {
	t.Helper()
	store := storage.NewMemory()
	accounts, err := users.NewService(users.NewRepository(store, nil), users.ServiceConfig{SeedPassword: "s3cret", HashCost: bcrypt.MinCost})
	require.NoError(t, err)
	svc := NewService(NewRepository(store, nil), accounts, nil)
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC) }
	return svc, store
}

func TestDefaultProfile(t *testing.T) {
	svc, _ := newTestService(t)

	p, err := svc.Profile(context.Background())
	require.NoError(t, err)
	require.Equal(t, DefaultProfile(), p)
	require.False(t, p.Elevated())
}

func TestWritesRequireClearance(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, TransactionInput{Description: "Rent", Amount: 100, Type: Expense})
	require.ErrorIs(t, err, ErrNotElevated)

	_, err = svc.Elevate(ctx, "arvin_hanif", "wrong")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)

	p, err := svc.Elevate(ctx, "arvin_hanif", "s3cret")
	require.NoError(t, err)
	require.Equal(t, RoleAdmin, p.Role)
	require.Equal(t, "Arvin Hanif", p.Name)

	first, err := svc.Add(ctx, TransactionInput{Description: "Invoice #0001", Amount: 500, Type: Income})
	require.NoError(t, err)
	require.Equal(t, "2024-06-01T08:00:00Z", first.Date)
	second, err := svc.Add(ctx, TransactionInput{Description: " Rent ", Amount: 120.5, Type: Expense})
	require.NoError(t, err)
	require.Equal(t, "Rent", second.Description)

	txs, err := svc.Transactions(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	require.Equal(t, second.ID, txs[0].ID)

	st, err := svc.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, Stats{TotalIncome: 500, TotalExpenses: 120.5, TotalBalance: 379.5}, st)

	require.NoError(t, svc.Delete(ctx, first.ID))
	require.ErrorIs(t, svc.Delete(ctx, first.ID), ErrNotFound)

	p, err = svc.Demote(ctx)
	require.NoError(t, err)
	require.Equal(t, RoleUser, p.Role)
	require.Equal(t, DefaultName, p.Name)
	require.ErrorIs(t, svc.Delete(ctx, second.ID), ErrNotElevated)
}

func TestAddRejectsInvalidInput(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	_, err := svc.Elevate(ctx, "arvin_hanif", "s3cret")
	require.NoError(t, err)

	for _, in := range []TransactionInput{
		{Description: "", Amount: 1, Type: Income},
		{Description: "x", Amount: 0, Type: Income},
		{Description: "x", Amount: 5, Type: "TRANSFER"},
	} {
		_, err := svc.Add(ctx, in)
		require.ErrorIs(t, err, ErrInvalidTransaction)
	}
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	p, err := svc.UpdateProfile(ctx, ProfileInput{Name: "  ", Currency: "€"})
	require.NoError(t, err)
	require.Equal(t, DefaultName, p.Name)
	require.Equal(t, "€", p.Currency)

	p, err = svc.UpdateProfile(ctx, ProfileInput{Name: "Nadia"})
	require.NoError(t, err)
	require.Equal(t, "Nadia", p.Name)
	require.Equal(t, "€", p.Currency)
	require.Equal(t, RoleUser, p.Role)

	_, err = svc.UpdateProfile(ctx, ProfileInput{Name: "Nadia", Currency: "£"})
	require.ErrorIs(t, err, ErrInvalidTransaction)
}

func TestConcurrentProfileWritesKeepEachOthersFields(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 40)
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := svc.UpdateProfile(ctx, ProfileInput{Currency: "€"})
			errs <- err
		}()
		go func() {
			defer wg.Done()
			_, err := svc.Elevate(ctx, "arvin_hanif", "s3cret")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	p, err := svc.Profile(ctx)
	require.NoError(t, err)
	require.Equal(t, "€", p.Currency)
	require.Equal(t, RoleAdmin, p.Role)
}

func TestComputeStatsIgnoresUnknownTypes(t *testing.T) {
	st := ComputeStats([]Transaction{
		{Amount: 10, Type: Income},
		{Amount: 4, Type: Expense},
		{Amount: 99, Type: "OTHER"},
	})
	require.Equal(t, Stats{TotalIncome: 10, TotalExpenses: 4, TotalBalance: 6}, st)
}

func TestLegacyJournalIsRead(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, storage.KeyWallet, []byte(`[{"id":"1","description":"Coffee","amount":3.5,"type":"EXPENSE","date":"6/1/2024, 9:00:00 AM"}]`)))

	txs, err := svc.Transactions(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	require.Equal(t, "Coffee", txs[0].Description)
}
