package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type profile struct {
	Name string `json:"name"`
}

func defaultProfile() profile { return profile{Name: "default"} }

func TestDocumentRoundTripWritesEnvelope(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()
	doc := Document[profile]{Key: KeyBusiness, Default: defaultProfile}

	require.NoError(t, doc.Save(ctx, store, profile{Name: "Warrick"}))

	raw, ok, err := store.Get(ctx, KeyBusiness)
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `{"schemaVersion":1,"data":{"name":"Warrick"}}`, string(raw))

	got, err := doc.Load(ctx, store)
	require.NoError(t, err)
	require.Equal(t, "Warrick", got.Name)
}

func TestDocumentFallsBackToDefault(t *testing.T) {
	ctx := context.Background()
	doc := Document[profile]{Key: KeyBusiness, Default: defaultProfile}

	cases := map[string]string{
		"malformed":      `{"name":`,
		"wrong type":     `[1,2,3]`,
		"null":           `null`,
		"null data":      `{"schemaVersion":1,"data":null}`,
		"future version": `{"schemaVersion":99,"data":{"name":"x"}}`,
		"empty":          ``,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			store := NewMemory()
			require.NoError(t, store.Set(ctx, KeyBusiness, []byte(raw)))
			got, err := doc.Load(ctx, store)
			require.NoError(t, err)
			require.Equal(t, defaultProfile(), got)
		})
	}

	got, err := doc.Load(ctx, NewMemory())
	require.NoError(t, err)
	require.Equal(t, defaultProfile(), got)
}

func TestDocumentReadsLegacyPayload(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()
	require.NoError(t, store.Set(ctx, KeyBusiness, []byte(`{"name":"Legacy Co"}`)))
	require.NoError(t, store.Set(ctx, KeyProducts, []byte(`[{"name":"Pen"}]`)))

	business, err := Document[profile]{Key: KeyBusiness, Default: defaultProfile}.Load(ctx, store)
	require.NoError(t, err)
	require.Equal(t, "Legacy Co", business.Name)

	products, err := Document[[]profile]{Key: KeyProducts}.Load(ctx, store)
	require.NoError(t, err)
	require.Equal(t, []profile{{Name: "Pen"}}, products)
}

func TestDocumentRemove(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()
	doc := Document[profile]{Key: KeyAuth}
	require.NoError(t, doc.Save(ctx, store, profile{Name: "a"}))
	require.NoError(t, doc.Remove(ctx, store))

	_, ok, err := store.Get(ctx, KeyAuth)
	require.NoError(t, err)
	require.False(t, ok)
}
