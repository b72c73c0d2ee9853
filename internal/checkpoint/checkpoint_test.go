package checkpoint

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyEncoding(t *testing.T) {
	assert.Equal(t, "25", SpeciesKey(25).String())
	assert.Equal(t, "gender:25", GenderKey(25).String())
	assert.Equal(t, "form:unown-a", FormKey("unown-a").String())
	assert.Equal(t, "67", ChainKey(67).String())
	assert.Equal(t, "overgrow", AbilityKey("overgrow").String())
}

func TestDecodeKey(t *testing.T) {
	assert.Equal(t, Key{KindGender, "25"}, DecodeKey("gender:25", KindSpecies))
	assert.Equal(t, Key{KindForm, "unown-a"}, DecodeKey("form:unown-a", KindSpecies))
	assert.Equal(t, Key{KindSpecies, "25"}, DecodeKey("25", KindSpecies))
	assert.Equal(t, Key{KindChain, "67"}, DecodeKey("67", KindChain))
}

func TestKeyRoundTrip(t *testing.T) {
	keys := []Key{SpeciesKey(1), GenderKey(3), FormKey("rotom-wash"), ChainKey(1)}
	for _, k := range keys {
		bare := k.Kind
		if k.Kind == KindGender || k.Kind == KindForm {
			bare = KindSpecies
		}
		assert.Equal(t, k, DecodeKey(k.String(), bare))
	}
}

func TestNumericID(t *testing.T) {
	assert.Equal(t, 151, SpeciesKey(151).NumericID())
	assert.Equal(t, 0, FormKey("rotom-wash").NumericID())
}

func TestFileStoreMissingFile(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "none.json"), KindSpecies)
	records, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "species.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s := NewFileStore(path, KindSpecies)
	records, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "species.json")
	s := NewFileStore(path, KindSpecies)

	rec, err := Marshal(map[string]string{"zh": "皮卡丘"})
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, map[Key]Record{SpeciesKey(25): rec}))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)

	var got map[string]string
	require.NoError(t, Unmarshal(loaded[SpeciesKey(25)], &got))
	assert.Equal(t, "皮卡丘", got["zh"])
}

func TestFileStoreMergeOnWrite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "chains.json")
	s := NewFileStore(path, KindChain)

	first, err := Marshal("first")
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, map[Key]Record{ChainKey(1): first}))

	second, err := Marshal("second")
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, map[Key]Record{ChainKey(2): second}))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded, 2)
}

func TestFileStoreIdempotentSave(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "species.json")
	s := NewFileStore(path, KindSpecies)

	rec, err := Marshal(42)
	require.NoError(t, err)
	records := map[Key]Record{SpeciesKey(1): rec}

	require.NoError(t, s.Save(ctx, records))
	require.NoError(t, s.Save(ctx, records))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
}

func TestFileStoreSharedPrefixKeys(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "form-sprites.json")
	s := NewFileStore(path, KindForm)

	gRec, err := Marshal("https://example.test/f/3.png")
	require.NoError(t, err)
	fRec, err := Marshal("https://example.test/unown-a.png")
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, map[Key]Record{
		GenderKey(3):      gRec,
		FormKey("unown-a"): fRec,
	}))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Contains(t, loaded, GenderKey(3))
	assert.Contains(t, loaded, FormKey("unown-a"))
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "checkpoint.db")

	s, err := NewSQLiteStore(path, "species", KindSpecies)
	require.NoError(t, err)
	defer s.Close() //nolint:errcheck

	rec, err := Marshal("payload")
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, map[Key]Record{SpeciesKey(7): rec}))
	require.NoError(t, s.Save(ctx, map[Key]Record{SpeciesKey(8): rec}))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded, 2)
}

func TestSQLiteStoreStageIsolation(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "checkpoint.db")

	a, err := NewSQLiteStore(path, "species", KindSpecies)
	require.NoError(t, err)
	defer a.Close() //nolint:errcheck
	b, err := NewSQLiteStore(path, "evo-chains", KindChain)
	require.NoError(t, err)
	defer b.Close() //nolint:errcheck

	rec, err := Marshal(1)
	require.NoError(t, err)
	require.NoError(t, a.Save(ctx, map[Key]Record{SpeciesKey(1): rec}))

	loaded, err := b.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}
