package content

import (
	"context"
	"testing"
	"testing/fstest"

	herrors "hyperui/internal/errors"

	"github.com/stretchr/testify/require"
)

func testStore() *Store {
	return New(fstest.MapFS{
		"cards-basic.mdx":     {Data: []byte("---\ntitle: Cards\n---\n")},
		"buttons-rounded.mdx": {Data: []byte("---\ntitle: Rounded\n---\n")},
		".DS_Store":           {Data: []byte{0}},
		"nested/alerts-x.mdx": {Data: []byte("ignored")},
		"latin1-bad.mdx":      {Data: []byte{0xff, 0xfe, 0x41}},
	})
}

func TestNames_SortedRegularFilesOnly(t *testing.T) {
	names, err := testStore().Names(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"buttons-rounded.mdx", "cards-basic.mdx", "latin1-bad.mdx"}, names)
}

func TestRead_ReturnsBytes(t *testing.T) {
	data, err := testStore().Read(context.Background(), "cards-basic.mdx")
	require.NoError(t, err)
	require.Equal(t, "---\ntitle: Cards\n---\n", string(data))
}

func TestRead_Missing_IsNotFound(t *testing.T) {
	_, err := testStore().Read(context.Background(), "forms-missing.mdx")
	require.Error(t, err)
	require.True(t, herrors.HasCategory(err, herrors.CategoryNotFound))
	file, _ := herrors.GetFile(err)
	require.Equal(t, "forms-missing.mdx", file)
}

func TestRead_InvalidUTF8_IsParseError(t *testing.T) {
	_, err := testStore().Read(context.Background(), "latin1-bad.mdx")
	require.True(t, herrors.HasCategory(err, herrors.CategoryParse))
}

func TestRead_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := testStore().Read(ctx, "cards-basic.mdx")
	require.ErrorIs(t, err, context.Canceled)
}
