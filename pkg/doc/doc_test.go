package doc

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLibraryReadmeMd(t *testing.T) {
	t.Parallel()

	sb := new(strings.Builder)
	require.NoError(t, LibraryReadmeMd(context.Background(), sb, os.DirFS("./testdata/lib")))

	out := sb.String()
	assert.Contains(t, out, "# test display name. (test)")
	assert.Contains(t, out, "test description")
	assert.Contains(t, out, "## Dependencies")
	assert.Contains(t, out, "## Recipes")
	assert.Contains(t, out, "### r-shape")
	assert.Contains(t, out, "Homepage: https://cran.r-project.org/package=shape")
	assert.Contains(t, out, "Download URL template: `https://cran.r-project.org/src/contrib/shape_{version}.tar.gz`")
	assert.Contains(t, out, "1.4.3")
	assert.Contains(t, out, "2a807bf95e7decc71478f805221852da")
	assert.Contains(t, out, "md5")
}

func TestLibraryReadmeMdMissingLibrary(t *testing.T) {
	t.Parallel()

	sb := new(strings.Builder)
	err := LibraryReadmeMd(context.Background(), sb, os.DirFS("./testdata/does-not-exist"))
	assert.Error(t, err)
}
