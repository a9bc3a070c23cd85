package matcher

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quarrydb/quarry/document"
)

// mustDoc parses a JSON object for use as a test fixture.
func mustDoc(t *testing.T, src string) document.Document {
	t.Helper()
	doc, err := document.ParseJSON([]byte(src))
	require.NoError(t, err, "bad test fixture: %s", src)
	return doc
}
