package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarrydb/quarry/document"
)

func TestNewPlaceholderValidatesName(t *testing.T) {
	filter := NewAlwaysTrue()

	for _, name := range []string{"i", "sub", "name0", "aB9"} {
		_, err := NewPlaceholder(name, filter)
		assert.NoError(t, err, "name %q should be accepted", name)
	}
	for _, name := range []string{"", "I", "0i", "$i", "has space", "with-dash"} {
		_, err := NewPlaceholder(name, filter)
		assert.Error(t, err, "name %q should be rejected", name)
	}
}

func TestNewPlaceholderRequiresFilter(t *testing.T) {
	_, err := NewPlaceholder("i", nil)
	assert.Error(t, err)
}

func TestPlaceholderBindsFilter(t *testing.T) {
	lt5, err := NewComparison(OpLT, "i", document.Int(5))
	require.NoError(t, err)
	ph, err := NewPlaceholder("i", lt5)
	require.NoError(t, err)

	assert.True(t, ph.Filter().MatchesElement(document.Int(3)))
	assert.False(t, ph.Filter().MatchesElement(document.Int(7)))
}

func TestPlaceholderEquivalence(t *testing.T) {
	lt5, _ := NewComparison(OpLT, "i", document.Int(5))
	lt5j, _ := NewComparison(OpLT, "j", document.Int(5))

	a, err := NewPlaceholder("i", lt5)
	require.NoError(t, err)
	b, err := NewPlaceholder("i", lt5.Clone())
	require.NoError(t, err)
	c, err := NewPlaceholder("j", lt5j)
	require.NoError(t, err)

	assert.True(t, a.Equivalent(b))
	assert.False(t, a.Equivalent(c), "placeholder names are compared exactly, not up to renaming")
	assert.False(t, a.Equivalent(nil))
}

func TestPlaceholderClone(t *testing.T) {
	lt5, _ := NewComparison(OpLT, "i", document.Int(5))
	ph, err := NewPlaceholder("i", lt5)
	require.NoError(t, err)

	clone := ph.Clone()
	assert.Equal(t, "i", clone.Name())
	assert.True(t, ph.Equivalent(clone))
	assert.NotSame(t, ph.Filter(), clone.Filter())
}
