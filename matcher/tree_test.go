package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarrydb/quarry/document"
)

func lt(t *testing.T, path string, bound int32) Expression {
	t.Helper()
	expr, err := NewComparison(OpLT, path, document.Int(bound))
	require.NoError(t, err)
	return expr
}

func gt(t *testing.T, path string, bound int32) Expression {
	t.Helper()
	expr, err := NewComparison(OpGT, path, document.Int(bound))
	require.NoError(t, err)
	return expr
}

func TestAndExpression(t *testing.T) {
	expr := NewAnd(gt(t, "a", 1), lt(t, "a", 10))

	assert.True(t, expr.Matches(mustDoc(t, `{"a": 5}`)))
	assert.False(t, expr.Matches(mustDoc(t, `{"a": 0}`)))
	assert.False(t, expr.Matches(mustDoc(t, `{"a": 11}`)))
}

func TestEmptyAndIsVacuouslyTrue(t *testing.T) {
	expr := NewAnd()
	assert.True(t, expr.Matches(mustDoc(t, `{"anything": 1}`)))
	assert.True(t, expr.Matches(document.Document{}))
	assert.True(t, expr.MatchesElement(document.Null()))
}

func TestOrExpression(t *testing.T) {
	expr := NewOr(lt(t, "a", 0), gt(t, "a", 10))

	assert.True(t, expr.Matches(mustDoc(t, `{"a": -1}`)))
	assert.True(t, expr.Matches(mustDoc(t, `{"a": 11}`)))
	assert.False(t, expr.Matches(mustDoc(t, `{"a": 5}`)))
	assert.False(t, NewOr().Matches(mustDoc(t, `{"a": 5}`)), "empty disjunction matches nothing")
}

func TestXorExpression(t *testing.T) {
	expr := NewXor(gt(t, "a", 0), gt(t, "a", 10))

	assert.True(t, expr.Matches(mustDoc(t, `{"a": 5}`)), "exactly one branch holds")
	assert.False(t, expr.Matches(mustDoc(t, `{"a": 20}`)), "both branches hold")
	assert.False(t, expr.Matches(mustDoc(t, `{"a": -5}`)), "no branch holds")
}

func TestNotExpression(t *testing.T) {
	expr := NewNot(gt(t, "a", 5))

	assert.True(t, expr.Matches(mustDoc(t, `{"a": 3}`)))
	assert.False(t, expr.Matches(mustDoc(t, `{"a": 7}`)))
	assert.True(t, expr.Matches(mustDoc(t, `{"b": 7}`)), "negation of a failed lookup holds")
}

func TestAlwaysTrueAndFalse(t *testing.T) {
	doc := mustDoc(t, `{"a": 1}`)
	assert.True(t, NewAlwaysTrue().Matches(doc))
	assert.False(t, NewAlwaysFalse().Matches(doc))
	assert.True(t, NewAlwaysTrue().Equivalent(NewAlwaysTrue()))
	assert.False(t, NewAlwaysTrue().Equivalent(NewAlwaysFalse()))
}

func TestObjectMatchExpression(t *testing.T) {
	expr, err := NewObjectMatch("a", lt(t, "b", 5))
	require.NoError(t, err)

	assert.True(t, expr.Matches(mustDoc(t, `{"a": {"b": 3}}`)))
	assert.False(t, expr.Matches(mustDoc(t, `{"a": {"b": 7}}`)))
	assert.False(t, expr.Matches(mustDoc(t, `{"a": 3}`)), "non-object value fails the scope")
	assert.False(t, expr.Matches(mustDoc(t, `{"c": {"b": 3}}`)), "absent field fails the scope")
}

func TestObjectMatchRequiresPath(t *testing.T) {
	_, err := NewObjectMatch("", NewAlwaysTrue())
	assert.Error(t, err)
}

func TestTreeEquivalenceIsOrderSensitive(t *testing.T) {
	a := NewAnd(gt(t, "a", 1), lt(t, "a", 10))
	b := NewAnd(gt(t, "a", 1), lt(t, "a", 10))
	c := NewAnd(lt(t, "a", 10), gt(t, "a", 1))

	assert.True(t, a.Equivalent(b))
	assert.False(t, a.Equivalent(c), "conjunction children compare pairwise in order")
	assert.False(t, a.Equivalent(NewOr(gt(t, "a", 1), lt(t, "a", 10))))
}

func TestTreeCloneIndependence(t *testing.T) {
	orig := NewAnd(gt(t, "a", 1), NewNot(lt(t, "b", 0)))
	orig.SetTag(NewTag(map[string]any{"stage": 1}))

	clone := orig.Clone()
	require.True(t, orig.Equivalent(clone))

	// Growing the original must not grow the clone.
	orig.Add(NewAlwaysFalse())
	assert.False(t, orig.Equivalent(clone))
	assert.True(t, clone.Matches(mustDoc(t, `{"a": 2, "b": 1}`)))
}

func TestTreeSerialize(t *testing.T) {
	expr := NewOr(gt(t, "a", 1), NewNot(lt(t, "b", 5)))
	got := expr.Serialize().String()
	assert.Equal(t, `{"$or":[{"a":{"$gt":1}},{"$not":{"b":{"$lt":5}}}]}`, got)
}
