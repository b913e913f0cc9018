package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, "", New().Encode())
		assert.Equal(t, "", (&Values{}).Encode())

		var v *Values
		assert.Equal(t, "", v.Encode())
	})

	t.Run("full text and arrays", func(t *testing.T) {
		q := New().Set("q", "foster care").Add("issues", "A", "B")
		assert.Equal(t, "q=foster%20care&issues[]=A&issues[]=B", q.Encode())
	})

	t.Run("keys keep insertion order", func(t *testing.T) {
		q := New().
			Add("region", "South", "Central").
			Set("q", "x").
			Add("issues", "Education")

		assert.Equal(t, "region[]=South&region[]=Central&q=x&issues[]=Education", q.Encode())
		assert.Equal(t, []string{"region", "q", "issues"}, q.Keys())
	})

	t.Run("reserved characters are escaped", func(t *testing.T) {
		q := New().Add("issues", "Children/Youth").Set("a&b", "c=d+e")
		assert.Equal(t, "issues[]=Children%2FYouth&a%26b=c%3Dd%2Be", q.Encode())
	})

	t.Run("non-ascii text is escaped", func(t *testing.T) {
		q := New().Set("city", "Zürich")
		assert.Equal(t, "city=Z%C3%BCrich", q.Encode())
	})

	t.Run("scalars are formatted", func(t *testing.T) {
		q := New().Set("page", 2).Set("active", true).Set("ratio", 0.5).Add("ids", 1, 2)
		assert.Equal(t, "page=2&active=true&ratio=0.5&ids[]=1&ids[]=2", q.Encode())
	})

	t.Run("set replaces value in place", func(t *testing.T) {
		q := New().Set("a", "1").Set("b", "2").Set("a", "3")
		assert.Equal(t, "a=3&b=2", q.Encode())
	})

	t.Run("add appends to array", func(t *testing.T) {
		q := New().Add("a", "1").Add("a", "2")
		assert.Equal(t, "a[]=1&a[]=2", q.Encode())
	})

	t.Run("empty array emits nothing", func(t *testing.T) {
		q := New().Add("a").Set("b", "1")
		assert.Equal(t, "b=1", q.Encode())
		assert.Equal(t, 2, q.Len())
	})
}

func TestParse(t *testing.T) {
	t.Run("decodes encoder output", func(t *testing.T) {
		v, err := Parse("?q=foster%20care&issues[]=A&issues[]=B")
		require.NoError(t, err)

		assert.Equal(t, []string{"q", "issues"}, v.Keys())

		q, ok := v.Get("q")
		require.True(t, ok)
		assert.Equal(t, Param{Values: []string{"foster care"}}, q)

		issues, ok := v.Get("issues")
		require.True(t, ok)
		assert.Equal(t, Param{Values: []string{"A", "B"}, Array: true}, issues)
	})

	t.Run("empty", func(t *testing.T) {
		v, err := Parse("")
		require.NoError(t, err)
		assert.Equal(t, 0, v.Len())
	})

	t.Run("malformed escape", func(t *testing.T) {
		_, err := Parse("q=%zz")
		assert.ErrorIs(t, err, ErrMalformedQuery)
	})
}

func TestRoundTrip(t *testing.T) {
	cases := []*Values{
		New(),
		New().Set("q", "foster care"),
		New().Add("region", "South", "Central").Add("issues", "Education", "Children/Youth"),
		New().Set("q", "foster care").Add("region", "South", "Central").Add("issues", "Education", "Children/Youth"),
		New().Set("weird key[]", "a&b=c").Add("ünï", "ø/ø", "+", "%"),
		New().Set("empty", ""),
	}

	for _, in := range cases {
		t.Run(in.Encode(), func(t *testing.T) {
			out, err := Parse(in.Encode())
			require.NoError(t, err)

			assert.Equal(t, in.Keys(), out.Keys())
			for _, key := range in.Keys() {
				want, _ := in.Get(key)
				got, _ := out.Get(key)
				assert.Equal(t, want, got, key)
			}
		})
	}

	t.Run("empty array is dropped", func(t *testing.T) {
		in := New().Set("q", "x").Add("issues")
		assert.Equal(t, "q=x", in.Encode())

		out, err := Parse(in.Encode())
		require.NoError(t, err)
		assert.Equal(t, []string{"q"}, out.Keys())

		_, ok := out.Get("issues")
		assert.False(t, ok)
	})
}
