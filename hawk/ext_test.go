package hawk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtString(t *testing.T) {
	t.Run("empty is absent", func(t *testing.T) {
		assert.Equal(t, "", Ext{}.String())
		assert.Equal(t, "", Ext(nil).String())
	})

	t.Run("single field", func(t *testing.T) {
		assert.Equal(t, "{email: 'jon@example.com'}", Ext{}.Add("email", "jon@example.com").String())
	})

	t.Run("fields keep insertion order", func(t *testing.T) {
		ext := Ext{}.
			Add("givenName", "Jon").
			Add("familyName", "Doe").
			Add("numOfItemsCommitted", 1).
			Add("active", true)

		assert.Equal(t, "{givenName: 'Jon', familyName: 'Doe', numOfItemsCommitted: '1', active: 'true'}", ext.String())
	})

	t.Run("nested values are not walked", func(t *testing.T) {
		ext := Ext{}.Add("issues", []string{"A", "B"})
		assert.Equal(t, "{issues: '[A B]'}", ext.String())
	})
}
