package hawk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlgorithm(t *testing.T) {
	key := []byte("werxhqb98rpaxn39848xrunpaw3489ruxnpa98w4rxn")

	t.Run("supported", func(t *testing.T) {
		assert.True(t, AlgorithmSHA256.Supported())
		assert.True(t, AlgorithmSHA1.Supported())
		assert.False(t, Algorithm("sha512").Supported())
		assert.False(t, Algorithm("").Supported())
	})

	t.Run("string", func(t *testing.T) {
		assert.Equal(t, "sha256", AlgorithmSHA256.String())
	})

	t.Run("mac and verify", func(t *testing.T) {
		for _, alg := range []Algorithm{AlgorithmSHA256, AlgorithmSHA1} {
			t.Run(alg.String(), func(t *testing.T) {
				tag, err := alg.MAC(key, []byte("message"))
				require.NoError(t, err)

				assert.NoError(t, alg.Verify(key, []byte("message"), tag))
				assert.ErrorIs(t, alg.Verify(key, []byte("other"), tag), ErrMACMismatch)
				assert.ErrorIs(t, alg.Verify([]byte("wrong"), []byte("message"), tag), ErrMACMismatch)
			})
		}
	})

	t.Run("different algorithms produce different tags", func(t *testing.T) {
		a, err := AlgorithmSHA256.MAC(key, []byte("message"))
		require.NoError(t, err)

		b, err := AlgorithmSHA1.MAC(key, []byte("message"))
		require.NoError(t, err)

		assert.NotEqual(t, a, b)
	})

	t.Run("unknown algorithm", func(t *testing.T) {
		_, err := Algorithm("md5").MAC(key, nil)
		assert.ErrorIs(t, err, ErrUnknownAlgorithm)

		err = Algorithm("md5").Verify(key, nil, "")
		assert.ErrorIs(t, err, ErrUnknownAlgorithm)
	})
}
