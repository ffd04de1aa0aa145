package dicthash_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dicthash/dicthash"
)

// clock hashes by its configured name only; the creation time is volatile
// state that must not influence the hash.
type clock struct {
	name    string
	created time.Time
}

func (c clock) ConsistentHash(useApproximation bool) (string, error) {
	return dicthash.SHA256(map[string]any{"name": c.name},
		&dicthash.Options{UseApproximation: useApproximation})
}

type brokenHashable struct{}

func (brokenHashable) ConsistentHash(bool) (string, error) {
	return "", errors.New("broken by construction")
}

func TestHashableOverride(t *testing.T) {
	a := clock{name: "wall", created: time.Now()}
	b := clock{name: "wall", created: time.Now().Add(time.Hour)}
	c := clock{name: "cuckoo", created: a.created}

	t.Run("Volatile state is ignored", func(t *testing.T) {
		h1, err := dicthash.SHA256(map[string]any{"clock": a}, nil)
		require.NoError(t, err)
		h2, err := dicthash.SHA256(map[string]any{"clock": b}, nil)
		require.NoError(t, err)
		assert.Equal(t, h1, h2)

		h3, err := dicthash.SHA256(map[string]any{"clock": c}, nil)
		require.NoError(t, err)
		assert.NotEqual(t, h1, h3)
	})

	t.Run("Hashing the object equals hashing its returned string", func(t *testing.T) {
		s, err := a.ConsistentHash(false)
		require.NoError(t, err)

		h1, err := dicthash.SHA256(a, nil)
		require.NoError(t, err)
		h2, err := dicthash.SHA256(s, nil)
		require.NoError(t, err)
		assert.Equal(t, h1, h2)
	})

	t.Run("Dispatcher never inspects fields", func(t *testing.T) {
		// Structural traversal would see the created field and the hashes
		// would disagree; the override makes them equal.
		h1, err := dicthash.SHA256(a, nil)
		require.NoError(t, err)
		h2, err := dicthash.SHA256(b, nil)
		require.NoError(t, err)
		assert.Equal(t, h1, h2)
	})
}

// sampler reports which approximation flag it was handed, so tests can pin
// that the option actually reaches the Hashable.
type sampler struct{}

func (sampler) ConsistentHash(useApproximation bool) (string, error) {
	if useApproximation {
		return "sampled", nil
	}
	return "full", nil
}

func TestApproximationReachesHashable(t *testing.T) {
	t.Run("Flag off by default", func(t *testing.T) {
		h, err := dicthash.SHA256(sampler{}, nil)
		require.NoError(t, err)
		want, err := dicthash.SHA256("full", nil)
		require.NoError(t, err)
		assert.Equal(t, want, h)
	})

	t.Run("Flag on", func(t *testing.T) {
		h, err := dicthash.SHA256(sampler{}, &dicthash.Options{UseApproximation: true})
		require.NoError(t, err)
		want, err := dicthash.SHA256("sampled", nil)
		require.NoError(t, err)
		assert.Equal(t, want, h)

		off, err := dicthash.SHA256(sampler{}, nil)
		require.NoError(t, err)
		assert.NotEqual(t, off, h)
	})

	t.Run("Session hashing never approximates", func(t *testing.T) {
		v1, err := dicthash.SessionHash(sampler{}, &dicthash.Options{UseApproximation: true})
		require.NoError(t, err)
		v2, err := dicthash.SessionHash(sampler{}, nil)
		require.NoError(t, err)
		assert.Equal(t, v1, v2)
	})
}

func TestHashableErrorPropagates(t *testing.T) {
	// A failure inside user code aborts under every policy: it is not an
	// unknown-type condition.
	for _, policy := range []dicthash.Policy{dicthash.PolicyRaise, dicthash.PolicyWarn, dicthash.PolicyIgnore} {
		t.Run(string(policy), func(t *testing.T) {
			_, err := dicthash.SHA256(map[string]any{"x": brokenHashable{}},
				&dicthash.Options{OnError: policy})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "broken by construction")
		})
	}
}

func TestValidateConsistentHash(t *testing.T) {
	a := clock{name: "wall", created: time.Now()}
	b := clock{name: "wall", created: time.Now().Add(time.Minute)}
	c := clock{name: "cuckoo"}

	ok, err := dicthash.ValidateConsistentHash(a, b)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = dicthash.ValidateConsistentHash(b, a)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = dicthash.ValidateConsistentHash(a, c)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = dicthash.ValidateConsistentHash(a, brokenHashable{})
	require.Error(t, err)
}
