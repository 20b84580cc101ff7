package debounce

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	values []string
}

func (r *recorder) record(value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, value)
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.values...)
}

func TestValue(t *testing.T) {
	t.Run("publishes only the last value after the delay", func(t *testing.T) {
		rec := &recorder{}
		value := New("", 50*time.Millisecond, rec.record)

		for _, draft := range []string{"m", "mu", "mus", "musi", "music"} {
			value.Set(draft)
			time.Sleep(5 * time.Millisecond)
		}
		assert.Equal(t, "", value.Get())

		require.Eventually(t, func() bool { return value.Get() == "music" }, time.Second, 5*time.Millisecond)
		time.Sleep(100 * time.Millisecond)
		assert.Equal(t, []string{"music"}, rec.snapshot())
	})

	t.Run("keeps holding while changes continue", func(t *testing.T) {
		value := New("", 60*time.Millisecond, nil)
		deadline := time.Now().Add(150 * time.Millisecond)
		for time.Now().Before(deadline) {
			value.Set("typing")
			time.Sleep(10 * time.Millisecond)
		}
		assert.Equal(t, "", value.Get())
		require.Eventually(t, func() bool { return value.Get() == "typing" }, time.Second, 5*time.Millisecond)
	})

	t.Run("settling to the same value does not notify", func(t *testing.T) {
		rec := &recorder{}
		value := New("rock", 20*time.Millisecond, rec.record)
		value.Set("roc")
		value.Set("rock")
		time.Sleep(80 * time.Millisecond)
		assert.Equal(t, "rock", value.Get())
		assert.Empty(t, rec.snapshot())
	})

	t.Run("stop drops the pending value", func(t *testing.T) {
		rec := &recorder{}
		value := New("", 20*time.Millisecond, rec.record)
		value.Set("music")
		value.Stop()
		time.Sleep(80 * time.Millisecond)
		assert.Equal(t, "", value.Get())
		assert.Empty(t, rec.snapshot())
	})
}
