package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache_GetOrFetch(t *testing.T) {
	current := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	c := New[int]()
	c.now = func() time.Time { return current }

	calls := 0
	producer := func() (int, error) {
		calls++
		return 42, nil
	}

	// Primeira chamada executa o producer
	v, err := c.GetOrFetch("rates:2024-05-01", time.Hour, producer)
	assert.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 1, calls)

	// Dentro da janela o valor vem do cache
	current = current.Add(30 * time.Minute)
	v, err = c.GetOrFetch("rates:2024-05-01", time.Hour, producer)
	assert.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 1, calls)

	// Depois da janela o producer roda de novo
	current = current.Add(31 * time.Minute)
	_, err = c.GetOrFetch("rates:2024-05-01", time.Hour, producer)
	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestCache_GetOrFetch_ErroNaoCacheado(t *testing.T) {
	c := New[string]()

	calls := 0
	_, err := c.GetOrFetch("k", time.Hour, func() (string, error) {
		calls++
		return "", errors.New("falha no provedor")
	})
	assert.Error(t, err)

	_, err = c.GetOrFetch("k", time.Hour, func() (string, error) {
		calls++
		return "ok", nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestCache_Invalidate(t *testing.T) {
	c := New[int]()

	calls := 0
	producer := func() (int, error) {
		calls++
		return calls, nil
	}

	v, _ := c.GetOrFetch("k", time.Hour, producer)
	assert.Equal(t, 1, v)

	c.Invalidate("k")

	v, _ = c.GetOrFetch("k", time.Hour, producer)
	assert.Equal(t, 2, v)
}
