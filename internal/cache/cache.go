// Package cache implementa um cache explícito por TTL, substituindo a
// memoização por decorator do protótipo original.
package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Cache guarda valores por chave durante uma janela fixa de tempo.
// Seguro para leituras e escritas concorrentes.
type Cache[V any] struct {
	mu      sync.Mutex
	entries map[string]entry[V]

	// now é injetável para os testes controlarem o relógio
	now func() time.Time
}

func New[V any]() *Cache[V] {
	return &Cache[V]{
		entries: make(map[string]entry[V]),
		now:     time.Now,
	}
}

// GetOrFetch retorna o valor em cache para a chave enquanto a janela não expira;
// caso contrário executa o producer e guarda o resultado. Um producer que retorna
// erro não é cacheado.
func (c *Cache[V]) GetOrFetch(key string, ttl time.Duration, producer func() (V, error)) (V, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok && c.now().Before(e.expiresAt) {
		return e.value, nil
	}

	value, err := producer()
	if err != nil {
		var zero V
		return zero, err
	}

	c.entries[key] = entry[V]{value: value, expiresAt: c.now().Add(ttl)}
	return value, nil
}

// Invalidate remove a entrada da chave, forçando novo fetch na próxima leitura
func (c *Cache[V]) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}
