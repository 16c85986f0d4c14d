// Package jitter добавляет случайность к интервалам, чтобы ключи кэша,
// записанные одним пакетом, не истекали одновременно.
package jitter

import (
	"math/rand"
	"sync"
	"time"
)

// DefaultJitter — стандартный коэффициент джиттера для TTL (20%)
const DefaultJitter = 0.2

var (
	globalRand = rand.New(rand.NewSource(time.Now().UnixNano()))
	randMutex  sync.Mutex
)

// Duration возвращает продолжительность с применённым джиттером.
// Результат находится в диапазоне [d, d*(1+jitterFactor)].
func Duration(d time.Duration, jitterFactor float64) time.Duration {
	randMutex.Lock()
	f := globalRand.Float64()
	randMutex.Unlock()
	return apply(d, jitterFactor, f)
}

// DurationWithRand — то же, что Duration, но с заданным генератором (для тестов).
func DurationWithRand(d time.Duration, jitterFactor float64, rng *rand.Rand) time.Duration {
	return apply(d, jitterFactor, rng.Float64())
}

func apply(d time.Duration, jitterFactor float64, f float64) time.Duration {
	if d <= 0 || jitterFactor <= 0 {
		return d
	}
	return d + time.Duration(f*jitterFactor*float64(d))
}
