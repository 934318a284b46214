package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/UlugbekMirdadayev/sklad-v2-backend-sub000/services"
)

func TestCountWindow(t *testing.T) {
	upTo := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)
	dayStart := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("no filter bounds", func(t *testing.T) {
		from, to := countWindow(services.OrderFilter{}, upTo)
		assert.Equal(t, dayStart, from)
		assert.Equal(t, upTo, to)
	})

	t.Run("filter from inside the day narrows the start", func(t *testing.T) {
		f := services.OrderFilter{From: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}
		from, to := countWindow(f, upTo)
		assert.Equal(t, f.From, from)
		assert.Equal(t, upTo, to)
	})

	t.Run("filter from before the day is ignored", func(t *testing.T) {
		f := services.OrderFilter{From: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)}
		from, _ := countWindow(f, upTo)
		assert.Equal(t, dayStart, from)
	})

	t.Run("filter to inside the day narrows the end", func(t *testing.T) {
		f := services.OrderFilter{To: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)}
		_, to := countWindow(f, upTo)
		assert.Equal(t, f.To, to)
	})

	t.Run("filter to after upTo is ignored", func(t *testing.T) {
		f := services.OrderFilter{To: time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)}
		_, to := countWindow(f, upTo)
		assert.Equal(t, upTo, to)
	})
}
