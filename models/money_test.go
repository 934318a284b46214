package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoneyArithmetic(t *testing.T) {
	a := Money{USD: 10, UZS: 100}
	b := Money{USD: 3, UZS: 250}

	assert.Equal(t, Money{USD: 13, UZS: 350}, a.Add(b))
	assert.Equal(t, Money{USD: 7, UZS: -150}, a.Sub(b))
	assert.Equal(t, Money{USD: -10, UZS: -100}, a.Neg())
}

func TestMoneyFloorZero(t *testing.T) {
	assert.Equal(t, Money{USD: 0, UZS: 40}, Money{USD: -5, UZS: 40}.FloorZero())
	assert.Equal(t, Money{}, Money{USD: -1, UZS: -1}.FloorZero())
	assert.Equal(t, Money{USD: 2, UZS: 3}, Money{USD: 2, UZS: 3}.FloorZero())
}

func TestMoneyPredicates(t *testing.T) {
	assert.True(t, Money{}.IsZero())
	assert.False(t, Money{UZS: 1}.IsZero())
	assert.True(t, Money{UZS: 1}.HasPositive())
	assert.True(t, Money{USD: 1, UZS: -5}.HasPositive())
	assert.False(t, Money{USD: -1, UZS: -5}.HasPositive())
	assert.False(t, Money{}.HasPositive())
}

func TestMoneyAddCurrency(t *testing.T) {
	m := Money{}
	m = m.AddCurrency(CurrencyUSD, 5)
	m = m.AddCurrency(CurrencyUZS, 70)
	m = m.AddCurrency("eur", 9)
	assert.Equal(t, Money{USD: 5, UZS: 70}, m)
}
