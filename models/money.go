package models

// Money holds an amount split by currency. All monetary fields on
// orders, debtors and transactions use this shape.
type Money struct {
	USD float64 `bson:"usd" json:"usd"`
	UZS float64 `bson:"uzs" json:"uzs"`
}

func (m Money) Add(o Money) Money {
	return Money{USD: m.USD + o.USD, UZS: m.UZS + o.UZS}
}

func (m Money) Sub(o Money) Money {
	return Money{USD: m.USD - o.USD, UZS: m.UZS - o.UZS}
}

func (m Money) Neg() Money {
	return Money{USD: -m.USD, UZS: -m.UZS}
}

func (m Money) IsZero() bool {
	return m.USD == 0 && m.UZS == 0
}

// HasPositive reports whether any currency component is above zero.
func (m Money) HasPositive() bool {
	return m.USD > 0 || m.UZS > 0
}

// FloorZero clamps negative components to zero.
func (m Money) FloorZero() Money {
	out := m
	if out.USD < 0 {
		out.USD = 0
	}
	if out.UZS < 0 {
		out.UZS = 0
	}
	return out
}

// AddCurrency adds amount to the component named by currency ("usd" or
// "uzs"). Unknown currencies are ignored.
func (m Money) AddCurrency(currency string, amount float64) Money {
	switch currency {
	case "usd":
		m.USD += amount
	case "uzs":
		m.UZS += amount
	}
	return m
}
