package domain

import "time"

// OrderLine — одна позиция заказа: пара (пиво, количество).
// Существует только внутри своего заказа.
type OrderLine struct {
	BeerID int64
	Amount int
}

// Order агрегирует позиции заказа и его статус.
type Order struct {
	ID         int64
	CustomerID int64
	// AccumulatedPriceMinor — итоговая цена заказа в минимальных единицах.
	// Считается один раз при оформлении по ценам на тот момент и больше
	// никогда не пересчитывается, даже если цены позиций изменятся.
	AccumulatedPriceMinor int64
	// Finished — флаг жизненного цикла: false = открыт, true = финализирован.
	Finished  bool
	Lines     []OrderLine
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CloneLines возвращает копию позиций, чтобы заказ можно было отдавать наружу
// без риска мутаций извне.
func (o *Order) CloneLines() []OrderLine {
	if o.Lines == nil {
		return nil
	}
	lines := make([]OrderLine, len(o.Lines))
	copy(lines, o.Lines)
	return lines
}
