package domain

import "time"

// Beer — позиция каталога: пиво с ценой и складским остатком.
type Beer struct {
	ID          int64
	Name        string
	Description string
	// PriceMinor — цена за единицу в минимальных денежных единицах (например, эре).
	PriceMinor int64
	// Percentage — крепость в процентах алкоголя.
	Percentage float64
	// IBU — горечь по шкале International Bitterness Units.
	IBU float64
	// EBC — цвет по шкале European Brewery Convention.
	EBC float64
	// Stock — доступный складской остаток в штуках.
	Stock    int
	ImageURL string
	// TypeID и BrandID — обязательные ссылки на категорию и бренд.
	// Связь не владеющая: удаление типа или бренда пиво не каскадирует.
	TypeID    int64
	BrandID   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BeerType — категория пива (IPA, Stout и т.п.).
type BeerType struct {
	ID       int64
	TypeName string
}

// Brand — бренд/пивоварня.
type Brand struct {
	ID        int64
	BrandName string
}
