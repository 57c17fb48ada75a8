package api

import "time"

const (
	// BusinessTypeSale обычная продажа
	BusinessTypeSale = "VENTE"
	// BusinessTypeBarter бутик, работающий по обмену (troc)
	BusinessTypeBarter = "TROC"
)

// Business представляет витрину продавца
type Business struct {
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	OwnerPhone   string    `json:"owner_phone"`
	Description  string    `json:"description"`
	Logo         string    `json:"logo"`
	BusinessType string    `json:"business_type"`
	Products     []Product `json:"products,omitempty"`
	ProductCount int       `json:"product_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// BusinessUpdateRequest частичное обновление бутика: nil поля не меняются
type BusinessUpdateRequest struct {
	Name         *string `json:"name,omitempty" validate:"omitempty,min=2,max=120"`
	Description  *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Logo         *string `json:"logo,omitempty" validate:"omitempty,url"`
	BusinessType *string `json:"business_type,omitempty" validate:"omitempty,oneof=VENTE TROC"`
}

// Product представляет товар в каталоге
type Product struct {
	UpdatedAt    time.Time `json:"updated_at"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description"`
	Location     string    `json:"location"`
	ExchangeFor  string    `json:"exchange_for"` // что продавец готов принять в обмен
	Currency     string    `json:"currency"`
	Image        string    `json:"image"`
	BusinessName string    `json:"business_name"`
	BusinessSlug string    `json:"business_slug"`
	VendeurPhone string    `json:"vendeur_phone"`
	Price        float64   `json:"price"`
	IsAvailable  bool      `json:"is_available"`
}

// ProductRequest создание или частичное изменение товара
type ProductRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	Location    *string  `json:"location,omitempty" validate:"omitempty,max=200"`
	ExchangeFor *string  `json:"exchange_for,omitempty" validate:"omitempty,max=200"`
	Currency    *string  `json:"currency,omitempty" validate:"omitempty,oneof=USD CDF"`
	Image       *string  `json:"image,omitempty" validate:"omitempty,url"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	IsAvailable *bool    `json:"is_available,omitempty"`
}

// AdminUser представляет пользователя в панели администратора
type AdminUser struct {
	CreatedAt    time.Time `json:"created_at"`
	ID           string    `json:"id"`
	Phone        string    `json:"phone"`
	Role         string    `json:"role"`
	BusinessSlug string    `json:"business_slug"`
	IsActive     bool      `json:"is_active"`
}

// AdminOTP представляет выданный одноразовый код (сам код не раскрывается)
type AdminOTP struct {
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	ID        string    `json:"id"`
	Phone     string    `json:"phone"`
	Used      bool      `json:"used"`
}
