package models

import "time"

// Business представляет бутик продавца (один на пользователя)
type Business struct {
	CreatedAt    time.Time
	ID           string
	OwnerID      string
	OwnerPhone   string // заполняется при чтении
	Name         string
	Slug         string
	Description  string
	Logo         string
	BusinessType string
	ProductCount int // заполняется при чтении
}

// Product представляет товар бутика
type Product struct {
	CreatedAt    time.Time
	UpdatedAt    time.Time
	ID           string
	BusinessID   string
	Name         string
	Slug         string
	Description  string
	Location     string
	ExchangeFor  string
	Currency     string
	Image        string
	BusinessName string // заполняется при чтении
	BusinessSlug string // заполняется при чтении
	OwnerPhone   string // заполняется при чтении
	Price        float64
	IsAvailable  bool
}

// ProductFilter параметры публичного каталога
type ProductFilter struct {
	Query         string // подстрока в названии или описании
	BusinessSlug  string
	Currency      string
	OnlyAvailable bool
}
