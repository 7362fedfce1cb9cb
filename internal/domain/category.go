package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category — категория тикетов.
//
// Title уникален без учёта регистра (уникальный индекс по LOWER(title)).
// Категории создаются администратором через API либо лениво воркером,
// когда AI предлагает категорию, которой ещё нет.
type Category struct {
	// ID — внутренний последовательный идентификатор.
	ID int64 `json:"id"`

	// UUID — внешний идентификатор для API.
	UUID uuid.UUID `json:"uuid"`

	// Title — название категории (например, "Technical Support").
	Title string `json:"title"`

	// Description — описание категории.
	Description string `json:"description,omitempty"`

	// CreatedAt — время создания.
	CreatedAt time.Time `json:"created_at"`
}

// DefaultCategories — базовый набор категорий, создаваемый при старте API.
var DefaultCategories = []Category{
	{Title: "Technical Support", Description: "Hardware and software issues"},
	{Title: "Billing", Description: "Invoices, payments and subscriptions"},
	{Title: "Feature Request", Description: "Suggest new ideas"},
}
