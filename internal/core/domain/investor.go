package domain

import (
	"time"

	"github.com/google/uuid"
)

// Mandate - инвестиционный мандат инвестора: декларация его предпочтений.
// Числовые границы - указатели: nil означает "не задано", а не ноль.
type Mandate struct {
	PreferredAreas []string `json:"preferred_areas"`
	PropertyTypes  []string `json:"property_types"`
	MinInvestment  *float64 `json:"min_investment"`
	MaxInvestment  *float64 `json:"max_investment"`

	YieldTarget   *float64 `json:"yield_target"`
	RiskTolerance *string  `json:"risk_tolerance"`

	// Вторичные предпочтения. Скоринг их пока не учитывает,
	// но они часть мандата в CRM и приходят из той же jsonb-колонки.
	Bedrooms         *int     `json:"bedrooms"`
	PreferredViews   []string `json:"preferred_views"`
	Furnished        *bool    `json:"furnished"`
	CompletionStatus *string  `json:"completion_status"`
}

// Investor - инвестор CRM с вложенным мандатом.
// Запись принадлежит ядру CRM, здесь она read-only.
type Investor struct {
	ID       uuid.UUID
	TenantID uuid.UUID
	Name     string
	Email    *string
	Mandate  *Mandate

	CreatedAt time.Time
	UpdatedAt time.Time
}
