package matching

import (
	"fmt"
	"math"
	"strings"

	"recommendation-service/internal/core/domain"
)

// Три критерия мандата, каждый с одинаковым весом:
// район, тип недвижимости, бюджетная вилка.
const criteriaCount = 3

// Score оценивает соответствие объекта мандату инвестора.
// Чистая функция: не мутирует входные данные, детерминирована.
//
// Отсутствующий мандат - легитимный случай нулевой информации,
// а не ошибка: возвращается нулевой балл без причин.
// При непустом мандате причины всегда идут в фиксированном порядке
// (район, тип, бюджет) и несут фактическое значение объекта в метке,
// чтобы дашборд мог отрисовать pass/fail-чипы без повторного вычисления.
func Score(listing domain.Listing, mandate *domain.Mandate) domain.FitResult {
	if mandate == nil {
		return domain.FitResult{Score: 0, Reasons: []domain.FitReason{}}
	}

	areaMet := matchesAny(listing.Area, mandate.PreferredAreas)
	typeMet := matchesAny(string(listing.Type), mandate.PropertyTypes)
	budgetMet := withinBudget(listing.Price, mandate.MinInvestment, mandate.MaxInvestment)

	reasons := []domain.FitReason{
		{Label: "Area: " + listing.Area, Met: areaMet},
		{Label: "Type: " + string(listing.Type), Met: typeMet},
		{Label: fmt.Sprintf("Budget: %.0f", listing.Price), Met: budgetMet},
	}

	met := 0
	for _, r := range reasons {
		if r.Met {
			met++
		}
	}

	score := int(math.Round(float64(met) / criteriaCount * 100))
	return domain.FitResult{Score: score, Reasons: reasons}
}

// FailedLabels возвращает метки критериев, по которым объект не прошел.
func FailedLabels(fit domain.FitResult) []string {
	labels := make([]string, 0, len(fit.Reasons))
	for _, r := range fit.Reasons {
		if !r.Met {
			labels = append(labels, r.Label)
		}
	}
	return labels
}

// matchesAny - политика "wildcard или подстрока": пустой список предпочтений
// означает "подходит все", иначе значение объекта должно содержать
// (без учета регистра) хотя бы одно из предпочтений.
// Пустые строки внутри списка пропускаются: одинокая "" не должна
// превращаться в совпадение со всем подряд. Список из одних пустых строк
// вырождается в wildcard, как и пустой список.
func matchesAny(value string, preferred []string) bool {
	v := strings.ToLower(value)
	hasConstraint := false
	for _, p := range preferred {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		hasConstraint = true
		if strings.Contains(v, p) {
			return true
		}
	}
	return !hasConstraint
}

// withinBudget - границы включительные; nil-граница означает
// "не задана" (min -> 0, max -> +inf).
func withinBudget(price float64, min, max *float64) bool {
	if min != nil && price < *min {
		return false
	}
	if max != nil && price > *max {
		return false
	}
	return true
}
