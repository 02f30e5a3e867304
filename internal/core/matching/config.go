package matching

// Config - настройки разбиения подборки.
// Размеры частей - конфигурация, а не зашитые в код литералы.
type Config struct {
	RecommendedCount    int `json:"recommended_count"`    // сколько лучших объектов попадает в recommended
	CounterfactualCount int `json:"counterfactual_count"` // сколько следующих - в counterfactuals
}

// DefaultConfig возвращает значения, с которыми работает дашборд CRM.
func DefaultConfig() Config {
	return Config{
		RecommendedCount:    3,
		CounterfactualCount: 5,
	}
}

// Normalize подменяет некорректные значения на значения по умолчанию.
func (c Config) Normalize() Config {
	def := DefaultConfig()
	if c.RecommendedCount <= 0 {
		c.RecommendedCount = def.RecommendedCount
	}
	if c.CounterfactualCount < 0 {
		c.CounterfactualCount = def.CounterfactualCount
	}
	return c
}
