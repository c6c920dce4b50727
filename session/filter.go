package session

import (
	"strings"

	"github.com/egor/agentdash/models"
)

// FilterRoster отбирает сотрудников, чьё имя содержит запрос без учёта
// регистра. Пустой запрос пропускает всех, порядок ростера сохраняется.
// Записи без имени не показываются: нормализатор таких не создаёт,
// но фильтр на них не должен падать.
func FilterRoster(roster []models.Employee, query string) []models.Employee {
	q := strings.ToLower(query)
	out := make([]models.Employee, 0, len(roster))
	for _, emp := range roster {
		if emp.Name == "" {
			continue
		}
		if strings.Contains(strings.ToLower(emp.Name), q) {
			out = append(out, emp)
		}
	}
	return out
}
