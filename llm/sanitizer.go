// Фильтр, скрывающий природу симулированного собеседника.
package llm

import (
	"regexp"
	"strings"
)

// forbiddenTerms — слова/фразы, выдающие, что отвечает модель.
// Сотрудник, «сказавший» такое, просто промолчит.
var forbiddenTerms = []string{
	// RU
	"бот", "робот", "нейросеть", "ии",
	"искусственный интеллект", "языковая модель",
	"алгоритм", "модель", "программа", "виртуальный",
	// EN
	"bot", "ai", "neural", "language model", "llm",
	"gpt", "chatgpt", "openai", "assistant", "software",
}

// termPatterns — термины как целые слова. Границей считается любой
// не-буквенный символ или край строки: \b в regexp работает только для
// ASCII и кириллицу не видит. Совпадение по подстроке не считается —
// иначе «ии» срабатывало бы внутри обычных русских слов.
var termPatterns = func() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(forbiddenTerms))
	for _, term := range forbiddenTerms {
		patterns = append(patterns, regexp.MustCompile(
			`(?i)(^|[^\p{L}])`+regexp.QuoteMeta(term)+`($|[^\p{L}])`))
	}
	return patterns
}()

// sanitize проверяет текст LLM. escalate=true => ответ скрываем целиком.
func sanitize(resp string) (clean string, escalate bool) {
	for _, re := range termPatterns {
		if re.MatchString(resp) {
			return "", true
		}
	}
	return strings.TrimSpace(resp), false
}
