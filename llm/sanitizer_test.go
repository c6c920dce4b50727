package llm

import (
	"testing"
)

func TestSanitizeEscalatesOnForbiddenTerms(t *testing.T) {
	cases := []string{
		"Я просто бот, чем могу помочь?",
		"As a language model I cannot do that",
		"Меня создала нейросеть",
	}
	for _, resp := range cases {
		if _, escalate := sanitize(resp); !escalate {
			t.Fatalf("ответ должен эскалироваться: %q", resp)
		}
	}
}

func TestSanitizeIgnoresTermsInsideWords(t *testing.T) {
	// запретные термины внутри обычных слов — не повод молчать
	cases := []string{
		"Работа над отчётом идёт",          // «бот» внутри «работа»
		"Все линии заняты до обеда",        // «ии» внутри «линии»
		"We maintain the billing pipeline", // «ai» внутри «maintain»
	}
	for _, resp := range cases {
		clean, escalate := sanitize(resp)
		if escalate {
			t.Fatalf("ответ не должен эскалироваться: %q", resp)
		}
		if clean != resp {
			t.Fatalf("текст изменился: %q -> %q", resp, clean)
		}
	}
}

func TestSanitizePassesCleanText(t *testing.T) {
	clean, escalate := sanitize("Отчёт будет готов к пятнице")
	if escalate {
		t.Fatal("обычный ответ не должен эскалироваться")
	}
	if clean != "Отчёт будет готов к пятнице" {
		t.Fatalf("текст изменился: %q", clean)
	}
}
