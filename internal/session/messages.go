package session

import "fmt"

// Messages holds the user-facing feedback templates.
type Messages struct {
	Correct     string
	Incorrect   string // %s: canonical answer
	Skipped     string // %s: canonical answer
	Completed   string // %d: score, %d: total
	CannotStart string
}

var catalogue = map[string]Messages{
	"es": {
		Correct:     "¡Correcto!",
		Incorrect:   "Incorrecto. La respuesta correcta es: %s.",
		Skipped:     "Pregunta saltada. La respuesta correcta es: %s.",
		Completed:   "¡Cuestionario completado! Tu puntuación es: %d/%d",
		CannotStart: "No se puede iniciar el cuestionario: no hay preguntas para esta variante.",
	},
	"en": {
		Correct:     "Correct!",
		Incorrect:   "Incorrect. The correct answer is %s.",
		Skipped:     "Skipped. The correct answer is %s.",
		Completed:   "Quiz completed! Your score: %d/%d",
		CannotStart: "Cannot start quiz: the chosen variant has no questions.",
	},
}

// MessagesFor returns the catalogue for locale, falling back to Spanish.
func MessagesFor(locale string) Messages {
	if m, ok := catalogue[locale]; ok {
		return m
	}
	return catalogue["es"]
}

func (m Messages) incorrect(canonical string) string {
	return fmt.Sprintf(m.Incorrect, canonical)
}

func (m Messages) skipped(canonical string) string {
	return fmt.Sprintf(m.Skipped, canonical)
}

func (m Messages) completed(score, total int) string {
	return fmt.Sprintf(m.Completed, score, total)
}
