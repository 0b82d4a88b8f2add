package question

import (
	"fmt"

	"github.com/lianhua/qinna-quiz/internal/answer"
)

// palancas lists the Qin-Na curriculum in teaching order. Alternatives are
// stored "|"-delimited and expanded by LoadQuestions.
var palancas = [...]string{
	"Muñeca de oro y de seda|Muñeca de oro y seda",
	"Mano corta como cuchillo|Mano que corta como cuchillo",
	"Arrodillarse a pedir limosna",
	"Xiang zi lleva la canasta",
	"Proteger los hombros",
	"Sostener la luna entre las manos",
	"Doblar el codo",
	"El rey del cielo sostiene la torre|Rey del cielo sostiene la torre",
	"Sostener la mano y atrapar los dedos",
	"Habilmente tomar dos dedos",
	"Empujar el bote con la corriente",
	"Ba wang indica la batalla",
	"Palmadas en el pecho y girar el codo|Palmaditas en el pecho y girar el codo",
	"Manos de flor de ciruelo|Manos como flor de ciruelo",
	"Girar la muñeca y llevar el codo",
	"Girar el remo con la corriente|Girar el remo a lo largo de la corriente",
	"Girar el codo y bloquear la garganta",
	"Llevarse una cabra de paso",
	"Sostener el brazo y el codo|Sostener el brazo y sostener el codo",
	"Dar la vuelta y girar el codo",
	"Gallo de oro gira la cabeza",
	"Sostener el brazo y presionar el hombro",
	"Girar la muñeca y presionar el hombro",
	"Levantar el codo y trabar el brazo",
	"Llevar el brazo y presionar el hombro",
	"Envolver el codo y dislocar el hombro",
	"Entrelazar el cuello y bloquear la garganta",
	"Brazo de hierro bloquea la garganta",
	"Niño adora a buda",
	"Sostener la cabeza y presionar la muñeca",
	"Hacer un paquete con rodillas y piernas",
	"El dragon azul inclina la cabeza|Dragon azul inclina la cabeza",
}

// LoadQuestions returns a fresh copy of the compiled-in curriculum.
func LoadQuestions() []Question {
	qs := make([]Question, 0, len(palancas))
	for i, stored := range palancas {
		id := i + 1
		qs = append(qs, Question{
			ID:              id,
			Kind:            KindFreeText,
			Prompt:          fmt.Sprintf("Cuál es la palanca nº %d?", id),
			AcceptedAnswers: answer.SplitAccepted(stored),
		})
	}
	return qs
}

// Curriculum builds the compiled-in bank. The table above is validated by
// tests, so a failure here is a programming error.
func Curriculum() *Bank {
	bank, err := NewBank(LoadQuestions())
	if err != nil {
		panic(fmt.Sprintf("compiled-in curriculum is invalid: %v", err))
	}
	return bank
}
