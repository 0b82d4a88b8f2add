package session

import (
	"math/rand"

	"github.com/lianhua/qinna-quiz/internal/question"
)

// shuffle permutes qs in place (Fisher-Yates), so every order is equally likely.
func shuffle(qs []question.Question, rng *rand.Rand) {
	for i := len(qs) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		qs[i], qs[j] = qs[j], qs[i]
	}
}
