package tui

// labels are the static strings of the terminal UI.
type labels struct {
	Title         string
	Subtitle      string
	ChooseVariant string
	Questions     string // %d: eligible questions
	QuestionOf    string // %d: position, %d: total
	Placeholder   string
	Score         string // %d: score
	Image         string // %s: image reference
	Summary       string // correct, incorrect, skipped, accuracy %, best streak
	HelpMenu      string
	HelpQuestion  string
	HelpChoice    string
	HelpAnswered  string
	HelpCompleted string
}

var labelCatalogue = map[string]labels{
	"es": {
		Title:         "Qin-Na",
		Subtitle:      "Escuela Loto Blanco Lianhua",
		ChooseVariant: "Elige una variante:",
		Questions:     "%d preguntas",
		QuestionOf:    "Pregunta %d de %d",
		Placeholder:   "Tu respuesta",
		Score:         "Puntuación: %d",
		Image:         "Imagen: %s",
		Summary:       "Correctas: %d · Incorrectas: %d · Saltadas: %d · Precisión: %d%% · Mejor racha: %d",
		HelpMenu:      "↑/↓ elegir · Enter empezar · Esc salir",
		HelpQuestion:  "Enter enviar · Tab saltar · Ctrl+R reiniciar · Esc salir",
		HelpChoice:    "↑/↓ elegir opción · Enter enviar · Tab saltar · Ctrl+R reiniciar · Esc salir",
		HelpAnswered:  "Enter/Tab siguiente · Ctrl+R reiniciar · Esc salir",
		HelpCompleted: "Enter volver a empezar · Esc salir",
	},
	"en": {
		Title:         "Qin-Na",
		Subtitle:      "Escuela Loto Blanco Lianhua",
		ChooseVariant: "Choose a variant:",
		Questions:     "%d questions",
		QuestionOf:    "Question %d of %d",
		Placeholder:   "Your answer",
		Score:         "Score: %d",
		Image:         "Image: %s",
		Summary:       "Correct: %d · Incorrect: %d · Skipped: %d · Accuracy: %d%% · Best streak: %d",
		HelpMenu:      "↑/↓ choose · Enter start · Esc quit",
		HelpQuestion:  "Enter submit · Tab skip · Ctrl+R reset · Esc quit",
		HelpChoice:    "↑/↓ pick option · Enter submit · Tab skip · Ctrl+R reset · Esc quit",
		HelpAnswered:  "Enter/Tab next · Ctrl+R reset · Esc quit",
		HelpCompleted: "Enter start again · Esc quit",
	},
}

func labelsFor(locale string) labels {
	if l, ok := labelCatalogue[locale]; ok {
		return l
	}
	return labelCatalogue["es"]
}
