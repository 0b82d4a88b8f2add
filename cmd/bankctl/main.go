package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lianhua/qinna-quiz/internal/question"
)

func main() {
	var (
		command = flag.String("command", "validate", "Bank command: validate, export, or variants")
		file    = flag.String("file", "", "Question bank file (YAML or .json); empty uses the built-in curriculum")
		cutoff  = flag.Int("cutoff", question.DefaultBasicCutoff, "Last question id of the basic variant")
	)
	flag.Parse()

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	bank, err := load(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("failed to load question bank")
	}

	switch *command {
	case "validate":
		log.Info().Str("file", source(*file)).Int("questions", bank.Len()).Msg("question bank is valid")

	case "export":
		if err := question.Encode(os.Stdout, bank); err != nil {
			log.Fatal().Err(err).Msg("failed to export question bank")
		}

	case "variants":
		for _, v := range question.DefaultVariants(*cutoff) {
			fmt.Printf("%-8s %-22s %d\n", v.Name, v.Label, len(bank.EligibleFor(v)))
		}

	default:
		log.Fatal().Str("command", *command).Msg("unknown command. Use: validate, export, or variants")
	}
}

func load(path string) (*question.Bank, error) {
	if path == "" {
		return question.Curriculum(), nil
	}
	return question.LoadFile(path)
}

func source(path string) string {
	if path == "" {
		return "curriculum"
	}
	return path
}
