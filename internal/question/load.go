package question

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lianhua/qinna-quiz/internal/answer"
)

// fileSpec is the on-disk bank schema.
type fileSpec struct {
	Version   int            `json:"version" yaml:"version"`
	Questions []fileQuestion `json:"questions" yaml:"questions"`
}

type fileQuestion struct {
	ID       int      `json:"id" yaml:"id"`
	Kind     Kind     `json:"kind,omitempty" yaml:"kind,omitempty"`
	Prompt   string   `json:"prompt" yaml:"prompt"`
	Answer   string   `json:"answer" yaml:"answer"` // "|"-delimited alternatives
	ImageRef string   `json:"image_ref,omitempty" yaml:"image_ref,omitempty"`
	Options  []string `json:"options,omitempty" yaml:"options,omitempty"`
}

// LoadFile reads a YAML (or .json) question bank and validates it.
func LoadFile(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}
	spec, err := parseFile(data, path)
	if err != nil {
		return nil, err
	}
	if spec.Version != 1 {
		return nil, fmt.Errorf("question bank %s: unsupported version %d", path, spec.Version)
	}
	if len(spec.Questions) == 0 {
		return nil, fmt.Errorf("question bank %s: must include at least one question", path)
	}

	qs := make([]Question, 0, len(spec.Questions))
	for _, fq := range spec.Questions {
		kind := fq.Kind
		if kind == "" {
			kind = KindFreeText
		}
		qs = append(qs, Question{
			ID:              fq.ID,
			Kind:            kind,
			Prompt:          fq.Prompt,
			AcceptedAnswers: answer.SplitAccepted(fq.Answer),
			ImageRef:        fq.ImageRef,
			Options:         fq.Options,
		})
	}

	bank, err := NewBank(qs)
	if err != nil {
		return nil, fmt.Errorf("question bank %s: %w", path, err)
	}
	return bank, nil
}

// Encode writes bank in the file format LoadFile reads, as YAML.
func Encode(w io.Writer, bank *Bank) error {
	spec := fileSpec{Version: 1}
	for _, q := range bank.Questions() {
		spec.Questions = append(spec.Questions, fileQuestion{
			ID:       q.ID,
			Kind:     q.Kind,
			Prompt:   q.Prompt,
			Answer:   strings.Join(q.AcceptedAnswers, answer.Delimiter),
			ImageRef: q.ImageRef,
			Options:  q.Options,
		})
	}
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(spec); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return encoder.Close()
}

func parseFile(data []byte, path string) (fileSpec, error) {
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		return parseJSON(data)
	}
	return parseYAML(data)
}

func parseJSON(data []byte) (fileSpec, error) {
	var spec fileSpec
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&spec); err != nil {
		return fileSpec{}, fmt.Errorf("parse json: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return fileSpec{}, fmt.Errorf("parse json: multiple documents are not supported")
		}
		return fileSpec{}, fmt.Errorf("parse json: %w", err)
	}
	return spec, nil
}

func parseYAML(data []byte) (fileSpec, error) {
	var spec fileSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return fileSpec{}, fmt.Errorf("parse yaml: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return fileSpec{}, fmt.Errorf("parse yaml: multiple documents are not supported")
		}
		return fileSpec{}, fmt.Errorf("parse yaml: %w", err)
	}
	return spec, nil
}
