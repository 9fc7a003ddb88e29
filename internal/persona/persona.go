// Package persona holds the voice each reply is rendered in. Profiles live
// in an embedded YAML registry so copy tweaks never touch composer logic.
package persona

import (
	_ "embed"
	"log"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed personas.yaml
var personasYAML []byte

// Profile is one persona's fixed copy. A non-empty Questionnaire is emitted
// once per conversation, gated by the QuestionnaireGate state key.
type Profile struct {
	Opener            string `yaml:"opener"`
	Closer            string `yaml:"closer"`
	Questionnaire     string `yaml:"questionnaire"`
	QuestionnaireGate string `yaml:"questionnaire_gate"`
}

type registry struct {
	Default  Profile            `yaml:"default"`
	Personas map[string]Profile `yaml:"personas"`
}

var profiles registry

func init() {
	if err := yaml.Unmarshal(personasYAML, &profiles); err != nil {
		log.Fatalf("Failed to parse embedded persona registry: %v", err)
	}
}

// Lookup resolves a persona by case-insensitive name, falling back to the
// generic profile for unknown personas.
func Lookup(name string) Profile {
	if profile, ok := profiles.Personas[strings.ToLower(name)]; ok {
		return profile
	}
	return profiles.Default
}
