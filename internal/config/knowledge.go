package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"henna-assistant-be/pkg/catalog"
	"henna-assistant-be/pkg/faq"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	keyFAQ      = "faq.questions"
	keyPersonal = "personal.data"
	keyPackages = "packages"
	keyGenAI    = "genai.api_key"
)

// Knowledge is the read-only business content loaded once at startup.
type Knowledge struct {
	FAQ      []faq.Entry
	Personal map[string]interface{}
	Packages []catalog.Package
	GenAIKey string
	Source   string   // file that was read, empty when none was found
	Warnings []string // sections that were missing or malformed
}

// LoadKnowledge reads the secrets file at path. An empty path searches
// ./.streamlit/secrets.{toml,yaml,json} and ./secrets.*. A missing file or
// missing sections are not errors; they leave the matching lists empty.
func LoadKnowledge(path string) (*Knowledge, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("secrets")
		v.AddConfigPath(".streamlit")
		v.AddConfigPath(".")
	}

	k := &Knowledge{Personal: map[string]interface{}{}}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read knowledge file: %w", err)
		}
		k.Warnings = append(k.Warnings, "knowledge file not found")
		return k, nil
	}
	k.Source = v.ConfigFileUsed()

	if err := decodeKnowledge(v, k); err != nil {
		return nil, err
	}
	return k, nil
}

func decodeKnowledge(v *viper.Viper, k *Knowledge) error {
	if v.IsSet(keyFAQ) {
		if err := v.UnmarshalKey(keyFAQ, &k.FAQ); err != nil {
			return fmt.Errorf("failed to decode %s: %w", keyFAQ, err)
		}
	} else {
		k.Warnings = append(k.Warnings, "no FAQ data available")
	}

	if v.IsSet(keyPersonal) {
		// viper folds every key to lower case; the prompt gets the file's own keys
		personal, err := readPersonal(v.ConfigFileUsed())
		if err != nil || personal == nil {
			personal = v.GetStringMap(keyPersonal)
		}
		k.Personal = personal
	} else {
		k.Warnings = append(k.Warnings, "no personal data available")
	}

	if raw, ok := lookupFold(k.Personal, keyPackages); ok {
		pkgs, err := DecodePackages(raw)
		if err != nil {
			return err
		}
		k.Packages = pkgs
	} else {
		k.Warnings = append(k.Warnings, "no packages available")
	}

	k.GenAIKey = v.GetString(keyGenAI)
	return nil
}

// DecodePackages converts the loosely typed package list into catalog records.
// Numeric strings are accepted for prices.
func DecodePackages(raw interface{}) ([]catalog.Package, error) {
	var pkgs []catalog.Package
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &pkgs,
		TagName:          "mapstructure",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build package decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode packages: %w", err)
	}
	return pkgs, nil
}

// readPersonal decodes the personal.data table of file with its keys exactly
// as written. Unknown formats yield nil.
func readPersonal(file string) (map[string]interface{}, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	var doc map[string]interface{}
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(file), ".")) {
	case "toml":
		err = toml.Unmarshal(b, &doc)
	case "yaml", "yml":
		err = yaml.Unmarshal(b, &doc)
	case "json":
		err = json.Unmarshal(b, &doc)
	default:
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", file, err)
	}

	node := interface{}(doc)
	for _, part := range strings.Split(keyPersonal, ".") {
		m, ok := node.(map[string]interface{})
		if !ok {
			return nil, nil
		}
		if node, ok = lookupFold(m, part); !ok {
			return nil, nil
		}
	}
	data, _ := node.(map[string]interface{})
	return data, nil
}

func lookupFold(m map[string]interface{}, key string) (interface{}, bool) {
	if v, ok := m[key]; ok {
		return v, true
	}
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return nil, false
}
