package categorize

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// rulesFile is the on-disk shape of a categorization rules file.
type rulesFile struct {
	Rules []Rule `yaml:"rules"`
}

// LoadRules reads a categorization rules YAML file. A missing file or an
// empty rules list yields nil, which callers treat as "use the defaults".
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading rules: %w", err)
	}

	var f rulesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing rules: %w", err)
	}

	// Keyword matching is lowercase-substring; normalize once at load time.
	for i := range f.Rules {
		for j, kw := range f.Rules[i].Keywords {
			f.Rules[i].Keywords[j] = strings.ToLower(strings.TrimSpace(kw))
		}
	}
	return f.Rules, nil
}

// SaveRules writes rules to a YAML file.
func SaveRules(path string, rules []Rule) error {
	data, err := yaml.Marshal(rulesFile{Rules: rules})
	if err != nil {
		return fmt.Errorf("marshaling rules: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing rules: %w", err)
	}
	return nil
}
