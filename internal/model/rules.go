package model

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/carson-networks/creditwise/internal/scoring"
)

type keywordRulesFile struct {
	Rules []scoring.KeywordRule `yaml:"rules"`
}

// LoadKeywordRules reads an ordered keyword table from a YAML file of the form
//
//	rules:
//	  - category: Income
//	    keywords: [salary, refund]
//
// Rules keep the order in which they appear in the file.
func LoadKeywordRules(path string) ([]scoring.KeywordRule, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading keyword rules %s", path)
	}

	var file keywordRulesFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, errors.Wrapf(err, "decoding keyword rules %s", path)
	}

	for i, rule := range file.Rules {
		if _, err := scoring.ParseCategory(string(rule.Category)); err != nil {
			return nil, errors.Wrapf(err, "keyword rule %d", i)
		}
		if len(rule.Keywords) == 0 {
			return nil, errors.Errorf("keyword rule %d (%s) has no keywords", i, rule.Category)
		}
	}

	return file.Rules, nil
}
