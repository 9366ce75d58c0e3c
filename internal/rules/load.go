package rules

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ruleFileSchema constrains user-supplied rule files before any pattern is
// compiled. Same draft subset the rest of the codebase validates with.
func ruleFileSchema() map[string]any {
	ruleList := map[string]any{
		"type":     "array",
		"minItems": 1,
		"items": map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"properties": map[string]any{
				"name":    map[string]any{"type": "string", "minLength": 1},
				"pattern": map[string]any{"type": "string", "minLength": 1},
			},
			"required": []string{"name", "pattern"},
		},
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"account": ruleList,
			"name":    ruleList,
		},
		"required": []string{"account", "name"},
	}
}

type ruleFile struct {
	Account []ruleDef `json:"account"`
	Name    []ruleDef `json:"name"`
}

type ruleDef struct {
	Name    string `json:"name"`
	Pattern string `json:"pattern"`
}

// LoadSet reads a JSON rule file, validates it against the schema, and
// compiles both cascades preserving file order.
func LoadSet(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Set{}, fmt.Errorf("read rules: %w", err)
	}
	if err := validateRuleFile(data); err != nil {
		return Set{}, err
	}

	var rf ruleFile
	if err := json.Unmarshal(data, &rf); err != nil {
		return Set{}, fmt.Errorf("unmarshal rules: %w", err)
	}

	set := Set{}
	for _, def := range rf.Account {
		r, err := CompileRule(def.Name, def.Pattern)
		if err != nil {
			return Set{}, fmt.Errorf("account cascade: %w", err)
		}
		set.Account = append(set.Account, r)
	}
	for _, def := range rf.Name {
		r, err := CompileRule(def.Name, def.Pattern)
		if err != nil {
			return Set{}, fmt.Errorf("name cascade: %w", err)
		}
		set.Name = append(set.Name, r)
	}
	return set, nil
}

func validateRuleFile(data []byte) error {
	b, err := json.Marshal(ruleFileSchema())
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("rules.schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("rules.schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal rules: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("rule file does not match schema: %w", err)
	}
	return nil
}
