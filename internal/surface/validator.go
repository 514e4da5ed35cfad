package surface

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed schema/control-surface-v1.json
var profileSchemaJSON string

const profileSchemaURL = "control-surface-v1.json"

// profileSchema is compiled once, on first use.
var profileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(profileSchemaURL, strings.NewReader(profileSchemaJSON)); err != nil {
		return nil, fmt.Errorf("failed to add control surface schema: %w", err)
	}
	return compiler.Compile(profileSchemaURL)
})

// decodeProfile reads a YAML or JSON profile document, checks it against
// the control surface schema and converts it into a Profile.
func decodeProfile(raw []byte) (*Profile, error) {
	schema, err := profileSchema()
	if err != nil {
		return nil, err
	}

	var doc interface{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("not a YAML or JSON document: %w", err)
	}
	// The validator expects the value types encoding/json produces.
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("profile is not representable as JSON: %w", err)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("not a control surface profile: %w", err)
	}

	var pf profileFile
	if err := json.Unmarshal(data, &pf); err != nil {
		return nil, err
	}
	return pf.profile()
}

func (pf *profileFile) profile() (*Profile, error) {
	controls := make(map[string]Control, len(pf.Controls))
	for alias, cf := range pf.Controls {
		kind, err := ParseKind(cf.Kind)
		if err != nil {
			return nil, fmt.Errorf("control %s: %w", alias, err)
		}
		controls[alias] = Control{Kind: kind, Channel: cf.Channel}
	}
	return NewProfile(pf.Name, controls)
}
