// Package schema checks provider option sets against the embedded option-set
// JSON Schema and the descriptor rules of package options.
package schema

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/lumio-ai/benchdash/internal/options"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// OptionSetSchema is the embedded file name of the option-set schema.
const OptionSetSchema = "schemas/optionset.schema.json"

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// Raw returns the embedded option-set schema document.
func Raw() ([]byte, error) {
	return schemaFS.ReadFile(OptionSetSchema)
}

func optionSetSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		raw, err := Raw()
		if err != nil {
			compileErr = fmt.Errorf("failed to read schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("optionset.schema.json", bytes.NewReader(raw)); err != nil {
			compileErr = fmt.Errorf("failed to load schema: %w", err)
			return
		}
		compiled, compileErr = compiler.Compile("optionset.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("failed to compile schema: %w", compileErr)
		}
	})
	return compiled, compileErr
}

// Lint validates an option-set document. Schema violations come first,
// then descriptor problems. A document that is not JSON, or whose root is
// not an object, is an error rather than a finding.
func Lint(doc []byte) ([]string, error) {
	var v any
	if err := json.Unmarshal(doc, &v); err != nil {
		return nil, fmt.Errorf("invalid option set: %w", err)
	}
	set, err := options.ParseSet(doc)
	if err != nil {
		return nil, err
	}

	sch, err := optionSetSchema()
	if err != nil {
		return nil, err
	}

	var findings []string
	if err := sch.Validate(v); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return nil, fmt.Errorf("failed to validate option set: %w", err)
		}
		findings = append(findings, leaves(ve)...)
	}
	for _, p := range options.Validate(set) {
		findings = append(findings, p.String())
	}
	return findings, nil
}

// leaves flattens a validation error tree into one line per failing keyword.
func leaves(ve *jsonschema.ValidationError) []string {
	if len(ve.Causes) == 0 {
		loc := ve.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		return []string{fmt.Sprintf("schema %s: %s", loc, ve.Message)}
	}
	var out []string
	for _, c := range ve.Causes {
		out = append(out, leaves(c)...)
	}
	sort.Strings(out)
	return out
}
