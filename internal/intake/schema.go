package intake

import (
	_ "embed"
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/hpungsan/nexascope/internal/errors"
)

//go:embed schema/snapshot.schema.json
var schemaSource string

const schemaURL = "https://nexascope.local/schema/snapshot.schema.json"

var (
	schemaOnce     sync.Once
	schemaCompiled *jsonschema.Schema
	schemaErr      error
)

// answerSchema compiles the embedded schema once.
func answerSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		if err := c.AddResource(schemaURL, strings.NewReader(schemaSource)); err != nil {
			schemaErr = fmt.Errorf("failed to load schema: %w", err)
			return
		}
		schemaCompiled, schemaErr = c.Compile(schemaURL)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("failed to compile schema: %w", schemaErr)
		}
	})
	return schemaCompiled, schemaErr
}

// ValidateDocument checks a decoded JSON document (maps, slices,
// json.Number) against the answer schema.
func ValidateDocument(doc any) error {
	schema, err := answerSchema()
	if err != nil {
		return errors.NewInternal(err)
	}
	if err := schema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if !stderrors.As(err, &ve) {
			return errors.NewInvalidRequest(err.Error())
		}
		problems := leafProblems(ve)
		e := errors.NewInvalidRequest("invalid answers: " + strings.Join(problems, "; "))
		e.Details = map[string]any{"problems": problems}
		return e
	}
	return nil
}

// leafProblems flattens a validation error tree into "location: message" lines.
func leafProblems(ve *jsonschema.ValidationError) []string {
	var out []string
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			loc := e.InstanceLocation
			if loc == "" {
				loc = "/"
			}
			out = append(out, fmt.Sprintf("%s: %s", loc, e.Message))
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(ve)
	sort.Strings(out)
	return out
}
