package todo

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// SeedSchemaVersion is the only seed file version understood.
const SeedSchemaVersion = 1

const seedSchemaURL = "seed.schema.json"

//go:embed seed.schema.json
var seedSchemaJSON string

var (
	seedSchemaOnce sync.Once
	seedSchema     *jsonschema.Schema
	seedSchemaErr  error
)

// SeedFile is the on-disk representation of initial tasks.
type SeedFile struct {
	SchemaVersion int        `json:"schema_version"`
	Tasks         []SeedTask `json:"tasks"`
}

// SeedTask is one entry of a seed file. Ids and timestamps are assigned
// when the task enters a list.
type SeedTask struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed,omitempty"`
}

// LoadSeed reads, schema-validates and parses a seed file from path.
func LoadSeed(path string) (*SeedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	seed, err := ParseSeed(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return seed, nil
}

// ParseSeed validates data against the seed schema and decodes it.
// Task texts are normalized with the same rules as interactive input.
func ParseSeed(data []byte) (*SeedFile, error) {
	var doc interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	if err := ValidateSeedDocument(doc); err != nil {
		return nil, err
	}

	var seed SeedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	if err := seed.Normalize(); err != nil {
		return nil, err
	}
	return &seed, nil
}

// Normalize trims every task text and checks the length rules.
func (s *SeedFile) Normalize() error {
	for i := range s.Tasks {
		text, err := NormalizeText(s.Tasks[i].Text)
		if err != nil {
			var ve *ValidationError
			if errors.As(err, &ve) {
				return &ValidationError{Path: fmt.Sprintf("tasks[%d].%s", i, ve.Path), Err: ve.Err}
			}
			return err
		}
		s.Tasks[i].Text = text
	}
	return nil
}

// Marshal encodes the seed file with 2-space indentation and a trailing newline.
func (s *SeedFile) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal seed file: %w", err)
	}
	return append(data, '\n'), nil
}

// ValidateSeedDocument validates a decoded JSON value against the seed schema.
// Schema violations are reported as a joined list of *ValidationError.
func ValidateSeedDocument(doc interface{}) error {
	schema, err := compiledSeedSchema()
	if err != nil {
		return err
	}
	if err := schema.Validate(doc); err != nil {
		ve, ok := err.(*jsonschema.ValidationError)
		if !ok {
			return fmt.Errorf("validate seed file: %w", err)
		}
		var errs []error
		collectSchemaErrors(&errs, ve)
		return &SchemaError{Errors: errs}
	}
	return nil
}

// SchemaError aggregates the leaf errors of a failed schema validation.
type SchemaError struct {
	Errors []error
}

func (e *SchemaError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		parts = append(parts, err.Error())
	}
	return "seed file does not match schema: " + strings.Join(parts, "; ")
}

// Unwrap exposes the individual validation errors.
func (e *SchemaError) Unwrap() []error {
	return e.Errors
}

func compiledSeedSchema() (*jsonschema.Schema, error) {
	seedSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource(seedSchemaURL, strings.NewReader(seedSchemaJSON)); err != nil {
			seedSchemaErr = fmt.Errorf("load seed schema: %w", err)
			return
		}
		seedSchema, seedSchemaErr = compiler.Compile(seedSchemaURL)
		if seedSchemaErr != nil {
			seedSchemaErr = fmt.Errorf("compile seed schema: %w", seedSchemaErr)
		}
	})
	return seedSchema, seedSchemaErr
}

func collectSchemaErrors(errs *[]error, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}

	if len(err.Causes) == 0 {
		*errs = append(*errs, &ValidationError{
			Path: jsonPointerToPath(err.InstanceLocation),
			Err:  fmt.Errorf("%s", err.Message),
		})
		return
	}

	for _, cause := range err.Causes {
		collectSchemaErrors(errs, cause)
	}
}

// jsonPointerToPath converts "/tasks/0/text" into "tasks[0].text".
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&b, "[%d]", idx)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}
