package story

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalid is returned when a document is malformed or fails validation.
	ErrInvalid = errors.New("invalid story")

	// ErrUnknownValue is returned when a choice refers to a value the story does not declare.
	ErrUnknownValue = errors.New("unknown story value")

	// ErrValueKind is returned when a value is used as the wrong kind (number vs flag).
	ErrValueKind = errors.New("story value has the wrong kind")
)

// Document is the decoded form of a story file.
type Document struct {
	Title  string         `mapstructure:"title"`
	Start  string         `mapstructure:"start" validate:"required"`
	Values map[string]any `mapstructure:"values"`
	Nodes  []NodeSpec     `mapstructure:"nodes" validate:"required,min=1,dive"`
}

// NodeSpec is one authored node.
type NodeSpec struct {
	ID      string       `mapstructure:"id" validate:"required"`
	Text    string       `mapstructure:"text"`
	Choices []ChoiceSpec `mapstructure:"choices" validate:"required,min=1,dive"`
}

// ChoiceSpec is one authored choice. An empty To ends the story.
type ChoiceSpec struct {
	Text string  `mapstructure:"text"`
	To   string  `mapstructure:"to"`
	When *Guard  `mapstructure:"when"`
	Do   *Effect `mapstructure:"do"`
}

// Guard lists the requirements of a choice; all of them must hold.
type Guard struct {
	Min      map[string]int `mapstructure:"min"`
	Flags    []string       `mapstructure:"flags" validate:"dive,required"`
	NotFlags []string       `mapstructure:"not_flags" validate:"dive,required"`
}

// Effect lists the changes a choice applies, numbers first, then flags.
type Effect struct {
	Add map[string]int  `mapstructure:"add"`
	Set map[string]bool `mapstructure:"set"`
}

var validate = validator.New()

// Parse decodes and validates a YAML story.
// Unknown keys are rejected so typos do not silently drop content.
func Parse(data []byte) (*Document, error) {
	var raw map[string]any
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalid)
		}
		return nil, fmt.Errorf("%w: yaml: %w", ErrInvalid, err)
	}

	var doc Document
	md, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &doc,
	})
	if err != nil {
		return nil, err
	}
	if err := md.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	if err := validate.Struct(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return &doc, nil
}

// Load reads and parses the story at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read story: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}
