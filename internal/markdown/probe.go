// Package markdown hosts the lightweight document envelope probe and the
// HTML renderer backing the preview tooling. The sync pipeline itself uses
// the tolerant metadata parser; the probe here is a strict, typed read used
// for quick inspection and logging.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
)

// Envelope is the typed view of the frontmatter fields the sync pipeline
// dispatches on. Everything else lands in Custom.
type Envelope struct {
	Class  string         `yaml:"Classe"`
	ID     string         `yaml:"id"`
	Title  string         `yaml:"Titre"`
	Name   string         `yaml:"Nom"`
	Custom map[string]any `yaml:",inline"`
}

// ProbeEnvelope extracts the typed envelope and the markdown body from raw
// document bytes. Documents without frontmatter yield a zero envelope and
// the full source as body.
func ProbeEnvelope(source []byte) (Envelope, []byte, error) {
	var env Envelope

	reader := bytes.NewReader(source)
	body, err := frontmatter.Parse(reader, &env)
	if err != nil {
		return Envelope{}, nil, fmt.Errorf("probe envelope: %w", err)
	}
	if env.Custom == nil {
		env.Custom = map[string]any{}
	}
	return env, body, nil
}
