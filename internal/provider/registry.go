package provider

import (
	"fmt"
	"sort"
	"strings"
)

// Registry maps provider identifiers to implementations. It is built once at
// startup, handed to the orchestrator by value, and read-only afterwards, so
// concurrent requests can share it safely.
type Registry struct {
	text  map[string]TextGenerator
	image map[string]ImageGenerator
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		text:  make(map[string]TextGenerator),
		image: make(map[string]ImageGenerator),
	}
}

// RegisterText adds a text backend under id (case-insensitive).
func (r *Registry) RegisterText(id string, g TextGenerator) {
	r.text[strings.ToLower(id)] = g
}

// RegisterImage adds an image backend under id (case-insensitive).
func (r *Registry) RegisterImage(id string, g ImageGenerator) {
	r.image[strings.ToLower(id)] = g
}

// Text looks up a text backend by id.
func (r *Registry) Text(id string) (TextGenerator, error) {
	g, ok := r.text[strings.ToLower(id)]
	if !ok {
		return nil, fmt.Errorf("unknown text provider %q (have: %s)", id, strings.Join(r.TextIDs(), ", "))
	}
	return g, nil
}

// Image looks up an image backend by id.
func (r *Registry) Image(id string) (ImageGenerator, error) {
	g, ok := r.image[strings.ToLower(id)]
	if !ok {
		return nil, fmt.Errorf("unknown image provider %q (have: %s)", id, strings.Join(r.ImageIDs(), ", "))
	}
	return g, nil
}

// TextIDs returns the registered text provider ids, sorted.
func (r *Registry) TextIDs() []string {
	ids := make([]string, 0, len(r.text))
	for id := range r.text {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ImageIDs returns the registered image provider ids, sorted.
func (r *Registry) ImageIDs() []string {
	ids := make([]string, 0, len(r.image))
	for id := range r.image {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
