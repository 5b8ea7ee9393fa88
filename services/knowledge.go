package services

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// IngredientMeta is one knowledge-base entry as it appears in the data file.
type IngredientMeta struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Function string   `json:"function"`
	Flags    []string `json:"flags"`
	Evidence string   `json:"evidence"`
	Notes    string   `json:"notes"`
}

// KnowledgeBase maps canonical ingredient names to metadata plus a synonym
// table for alternate spellings. It is built once at startup and never
// mutated afterwards, so it is safe to share across concurrent requests
// without locking.
type KnowledgeBase struct {
	items    map[string]IngredientMeta
	synonyms map[string]string
}

type knowledgeFile struct {
	Ingredients []IngredientMeta  `json:"ingredients"`
	Synonyms    map[string]string `json:"synonyms"`
}

// NewKnowledgeBase builds a knowledge base from entries and a synonym table.
// All keys are lowercased on the way in.
func NewKnowledgeBase(ingredients []IngredientMeta, synonyms map[string]string) *KnowledgeBase {
	kb := &KnowledgeBase{
		items:    make(map[string]IngredientMeta, len(ingredients)),
		synonyms: make(map[string]string, len(synonyms)),
	}
	for _, it := range ingredients {
		kb.items[strings.ToLower(it.Name)] = it
	}
	for alt, canonical := range synonyms {
		kb.synonyms[strings.ToLower(alt)] = strings.ToLower(canonical)
	}
	return kb
}

// LoadKnowledgeBase reads the JSON knowledge file
// ({ingredients: [...], synonyms: {...}}) from disk.
func LoadKnowledgeBase(path string) (*KnowledgeBase, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read knowledge file: %w", err)
	}
	var kf knowledgeFile
	if err := json.Unmarshal(raw, &kf); err != nil {
		return nil, fmt.Errorf("parse knowledge file: %w", err)
	}
	return NewKnowledgeBase(kf.Ingredients, kf.Synonyms), nil
}

// Resolve maps a raw ingredient name to its canonical key: direct match
// first, then the synonym table, then both again with collapsed whitespace.
// Names the knowledge base has never seen resolve to their cleaned lowercase
// form.
func (kb *KnowledgeBase) Resolve(rawName string) string {
	n := strings.ToLower(strings.TrimSpace(rawName))
	if _, ok := kb.items[n]; ok {
		return n
	}
	if c, ok := kb.synonyms[n]; ok {
		return c
	}
	n2 := strings.Join(strings.Fields(n), " ")
	if _, ok := kb.items[n2]; ok {
		return n2
	}
	if c, ok := kb.synonyms[n2]; ok {
		return c
	}
	return n2
}

// Get returns the metadata for a canonical key, ok=false when unknown.
func (kb *KnowledgeBase) Get(canonical string) (IngredientMeta, bool) {
	m, ok := kb.items[strings.ToLower(canonical)]
	return m, ok
}
