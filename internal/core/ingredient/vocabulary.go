package ingredient

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"noshnurture/internal/pkg/common"
)

//go:embed data/vocabulary.json data/synonyms.json
var defaultData embed.FS

// Vocabulary is the controlled ingredient vocabulary: an ordered list of
// canonical names plus a synonym table mapping raw tokens and phrases onto
// canonical ones. It is immutable after construction; the normalizer
// depends on the canonical order staying fixed so that equal-distance
// fuzzy ties resolve the same way every time.
type Vocabulary struct {
	canonicals []string
	index      map[string]struct{}
	synonyms   map[string]string
}

// NewVocabulary builds a vocabulary from a canonical list and a synonym
// map. Canonical entries are lowercased, trimmed and deduplicated with the
// first occurrence keeping its position. Synonym keys are normalized the
// same way; a synonym value may be empty, which marks the key as a noise
// token (brand name, pack size) that the normalizer drops.
func NewVocabulary(canonicals []string, synonyms map[string]string) (*Vocabulary, error) {
	if len(canonicals) == 0 {
		return nil, common.NewValidationError("vocabulary requires at least one canonical ingredient")
	}

	v := &Vocabulary{
		canonicals: make([]string, 0, len(canonicals)),
		index:      make(map[string]struct{}, len(canonicals)),
		synonyms:   make(map[string]string, len(synonyms)),
	}

	for _, c := range canonicals {
		name := normalizeKey(c)
		if name == "" {
			continue
		}
		if _, ok := v.index[name]; ok {
			continue
		}
		v.index[name] = struct{}{}
		v.canonicals = append(v.canonicals, name)
	}
	if len(v.canonicals) == 0 {
		return nil, common.NewValidationError("vocabulary contains no usable canonical ingredients")
	}

	for k, val := range synonyms {
		key := normalizeKey(k)
		if key == "" {
			continue
		}
		v.synonyms[key] = strings.TrimSpace(strings.ToLower(val))
	}

	return v, nil
}

func normalizeKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(s))), " ")
}

// Load reads vocabulary data from the given file paths. An empty path
// falls back to the embedded default for that file, so deployments can
// override either file independently.
func Load(canonicalPath, synonymPath string) (*Vocabulary, error) {
	canonicalRaw, err := readDataFile(canonicalPath, "data/vocabulary.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read canonical vocabulary: %w", err)
	}
	synonymRaw, err := readDataFile(synonymPath, "data/synonyms.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read synonym table: %w", err)
	}

	var canonicals []string
	if err := common.ParseJSONBytes(canonicalRaw, &canonicals); err != nil {
		return nil, common.NewValidationError(fmt.Sprintf("malformed canonical vocabulary: %v", err))
	}

	var synonyms map[string]string
	if err := common.ParseJSONBytes(synonymRaw, &synonyms); err != nil {
		return nil, common.NewValidationError(fmt.Sprintf("malformed synonym table: %v", err))
	}

	return NewVocabulary(canonicals, synonyms)
}

// Default returns the vocabulary built from the embedded data files.
func Default() (*Vocabulary, error) {
	return Load("", "")
}

func readDataFile(path, embedded string) ([]byte, error) {
	if path != "" {
		return os.ReadFile(path)
	}
	return defaultData.ReadFile(embedded)
}

// Contains reports whether name is a canonical ingredient. Comparison is
// case-insensitive.
func (v *Vocabulary) Contains(name string) bool {
	_, ok := v.index[normalizeKey(name)]
	return ok
}

// Synonym looks up a raw token or phrase in the synonym table.
func (v *Vocabulary) Synonym(key string) (string, bool) {
	val, ok := v.synonyms[key]
	return val, ok
}

// Canonicals returns the canonical names in vocabulary order. Callers must
// not modify the returned slice.
func (v *Vocabulary) Canonicals() []string {
	return v.canonicals
}

// Len returns the number of canonical ingredients.
func (v *Vocabulary) Len() int {
	return len(v.canonicals)
}
