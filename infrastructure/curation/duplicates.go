// Package curation provides catalog maintenance tooling. Its
// duplicate detector flags question pairs whose prompts are nearly
// identical, which typically happens when a catalog import runs twice
// or an editor rewords an existing question instead of updating it.
package curation

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"

	"github.com/sentriq/maturion/internal/domain"
)

var (
	// foldCaser is a package-level Unicode case folder for performance.
	// This avoids creating a new caser for each string preparation.
	foldCaser = cases.Fold()

	validate = validator.New()
)

// DetectorConfig defines the parameters for duplicate detection.
// All fields are validated during detector creation.
type DetectorConfig struct {
	// Threshold is the minimum similarity score (0.0-1.0) for a pair
	// of question texts to be reported as duplicates.
	Threshold float64 `yaml:"threshold" json:"threshold" validate:"min=0.0,max=1.0"`

	// CaseSensitive determines whether comparison preserves case.
	// When false, both texts are case-folded before comparison.
	CaseSensitive bool `yaml:"case_sensitive" json:"case_sensitive"`
}

// DuplicatePair reports two questions whose prompts are similar at or
// above the configured threshold.
type DuplicatePair struct {
	// A and B are the questions flagged as near-duplicates.
	A domain.Question `json:"a"`
	B domain.Question `json:"b"`

	// Similarity is the normalized Levenshtein similarity in [0,1],
	// where 1 means the prepared texts are identical.
	Similarity float64 `json:"similarity"`
}

// Detector finds near-duplicate questions in the assessment catalog
// using Levenshtein distance over normalized prompt text. It is
// stateless and safe for concurrent use.
type Detector struct {
	config DetectorConfig
}

// NewDetector creates a Detector with the given configuration.
// Returns an error if configuration validation fails.
func NewDetector(config DetectorConfig) (*Detector, error) {
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &Detector{config: config}, nil
}

// FindDuplicates compares every pair of questions and returns the
// pairs whose prepared texts are similar at or above the threshold,
// sorted by descending similarity. Comparison is O(n²) pairs, which is
// fine for catalogs of tens to hundreds of questions.
func (d *Detector) FindDuplicates(questions []domain.Question) []DuplicatePair {
	prepared := make([]string, len(questions))
	for i, q := range questions {
		prepared[i] = d.prepare(q.Text)
	}

	var pairs []DuplicatePair
	for i := 0; i < len(questions); i++ {
		for j := i + 1; j < len(questions); j++ {
			sim := similarity(prepared[i], prepared[j])
			if sim >= d.config.Threshold {
				pairs = append(pairs, DuplicatePair{
					A:          questions[i],
					B:          questions[j],
					Similarity: sim,
				})
			}
		}
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].Similarity > pairs[j].Similarity
	})
	return pairs
}

// prepare normalizes a prompt for comparison: whitespace runs collapse
// to single spaces and, unless configured otherwise, the text is
// Unicode case-folded.
func (d *Detector) prepare(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if !d.config.CaseSensitive {
		text = foldCaser.String(text)
	}
	return text
}

// similarity converts Levenshtein edit distance into a normalized
// similarity score: 1 - distance/maxRuneLength. Two empty strings are
// identical by definition.
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	maxLen := utf8.RuneCountInString(a)
	if l := utf8.RuneCountInString(b); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(maxLen)
}
