// Package preprocess holds the fitted transformers exported by training and the
// feature assembler that turns a customer into the model input vector.
package preprocess

import (
	"errors"
	"fmt"

	"github.com/samber/lo"

	"churnscore/internal/domain"
)

// LabelEncoder maps a class label to its index in the fitted class list.
type LabelEncoder struct {
	feature string
	classes []string
	index   map[string]int
}

func NewLabelEncoder(feature string, classes []string) (LabelEncoder, error) {
	index, err := buildIndex(classes)
	if err != nil {
		return LabelEncoder{}, fmt.Errorf("label encoder %s: %w", feature, err)
	}

	return LabelEncoder{
		feature: feature,
		classes: append([]string(nil), classes...),
		index:   index,
	}, nil
}

func (e LabelEncoder) Feature() string {
	return e.feature
}

func (e LabelEncoder) Classes() []string {
	return append([]string(nil), e.classes...)
}

// Transform returns the integer code of label. Labels outside the fitted
// classes are rejected, never defaulted.
func (e LabelEncoder) Transform(label string) (int, error) {
	code, ok := e.index[label]
	if !ok {
		return 0, domain.UnknownCategory(e.feature, label)
	}

	return code, nil
}

// OneHotEncoder expands a category into one slot per fitted category.
type OneHotEncoder struct {
	feature    string
	categories []string
	index      map[string]int
}

func NewOneHotEncoder(feature string, categories []string) (OneHotEncoder, error) {
	index, err := buildIndex(categories)
	if err != nil {
		return OneHotEncoder{}, fmt.Errorf("one-hot encoder %s: %w", feature, err)
	}

	return OneHotEncoder{
		feature:    feature,
		categories: append([]string(nil), categories...),
		index:      index,
	}, nil
}

func (e OneHotEncoder) Feature() string {
	return e.feature
}

func (e OneHotEncoder) Categories() []string {
	return append([]string(nil), e.categories...)
}

func (e OneHotEncoder) Width() int {
	return len(e.categories)
}

// FeatureNamesOut names the output slots as <feature>_<category>.
func (e OneHotEncoder) FeatureNamesOut() []string {
	return lo.Map(e.categories, func(c string, _ int) string {
		return e.feature + "_" + c
	})
}

// Transform returns a vector with a single 1 at the category position.
func (e OneHotEncoder) Transform(category string) ([]float64, error) {
	i, ok := e.index[category]
	if !ok {
		return nil, domain.UnknownCategory(e.feature, category)
	}

	encoded := make([]float64, len(e.categories))
	encoded[i] = 1

	return encoded, nil
}

func buildIndex(values []string) (map[string]int, error) {
	if len(values) == 0 {
		return nil, errors.New("no categories")
	}

	if i := lo.IndexOf(values, ""); i >= 0 {
		return nil, fmt.Errorf("empty category at position %d", i)
	}

	if dups := lo.FindDuplicates(values); len(dups) > 0 {
		return nil, fmt.Errorf("duplicate category %q", dups[0])
	}

	index := make(map[string]int, len(values))
	for i, v := range values {
		index[v] = i
	}

	return index, nil
}
