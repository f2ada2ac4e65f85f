package preprocess

import (
	"fmt"
	"strings"

	"churnscore/internal/domain"
	"churnscore/internal/domain/entity"
)

// Canonical names of the pass-through columns, in training order.
const (
	ColumnAge             = "Age"
	ColumnBalance         = "Balance"
	ColumnCreditScore     = "Credit Score"
	ColumnEstimatedSalary = "Estimated Salary"
	ColumnTenure          = "Tenure"
	ColumnNumOfProducts   = "Number of Products"
	ColumnHasCreditCard   = "Has Credit Card"
	ColumnIsActiveMember  = "Is Active Member"
)

type numericColumn struct {
	name    string
	aliases []string
	value   func(entity.Customer) float64
}

//nolint:gochecknoglobals
var numericColumns = []numericColumn{
	{ColumnAge, nil, func(c entity.Customer) float64 { return float64(c.Age) }},
	{ColumnBalance, nil, func(c entity.Customer) float64 { return c.Balance }},
	{ColumnCreditScore, nil, func(c entity.Customer) float64 { return c.CreditScore }},
	{ColumnEstimatedSalary, nil, func(c entity.Customer) float64 { return c.EstimatedSalary }},
	{ColumnTenure, nil, func(c entity.Customer) float64 { return float64(c.Tenure) }},
	{ColumnNumOfProducts, []string{"NumOfProducts"}, func(c entity.Customer) float64 { return float64(c.NumOfProducts) }},
	{ColumnHasCreditCard, []string{"HasCrCard"}, func(c entity.Customer) float64 { return boolToFloat(c.HasCreditCard) }},
	{ColumnIsActiveMember, nil, func(c entity.Customer) float64 { return boolToFloat(c.IsActiveMember) }},
}

// NumericColumnCount is the number of pass-through customer fields.
func NumericColumnCount() int {
	return len(numericColumns)
}

// DefaultColumns is the column order used by training: gender code, the
// pass-through fields, then the geography one-hot slots.
func DefaultColumns(gender LabelEncoder, geography OneHotEncoder) []string {
	columns := make([]string, 0, 1+len(numericColumns)+geography.Width())
	columns = append(columns, gender.Feature())

	for _, nc := range numericColumns {
		columns = append(columns, nc.name)
	}

	return append(columns, geography.FeatureNamesOut()...)
}

type columnKind int

const (
	columnGender columnKind = iota
	columnNumeric
	columnGeography
)

type column struct {
	kind  columnKind
	index int // into numericColumns or geography slots
}

// Assembler builds the feature vector in the column order recorded by the
// scaler. The order is resolved once, so a drifted schema fails at startup
// instead of silently corrupting predictions.
type Assembler struct {
	gender    LabelEncoder
	geography OneHotEncoder
	columns   []string
	plan      []column
}

func NewAssembler(gender LabelEncoder, geography OneHotEncoder, columns []string) (Assembler, error) {
	want := 1 + len(numericColumns) + geography.Width()
	if len(columns) != want {
		return Assembler{}, domain.DimensionMismatch("feature schema", len(columns), want)
	}

	lookup := make(map[string]column, want)
	lookup[normalize(gender.Feature())] = column{kind: columnGender}

	for i, nc := range numericColumns {
		lookup[normalize(nc.name)] = column{kind: columnNumeric, index: i}

		for _, alias := range nc.aliases {
			lookup[normalize(alias)] = column{kind: columnNumeric, index: i}
		}
	}

	// One-hot columns carry fitted category values and must match exactly.
	geoLookup := make(map[string]column, geography.Width())
	for i, name := range geography.FeatureNamesOut() {
		geoLookup[name] = column{kind: columnGeography, index: i}
	}

	plan := make([]column, 0, want)
	seen := make(map[column]string, want)
	lastGeo := -1

	for _, name := range columns {
		col, ok := geoLookup[name]
		if !ok {
			col, ok = lookup[normalize(name)]
		}

		if !ok {
			return Assembler{}, domain.SchemaMismatch("feature schema: unknown column %q", name)
		}

		if prev, dup := seen[col]; dup {
			return Assembler{}, domain.SchemaMismatch("feature schema: column %q duplicates %q", name, prev)
		}

		if col.kind == columnGeography {
			if col.index < lastGeo {
				return Assembler{}, domain.SchemaMismatch(
					"feature schema: column %q is out of %s category order", name, geography.Feature(),
				)
			}

			lastGeo = col.index
		}

		seen[col] = name
		plan = append(plan, col)
	}

	return Assembler{
		gender:    gender,
		geography: geography,
		columns:   append([]string(nil), columns...),
		plan:      plan,
	}, nil
}

// Width is the length of every assembled vector.
func (a Assembler) Width() int {
	return len(a.plan)
}

// Genders lists the gender classes the assembler accepts.
func (a Assembler) Genders() []string {
	return a.gender.Classes()
}

// Geographies lists the geography categories the assembler accepts.
func (a Assembler) Geographies() []string {
	return a.geography.Categories()
}

func (a Assembler) Columns() []string {
	return append([]string(nil), a.columns...)
}

// Assemble encodes the categorical fields of c and lays all fields out in
// schema order. Numeric fields pass through unchanged.
func (a Assembler) Assemble(c entity.Customer) ([]float64, error) {
	genderCode, err := a.gender.Transform(c.Gender)
	if err != nil {
		return nil, fmt.Errorf("gender.Transform: %w", err)
	}

	geo, err := a.geography.Transform(c.Geography)
	if err != nil {
		return nil, fmt.Errorf("geography.Transform: %w", err)
	}

	vector := make([]float64, len(a.plan))

	for i, col := range a.plan {
		switch col.kind {
		case columnGender:
			vector[i] = float64(genderCode)
		case columnNumeric:
			vector[i] = numericColumns[col.index].value(c)
		case columnGeography:
			vector[i] = geo[col.index]
		}
	}

	return vector, nil
}

var separators = strings.NewReplacer(" ", "", "_", "", "-", "") //nolint:gochecknoglobals

func normalize(name string) string {
	return separators.Replace(strings.ToLower(name))
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}

	return 0
}
