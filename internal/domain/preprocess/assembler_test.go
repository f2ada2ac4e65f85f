package preprocess_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"churnscore/internal/domain"
	"churnscore/internal/domain/entity"
	"churnscore/internal/domain/preprocess"
	"churnscore/pkg/tests"
)

func encoders(t *testing.T) (preprocess.LabelEncoder, preprocess.OneHotEncoder) {
	t.Helper()

	rq := require.New(t)

	gender, err := preprocess.NewLabelEncoder("Gender", []string{"Female", "Male"})
	rq.NoError(err)

	geography, err := preprocess.NewOneHotEncoder("Geography", []string{"France", "Germany", "Spain"})
	rq.NoError(err)

	return gender, geography
}

func exampleCustomer() entity.Customer {
	return entity.Customer{
		Geography:       "France",
		Gender:          "Male",
		Age:             40,
		Balance:         60000,
		CreditScore:     650,
		EstimatedSalary: 50000,
		Tenure:          3,
		NumOfProducts:   2,
		HasCreditCard:   true,
		IsActiveMember:  true,
	}
}

func TestDefaultColumns(t *testing.T) {
	rq := require.New(t)

	gender, geography := encoders(t)

	rq.Equal([]string{
		"Gender",
		"Age",
		"Balance",
		"Credit Score",
		"Estimated Salary",
		"Tenure",
		"Number of Products",
		"Has Credit Card",
		"Is Active Member",
		"Geography_France",
		"Geography_Germany",
		"Geography_Spain",
	}, preprocess.DefaultColumns(gender, geography))
}

func TestAssemblerExampleCustomer(t *testing.T) {
	rq := require.New(t)

	gender, geography := encoders(t)

	assembler, err := preprocess.NewAssembler(gender, geography, preprocess.DefaultColumns(gender, geography))
	rq.NoError(err)

	vector, err := assembler.Assemble(exampleCustomer())
	rq.NoError(err)
	rq.Equal(
		[]float64{1, 40, 60000, 650, 50000, 3, 2, 1, 1, 1, 0, 0},
		vector,
	)
	rq.Len(vector, 1+preprocess.NumericColumnCount()+geography.Width())
}

func TestAssemblerFollowsRecordedOrder(t *testing.T) {
	rq := require.New(t)

	gender, geography := encoders(t)

	// Names as pandas would record them for the Kaggle column headers.
	columns := []string{
		"CreditScore", "Gender", "Age", "Tenure", "Balance", "NumOfProducts",
		"HasCrCard", "IsActiveMember", "EstimatedSalary",
		"Geography_France", "Geography_Germany", "Geography_Spain",
	}

	assembler, err := preprocess.NewAssembler(gender, geography, columns)
	rq.NoError(err)
	rq.Equal(columns, assembler.Columns())

	c := exampleCustomer()
	c.Geography = "Spain"
	c.Gender = "Female"
	c.HasCreditCard = false

	vector, err := assembler.Assemble(c)
	rq.NoError(err)
	rq.Equal(
		[]float64{650, 0, 40, 3, 60000, 2, 0, 1, 50000, 0, 0, 1},
		vector,
	)
}

func TestAssemblerSchemaDrift(t *testing.T) {
	rq := require.New(t)

	gender, geography := encoders(t)
	defaults := preprocess.DefaultColumns(gender, geography)

	testCases := []struct {
		name    string
		columns func() []string
		errText string
	}{
		{
			name:    "Missing geography slot",
			columns: func() []string { return defaults[:len(defaults)-1] },
			errText: "feature schema: got 11 features, want 12",
		},
		{
			name:    "Extra column",
			columns: func() []string { return append(append([]string(nil), defaults...), "Surname") },
			errText: "feature schema: got 13 features, want 12",
		},
		{
			name: "Unknown column",
			columns: func() []string {
				c := append([]string(nil), defaults...)
				c[1] = "Surname"

				return c
			},
			errText: `unknown column "Surname"`,
		},
		{
			name: "Duplicated column",
			columns: func() []string {
				c := append([]string(nil), defaults...)
				c[1] = "Balance"

				return c
			},
			errText: `column "Balance" duplicates "Balance"`,
		},
		{
			name: "Geography categories reordered",
			columns: func() []string {
				c := append([]string(nil), defaults...)
				c[9], c[10] = c[10], c[9]

				return c
			},
			errText: `column "Geography_France" is out of Geography category order`,
		},
		{
			name: "Geography category unknown to encoder",
			columns: func() []string {
				c := append([]string(nil), defaults...)
				c[11] = "Geography_Italy"

				return c
			},
			errText: `unknown column "Geography_Italy"`,
		},
		{
			name: "Geography column with different spelling",
			columns: func() []string {
				c := append([]string(nil), defaults...)
				c[9] = "geography_france"

				return c
			},
			errText: `unknown column "geography_france"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			_, err := preprocess.NewAssembler(gender, geography, tc.columns())
			rq.ErrorIs(err, domain.ErrDimensionMismatch)
			rq.ErrorContains(err, tc.errText)
		})
	}
}

func TestAssemblerCategoriesDifferingInSeparators(t *testing.T) {
	rq := require.New(t)

	gender, err := preprocess.NewLabelEncoder("Gender", []string{"Female", "Male"})
	rq.NoError(err)

	geography, err := preprocess.NewOneHotEncoder("Region", []string{"North-East", "North East", "South"})
	rq.NoError(err)

	assembler, err := preprocess.NewAssembler(gender, geography, preprocess.DefaultColumns(gender, geography))
	rq.NoError(err)
	rq.Equal(12, assembler.Width())

	c := exampleCustomer()
	c.Geography = "North East"

	vector, err := assembler.Assemble(c)
	rq.NoError(err)
	rq.Equal([]float64{0, 1, 0}, vector[9:])

	c.Geography = "North-East"

	vector, err = assembler.Assemble(c)
	rq.NoError(err)
	rq.Equal([]float64{1, 0, 0}, vector[9:])
}

func TestAssemblerUnknownCategory(t *testing.T) {
	rq := require.New(t)

	gender, geography := encoders(t)

	assembler, err := preprocess.NewAssembler(gender, geography, preprocess.DefaultColumns(gender, geography))
	rq.NoError(err)

	c := exampleCustomer()
	c.Geography = "Atlantis"

	vector, err := assembler.Assemble(c)
	rq.ErrorIs(err, domain.ErrUnknownCategory)
	rq.Nil(vector)

	c = exampleCustomer()
	c.Gender = "Unknown"

	_, err = assembler.Assemble(c)
	rq.ErrorIs(err, domain.ErrUnknownCategory)
}

func TestAssemblerWidthMatchesScaler(t *testing.T) {
	rq := require.New(t)
	random := tests.NewRandomizer()

	gender, geography := encoders(t)
	columns := preprocess.DefaultColumns(gender, geography)

	mean := make([]float64, len(columns))
	scale := make([]float64, len(columns))

	for i := range scale {
		scale[i] = 1
	}

	scaler, err := preprocess.NewStandardScaler(columns, mean, scale)
	rq.NoError(err)

	assembler, err := preprocess.NewAssembler(gender, geography, scaler.FeatureNames())
	rq.NoError(err)
	rq.Equal(scaler.Dim(), assembler.Width())

	for range 200 {
		c, err := entity.NewCustomer(entity.Customer{
			Geography:       random.Pick(geography.Categories()),
			Gender:          random.Pick(gender.Classes()),
			Age:             random.IntRange(entity.MinAge, entity.MaxAge),
			Balance:         random.Float64() * 250000,
			CreditScore:     350 + random.Float64()*500,
			EstimatedSalary: random.Float64() * 200000,
			Tenure:          random.IntRange(entity.MinTenure, entity.MaxTenure),
			NumOfProducts:   random.IntRange(entity.MinNumOfProducts, entity.MaxNumOfProducts),
			HasCreditCard:   random.Bool(),
			IsActiveMember:  random.Bool(),
		})
		rq.NoError(err)

		vector, err := assembler.Assemble(c)
		rq.NoError(err)
		rq.Len(vector, scaler.Dim())

		geo := vector[len(vector)-geography.Width():]
		sum := 0.0

		for _, v := range geo {
			sum += v
		}

		rq.InDelta(1.0, sum, 0)

		scaled, err := scaler.Transform(vector)
		rq.NoError(err)
		rq.Equal(vector, scaled)
	}
}
