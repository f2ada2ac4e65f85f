package server

import (
	"fmt"
	"math"
	"net/url"
	"strconv"

	"churnscore/internal/domain/entity"
	"churnscore/internal/domain/service/churn"
	"churnscore/pkg/rest"
)

const (
	fieldGeography       = "geography"
	fieldGender          = "gender"
	fieldAge             = "age"
	fieldBalance         = "balance"
	fieldCreditScore     = "creditScore"
	fieldEstimatedSalary = "estimatedSalary"
	fieldTenure          = "tenure"
	fieldNumOfProducts   = "numOfProducts"
	fieldHasCreditCard   = "hasCreditCard"
	fieldIsActiveMember  = "isActiveMember"
)

func newDomainCustomer(request rest.PredictionRequest) entity.Customer {
	return entity.Customer{
		Geography:       request.Geography,
		Gender:          request.Gender,
		Age:             request.Age,
		Balance:         deref(request.Balance),
		CreditScore:     deref(request.CreditScore),
		EstimatedSalary: deref(request.EstimatedSalary),
		Tenure:          deref(request.Tenure),
		NumOfProducts:   request.NumOfProducts,
		HasCreditCard:   request.HasCreditCard,
		IsActiveMember:  request.IsActiveMember,
	}
}

func newRESTPrediction(prediction entity.Prediction) rest.Prediction {
	return rest.Prediction{
		Probability:   prediction.Probability,
		Threshold:     prediction.Threshold.Float64(),
		Verdict:       prediction.Verdict.String(),
		LikelyToChurn: prediction.Verdict.IsLikely(),
		Message:       prediction.Message(),
	}
}

func newRESTSchema(schema churn.Schema) rest.Schema {
	return rest.Schema{
		Geographies: schema.Geographies,
		Genders:     schema.Genders,
		Ranges: map[string]rest.Range{
			fieldAge:           {Min: entity.MinAge, Max: entity.MaxAge},
			fieldTenure:        {Min: entity.MinTenure, Max: entity.MaxTenure},
			fieldNumOfProducts: {Min: entity.MinNumOfProducts, Max: entity.MaxNumOfProducts},
		},
		Columns:      schema.Columns,
		Threshold:    schema.Threshold.Float64(),
		ModelVersion: schema.ModelVersion,
	}
}

// newFormRequest reads an HTML form submission. Select boxes for the boolean
// fields send "1" or "0"; anything else is rejected.
func newFormRequest(form url.Values) (rest.PredictionRequest, error) {
	var (
		request rest.PredictionRequest
		err     error
	)

	request.Geography = form.Get(fieldGeography)
	request.Gender = form.Get(fieldGender)

	if request.Age, err = parseInt(form, fieldAge); err != nil {
		return rest.PredictionRequest{}, err
	}

	if request.NumOfProducts, err = parseInt(form, fieldNumOfProducts); err != nil {
		return rest.PredictionRequest{}, err
	}

	tenure, err := parseInt(form, fieldTenure)
	if err != nil {
		return rest.PredictionRequest{}, err
	}

	request.Tenure = &tenure

	for field, dest := range map[string]**float64{
		fieldBalance:         &request.Balance,
		fieldCreditScore:     &request.CreditScore,
		fieldEstimatedSalary: &request.EstimatedSalary,
	} {
		v, err := strconv.ParseFloat(form.Get(field), 64)
		if err != nil {
			return rest.PredictionRequest{}, fmt.Errorf("%s: %w", field, err)
		}

		if math.IsNaN(v) || math.IsInf(v, 0) {
			return rest.PredictionRequest{}, fmt.Errorf("%s: must be a finite number", field)
		}

		*dest = &v
	}

	if request.HasCreditCard, err = parseFlag(form, fieldHasCreditCard); err != nil {
		return rest.PredictionRequest{}, err
	}

	if request.IsActiveMember, err = parseFlag(form, fieldIsActiveMember); err != nil {
		return rest.PredictionRequest{}, err
	}

	return request, nil
}

func parseFlag(form url.Values, field string) (bool, error) {
	switch v := form.Get(field); v {
	case "1":
		return true, nil
	case "0":
		return false, nil
	default:
		return false, fmt.Errorf("%s: must be 0 or 1, got %q", field, v)
	}
}

func parseInt(form url.Values, field string) (int, error) {
	v, err := strconv.Atoi(form.Get(field))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}

	return v, nil
}

func deref[T any](p *T) T {
	var zero T

	if p == nil {
		return zero
	}

	return *p
}
