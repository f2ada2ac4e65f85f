package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"git.appkode.ru/pub/go/failure"

	"churnscore/internal/domain"
	"churnscore/internal/domain/entity"
	"churnscore/internal/domain/service/churn"
	"churnscore/pkg/errcodes"
	"churnscore/pkg/httpx/reply"
	"churnscore/pkg/httpx/req"
	"churnscore/pkg/rest"
)

type churnService interface {
	Predict(context.Context, entity.Customer) (entity.Prediction, error)
	Schema() churn.Schema
}

type PredictionServer struct {
	churnService churnService
	title        string
}

func NewPredictionServer(churnService churnService, title string) PredictionServer {
	return PredictionServer{
		churnService: churnService,
		title:        title,
	}
}

func (s PredictionServer) postV1Prediction(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.PredictionRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	prediction, err := s.predict(ctx, request)
	if err != nil {
		return err
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTPrediction(prediction))

	return nil
}

func (s PredictionServer) getV1Schema(w http.ResponseWriter, r *http.Request) error {
	reply.JSON(r.Context(), w, http.StatusOK, newRESTSchema(s.churnService.Schema()))

	return nil
}

// predict scores the request and lifts unknown categories into an invalid
// argument, since the fix is on the caller's side.
func (s PredictionServer) predict(ctx context.Context, request rest.PredictionRequest) (entity.Prediction, error) {
	prediction, err := s.churnService.Predict(ctx, newDomainCustomer(request))
	if err == nil {
		return prediction, nil
	}

	var appErr *domain.AppError
	if errors.Is(err, domain.ErrUnknownCategory) && errors.As(err, &appErr) {
		return entity.Prediction{}, failure.NewInvalidArgumentErrorFromError(
			fmt.Errorf("churnService.Predict: %w", err),
			failure.WithCode(errcodes.UnknownCategory),
			failure.WithDescription(appErr.Message),
		)
	}

	return entity.Prediction{}, fmt.Errorf("churnService.Predict: %w", err)
}
