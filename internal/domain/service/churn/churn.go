package churn

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"git.appkode.ru/pub/go/failure"
	"github.com/samber/lo"

	"churnscore/internal/domain"
	"churnscore/internal/domain/entity"
	"churnscore/internal/domain/preprocess"
	"churnscore/internal/domain/value"
	"churnscore/pkg/contextx"
	"churnscore/pkg/errcodes"
	"churnscore/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// maxScaledMagnitude bounds a scaled feature, in standard deviations from the
// training mean. Anything further out overflows the network.
const maxScaledMagnitude = 1e6

// Classifier turns a scaled feature vector into a churn probability.
type Classifier interface {
	Predict(ctx context.Context, x []float64) (float64, error)
}

type Recorder interface {
	ObservePrediction(probability float64, verdict value.Verdict, elapsed time.Duration)
	ObserveError(err error)
}

type nopRecorder struct{}

func (nopRecorder) ObservePrediction(float64, value.Verdict, time.Duration) {}
func (nopRecorder) ObserveError(error)                                      {}

// Schema describes what the loaded artifacts accept.
type Schema struct {
	Geographies  []string
	Genders      []string
	Columns      []string
	Threshold    value.Threshold
	ModelVersion string
}

// Service runs the scoring pipeline: assemble, scale, classify, apply the
// threshold. It holds only read-only state and is safe for concurrent use.
type Service struct {
	assembler    preprocess.Assembler
	scaler       preprocess.StandardScaler
	classifier   Classifier
	threshold    value.Threshold
	modelVersion string
	recorder     Recorder
}

func NewService(
	assembler preprocess.Assembler,
	scaler preprocess.StandardScaler,
	classifier Classifier,
) (*Service, error) {
	if assembler.Width() != scaler.Dim() {
		return nil, domain.DimensionMismatch("assembler vs scaler", assembler.Width(), scaler.Dim())
	}

	return &Service{
		assembler:  assembler,
		scaler:     scaler,
		classifier: classifier,
		threshold:  value.DefaultThreshold,
		recorder:   nopRecorder{},
	}, nil
}

func (s *Service) WithThreshold(threshold value.Threshold) *Service {
	s.threshold = threshold
	return s
}

func (s *Service) WithModelVersion(version string) *Service {
	s.modelVersion = version
	return s
}

func (s *Service) WithRecorder(recorder Recorder) *Service {
	s.recorder = recorder
	return s
}

func (s *Service) Schema() Schema {
	return Schema{
		Geographies:  s.assembler.Geographies(),
		Genders:      s.assembler.Genders(),
		Columns:      s.assembler.Columns(),
		Threshold:    s.threshold,
		ModelVersion: s.modelVersion,
	}
}

// Predict validates the customer and scores it.
func (s *Service) Predict(ctx context.Context, c entity.Customer) (entity.Prediction, error) {
	start := time.Now()

	prediction, err := s.predict(ctx, c)
	if err != nil {
		s.recorder.ObserveError(err)
		return entity.Prediction{}, err
	}

	s.recorder.ObservePrediction(prediction.Probability, prediction.Verdict, time.Since(start))

	logger(ctx).Debug(
		"churn predicted",
		slog.Float64(logx.FieldProbability, prediction.Probability),
		logx.Stringer(logx.FieldVerdict, prediction.Verdict),
		slog.Float64(logx.FieldThreshold, prediction.Threshold.Float64()),
	)

	return prediction, nil
}

func (s *Service) predict(ctx context.Context, c entity.Customer) (entity.Prediction, error) {
	customer, err := entity.NewCustomer(c)
	if err != nil {
		return entity.Prediction{}, fmt.Errorf("entity.NewCustomer: %w", err)
	}

	features, err := s.assembler.Assemble(customer)
	if err != nil {
		return entity.Prediction{}, fmt.Errorf("assembler.Assemble: %w", err)
	}

	scaled, err := s.scaler.Transform(features)
	if err != nil {
		return entity.Prediction{}, fmt.Errorf("scaler.Transform: %w", err)
	}

	if lo.SomeBy(scaled, outOfScale) {
		return entity.Prediction{}, failure.NewInvalidArgumentError(
			fmt.Sprintf("scaled features out of range: %v", scaled),
			failure.WithCode(errcodes.InvalidCustomer),
			failure.WithDescription("Customer values are too far outside the training data to score"),
		)
	}

	probability, err := s.classifier.Predict(ctx, scaled)
	if err != nil {
		return entity.Prediction{}, fmt.Errorf("classifier.Predict: %w", err)
	}

	if math.IsNaN(probability) || probability < 0 || probability > 1 {
		return entity.Prediction{}, domain.NewError(
			errcodes.InferenceFailure,
			fmt.Sprintf("classifier returned probability %v outside [0, 1]", probability),
		)
	}

	return entity.Prediction{
		Probability: probability,
		Threshold:   s.threshold,
		Verdict:     s.threshold.Classify(probability),
	}, nil
}

func outOfScale(z float64) bool {
	return math.IsNaN(z) || math.Abs(z) > maxScaledMagnitude
}
