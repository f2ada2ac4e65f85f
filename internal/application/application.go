package application

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"churnscore/internal/config"
	"churnscore/internal/domain/service/churn"
	"churnscore/internal/domain/value"
	"churnscore/internal/infrastructure/artifacts"
	"churnscore/internal/infrastructure/telemetry"
	"churnscore/internal/infrastructure/tfserving"
	"churnscore/internal/server"
	"churnscore/pkg/application/modules"
	"churnscore/pkg/contextx"
	"churnscore/pkg/logx"
)

const (
	title                       = "Customer Churn Prediction"
	httpServerReadHeaderTimeout = 5 * time.Second
)

// Run loads the configuration and artifacts, then serves until ctx is done.
// An artifact that cannot be loaded aborts the start.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	log := NewLogger(cfg.App.LogLevel).With(
		slog.String(logx.FieldAppName, cfg.App.Name),
		slog.String(logx.FieldAppVersion, cfg.App.Version),
	)
	slog.SetDefault(log)

	ctx = contextx.WithLogger(ctx, log)

	store := artifacts.NewStore(cfg.Artifacts.Dir, artifacts.Files{
		Gender:    cfg.Artifacts.GenderFile,
		Geography: cfg.Artifacts.GeographyFile,
		Scaler:    cfg.Artifacts.ScalerFile,
		Model:     cfg.Artifacts.ModelFile,
		Manifest:  cfg.Artifacts.ManifestFile,
	})

	bundle, err := store.Load(ctx, cfg.Model.Backend == config.ModelBackendLocal)
	if err != nil {
		return fmt.Errorf("store.Load: %w", err)
	}

	classifier, err := newClassifier(cfg, bundle)
	if err != nil {
		return err
	}

	threshold, err := resolveThreshold(cfg.Churn, bundle.Manifest)
	if err != nil {
		return err
	}

	svc, err := churn.NewService(bundle.Assembler, bundle.Scaler, classifier)
	if err != nil {
		return fmt.Errorf("churn.NewService: %w", err)
	}

	svc.
		WithThreshold(threshold).
		WithModelVersion(bundle.Manifest.Version).
		WithRecorder(telemetry.NewPredictionMetrics(prometheus.DefaultRegisterer))

	log.Info(
		"churn service ready",
		slog.String(logx.FieldModelBackend, cfg.Model.Backend),
		slog.String(logx.FieldModelVersion, bundle.Manifest.Version),
		slog.Float64(logx.FieldThreshold, threshold.Float64()),
	)

	router := server.NewRouter(
		server.NewServer(server.NewPredictionServer(svc, title)),
		cfg.HTTP.LogFieldMaxLen,
	)

	g, ctx := errgroup.WithContext(ctx)

	modules.HTTPServer{ShutdownTimeout: cfg.HTTP.ShutdownTimeout}.Run(ctx, g, &http.Server{
		//nolint:exhaustruct
		Addr:              cfg.HTTP.ListenAddress,
		Handler:           router,
		ReadHeaderTimeout: httpServerReadHeaderTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	})

	modules.MetricServer{ListenAddress: cfg.Metrics.ListenAddress}.Run(ctx, g)

	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ModelVersion:  bundle.Manifest.Version,
		ListenAddress: cfg.Probe.ListenAddress,
	}.Run(ctx, g)

	if err = g.Wait(); err != nil {
		return fmt.Errorf("g.Wait: %w", err)
	}

	log.Info("application stopped")

	return nil
}

// NewLogger builds the process logger.
func NewLogger(level slog.Level) *slog.Logger {
	return slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:      level,
		TimeFormat: time.DateTime,
	}))
}

func newClassifier(cfg config.Config, bundle artifacts.Bundle) (churn.Classifier, error) {
	if cfg.Model.Backend != config.ModelBackendTFServing {
		return bundle.Model, nil
	}

	client, err := tfserving.NewClient(
		cfg.Model.TFServingURL,
		cfg.Model.TFServingModel,
		cfg.Model.TFServingTimeout,
		cfg.HTTP.LogFieldMaxLen,
	)
	if err != nil {
		return nil, fmt.Errorf("tfserving.NewClient: %w", err)
	}

	if cfg.Model.TFServingToken != "" {
		client.WithBearerToken(cfg.Model.TFServingToken)
	}

	return client, nil
}

func resolveThreshold(cfg config.Churn, manifest artifacts.Manifest) (value.Threshold, error) {
	if cfg.Threshold == nil {
		return manifest.Threshold, nil
	}

	threshold, err := value.NewThreshold(*cfg.Threshold)
	if err != nil {
		return 0, fmt.Errorf("value.NewThreshold: %w", err)
	}

	return threshold, nil
}
