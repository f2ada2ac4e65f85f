package config

import "time"

const (
	ModelBackendLocal     = "local"
	ModelBackendTFServing = "tfserving"
)

type Artifacts struct {
	Dir           string `env:"ARTIFACTS_DIR" envDefault:"./artifacts" validate:"required"`
	GenderFile    string `env:"ARTIFACTS_GENDER_FILE" envDefault:"label_encoder_gender.json" validate:"required"`
	GeographyFile string `env:"ARTIFACTS_GEOGRAPHY_FILE" envDefault:"onehot_encoder_geo.json" validate:"required"`
	ScalerFile    string `env:"ARTIFACTS_SCALER_FILE" envDefault:"scaler.json" validate:"required"`
	ModelFile     string `env:"ARTIFACTS_MODEL_FILE" envDefault:"model.json" validate:"required"`
	ManifestFile  string `env:"ARTIFACTS_MANIFEST_FILE" envDefault:"manifest.json"`
}

type Model struct {
	Backend string `env:"MODEL_BACKEND" envDefault:"local" validate:"oneof=local tfserving"`

	TFServingURL     string        `env:"TFSERVING_URL" validate:"required_if=Backend tfserving"`
	TFServingModel   string        `env:"TFSERVING_MODEL" envDefault:"churn"`
	TFServingTimeout time.Duration `env:"TFSERVING_TIMEOUT" envDefault:"2s"`
	TFServingToken   string        `env:"TFSERVING_TOKEN"`
}

// Churn holds presentation policy. Threshold overrides the value recorded in
// the artifact manifest when set.
type Churn struct {
	Threshold *float64 `env:"CHURN_THRESHOLD" validate:"omitempty,gt=0,lt=1"`
}
