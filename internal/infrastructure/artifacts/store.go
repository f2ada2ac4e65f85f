// Package artifacts loads the fitted preprocessing transformers and the model
// exported by the offline training run.
package artifacts

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	jsoniter "github.com/json-iterator/go"

	"churnscore/internal/domain"
	"churnscore/internal/domain/preprocess"
	"churnscore/internal/domain/value"
	"churnscore/internal/infrastructure/ann"
	"churnscore/pkg/contextx"
	"churnscore/pkg/logx"
)

var (
	json   = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip
	logger = contextx.LoggerFromContextOrDefault          //nolint:gochecknoglobals
)

const (
	ArtifactGender    = "gender encoder"
	ArtifactGeography = "geography encoder"
	ArtifactScaler    = "scaler"
	ArtifactModel     = "model"
	ArtifactManifest  = "manifest"
)

// Files names the artifact files inside the store directory.
type Files struct {
	Gender    string
	Geography string
	Scaler    string
	Model     string
	Manifest  string
}

func DefaultFiles() Files {
	return Files{
		Gender:    "label_encoder_gender.json",
		Geography: "onehot_encoder_geo.json",
		Scaler:    "scaler.json",
		Model:     "model.json",
		Manifest:  "manifest.json",
	}
}

type labelEncoderFile struct {
	Feature string   `json:"feature"`
	Classes []string `json:"classes"`
}

type oneHotEncoderFile struct {
	Feature    string   `json:"feature"`
	Categories []string `json:"categories"`
}

type scalerFile struct {
	FeatureNamesIn []string  `json:"feature_names_in"`
	Mean           []float64 `json:"mean"`
	Scale          []float64 `json:"scale"`
}

type manifestFile struct {
	Version   string    `json:"version"`
	TrainedAt time.Time `json:"trained_at"`
	Threshold *float64  `json:"threshold"`
}

// Manifest describes the training run that produced the bundle.
type Manifest struct {
	Version   string
	TrainedAt time.Time
	Threshold value.Threshold
}

// Bundle is the read-only state shared by every scoring call.
type Bundle struct {
	Gender    preprocess.LabelEncoder
	Geography preprocess.OneHotEncoder
	Scaler    preprocess.StandardScaler
	Assembler preprocess.Assembler
	Model     *ann.Network
	Manifest  Manifest
}

type Store struct {
	dir   string
	files Files
}

func NewStore(dir string, files Files) Store {
	return Store{
		dir:   dir,
		files: files,
	}
}

// Load reads and cross-validates all artifacts. Any failure is reported as
// domain.ErrArtifactLoad; a partial bundle is never returned. When withModel
// is false the local model file is not required.
func (s Store) Load(ctx context.Context, withModel bool) (Bundle, error) {
	var (
		b      Bundle
		gender labelEncoderFile
		geo    oneHotEncoderFile
		scaler scalerFile
		err    error
	)

	if err = s.read(ArtifactGender, s.files.Gender, &gender); err != nil {
		return Bundle{}, err
	}

	if b.Gender, err = preprocess.NewLabelEncoder(cmp.Or(gender.Feature, "Gender"), gender.Classes); err != nil {
		return Bundle{}, domain.ArtifactLoad(ArtifactGender, err)
	}

	if err = s.read(ArtifactGeography, s.files.Geography, &geo); err != nil {
		return Bundle{}, err
	}

	if b.Geography, err = preprocess.NewOneHotEncoder(cmp.Or(geo.Feature, "Geography"), geo.Categories); err != nil {
		return Bundle{}, domain.ArtifactLoad(ArtifactGeography, err)
	}

	if err = s.read(ArtifactScaler, s.files.Scaler, &scaler); err != nil {
		return Bundle{}, err
	}

	if b.Scaler, err = preprocess.NewStandardScaler(scaler.FeatureNamesIn, scaler.Mean, scaler.Scale); err != nil {
		return Bundle{}, domain.ArtifactLoad(ArtifactScaler, err)
	}

	if b.Assembler, err = preprocess.NewAssembler(b.Gender, b.Geography, b.Scaler.FeatureNames()); err != nil {
		return Bundle{}, domain.ArtifactLoad(ArtifactScaler, err)
	}

	if withModel {
		if b.Model, err = s.loadModel(b.Scaler.Dim()); err != nil {
			return Bundle{}, err
		}
	}

	if b.Manifest, err = s.loadManifest(); err != nil {
		return Bundle{}, err
	}

	logger(ctx).Info(
		"artifacts loaded",
		slog.String(logx.FieldPath, s.dir),
		slog.String(logx.FieldModelVersion, b.Manifest.Version),
		slog.Int("features", b.Scaler.Dim()),
		slog.Any("geographies", b.Geography.Categories()),
		slog.Any("genders", b.Gender.Classes()),
	)

	return b, nil
}

func (s Store) loadModel(featureDim int) (*ann.Network, error) {
	var spec ann.Spec

	if err := s.read(ArtifactModel, s.files.Model, &spec); err != nil {
		return nil, err
	}

	network, err := ann.NewNetwork(spec)
	if err != nil {
		return nil, domain.ArtifactLoad(ArtifactModel, err)
	}

	if network.InputDim() != featureDim {
		return nil, domain.ArtifactLoad(
			ArtifactModel,
			domain.DimensionMismatch("model input", featureDim, network.InputDim()),
		)
	}

	return network, nil
}

func (s Store) loadManifest() (Manifest, error) {
	m := Manifest{Threshold: value.DefaultThreshold}

	if s.files.Manifest == "" {
		return m, nil
	}

	var file manifestFile

	err := s.read(ArtifactManifest, s.files.Manifest, &file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return m, nil
		}

		return Manifest{}, err
	}

	m.Version = file.Version
	m.TrainedAt = file.TrainedAt

	if file.Threshold != nil {
		if m.Threshold, err = value.NewThreshold(*file.Threshold); err != nil {
			return Manifest{}, domain.ArtifactLoad(ArtifactManifest, err)
		}
	}

	return m, nil
}

func (s Store) read(artifact, name string, dest any) error {
	path := filepath.Join(s.dir, name)

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.ArtifactLoad(artifact, fmt.Errorf("os.ReadFile: %w", err))
	}

	if err = json.Unmarshal(data, dest); err != nil {
		return domain.ArtifactLoad(artifact, fmt.Errorf("json.Unmarshal %s: %w", path, err))
	}

	return nil
}
