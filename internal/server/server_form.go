package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"git.appkode.ru/pub/go/failure"

	"churnscore/internal/domain/entity"
	"churnscore/pkg/errcodes"
	"churnscore/pkg/httpx/reply"
	"churnscore/pkg/httpx/req"
	"churnscore/pkg/logx"
	"churnscore/pkg/rest"
)

//go:embed templates/form.html
var templatesFS embed.FS

var formTemplate = template.Must(template.ParseFS(templatesFS, "templates/form.html")) //nolint:gochecknoglobals

type formView struct {
	Title     string
	Schema    rest.Schema
	Values    url.Values
	Result    *rest.Prediction
	Error     string
	SupportID string
}

func (s PredictionServer) getForm(w http.ResponseWriter, r *http.Request) error {
	schema := newRESTSchema(s.churnService.Schema())

	return s.renderForm(w, r, http.StatusOK, formView{
		Title:  s.title,
		Schema: schema,
		Values: defaultFormValues(schema),
	})
}

func (s PredictionServer) postForm(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	view := formView{
		Title:  s.title,
		Schema: newRESTSchema(s.churnService.Schema()),
	}

	if err := r.ParseForm(); err != nil {
		return failure.NewInvalidArgumentError(
			fmt.Errorf("r.ParseForm: %w", err).Error(),
			failure.WithCode(errcodes.ValidationError),
			failure.WithDescription("Invalid form"),
		)
	}

	view.Values = r.PostForm

	prediction, err := s.submitForm(r)
	if err != nil {
		logger(ctx).Warn("form prediction failed", logx.Error(err))

		view.Error = formErrorMessage(err)
		view.SupportID = reply.SupportID(ctx)

		status := http.StatusInternalServerError
		if failure.IsInvalidArgumentError(err) {
			status = http.StatusBadRequest
		}

		return s.renderForm(w, r, status, view)
	}

	result := newRESTPrediction(prediction)
	view.Result = &result

	return s.renderForm(w, r, http.StatusOK, view)
}

func (s PredictionServer) submitForm(r *http.Request) (entity.Prediction, error) {
	request, err := newFormRequest(r.PostForm)
	if err != nil {
		return entity.Prediction{}, failure.NewInvalidArgumentErrorFromError(
			fmt.Errorf("newFormRequest: %w", err),
			failure.WithCode(errcodes.ValidationError),
			failure.WithDescription(err.Error()),
		)
	}

	if err = req.Validate(r, &request); err != nil {
		return entity.Prediction{}, fmt.Errorf("req.Validate: %w", err)
	}

	return s.predict(r.Context(), request)
}

func (s PredictionServer) renderForm(w http.ResponseWriter, r *http.Request, status int, view formView) error {
	var buf bytes.Buffer

	if err := formTemplate.Execute(&buf, view); err != nil {
		return fmt.Errorf("formTemplate.Execute: %w", err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	if _, err := buf.WriteTo(w); err != nil {
		logger(r.Context()).Error("buf.WriteTo", logx.Error(err))
	}

	return nil
}

func formErrorMessage(err error) string {
	if failure.IsInvalidArgumentError(err) {
		if description := failure.Description(err); description != "" {
			return description
		}

		return "Invalid input"
	}

	return "Prediction failed"
}

// defaultFormValues mirrors the initial state of the widgets: first option of
// each select box and the lower bound of each slider.
func defaultFormValues(schema rest.Schema) url.Values {
	values := url.Values{}

	if len(schema.Geographies) > 0 {
		values.Set(fieldGeography, schema.Geographies[0])
	}

	if len(schema.Genders) > 0 {
		values.Set(fieldGender, schema.Genders[0])
	}

	for field, rng := range schema.Ranges {
		values.Set(field, strconv.Itoa(rng.Min))
	}

	values.Set(fieldBalance, "0")
	values.Set(fieldCreditScore, "0")
	values.Set(fieldEstimatedSalary, "0")
	values.Set(fieldHasCreditCard, "0")
	values.Set(fieldIsActiveMember, "0")

	return values
}
