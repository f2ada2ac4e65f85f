// Wire types of the public JSON API.
package rest

// PredictionRequest customer attributes as entered in the form.
type PredictionRequest struct {
	Geography       string   `json:"geography" validate:"required"`
	Gender          string   `json:"gender" validate:"required"`
	Age             int      `json:"age" validate:"min=18,max=92"`
	Balance         *float64 `json:"balance" validate:"required"`
	CreditScore     *float64 `json:"creditScore" validate:"required"`
	EstimatedSalary *float64 `json:"estimatedSalary" validate:"required"`
	Tenure          *int     `json:"tenure" validate:"required,min=0,max=10"`
	NumOfProducts   int      `json:"numOfProducts" validate:"min=1,max=4"`
	HasCreditCard   bool     `json:"hasCreditCard"`
	IsActiveMember  bool     `json:"isActiveMember"`
}

// Prediction result of a single scoring call.
type Prediction struct {
	Probability   float64 `json:"probability"`
	Threshold     float64 `json:"threshold"`
	Verdict       string  `json:"verdict"`
	LikelyToChurn bool    `json:"likelyToChurn"`
	Message       string  `json:"message"`
}

// Range inclusive bounds of a numeric form field.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Schema describes the inputs the loaded artifacts accept.
type Schema struct {
	Geographies  []string         `json:"geographies"`
	Genders      []string         `json:"genders"`
	Ranges       map[string]Range `json:"ranges"`
	Columns      []string         `json:"columns"`
	Threshold    float64          `json:"threshold"`
	ModelVersion string           `json:"modelVersion"`
}

// Error Модель ошибок
type Error struct {
	// Code Код ошибки
	Code ErrorCode `json:"code"`

	// Message Сообщение об ошибке (для отображения в UI в будущем)
	Message string `json:"message"`

	// SupportID идентификатор запроса для обращения в поддержку
	SupportID string `json:"supportId"`
}

// ErrorCode Код ошибки
type ErrorCode string
