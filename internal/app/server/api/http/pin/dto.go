package pin

type hasOutput struct {
	Body hasResponse
}

type hasResponse struct {
	IsSet bool `json:"isSet"`
}

type pinInput struct {
	Body pinRequest
}

// pinRequest поле необязательное для huma: формат проверяет сервис,
// чтобы на любой неверный PIN отвечать 400, а не 422.
type pinRequest struct {
	Pin string `json:"pin,omitempty" doc:"PIN из 6 цифр"`
}

type output struct {
	Body response
}

type response struct {
	Success bool `json:"success"`
}
