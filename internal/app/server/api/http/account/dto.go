package account

type credentialsInput struct {
	Body credentials
}

type credentials struct {
	Login    string `json:"login,omitempty" doc:"Логин или email"`
	Password string `json:"password,omitempty" doc:"Пароль учетной записи"`
}

type signupOutput struct {
	Body signupResponse
}

type signupResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	Token   string `json:"token"`
}

type loginOutput struct {
	Body loginResponse
}

type loginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}
