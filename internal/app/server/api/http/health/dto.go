package health

type Input struct{}

type Output struct {
	Body Response
}

// Response Database заполняется, только если база проверялась.
type Response struct {
	Status   string `json:"status" example:"OK" doc:"Service status"`
	Database string `json:"database,omitempty" example:"OK" doc:"Database reachability"`
}
