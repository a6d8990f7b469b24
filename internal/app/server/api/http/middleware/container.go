package middleware

import "github.com/danielgtaylor/huma/v2"

// Container собирает цепочку middleware для очередного обработчика.
type Container struct {
	mws huma.Middlewares
}

func NewContainer() *Container {
	return &Container{}
}

func (c *Container) Add(mw func(huma.Context, func(huma.Context))) {
	c.mws = append(c.mws, mw)
}

// GetAllAndClear отдает накопленную цепочку и начинает новую.
func (c *Container) GetAllAndClear() huma.Middlewares {
	mws := c.mws
	c.mws = nil

	return mws
}
