package processor

import (
	"github.com/annel0/structure-toolkit/internal/world/template"
)

// Rule - обработчик блоков шаблона. Process вызывается один раз для каждого
// блока части и возвращает либо исходный блок, либо замену. Реализации не
// хранят изменяемого состояния и безопасны для параллельного вызова.
type Rule interface {
	Type() string
	Process(ctx *Context) (template.BlockInfo, error)
}

// Option настраивает обработчик
type Option func(*options)

type options struct {
	metrics *Metrics
}

// WithMetrics подключает метрики решений
func WithMetrics(m *Metrics) Option {
	return func(o *options) { o.metrics = m }
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
