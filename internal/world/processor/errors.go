package processor

import "errors"

var (
	// ErrConfiguration - ошибка конфигурации обработчика (неизвестный режим
	// случайности, некорректный список обработчиков). Генерацию этим
	// обработчиком нужно прервать.
	ErrConfiguration = errors.New("processor configuration error")

	// ErrEmptyCandidateSet - после исключений не осталось кандидатов для выбора
	ErrEmptyCandidateSet = errors.New("empty candidate set")
)
