package port

// Fields - произвольные структурированные поля лога.
type Fields map[string]interface{}

// LoggerPort - порт логирования для ядра и адаптеров.
// Реализации обязаны быть иммутабельными: WithFields возвращает новый логгер.
type LoggerPort interface {
	Debug(msg string, fields Fields)
	Info(msg string, fields Fields)
	Warn(msg string, fields Fields)
	Error(msg string, err error, fields Fields)
	WithFields(fields Fields) LoggerPort
}
