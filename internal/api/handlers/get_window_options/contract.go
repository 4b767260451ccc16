package get_window_options

import "github.com/m04kA/SMC-AvailabilityService/pkg/types"

// WindowCatalog источник допустимых границ рабочего окна
type WindowCatalog interface {
	StartTimeOptions() []types.TimeString
	EndTimeOptions() []types.TimeString
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
