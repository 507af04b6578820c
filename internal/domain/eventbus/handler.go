package eventbus

import (
	"github.com/Requestin/TranslatorVoiceGame/internal/platform/logging"
)

// RegisterLogHandlers subscribes a logging handler for every check pipeline
// event. Called once at bootstrap after the logger is ready.
func RegisterLogHandlers(logger *logging.Logger) error {
	handle := func(fn func(CheckEventData)) func(args ...interface{}) {
		return func(args ...interface{}) {
			if len(args) == 0 {
				return
			}
			if data, ok := args[0].(CheckEventData); ok {
				fn(data)
			}
		}
	}

	if err := GetAsync().Subscribe(EventCheckReceived, handle(func(d CheckEventData) {
		logger.InfoTag("EVENT", "check %s received %s (%d bytes)", d.CheckID, d.Filename, d.InputSize)
	})); err != nil {
		return err
	}

	if err := GetAsync().Subscribe(EventCheckTranscoded, handle(func(d CheckEventData) {
		logger.InfoTag("EVENT", "check %s transcoded %d -> %d bytes", d.CheckID, d.InputSize, d.OutputSize)
	})); err != nil {
		return err
	}

	if err := GetAsync().Subscribe(EventCheckResult, handle(func(d CheckEventData) {
		logger.InfoTag("EVENT", "check %s result success=%v text=%q", d.CheckID, d.Success, d.Text)
	})); err != nil {
		return err
	}

	return GetAsync().Subscribe(EventCheckError, handle(func(d CheckEventData) {
		logger.WarnTag("EVENT", "check %s failed: %s", d.CheckID, d.Message)
	}))
}
