package midi

import (
	"github.com/leandrodaf/korgi/internal/logger"
	"github.com/leandrodaf/korgi/sdk/contracts"
)

// DefaultClientName is the CoreMIDI client name used when none is given.
const DefaultClientName = "korgi"

// applyDefaultOptions fills in whatever opts left unset. A caller-supplied
// logger keeps its level unless WithLogLevel was also given.
func applyDefaultOptions(opts ...contracts.Option) contracts.ClientOptions {
	options := &contracts.ClientOptions{}
	for _, opt := range opts {
		opt(options)
	}

	if options.Logger == nil {
		options.Logger = logger.NewConsoleLogger()
		if !options.LogLevelSet() {
			options.Logger.SetLevel(contracts.InfoLevel)
		}
	}
	if options.LogLevelSet() {
		options.Logger.SetLevel(options.LogLevel)
	}

	if options.CoreMIDIConfig == nil {
		options.CoreMIDIConfig = &contracts.CoreMIDIConfig{ClientName: DefaultClientName}
	}
	return *options
}
