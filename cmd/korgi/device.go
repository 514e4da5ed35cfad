package main

import (
	"fmt"

	"github.com/leandrodaf/korgi/internal/bridge"
	"github.com/leandrodaf/korgi/internal/directive"
	"github.com/leandrodaf/korgi/sdk/contracts"
	"github.com/leandrodaf/korgi/sdk/midi"
)

// surfaceEvents are the messages control surfaces send; everything else
// (clock, sysex, aftertouch) is dropped by the platform client.
var surfaceEvents = contracts.MIDIEventFilter{
	Commands: []contracts.MIDICommand{contracts.ControlChange, contracts.NoteOn, contracts.NoteOff},
}

// deviceOpener opens the input named by the configuration and starts
// delivering its events.
func deviceOpener(log contracts.Logger) bridge.OpenDeviceFunc {
	return func(cfg *directive.Configuration, events chan contracts.MIDI) (bridge.Device, error) {
		client, err := midi.NewMIDIClient(
			contracts.WithLogger(log),
			contracts.WithMIDIEventFilter(surfaceEvents),
		)
		if err != nil {
			return nil, err
		}

		if _, err := midi.SelectDevice(client, cfg.Device, cfg.DeviceName, log); err != nil {
			client.Stop()
			return nil, err
		}
		client.StartCapture(events)
		return client, nil
	}
}

func listDevices(log contracts.Logger) int {
	client, err := midi.NewMIDIClient(contracts.WithLogger(log))
	if err != nil {
		log.Error("Failed to initialize MIDI client", log.Field().Error("error", err))
		return 1
	}
	defer client.Stop()

	devices, err := client.ListDevices()
	if err != nil {
		log.Error("Failed to list MIDI devices", log.Field().Error("error", err))
		return 1
	}
	fmt.Println("Input MIDI devices:")
	for i, d := range devices {
		fmt.Printf("%3d: %s\n", i, d)
	}
	return 0
}
