package directive

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/leandrodaf/korgi/internal/surface"
	"github.com/leandrodaf/korgi/sdk/contracts"
	"go.uber.org/multierr"
)

// Parser turns configuration text into a Configuration, resolving control
// aliases against a surface catalog.
type Parser struct {
	catalog *surface.Catalog
	logger  contracts.Logger
}

func NewParser(catalog *surface.Catalog, logger contracts.Logger) *Parser {
	return &Parser{catalog: catalog, logger: logger}
}

// parseState is the working copy of one parse.
type parseState struct {
	cfg      *Configuration
	selector *surface.Selector
}

type handlerFunc func(st *parseState, name string, args *Tokenizer) error

var handlers = map[string]handlerFunc{
	"connect":     handleConnect,
	"password":    handlePassword,
	"device":      handleDevice,
	"device_name": handleDeviceName,
	"device_map":  handleDeviceMap,
	"button":      handleButton,
	"knob":        handleKnob,
	"slider":      handleKnob,
}

// ParseFile parses the file at path. See Parse.
func (p *Parser) ParseFile(path string, prev *Configuration) (*Configuration, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("couldn't open %s: %w", path, err)
	}
	defer f.Close()

	return p.Parse(path, f, prev)
}

// Parse reads directives from r on top of a copy of prev (or the defaults
// when prev is nil). Every bad line is reported and parsing carries on, so
// one pass finds all problems. If there was any problem the returned
// configuration is nil and the error lists each of them as a *LineError;
// prev is never modified.
func (p *Parser) Parse(name string, r io.Reader, prev *Configuration) (*Configuration, error) {
	if prev == nil {
		prev = Defaults()
	}
	st := &parseState{
		cfg:      prev.Clone(),
		selector: surface.NewSelector(p.catalog, prev.Profile),
	}

	var errs error
	br := bufio.NewReader(r)
	lineno := 0
	for {
		line, readErr := br.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", name, readErr))
			break
		}
		if readErr == io.EOF && line == "" {
			break
		}
		lineno++

		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}

		args := NewTokenizer(line, Delimiters)
		directive, ok := args.Next()
		if !ok {
			continue
		}

		handler, known := handlers[directive]
		if !known {
			errs = multierr.Append(errs, &LineError{File: name, Line: lineno, Msg: fmt.Sprintf("unknown directive '%s'", directive)})
		} else if err := handler(st, directive, args); err != nil {
			errs = multierr.Append(errs, &LineError{File: name, Line: lineno, Msg: err.Error()})
		}
		if readErr == io.EOF {
			break
		}
	}

	if st.cfg.Password == "" {
		errs = multierr.Append(errs, fmt.Errorf("%s: %w", name, ErrNoPassword))
	}
	if errs != nil {
		return nil, errs
	}

	p.logger.Info("Mapping loaded",
		p.logger.Field().String("file", name),
		p.logger.Field().Int("knobs", len(st.cfg.Knobs)),
		p.logger.Field().Int("buttons", len(st.cfg.Buttons)),
		p.logger.Field().String("profile", st.cfg.Profile))
	return st.cfg, nil
}

func insufficient(name string) error {
	return fmt.Errorf("insufficient parameters for '%s'", name)
}

func handleConnect(st *parseState, name string, args *Tokenizer) error {
	addr, ok := args.Next()
	if !ok {
		return insufficient(name)
	}
	if port, ok := args.Next(); ok {
		n, err := strconv.Atoi(port)
		if err != nil || n < 1 || n > 65535 {
			return fmt.Errorf("invalid port '%s'", port)
		}
		st.cfg.Port = n
	}
	st.cfg.Address = addr
	return nil
}

func handlePassword(st *parseState, name string, args *Tokenizer) error {
	pwd, ok := args.Next()
	if !ok {
		return insufficient(name)
	}
	st.cfg.Password = pwd
	return nil
}

func handleDevice(st *parseState, name string, args *Tokenizer) error {
	id, ok := args.Next()
	if !ok {
		return insufficient(name)
	}
	n, err := strconv.Atoi(id)
	if err != nil || n < 0 {
		return fmt.Errorf("invalid device index '%s'", id)
	}
	st.cfg.Device = n
	return nil
}

func handleDeviceName(st *parseState, name string, args *Tokenizer) error {
	device, ok := args.Next()
	if !ok {
		return insufficient(name)
	}
	st.cfg.DeviceName = device
	return nil
}

func handleDeviceMap(st *parseState, name string, args *Tokenizer) error {
	profile, ok := args.Next()
	if !ok {
		return insufficient(name)
	}
	if !st.selector.Select(profile) {
		return fmt.Errorf("unsupported control surface type '%s'", profile)
	}
	st.cfg.Profile = profile
	return nil
}

func handleButton(st *parseState, name string, args *Tokenizer) error {
	channel, ok := args.Next()
	if !ok {
		return insufficient(name)
	}
	command := strings.Trim(args.Rest(), Delimiters)
	if command == "" {
		return insufficient(name)
	}

	ch, err := st.channel(channel, name, surface.Button)
	if err != nil {
		return err
	}
	st.cfg.mapButton(ch, command)
	return nil
}

func handleKnob(st *parseState, name string, args *Tokenizer) error {
	channel, ok1 := args.Next()
	cvar, ok2 := args.Next()
	vmin, ok3 := args.Next()
	vmax, ok4 := args.Next()
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return insufficient(name)
	}

	k := KnobAction{Command: cvar}
	var err error
	if k.Min, err = strconv.ParseFloat(vmin, 64); err != nil {
		return fmt.Errorf("invalid minimum value '%s' for '%s'", vmin, name)
	}
	if k.Max, err = strconv.ParseFloat(vmax, 64); err != nil {
		return fmt.Errorf("invalid maximum value '%s' for '%s'", vmax, name)
	}

	want := surface.RotaryKnob
	if name == "slider" {
		want = surface.Slider
	}
	ch, err := st.channel(channel, name, want)
	if err != nil {
		return err
	}
	st.cfg.mapKnob(ch, k)
	return nil
}

// channel resolves a channel token. A token that is entirely a base-10
// integer is used as is, whatever the control kind; anything else must be
// an alias of the wanted kind in the active profile.
func (st *parseState) channel(token, directive string, want surface.Kind) (int, error) {
	if n, err := strconv.Atoi(token); err == nil {
		if n < 0 || n > surface.MaxChannel {
			return 0, fmt.Errorf("channel %d out of range 0-%d", n, surface.MaxChannel)
		}
		return n, nil
	}

	c, ok := st.selector.Resolve(token)
	if !ok {
		return 0, fmt.Errorf("invalid channel number or %s alias '%s'", directive, token)
	}
	if c.Kind != want {
		return 0, fmt.Errorf("control surface '%s' is not a %s", token, directive)
	}
	return c.Channel, nil
}
