// Dry-run reads a korgi configuration and prints the RCON datagram each
// typed control movement would send, without a MIDI device or a server.
//
//	go run ./example [-profiles dir] korgi.conf
//
// Each input line is "control value", where control is a channel number or
// an alias of the active profile.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/leandrodaf/korgi/internal/directive"
	"github.com/leandrodaf/korgi/internal/logger"
	"github.com/leandrodaf/korgi/internal/mapping"
	"github.com/leandrodaf/korgi/internal/rcon"
	"github.com/leandrodaf/korgi/internal/surface"
	"github.com/leandrodaf/korgi/sdk/contracts"
)

func main() {
	profiles := flag.String("profiles", "", "directory of extra control surface profiles")
	flag.Parse()

	log := logger.NewConsoleLogger()
	log.SetLevel(contracts.WarnLevel)

	path := "korgi.conf"
	if flag.NArg() > 0 {
		path = flag.Arg(0)
	}

	catalog := surface.Builtin()
	if *profiles != "" {
		loader, err := surface.NewLoader([]string{*profiles})
		if err != nil {
			log.Fatal("Failed to create profile loader", log.Field().Error("error", err))
		}
		extra, err := loader.LoadAll()
		if err != nil {
			log.Warn("Some profiles were skipped", log.Field().Error("error", err))
		}
		if catalog, err = catalog.With(extra...); err != nil {
			log.Fatal("Failed to add profiles", log.Field().Error("error", err))
		}
	}

	cfg, err := directive.NewParser(catalog, log).ParseFile(path, nil)
	if err != nil {
		for _, e := range directive.Errors(err) {
			fmt.Fprintln(os.Stderr, e)
		}
		os.Exit(1)
	}
	selector := surface.NewSelector(catalog, cfg.Profile)

	fmt.Printf("sending to %s:%d, type \"control value\"\n", cfg.Address, cfg.Port)
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) != 2 {
			continue
		}

		control, err := strconv.Atoi(fields[0])
		if err != nil {
			c, ok := selector.Resolve(fields[0])
			if !ok {
				fmt.Printf("unknown control %q\n", fields[0])
				continue
			}
			control = c.Channel
		}
		value, err := strconv.Atoi(fields[1])
		if err != nil || value < 0 || value > mapping.MaxValue {
			fmt.Printf("bad value %q\n", fields[1])
			continue
		}

		command, ok := mapping.Resolve(cfg, control, value)
		if !ok {
			fmt.Println("(nothing sent)")
			continue
		}
		fmt.Printf("%q\n", rcon.Frame(cfg.Password, command))
	}
}
