// Command sylc compiles syllable tables. It reads a text, binary or msgpack
// table and writes it as a binary (.bin) or msgpack (.mpk) table, optionally
// checking that the configured spelling rules compile against it.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bastiangx/syllabix/internal/logger"
	"github.com/bastiangx/syllabix/pkg/config"
	"github.com/bastiangx/syllabix/pkg/dictionary"
	"github.com/bastiangx/syllabix/pkg/prism"
	"github.com/charmbracelet/log"
)

func main() {
	in := flag.String("in", "", "Source syllable table (.txt, .bin or .mpk)")
	out := flag.String("out", "", "Output table, format chosen by extension (.bin or .mpk)")
	configFile := flag.String("config", "", "Config whose [[dict.rules]] are checked against the table")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	flag.Parse()

	logger.Setup(*debugMode)

	if *in == "" || *out == "" {
		fmt.Fprintln(os.Stderr, "usage: sylc -in table.txt -out table.bin [-config config.toml]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	table, err := dictionary.Load(*in)
	if err != nil {
		log.Fatalf("Failed to load %s: %v", *in, err)
	}
	log.Debugf("Read %d syllables from %s", table.Len(), *in)

	if *configFile != "" {
		cfg, err := config.LoadConfig(*configFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		p, err := prism.New(table, cfg.Dict.Rules, cfg.Syllabifier.Delimiters)
		if err != nil {
			log.Fatalf("Spelling rules do not compile: %v", err)
		}
		stats := p.Stats()
		log.Info("Rules OK", "syllables", stats["syllables"], "keys", stats["keys"], "spellings", stats["spellings"])
	}

	if err := write(table, *out); err != nil {
		log.Fatalf("Failed to write %s: %v", *out, err)
	}
	log.Infof("Wrote %d syllables to %s", table.Len(), *out)
}

func write(table *dictionary.Table, path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range []dictionary.FileFormat{dictionary.FormatBinary, dictionary.FormatMsgpack} {
		info, _ := dictionary.GetFormatInfo(format)
		for _, e := range info.Extensions {
			if e != ext {
				continue
			}
			if format == dictionary.FormatBinary {
				return dictionary.Compile(table, path)
			}
			return dictionary.SaveMsgpack(table, path)
		}
	}
	return fmt.Errorf("%w: cannot write %q tables", dictionary.ErrUnknownFormat, ext)
}
