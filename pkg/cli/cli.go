// SPDX-License-Identifier: GPL-3.0-or-later

package cli

import (
	"errors"
	"path/filepath"

	"github.com/jessevdk/go-flags"
)

// Option defines command line options.
type Option struct {
	Domain     bool   `long:"domain" description:"print the domain indexes"`
	Values     bool   `long:"values" description:"print the device names of the domain"`
	Members    bool   `long:"members" description:"print the device names keyed by their axis 0 value"`
	Limit      int    `long:"limit" description:"maximum number of enumerated items per pattern, 0 means no limit" default:"0"`
	Eval       string `long:"eval" description:"evaluate an index, '_' leaves an axis unspecified" value-name:"1,2,_"`
	Format     string `long:"format" description:"Go template for enumerated items, fields: .Pattern .Index .Key .Name" value-name:"TEMPLATE"`
	Match      string `long:"match" description:"print the indexes producing a device name" value-name:"NAME"`
	Catalog    string `short:"c" long:"catalog" description:"device catalog file or glob" value-name:"FILE"`
	Lookup     string `long:"lookup" description:"resolve a device name against the catalog" value-name:"NAME"`
	Expand     string `long:"expand" description:"print the members of a catalog family" value-name:"FAMILY"`
	Watch      bool   `short:"w" long:"watch" description:"watch the catalog file and report every change"`
	LintEvents string `long:"lint-events" description:"check the device patterns of an event catalog" value-name:"FILE"`
	Schema     bool   `long:"schema" description:"print the catalog JSON schema and exit"`
	Debug      bool   `short:"d" long:"debug" description:"debug mode"`
	Version    bool   `short:"v" long:"version" description:"display the version and exit"`

	Patterns []string
}

// Parse returns parsed command-line flags in Option struct.
// args[0] is the program name.
func Parse(args []string) (*Option, error) {
	opt := &Option{}
	parser := flags.NewParser(opt, flags.Default)
	if len(args) > 0 {
		parser.Name = filepath.Base(args[0])
		args = args[1:]
	}
	parser.Usage = "[OPTIONS] [PATTERN...]"

	rest, err := parser.ParseArgs(args)
	if err != nil {
		return nil, err
	}
	opt.Patterns = rest

	if err := opt.validate(); err != nil {
		return nil, err
	}

	return opt, nil
}

func (o *Option) validate() error {
	switch {
	case o.Limit < 0:
		return errors.New("--limit must not be negative")
	case o.Watch && (o.Lookup != "" || o.Expand != ""):
		return errors.New("--watch can not be combined with --lookup or --expand")
	}
	return nil
}

func IsHelp(err error) bool {
	return flags.WroteHelp(err)
}
