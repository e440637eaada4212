// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/template"

	"github.com/NVIDIA/nvidia-gpio-status-handler-sub000/logger"
	"github.com/NVIDIA/nvidia-gpio-status-handler-sub000/pkg/buildinfo"
	"github.com/NVIDIA/nvidia-gpio-status-handler-sub000/pkg/cli"
	"github.com/NVIDIA/nvidia-gpio-status-handler-sub000/pkg/devcatalog"
	"github.com/NVIDIA/nvidia-gpio-status-handler-sub000/pkg/devid"
)

const maxSummaryDomain = 1 << 16

type app struct {
	*logger.Logger

	opts *cli.Option
	out  io.Writer
	tmpl *template.Template
}

func newApp(opts *cli.Option, out io.Writer) *app {
	return &app{
		Logger: logger.With("component", "devidpattern"),
		opts:   opts,
		out:    out,
	}
}

func (a *app) run(ctx context.Context) error {
	if a.opts.Schema {
		bs, err := devcatalog.Schema()
		if err != nil {
			return err
		}
		_, err = a.out.Write(bs)
		return err
	}

	if a.opts.Format != "" {
		tmpl, err := newTemplate(a.opts.Format)
		if err != nil {
			return err
		}
		a.tmpl = tmpl
	}

	var errs []error

	for _, raw := range a.opts.Patterns {
		if err := a.runPattern(raw); err != nil {
			errs = append(errs, err)
		}
	}

	if a.opts.LintEvents != "" {
		errs = append(errs, a.lintEvents(a.opts.LintEvents))
	}

	if a.opts.Catalog != "" || a.opts.Lookup != "" || a.opts.Expand != "" || a.opts.Watch {
		errs = append(errs, a.runCatalog(ctx))
	}

	return errors.Join(errs...)
}

func (a *app) catalogPath() (string, error) {
	if a.opts.Catalog != "" {
		return a.opts.Catalog, nil
	}
	if buildinfo.CatalogPath != "" {
		return buildinfo.CatalogPath, nil
	}
	return "", errors.New("no device catalog given (--catalog)")
}

func (a *app) runPattern(raw string) error {
	p, err := devid.Parse(raw)
	if err != nil {
		return err
	}

	switch {
	case a.opts.Eval != "":
		ix, err := devid.ParseIndex(a.opts.Eval)
		if err != nil {
			return fmt.Errorf("--eval '%s': %w", a.opts.Eval, err)
		}
		s, err := p.Eval(ix)
		if err != nil {
			return err
		}
		a.println(s)
	case a.opts.Match != "":
		ixs := p.Match(a.opts.Match)
		if len(ixs) == 0 {
			return fmt.Errorf("pattern %q: '%s' does not match", p.Raw(), a.opts.Match)
		}
		for _, ix := range ixs {
			a.println(ix)
		}
	case a.opts.Domain, a.opts.Values:
		n := 0
		for ix, name := range p.All() {
			if a.limitReached(n) {
				break
			}
			plain := name
			if a.opts.Domain {
				plain = ix.String()
			}
			if err := a.emit(item{Pattern: p.Raw(), Index: ix, Key: ix.At(0), Name: name}, plain); err != nil {
				return err
			}
			n++
		}
	case a.opts.Members:
		for i, m := range p.Members() {
			if a.limitReached(i) {
				break
			}
			plain := keyString(m.Key) + "\t" + m.Name
			if err := a.emit(item{Pattern: p.Raw(), Key: m.Key, Name: m.Name}, plain); err != nil {
				return err
			}
		}
	default:
		size := p.DomainSize()
		injective := "?"
		if size <= a.summaryLimit() {
			injective = strconv.FormatBool(p.IsInjective())
		}
		a.printf("%s\tdim=%d brackets=%d domain=%d injective=%s\n",
			p.Raw(), p.Dim(), p.Brackets(), size, injective)
	}

	return nil
}

func (a *app) runCatalog(ctx context.Context) error {
	path, err := a.catalogPath()
	if err != nil {
		return err
	}

	if a.opts.Watch {
		w := devcatalog.NewWatcher(path, func(c *devcatalog.Catalog) {
			a.printCatalog(c)
		})
		return w.Run(ctx)
	}

	cfg, err := devcatalog.LoadGlob(path)
	if err != nil {
		return err
	}
	cat, err := devcatalog.Compile(ctx, cfg)
	if err != nil {
		return err
	}

	switch {
	case a.opts.Lookup != "":
		hits := cat.Lookup(a.opts.Lookup)
		if len(hits) == 0 {
			return fmt.Errorf("device '%s' is not in the catalog", a.opts.Lookup)
		}
		for _, h := range hits {
			a.println(h)
		}
	case a.opts.Expand != "":
		members, err := cat.Expand(a.opts.Expand)
		if err != nil {
			return err
		}
		for _, m := range members {
			a.printf("%s\t%s\n", keyString(m.Key), m.Name)
		}
	default:
		a.printCatalog(cat)
	}

	return nil
}

func (a *app) printCatalog(c *devcatalog.Catalog) {
	for _, f := range c.Families() {
		a.printf("%s\t%s\t%s\tdomain=%d\n", f.Name, f.Kind, f.Pattern.Raw(), f.Pattern.DomainSize())
	}
}

func (a *app) lintEvents(path string) error {
	bs, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	patterns, err := devcatalog.LintEvents(bs)
	if err != nil {
		return fmt.Errorf("'%s': %w", path, err)
	}
	a.Infof("'%s': %d device patterns ok", path, len(patterns))
	return nil
}

func (a *app) emit(it item, plain string) error {
	if a.tmpl == nil {
		a.println(plain)
		return nil
	}
	return writeItem(a.out, a.tmpl, it)
}

// summaryLimit is the largest domain the summary enumerates to check injectivity.
func (a *app) summaryLimit() int {
	if a.opts.Limit > 0 {
		return a.opts.Limit
	}
	return maxSummaryDomain
}

func (a *app) limitReached(n int) bool {
	return a.opts.Limit > 0 && n >= a.opts.Limit
}

func (a *app) println(v any) { _, _ = fmt.Fprintln(a.out, v) }

func (a *app) printf(format string, v ...any) { _, _ = fmt.Fprintf(a.out, format, v...) }

func keyString(k int) string {
	if k == devid.Unspecified {
		return "_"
	}
	return fmt.Sprint(k)
}
