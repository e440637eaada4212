// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"fmt"
	"io"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/NVIDIA/nvidia-gpio-status-handler-sub000/pkg/devid"
)

// item is the data an output template is executed with.
type item struct {
	Pattern string
	Index   devid.Index
	Key     int
	Name    string
}

func newTemplate(text string) (*template.Template, error) {
	fm := sprig.TxtFuncMap()
	fm["key"] = keyString

	tmpl, err := template.New("format").Funcs(fm).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("--format: %w", err)
	}
	return tmpl, nil
}

func writeItem(w io.Writer, tmpl *template.Template, it item) error {
	if err := tmpl.Execute(w, it); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
