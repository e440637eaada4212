// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/nvidia-gpio-status-handler-sub000/pkg/cli"
	"github.com/NVIDIA/nvidia-gpio-status-handler-sub000/pkg/devid"
)

func TestApp_Run(t *testing.T) {
	tests := map[string]struct {
		opts    cli.Option
		want    string
		wantErr error
	}{
		"summary": {
			opts: cli.Option{Patterns: []string{"GPU_SXM_[1-8]", "PSU_[0-3:7]"}},
			want: "GPU_SXM_[1-8]\tdim=1 brackets=1 domain=8 injective=true\n" +
				"PSU_[0-3:7]\tdim=1 brackets=1 domain=4 injective=false\n",
		},
		"summary skips injectivity of large domains": {
			opts: cli.Option{Patterns: []string{"X_[0-1048575]_[0-1048575]"}},
			want: "X_[0-1048575]_[0-1048575]\tdim=2 brackets=2 domain=1099511627776 injective=?\n",
		},
		"summary injectivity bounded by limit": {
			opts: cli.Option{Limit: 4, Patterns: []string{"GPU_SXM_[1-8]", "PSU_[0-3:7]"}},
			want: "GPU_SXM_[1-8]\tdim=1 brackets=1 domain=8 injective=?\n" +
				"PSU_[0-3:7]\tdim=1 brackets=1 domain=4 injective=false\n",
		},
		"values with limit": {
			opts: cli.Option{Values: true, Limit: 3, Patterns: []string{"GPU_SXM_[1-8]"}},
			want: "GPU_SXM_1\nGPU_SXM_2\nGPU_SXM_3\n",
		},
		"domain": {
			opts: cli.Option{Domain: true, Patterns: []string{"GPU_[0|0-1]/Link_[1|0-1]"}},
			want: "(0, 0)\n(0, 1)\n(1, 0)\n(1, 1)\n",
		},
		"members": {
			opts: cli.Option{Members: true, Patterns: []string{"NVSwitch_[0-1]", "Critical"}},
			want: "0\tNVSwitch_0\n1\tNVSwitch_1\n_\tCritical\n",
		},
		"values with template": {
			opts: cli.Option{Values: true, Format: "{{ .Name | lower }} {{ .Key }}", Patterns: []string{"GPU_SXM_[1-2]"}},
			want: "gpu_sxm_1 1\ngpu_sxm_2 2\n",
		},
		"members with template": {
			opts: cli.Option{Members: true, Format: `{{ key .Key }}={{ .Name | replace "_" "-" }}`, Patterns: []string{"PSU_[0-1]", "Critical"}},
			want: "0=PSU-0\n1=PSU-1\n_=Critical\n",
		},
		"eval": {
			opts: cli.Option{Eval: "2,5", Patterns: []string{"GPU_SXM_[0|1-8]/NVLink_[1|0-17]"}},
			want: "GPU_SXM_2/NVLink_5\n",
		},
		"eval out of domain": {
			opts:    cli.Option{Eval: "9", Patterns: []string{"GPU_SXM_[1-8]"}},
			wantErr: &devid.DomainError{},
		},
		"match": {
			opts: cli.Option{Match: "111", Patterns: []string{"[1-11][1-11]"}},
			want: "(1, 11)\n(11, 1)\n",
		},
		"bad pattern": {
			opts:    cli.Option{Patterns: []string{"GPU_[1-8"}},
			wantErr: devid.ErrUnbalancedBrackets,
		},
		"catalog listing": {
			opts: cli.Option{Catalog: "testdata/catalog.yaml"},
			want: "gpu\tGPU\tGPU_SXM_[1-8]\tdomain=8\nnvswitch\tNVSwitch\tNVSwitch_[0-3]\tdomain=4\n",
		},
		"catalog lookup": {
			opts: cli.Option{Catalog: "testdata/catalog.yaml", Lookup: "NVSwitch_2"},
			want: "nvswitch(2)\n",
		},
		"catalog glob": {
			opts: cli.Option{Catalog: "testdata/*.yaml", Lookup: "GPU_SXM_8"},
			want: "gpu(8)\n",
		},
		"catalog expand": {
			opts: cli.Option{Catalog: "testdata/catalog.yaml", Expand: "gpu"},
			want: "1\tGPU_SXM_1\n2\tGPU_SXM_2\n3\tGPU_SXM_3\n4\tGPU_SXM_4\n" +
				"5\tGPU_SXM_5\n6\tGPU_SXM_6\n7\tGPU_SXM_7\n8\tGPU_SXM_8\n",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			err := newApp(&test.opts, &buf).run(context.Background())

			switch want := test.wantErr.(type) {
			case nil:
				require.NoError(t, err)
				assert.Equal(t, test.want, buf.String())
			case *devid.DomainError:
				assert.ErrorAs(t, err, &want)
			default:
				assert.ErrorIs(t, err, want)
			}
		})
	}
}

func TestApp_RunErrors(t *testing.T) {
	tests := map[string]struct {
		opts    cli.Option
		wantErr string
	}{
		"bad template": {
			opts:    cli.Option{Values: true, Format: "{{ .Name", Patterns: []string{"GPU_SXM_[1-2]"}},
			wantErr: "--format",
		},
		"no match": {
			opts:    cli.Option{Match: "GPU_SXM_9", Patterns: []string{"GPU_SXM_[1-8]"}},
			wantErr: "does not match",
		},
		"unknown device": {
			opts:    cli.Option{Catalog: "testdata/catalog.yaml", Lookup: "Fan_0"},
			wantErr: "device 'Fan_0' is not in the catalog",
		},
		"unknown family": {
			opts:    cli.Option{Catalog: "testdata/catalog.yaml", Expand: "fan"},
			wantErr: "unknown device family 'fan'",
		},
		"lookup without catalog": {
			opts:    cli.Option{Lookup: "GPU_SXM_1"},
			wantErr: "no device catalog given",
		},
		"broken event pattern": {
			opts:    cli.Option{LintEvents: "testdata/events.json"},
			wantErr: "Broken.0.device_type",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			err := newApp(&test.opts, &buf).run(context.Background())

			require.Error(t, err)
			assert.Contains(t, err.Error(), test.wantErr)
		})
	}
}

func TestApp_RunSchema(t *testing.T) {
	var buf bytes.Buffer
	err := newApp(&cli.Option{Schema: true, Patterns: []string{"ignored_[1-"}}, &buf).run(context.Background())

	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"families"`)
}
