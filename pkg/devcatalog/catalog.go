// SPDX-License-Identifier: GPL-3.0-or-later

package devcatalog

import (
	"context"
	"fmt"
	"runtime"
	"slices"

	"github.com/gohugoio/hashstructure"
	"github.com/sourcegraph/conc/pool"

	"github.com/NVIDIA/nvidia-gpio-status-handler-sub000/logger"
	"github.com/NVIDIA/nvidia-gpio-status-handler-sub000/pkg/devid"
)

// Family is a named device family with its compiled pattern.
type Family struct {
	Name        string
	Kind        string
	Description string
	Pattern     *devid.Pattern
}

// Hit is one family member a concrete device name resolves to.
type Hit struct {
	Family string
	Index  devid.Index
}

func (h Hit) String() string { return fmt.Sprintf("%s%s", h.Family, h.Index) }

// Catalog is a compiled set of device families.
// It is immutable apart from its lookup cache and safe for concurrent use.
type Catalog struct {
	*logger.Logger

	families []*Family
	byName   map[string]*Family
	hash     uint64
	cache    *lookupCache
}

// Compile compiles every family pattern of cfg concurrently.
// All pattern errors are reported, joined, not only the first one.
func Compile(ctx context.Context, cfg *Config) (*Catalog, error) {
	hash, err := hashstructure.Hash(cfg, nil)
	if err != nil {
		return nil, fmt.Errorf("fingerprinting catalog: %w", err)
	}

	families := make([]*Family, len(cfg.Families))

	p := pool.New().WithContext(ctx).WithMaxGoroutines(runtime.GOMAXPROCS(0))
	for i, fc := range cfg.Families {
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			pat, err := devid.Parse(fc.Pattern)
			if err != nil {
				return fmt.Errorf("family '%s': %w", fc.Name, err)
			}
			families[i] = &Family{
				Name:        fc.Name,
				Kind:        fc.Kind,
				Description: fc.Description,
				Pattern:     pat,
			}
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	c := &Catalog{
		Logger:   logger.With("component", "devcatalog"),
		families: families,
		byName:   make(map[string]*Family, len(families)),
		hash:     hash,
		cache:    newLookupCache(),
	}
	for _, f := range families {
		c.byName[f.Name] = f
	}

	return c, nil
}

// Hash returns the fingerprint of the configuration the catalog was compiled from.
func (c *Catalog) Hash() uint64 { return c.hash }

// Families returns the families in configuration order.
func (c *Catalog) Families() []*Family { return slices.Clone(c.families) }

// Family returns the family with the given name.
func (c *Catalog) Family(name string) (*Family, bool) {
	f, ok := c.byName[name]
	return f, ok
}

// Expand returns the members of the named family.
func (c *Catalog) Expand(name string) ([]devid.Member, error) {
	f, ok := c.Family(name)
	if !ok {
		return nil, fmt.Errorf("unknown device family '%s'", name)
	}
	return f.Pattern.Members(), nil
}

// Lookup returns every family member producing the concrete device name,
// families in configuration order, indexes in domain order.
func (c *Catalog) Lookup(device string) []Hit {
	if hits, ok := c.cache.fetch(device); ok {
		return slices.Clone(hits)
	}

	var hits []Hit
	for _, f := range c.families {
		for _, ix := range f.Pattern.Match(device) {
			hits = append(hits, Hit{Family: f.Name, Index: ix})
		}
	}
	if len(hits) > 1 {
		c.Debugf("device '%s' resolves to %d family members", device, len(hits))
	}

	c.cache.put(device, hits)
	return slices.Clone(hits)
}
