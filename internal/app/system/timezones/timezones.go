// Package timezones holds the curated list of IANA zones a batch may be
// scheduled in.
package timezones

import (
	"embed"
	"encoding/json"
	"sort"
	"sync"
)

//go:embed timezonedata/timezones.json
var FS embed.FS

// Default is used when a batch is created without a timezone.
const Default = "UTC"

type Zone struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Region string `json:"region,omitempty"`
}

type ZoneGroup struct {
	Region string `json:"region"`
	Zones  []Zone `json:"zones"`
}

// catalog is loaded once from the embedded file and read-only afterwards.
type catalog struct {
	zones  []Zone
	byID   map[string]Zone
	groups []ZoneGroup
}

var (
	loadOnce sync.Once
	cat      *catalog
	loadErr  error
)

func load() (*catalog, error) {
	loadOnce.Do(func() {
		data, err := FS.ReadFile("timezonedata/timezones.json")
		if err != nil {
			loadErr = err
			return
		}
		var list []Zone
		if err := json.Unmarshal(data, &list); err != nil {
			loadErr = err
			return
		}
		cat = build(list)
	})
	return cat, loadErr
}

func build(list []Zone) *catalog {
	c := &catalog{zones: list, byID: make(map[string]Zone, len(list))}

	byRegion := make(map[string][]Zone)
	for _, z := range list {
		c.byID[z.ID] = z
		region := z.Region
		if region == "" {
			region = "Other"
		}
		byRegion[region] = append(byRegion[region], z)
	}
	for region, zs := range byRegion {
		sort.SliceStable(zs, func(i, j int) bool { return zs[i].Label < zs[j].Label })
		c.groups = append(c.groups, ZoneGroup{Region: region, Zones: zs})
	}
	sort.Slice(c.groups, func(i, j int) bool { return c.groups[i].Region < c.groups[j].Region })
	return c
}

// Load lets startup fail fast on a broken embedded file.
func Load() error {
	_, err := load()
	return err
}

// All returns the curated zones in file order.
func All() ([]Zone, error) {
	c, err := load()
	if err != nil {
		return nil, err
	}
	return c.zones, nil
}

// Label returns the display label for id, or id itself when unknown.
func Label(id string) string {
	c, err := load()
	if err != nil {
		return id
	}
	if z, ok := c.byID[id]; ok && z.Label != "" {
		return z.Label
	}
	return id
}

// Valid reports whether id is in the curated list.
func Valid(id string) bool {
	c, err := load()
	if err != nil {
		return false
	}
	_, ok := c.byID[id]
	return ok
}

// Groups returns the zones grouped by region, regions and labels sorted.
func Groups() ([]ZoneGroup, error) {
	c, err := load()
	if err != nil {
		return nil, err
	}
	return c.groups, nil
}
