package config

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"

	"pageforge/domain/entities"
)

// IsEnabled is a validation-free probe of the enabled flag, used by site
// discovery to skip disabled sites without running the full resolve pipeline.
// It scans the site, environment and local layers in that precedence order;
// the first layer that explicitly sets enabled to false wins. Unreadable or
// malformed layers are treated as silent on the flag.
func (r *Resolver) IsEnabled(site, environment string) entities.EnabledStatus {
	type probe struct {
		layer string
		path  string
	}
	probes := []probe{{"site", r.sitePath(site)}}
	if environment != "" {
		probes = append(probes, probe{"environment", r.envPath(site, environment)})
	}
	probes = append(probes, probe{"local", r.localPath()})

	for _, probe := range probes {
		data, err := os.ReadFile(probe.path)
		if err != nil {
			continue
		}
		result := gjson.GetBytes(data, "enabled")
		if result.Exists() && result.Type == gjson.False {
			return entities.EnabledStatus{
				Enabled: false,
				Reason:  fmt.Sprintf("disabled in %s layer (%s)", probe.layer, probe.path),
			}
		}
	}

	return entities.EnabledStatus{Enabled: true}
}
