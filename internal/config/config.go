package config

import (
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

type Application struct {
	Listen   string   `koanf:"listen"`
	Frontend Frontend `koanf:"frontend"`
	Calendar Calendar `koanf:"calendar"`
	Refresh  Refresh  `koanf:"refresh"`
	Sources  []Source `koanf:"sources"`
	Tags     []string `koanf:"tags"`
}

type Frontend struct {
	Enabled bool `koanf:"enabled"`
}

// Calendar holds display-time settings. Timezone is the IANA zone used to
// interpret floating ICS times and to compute day boundaries for filtering.
type Calendar struct {
	Timezone string `koanf:"timezone"`
}

// Refresh configures the periodic reload of configured feeds.
// Cron is a standard 5-field cron expression; empty disables the schedule.
type Refresh struct {
	Cron string `koanf:"cron"`
}

// Source is a statically configured calendar feed.
type Source struct {
	Name            string `koanf:"name"`
	FeedURL         string `koanf:"feedUrl"`
	HomeURL         string `koanf:"homeUrl"`
	SubscriptionURL string `koanf:"subscriptionUrl"`
	Color           string `koanf:"color"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Listen: ":8181",
		Frontend: Frontend{
			Enabled: true,
		},
		Calendar: Calendar{
			Timezone: "Local",
		},
		Refresh: Refresh{
			Cron: "0 */6 * * *",
		},
	}, "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "ECONCAL_",
		TransformFunc: func(k, v string) (string, any) {
			// Transform the key.
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "ECONCAL_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}

// Location resolves the configured timezone. "Local" or an empty value maps
// to the host timezone; an invalid zone falls back to it with a warning.
func (c Calendar) Location() *time.Location {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Warnf("unknown timezone %q, falling back to local time", c.Timezone)
		return time.Local
	}
	return loc
}
