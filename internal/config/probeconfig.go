package config

import (
	"os"
	"strings"

	"github.com/hashicorp/hcl"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// GenerateFromPath reads endpoint definitions from a single HCL file or from
// all HCL files in a directory. Endpoints are appended in file order.
func (p *Probe) GenerateFromPath(path string) error {
	path = strings.TrimRight(path, "/")

	matches, err := findFilesInPath(path)
	if err != nil {
		return errors.Wrapf(err, "failed to look up endpoint files in %q", path)
	}

	for _, m := range matches {
		log.Infof("found endpoint file: %s", m)

		contents, err := os.ReadFile(m)
		if err != nil {
			return errors.Wrapf(err, "failed to read endpoint file %s", m)
		}

		var fileCfg Probe
		if err := hcl.Unmarshal(contents, &fileCfg); err != nil {
			return errors.Wrapf(err, "could not parse endpoint file %s", m)
		}

		p.Endpoints = append(p.Endpoints, fileCfg.Endpoints...)
	}

	return p.Validate()
}

func (p *Probe) Validate() error {
	if len(p.Endpoints) == 0 {
		return errors.New("no endpoints configured")
	}

	for i := range p.Endpoints {
		if p.Endpoints[i].Path == "" {
			return errors.Errorf("endpoint #%d has an empty path", i+1)
		}
	}

	return nil
}
