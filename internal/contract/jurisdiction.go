package contract

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/bnema/tenderlogic-cli/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed jurisdictions.yaml
var jurisdictionsYAML []byte

type JurisdictionProfile struct {
	Code    domain.Jurisdiction `yaml:"code"`
	Name    string              `yaml:"name"`
	Law     string              `yaml:"law"`
	Framing string              `yaml:"framing"`
}

type catalogFile struct {
	Jurisdictions []JurisdictionProfile `yaml:"jurisdictions"`
}

type Catalog struct {
	profiles []JurisdictionProfile
	byCode   map[domain.Jurisdiction]JurisdictionProfile
}

func ParseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode jurisdiction catalog: %w", err)
	}

	catalog := &Catalog{byCode: make(map[domain.Jurisdiction]JurisdictionProfile, len(file.Jurisdictions))}
	for _, profile := range file.Jurisdictions {
		code, err := domain.ParseJurisdiction(string(profile.Code))
		if err != nil {
			return nil, fmt.Errorf("jurisdiction catalog: %w", err)
		}
		if strings.TrimSpace(profile.Framing) == "" {
			return nil, fmt.Errorf("jurisdiction catalog: %s has no framing", code)
		}
		if _, dup := catalog.byCode[code]; dup {
			return nil, fmt.Errorf("jurisdiction catalog: duplicate %s", code)
		}
		profile.Code = code
		catalog.byCode[code] = profile
		catalog.profiles = append(catalog.profiles, profile)
	}

	return catalog, nil
}

var defaultCatalog = sync.OnceValues(func() (*Catalog, error) {
	return ParseCatalog(jurisdictionsYAML)
})

// DefaultCatalog returns the embedded catalog.
func DefaultCatalog() (*Catalog, error) {
	return defaultCatalog()
}

func (c *Catalog) Lookup(code domain.Jurisdiction) (JurisdictionProfile, error) {
	profile, ok := c.byCode[code]
	if !ok {
		return JurisdictionProfile{}, fmt.Errorf("%w %q", domain.ErrUnknownJurisdiction, code)
	}
	return profile, nil
}

func (c *Catalog) All() []JurisdictionProfile {
	return append([]JurisdictionProfile(nil), c.profiles...)
}
