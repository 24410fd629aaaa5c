package javascript

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"strings"

	"github.com/matzehuels/deptree/pkg/deps"
)

// PackageJSON parses package.json files. It reads "dependencies" and, when
// IncludeDev is set, "devDependencies" as well. A range listed in both uses
// the "dependencies" entry.
type PackageJSON struct {
	IncludeDev bool
}

func (p *PackageJSON) Type() string              { return "package.json" }
func (p *PackageJSON) Supports(name string) bool { return strings.EqualFold(name, "package.json") }

func (p *PackageJSON) Parse(path string) (*deps.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var pkg packageFile
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	ranges := make(map[string]string, len(pkg.Dependencies)+len(pkg.DevDependencies))
	if p.IncludeDev {
		maps.Copy(ranges, pkg.DevDependencies)
	}
	maps.Copy(ranges, pkg.Dependencies)

	return &deps.Manifest{
		Name:         pkg.Name,
		Version:      pkg.Version,
		Dependencies: ranges,
	}, nil
}

type packageFile struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}
