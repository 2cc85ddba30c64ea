package scanner

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// PackageJSON represents a package.json file
type PackageJSON struct {
	Name    string            `json:"name"`
	Scripts map[string]string `json:"scripts"`
	DevDeps map[string]string `json:"devDependencies"`
	Deps    map[string]string `json:"dependencies"`
}

// HasDependency checks if a package is listed in dependencies or devDependencies
func (p *PackageJSON) HasDependency(name string) bool {
	if _, ok := p.Deps[name]; ok {
		return true
	}
	_, ok := p.DevDeps[name]
	return ok
}

// parsePackageJSON parses the package.json file
func (s *Scanner) parsePackageJSON() (*PackageJSON, error) {
	data, err := os.ReadFile(filepath.Join(s.projectPath, "package.json"))
	if err != nil {
		return nil, err
	}

	var pkg PackageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, err
	}

	return &pkg, nil
}
