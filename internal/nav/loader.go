package nav

import (
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docaudit/internal/errors"
	"git.home.luguber.info/inful/docaudit/internal/util/paths"
	"git.home.luguber.info/inful/docaudit/internal/util/sets"
)

// Load reads and decodes a nav configuration file. Any unreadable or
// malformed file is fatal: partial nav trees are worse than no result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NavReadFailed(path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.NavDecodeFailed(path, err)
	}
	return &cfg, nil
}

// loadInclude resolves an include target against the directory of the
// current nav file, guards against cyclic includes, and returns the decoded
// subtree, its own root directory, and the guard set for the new branch.
//
// The cycle guard is per branch: the same file may legitimately be included
// from two sibling sections, but never from within itself. Intended
// recursion semantics are unspecified upstream, so repeats fail fast
// rather than recursing forever.
func loadInclude(target, mkdocsDir string, entered sets.Set[string]) (*Config, string, sets.Set[string], error) {
	includeFile := paths.Join(mkdocsDir, target)
	if entered.Has(includeFile) {
		return nil, "", nil, errors.IncludeCycle(includeFile)
	}

	cfg, err := Load(includeFile)
	if err != nil {
		return nil, "", nil, err
	}

	branch := entered.Clone()
	branch.Add(includeFile)
	return cfg, paths.Parent(includeFile), branch, nil
}
