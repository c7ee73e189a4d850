package nav

import (
	"git.home.luguber.info/inful/docaudit/internal/util/paths"
	"git.home.luguber.info/inful/docaudit/internal/util/sets"
)

// CollectPages returns the normalized filesystem path every leaf entry
// should occupy: prefix/docs/<path>. No filesystem access happens here;
// non-existence is exactly what the nav-missing report is about.
func CollectPages(items []Item, prefix string) (sets.Set[string], error) {
	pages := sets.New[string]()
	err := collectPages(items, paths.Normalize(prefix), pages, sets.New[string]())
	if err != nil {
		return nil, err
	}
	return pages, nil
}

func collectPages(items []Item, prefix string, pages sets.Set[string], entered sets.Set[string]) error {
	for _, it := range items {
		switch it.Kind {
		case KindPage:
			if target, ok := IncludeTarget(it.Path); ok {
				cfg, includeDir, branch, err := loadInclude(target, prefix, entered)
				if err != nil {
					return err
				}
				if err := collectPages(cfg.Nav, includeDir, pages, branch); err != nil {
					return err
				}
				continue
			}
			pages.Add(paths.Join(prefix, "docs", it.Path))
		case KindSection:
			if err := collectPages(it.Children, prefix, pages, entered); err != nil {
				return err
			}
		case KindPlainPath:
			pages.Add(paths.Join(prefix, "docs", it.Path))
		}
	}
	return nil
}

// IncludeRoots collects the directories hosting each included config's
// docs tree. These bound the on-disk walk for ghost detection: the
// monorepo root itself is never walked, which keeps subsites from
// double-counting each other's pages.
//
// Include files are not read here; only the directive targets matter.
func IncludeRoots(items []Item, prefix string) []string {
	roots := sets.New[string]()
	includeRoots(items, paths.Normalize(prefix), roots)
	return sets.Sorted(roots)
}

func includeRoots(items []Item, prefix string, roots sets.Set[string]) {
	for _, it := range items {
		switch it.Kind {
		case KindPage:
			if target, ok := IncludeTarget(it.Path); ok {
				roots.Add(paths.Parent(paths.Join(prefix, target)))
			}
		case KindSection:
			includeRoots(it.Children, prefix, roots)
		}
	}
}
