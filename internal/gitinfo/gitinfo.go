// Package gitinfo reads branch and commit metadata of the monorepo being
// audited, for display and for tagging history rows.
package gitinfo

import (
	git "github.com/go-git/go-git/v5"
)

// Info identifies the monorepo state an audit ran against.
type Info struct {
	Branch    string
	ShortHash string
}

// Detect opens the repository containing dir and reads HEAD. A missing or
// detached repository is not an error; the audit simply runs untagged.
func Detect(dir string) (Info, bool) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return Info{}, false
	}

	head, err := repo.Head()
	if err != nil {
		return Info{}, false
	}

	info := Info{ShortHash: head.Hash().String()}
	if len(info.ShortHash) > 7 {
		info.ShortHash = info.ShortHash[:7]
	}
	if head.Name().IsBranch() {
		info.Branch = head.Name().Short()
	}
	return info, true
}
