package main

import (
	"os/user"
	"path"
	"strings"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// ReplaceTildeInDir replaces a leading "~" or "~user" in dir by the corresponding home directory.
// If the user can't be found, dir is returned unchanged.
func ReplaceTildeInDir(dir string) string {
	if len(dir) == 0 || dir[0] != '~' {
		return dir
	}
	var userName string
	if dir != "~" && !strings.HasPrefix(dir, "~/") {
		sepIdx := strings.IndexRune(dir, '/')
		if sepIdx == -1 {
			userName = dir[1:]
		} else {
			userName = dir[1:sepIdx]
		}
	}
	var usr *user.User
	var err error
	if userName == "" {
		usr, err = user.Current()
	} else {
		usr, err = user.Lookup(userName)
	}
	if err != nil {
		klog.Warningf("%v", errors.Wrapf(err, "failed to lookup home directory for user in path %q", dir))
		return dir
	}
	return path.Join(usr.HomeDir, dir[1+len(userName):])
}
