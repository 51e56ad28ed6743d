package davclient

import (
	"net/url"
	"path"
	"strings"
)

// CleanPath normalizes a remote path to an absolute slash separated form.
func CleanPath(p string) string {
	p = strings.ReplaceAll(strings.TrimSpace(p), "\\", "/")
	return path.Clean("/" + p)
}

// JoinPath joins remote path elements and cleans the result.
func JoinPath(elems ...string) string {
	return CleanPath(path.Join(elems...))
}

func escapePath(p string, dir bool) string {
	p = CleanPath(p)
	items := strings.Split(p, "/")
	for i, item := range items {
		items[i] = url.PathEscape(item)
	}
	rs := strings.Join(items, "/")
	if dir && !strings.HasSuffix(rs, "/") {
		rs += "/"
	}
	return rs
}

func splitDirItems(dir string) []string {
	dir = CleanPath(dir)
	items := strings.Split(dir, "/")
	rs := make([]string, 0, len(items))
	cur := ""
	for _, item := range items {
		if len(item) == 0 {
			continue
		}
		cur += "/" + item
		rs = append(rs, cur)
	}
	return rs
}
