//go:build unix

package tokenstore

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
)

// insecureBits are the group and other permission bits. Any of them set on the
// fallback file means someone besides the owner may read it.
const insecureBits fs.FileMode = 0o077

// warnInsecurePermissions logs a warning if the file is accessible beyond its owner.
// Advisory only: the read proceeds regardless.
func warnInsecurePermissions(ctx context.Context, path string, info fs.FileInfo) {
	perm := info.Mode().Perm()
	if perm&insecureBits == 0 {
		return
	}

	slog.WarnContext(ctx, "token file permissions too open",
		"path", path,
		"mode", fmt.Sprintf("%04o", perm),
		"expected", "0600",
	)
}
