//go:build !unix

package tokenstore

import (
	"context"
	"io/fs"
)

// warnInsecurePermissions is a no-op where file modes do not reflect a POSIX
// owner/group/other model.
func warnInsecurePermissions(context.Context, string, fs.FileInfo) {}
