// Package fileutil holds file modes shared by the commands that write
// converted models.
package fileutil

import "os"

// OwnerReadWrite is the file permission mode for converted models and
// reports (owner read/write only).
const OwnerReadWrite os.FileMode = 0o600

// DirMode is the permission mode for output directories created by a batch.
const DirMode os.FileMode = 0o750
