// Package fileutil holds file permission modes shared by writers and tests.
package fileutil

import "os"

// OwnerReadWrite is used for scratch files such as test fixtures and
// manifests that only the current user needs.
const OwnerReadWrite os.FileMode = 0o600

// ReadableByAll is the mode for generated client files, which bundlers and
// editors run by other users must be able to read.
const ReadableByAll os.FileMode = 0o644

// DirReadableByAll is the mode for output directories created on demand.
const DirReadableByAll os.FileMode = 0o755
