// Package all wires every built-in storage backend into the storage factory.
//
// It exists purely for side effects: importing it (typically as a blank
// import from the CLI wiring layer) runs each backend's init function, which
// registers its factory and DDL bootstrapper with the storage package. The
// rest of the application depends only on the storage abstraction.
//
// Backends made available by importing this package:
//
//   - "sqlite"   (vgsales/internal/storage/sqlite)
//   - "postgres" (vgsales/internal/storage/postgres)
//   - "mysql"    (vgsales/internal/storage/mysql)
//
// A binary that needs only a subset can blank-import the individual backend
// packages instead.
package all

import (
	_ "vgsales/internal/storage/mysql"
	_ "vgsales/internal/storage/postgres"
	_ "vgsales/internal/storage/sqlite"
)
