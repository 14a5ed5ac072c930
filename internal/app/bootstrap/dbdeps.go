// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/smartfarm/internal/app/store/document"
)

// DBDeps holds database and backend dependencies for this WAFFLE app.
//
// This struct is created in ConnectDB and passed to subsequent lifecycle
// hooks: EnsureSchema, Startup, BuildHandler, and Shutdown. It serves as
// the central place to store all backend handles that your application
// needs.
//
// Design guidelines:
//   - Add a field for each database or backend service you connect to
//   - Use pointer types for clients that may be nil (optional backends)
//   - Group related dependencies together with comments
//
// The Shutdown hook is responsible for closing these connections gracefully
// when the application terminates.
type DBDeps struct {
	// Docs is the flat-file document store backing all application data.
	Docs *document.Store
}
