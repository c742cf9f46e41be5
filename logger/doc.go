// Package logger is the public API of termlog. Most users only need to
// import this package.
//
// A Logger filters entries by level, keeps a bounded FIFO history, notifies
// plugins and renders each accepted entry to the terminal:
//
//	[12:00:00] ✅ [api] server started
//	  {
//	    "port": 8080
//	  }
//
// Configuration is an immutable Config value. Build one with the fluent
// Builder, which applies its settings onto DefaultConfig and validates the
// result:
//
//	log, err := logger.NewBuilder().
//	    WithLevel(logger.WarningLevel).
//	    WithTheme(theme.Ocean).
//	    WithPlugin(myPlugin).
//	    Build()
//
// Child loggers get a colon-joined namespace, a copy of the configuration
// with optional overrides, and their own history. They share the parent's
// plugin instances and output lock:
//
//	dbLog := log.Child("db")            // messages prefixed "[db] "
//	txLog := dbLog.Child("tx")          // namespace "db:tx"
//
// Plugins implement Plugin plus any of Initializer, Observer and
// Shutdowner. Hook failures and panics never escape a log call; they are
// passed to Config.ErrorHandler or rendered as "[termlog]" error lines.
// Shutdown runs all shutdown hooks concurrently, waits for them (or the
// context) and returns the combined failures.
//
// The package-level functions Info, Error, Debugf, etc. delegate to a
// lazily built default Logger that the application may replace with
// SetDefault.
package logger
