// Package logger provides a context-aware wrapper around Go's slog package
// adding functional options for configuration, helper attribute constructors,
// and transparent injection of values stored in context.Context.
//
// The package exposes a single factory, New, that creates a *slog.Logger
// configured by a set of Option functions. These options allow you to:
//
//   - Select an output format (text or json)
//   - Set the minimum log level
//   - Supply default slog.Attr values applied to every record
//   - Register ContextExtractor callbacks that inject attributes pulled from
//     a context value every time Handle is invoked.
//
// # Usage
//
//	import "github.com/dmitrymomot/mediadigest/pkg/logger"
//
//	func main() {
//	    log := logger.New(
//	        logger.WithDevelopment("mediadigest"),
//	        logger.WithContextValue("command", ctxKeyCommand),
//	    )
//	    logger.SetAsDefault(log)
//
//	    log.InfoContext(ctx, "digest sent",
//	        logger.Provider("mailjet-campaign"),
//	        logger.Error(err),
//	    )
//	}
//
// Helper constructors such as Group, Error and Provider return commonly-used
// slog.Attr instances to keep attribute naming consistent across the
// codebase. Error and Errors produce attributes only when the supplied error
// is non-nil, so they can be passed unconditionally.
package logger
