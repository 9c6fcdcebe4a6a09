// Package logger builds *slog.Logger instances for the session packages and
// the services that mount them.
//
// New picks a JSON or text handler, applies the environment preset and runs
// registered ContextExtractor callbacks on every record, so request-scoped
// values such as the session state end up in the log line. NewFromConfig
// does the same from environment variables, and NewNope returns a logger
// that drops everything, the default for session.Manager.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment("development", "demo"),
//	    logger.WithContextExtractors(session.LogExtractor()),
//	)
//	log.InfoContext(ctx, "request handled", logger.Component("http"))
//
// Attribute helpers keep key names consistent:
//
//	log.Error("save failed", logger.Cookie("session"), logger.Error(err))
package logger
