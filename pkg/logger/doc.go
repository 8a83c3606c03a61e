// Package logger builds the *slog.Logger used across formkit.
//
// New returns a logger configured by Option functions: output format (text or
// json), minimum level, static attributes and ContextExtractor callbacks that
// pull request-scoped values (a request id, the form name) out of a
// context.Context on every record.
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "formkit-server"),
//	    logger.WithContextValue("request_id", requestIDKey{}),
//	)
//	log.InfoContext(ctx, "form validated",
//	    logger.Form("signup"),
//	    logger.Field("email"),
//	)
//
// The attribute helpers in attr.go keep key names consistent. Error and Errors
// return an empty Attr for nil errors so they can be passed unconditionally.
package logger
