package utils

// LoggerInitializationFailedMessageFormat reports a failure to build the application logger.
const LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"

// ApplicationExecutionFailedMessage prefixes the fatal message logged when the command fails.
const ApplicationExecutionFailedMessage = "dirtree failed"

// MalformedPatternWarningMessage is logged once for every ignore pattern that can never match.
const MalformedPatternWarningMessage = "ignore pattern is malformed and will never match"
