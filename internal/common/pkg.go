package common

// UnknownStr is the String() form of enum values outside their declared range.
const UnknownStr = "unknown"
