package version

// VERSION is the disk-alert release version, overridden at build time.
var VERSION = "dev"
