package version

// Version is the current release of the audit tool
const Version = "0.1.0"
