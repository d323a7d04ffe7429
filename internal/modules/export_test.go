package modules

// FormatUptime is formatUptime, exported for tests.
var FormatUptime = formatUptime
