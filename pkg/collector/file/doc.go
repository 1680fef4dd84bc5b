// Package file parses the small text files the kernel and system tools
// expose, such as /proc/meminfo, /proc/loadavg and /etc/os-release.
//
// # Usage
//
// Key/value files:
//
//	p := file.NewParser(file.WithKVDelimiter(":"))
//	info, err := p.GetMap("/proc/meminfo")
//	// info["MemTotal"] == "16318480 kB"
//
// Whitespace separated fields:
//
//	fields, err := file.NewParser().GetFields("/proc/loadavg")
//	// fields == ["0.42", "0.35", "0.30", "1/234", "5678"]
//
// Quoted values:
//
//	p := file.NewParser(file.WithVTrimChars(`"'`), file.WithSkipEmptyValues(true))
//	release, err := p.GetMap("/etc/os-release")
//
// Errors are *errors.StructuredError values: ErrCodeNotFound for a missing
// file, ErrCodeUnauthorized when it cannot be opened for permission reasons,
// and ErrCodeInvalidRequest for content that is too large or not UTF-8.
package file
