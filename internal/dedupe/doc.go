// ABOUTME: Package dedupe guards form submissions against duplicates
// ABOUTME: Each rendered form carries a token that may be used once

// Package dedupe provides a TTL and size bounded guard so that a form
// token submitted twice (a double-click, a browser retry) is acted on once.
package dedupe
