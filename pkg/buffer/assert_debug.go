//go:build jwdebug

package buffer

const debugAssertions = true
