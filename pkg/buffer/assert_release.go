//go:build !jwdebug

package buffer

const debugAssertions = false
