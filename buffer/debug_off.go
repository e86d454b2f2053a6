//go:build !inputkit_debug

package buffer

const debugAssertions = false
