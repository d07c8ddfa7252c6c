// Package util provides small generic helpers shared across restkit.
package util
