// Package validation validates configuration and request structs with
// go-playground/validator struct tags. Field names in messages use the
// mapstructure (or json) tag so they match the configuration keys users set.
package validation
