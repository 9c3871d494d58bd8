// Package validator checks inbound request payloads before they reach the
// use case layer.
package validator

type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}
