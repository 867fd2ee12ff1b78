// Command govalidate validates data against Laravel-style rules.
//
// Usage:
//
//	# Serve the HTTP API (POST /validate, POST /validate/{ruleset}, ...)
//	govalidate serve --env .env
//
//	# Validate a data file against a rule-set file
//	govalidate check --rules rulesets/signup.yaml --data input.json --all
//
//	# List the built-in rules
//	govalidate rules
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errValidationFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
