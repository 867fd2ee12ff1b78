package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/km-arc/go-validation/framework/ruleset"
	"github.com/km-arc/go-validation/framework/validation"
)

// errValidationFailed makes check exit 1 without printing anything beyond
// the result.
var errValidationFailed = errors.New("validation failed")

type checkFlags struct {
	rules   string
	data    string
	all     bool
	skip    bool
	compact bool
}

func newCheckCmd() *cobra.Command {
	var flags checkFlags

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a data file against a rule set",
		Long: `Validate a JSON or YAML data file against a YAML rule set and print the
result as JSON. The exit code is 1 when validation fails.

Examples:
  # Stop at the first failing rule of each field
  govalidate check --rules rulesets/signup.yaml --data input.json

  # Report every failing rule, reading the data from stdin
  cat input.json | govalidate check --rules rulesets/signup.yaml --data - --all`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd.InOrStdin(), cmd.OutOrStdout(), flags)
		},
	}

	cmd.Flags().StringVarP(&flags.rules, "rules", "r", "", "rule-set file (.yaml or .yml)")
	cmd.Flags().StringVarP(&flags.data, "data", "d", "", "data file (.json, .yaml or .yml), - for JSON on stdin")
	cmd.Flags().BoolVar(&flags.all, "all", false, "report every failing rule instead of the first per field")
	cmd.Flags().BoolVar(&flags.skip, "skip-unknown", false, "ignore rules that are not registered")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "print compact JSON")
	_ = cmd.MarkFlagRequired("rules")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}

func runCheck(stdin io.Reader, stdout io.Writer, flags checkFlags) error {
	set, err := ruleset.LoadFile(flags.rules)
	if err != nil {
		return err
	}
	data, err := readData(stdin, flags.data)
	if err != nil {
		return err
	}

	registry := validation.DefaultRegistry()
	policy := validation.FailOnUnknown
	if flags.skip {
		policy = validation.SkipUnknown
	} else if err := ruleset.Check(set, registry); err != nil {
		return err
	}

	strategy := validation.NewStopOnFirstError(registry, validation.WithUnknownRulePolicy(policy))
	if flags.all {
		strategy = validation.NewValidateAll(registry, validation.WithUnknownRulePolicy(policy))
	}

	v := validation.New(registry, validation.WithStrategy(strategy), validation.WithContext(set))
	result, err := v.Validate(data, nil, nil)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	if !flags.compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(result); err != nil {
		return err
	}
	if result.Fails() {
		return errValidationFailed
	}
	return nil
}

// readData decodes a data file by extension. JSON numbers stay json.Number
// so integer and float rules see what was written.
func readData(stdin io.Reader, path string) (map[string]any, error) {
	var (
		raw []byte
		err error
	)
	if path == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read data: %w", err)
	}

	data := map[string]any{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&data); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	}
	return data, nil
}
