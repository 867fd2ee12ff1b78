package validation

import (
	"sort"
	"strconv"
	"strings"
)

// MessageFormatter renders a message template for a failed rule.
type MessageFormatter interface {
	Format(template, field string, params []string, named map[string]any) string
}

// DefaultFormatter substitutes :attribute, :param0..:paramN and :name
// placeholders with plain string replacement.
type DefaultFormatter struct{}

// Format implements MessageFormatter.
//
//	Format("The :attribute must be between :param0 and :param1", "age", []string{"18", "65"}, nil)
//	// "The age must be between 18 and 65"
func (DefaultFormatter) Format(template, field string, params []string, named map[string]any) string {
	msg := strings.ReplaceAll(template, ":attribute", field)

	// Highest index first: :param10 must be replaced before :param1.
	for i := len(params) - 1; i >= 0; i-- {
		msg = strings.ReplaceAll(msg, ":param"+strconv.Itoa(i), params[i])
	}

	// Longest key first, so :max_len wins over :max.
	keys := make([]string, 0, len(named))
	for k := range named {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return len(keys[i]) > len(keys[j]) })
	for _, k := range keys {
		msg = strings.ReplaceAll(msg, ":"+k, Stringify(named[k]))
	}
	return msg
}
