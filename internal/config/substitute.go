package config

import "strings"

// Substitute replaces every ___KEY___ placeholder with the option value.
// Unknown placeholders are left as-is.
func (c *Config) Substitute(content string) string {
	if !strings.Contains(content, "___") {
		return content
	}
	pairs := make([]string, 0, 2*len(c.Options))
	for _, key := range Keys() {
		pairs = append(pairs, "___"+key+"___", c.Options[key])
	}
	return strings.NewReplacer(pairs...).Replace(content)
}
