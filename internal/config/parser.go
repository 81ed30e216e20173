package config

import (
	"fmt"
	"sort"
	"strings"
)

// ParseDisplayAliases parses the alternative-display table.
// Format: "source=target;source=target". Whitespace around names is
// trimmed and empty segments are skipped, so a trailing ";" is fine.
//
//	"DELL U2720=Built-in Retina Display; LG HDR=DELL U2720"
//
// maps DELL U2720 -> Built-in Retina Display and LG HDR -> DELL U2720.
func ParseDisplayAliases(s string) (map[string]string, error) {
	aliases := make(map[string]string)

	for _, pair := range strings.Split(s, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid display alias %q: expected 'source=target'", pair)
		}

		source := strings.TrimSpace(parts[0])
		target := strings.TrimSpace(parts[1])
		if source == "" || target == "" {
			return nil, fmt.Errorf("invalid display alias %q: empty display name", pair)
		}
		if strings.Contains(target, "=") {
			return nil, fmt.Errorf("invalid display alias %q: too many '='", pair)
		}
		if _, dup := aliases[source]; dup {
			return nil, fmt.Errorf("duplicate display alias for %q", source)
		}

		aliases[source] = target
	}

	return aliases, nil
}

// FormatDisplayAliases converts an alias table back to its string form,
// sorted by source name.
func FormatDisplayAliases(aliases map[string]string) string {
	sources := make([]string, 0, len(aliases))
	for source := range aliases {
		sources = append(sources, source)
	}
	sort.Strings(sources)

	pairs := make([]string, 0, len(sources))
	for _, source := range sources {
		pairs = append(pairs, source+"="+aliases[source])
	}
	return strings.Join(pairs, ";")
}
