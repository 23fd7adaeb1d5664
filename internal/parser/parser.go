package parser

import (
	"regexp"
	"sort"
	"strings"
)

/**
 * Tolerant parsers for RouterOS command output. None of these fail: a
 * missing marker simply yields an empty value.
 */

const (
	identityMarker  = "name:"
	ssidMarker      = "ssid="
	radioNameMarker = "radio-name="
	// SetSeparator joins multi-valued fields
	SetSeparator = ";"
)

var (
	// export style identity: /system identity set name=MyRouter
	identitySetPattern = regexp.MustCompile(`set\s+name=(?:"([^"]*)"|(\S+))`)
	// markers must start a token so hide-ssid= is not mistaken for ssid=,
	// wifiwave2 prefixes keys with "configuration."
	ssidPattern      = regexp.MustCompile(`(?:^|[\s.])ssid=(?:"([^"]*)"|([^"\s]+))`)
	radioNamePattern = regexp.MustCompile(`(?:^|[\s.])radio-name=(?:"([^"]*)"|([^"\s]+))`)
)

// RouterOS answers unknown or malformed commands with one of these
var commandErrorPrefixes = []string{
	"bad command name",
	"syntax error",
	"expected end of command",
	"no such command",
}

// ParseIdentity returns the device identity from "/system identity print"
// output, falling back to the export "set name=" form
func ParseIdentity(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if idx := strings.Index(line, identityMarker); idx != -1 {
			return strings.TrimSpace(line[idx+len(identityMarker):])
		}
	}

	if m := identitySetPattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(firstNonEmpty(m[1], m[2]))
	}

	return ""
}

// ParseWireless returns the sorted, deduplicated and joined ssid and
// radio-name values found in text
func ParseWireless(text string) (string, string) {
	ssids, radios := ParseWirelessSets(text)
	return strings.Join(ssids, SetSeparator), strings.Join(radios, SetSeparator)
}

// ParseWirelessSets returns the sorted, deduplicated ssid and radio-name
// values found in text. Values may themselves contain SetSeparator.
func ParseWirelessSets(text string) ([]string, []string) {
	ssids := map[string]struct{}{}
	radios := map[string]struct{}{}

	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, ssidMarker) {
			collect(ssidPattern, line, ssids)
		}

		if strings.Contains(line, radioNameMarker) {
			collect(radioNamePattern, line, radios)
		}
	}

	return sorted(ssids), sorted(radios)
}

// FilterExport keeps only the lines of a full configuration export that
// carry wireless markers
func FilterExport(text string) string {
	kept := []string{}

	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, ssidMarker) || strings.Contains(line, radioNameMarker) {
			kept = append(kept, strings.TrimRight(line, "\r"))
		}
	}

	return strings.Join(kept, "\n")
}

// IsCommandError reports whether text is the device rejecting the command
// rather than command output
func IsCommandError(text string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(text))

	for _, prefix := range commandErrorPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}

	return false
}

func collect(pattern *regexp.Regexp, line string, into map[string]struct{}) {
	for _, m := range pattern.FindAllStringSubmatch(line, -1) {
		value := firstNonEmpty(m[1], m[2])

		if value != "" {
			into[value] = struct{}{}
		}
	}
}

func sorted(set map[string]struct{}) []string {
	values := make([]string, 0, len(set))

	for v := range set {
		values = append(values, v)
	}

	sort.Strings(values)

	return values
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
