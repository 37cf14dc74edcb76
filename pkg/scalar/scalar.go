// Package scalar converts item values to and from their text form.
//
// The parser, the runtime setting handler and the generators all speak the
// same text, so a value reported by one can be fed back through another.
package scalar

import (
	"fmt"
	"net/netip"
	"strconv"
	"strings"

	"github.com/motion-firmware/motioncfg/pkg/config"
	"github.com/motion-firmware/motioncfg/pkg/enum"
)

// ParseBool accepts true/false, yes/no, on/off and 1/0, in any case.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	default:
		return false, fmt.Errorf("%w: not a boolean", config.ErrFormat)
	}
}

// FormatBool returns "true" or "false".
func FormatBool(b bool) string {
	return strconv.FormatBool(b)
}

// ParseInt32 parses a decimal 32-bit integer.
func ParseInt32(s string) (int32, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: not a 32-bit integer", config.ErrFormat)
	}
	return int32(v), nil
}

// FormatInt32 returns the decimal form of v.
func FormatInt32(v int32) string {
	return strconv.FormatInt(int64(v), 10)
}

// ParseFloat parses a 32-bit float.
func ParseFloat(s string) (float32, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
	if err != nil {
		return 0, fmt.Errorf("%w: not a number", config.ErrFormat)
	}
	return float32(v), nil
}

// FormatFloat returns v with at least three decimals, and with as many more
// as ParseFloat needs to get v back exactly.
func FormatFloat(v float32) string {
	s := strconv.FormatFloat(float64(v), 'f', -1, 32)
	if i := strings.IndexByte(s, '.'); i < 0 || len(s)-i-1 < 3 {
		return strconv.FormatFloat(float64(v), 'f', 3, 32)
	}
	return s
}

// ParseIPAddress parses an IPv4 or IPv6 address. The empty string is the
// zero Addr, meaning unset.
func ParseIPAddress(s string) (netip.Addr, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return netip.Addr{}, nil
	}
	a, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("%w: not an IP address", config.ErrFormat)
	}
	return a, nil
}

// FormatIPAddress returns the text form of a, or "" for the zero Addr.
func FormatIPAddress(a netip.Addr) string {
	if !a.IsValid() {
		return ""
	}
	return a.String()
}

// FormatEnum returns the canonical name of v in table. Values without a
// name are returned as decimal integers and ok is false.
func FormatEnum(v int, table enum.Table) (text string, ok bool) {
	if name, found := table.Name(v); found {
		return name, true
	}
	return strconv.Itoa(v), false
}

// ParseEnum returns the value of name in table. A decimal integer is
// accepted if the table has a name for it.
func ParseEnum(s string, table enum.Table) (int, error) {
	s = strings.TrimSpace(s)
	v, ok := table.Value(s)
	if !ok {
		if n, err := strconv.Atoi(s); err == nil {
			if _, named := table.Name(n); named {
				return n, nil
			}
		}
		return 0, fmt.Errorf("%w: valid names are %s", config.ErrUnknownName, strings.Join(table.Names(), ", "))
	}
	return v, nil
}

// ParseSpeedMap parses a calibration table such as "0=0% 1000=10% 24000=100%".
// Speeds must not decrease and percentages must be within 0-100. Offset and
// Scale are filled in later by config.SetupSpeeds.
func ParseSpeedMap(s string) ([]config.SpeedEntry, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, nil
	}

	entries := make([]config.SpeedEntry, 0, len(fields))
	for _, f := range fields {
		speed, pct, ok := strings.Cut(f, "=")
		if !ok {
			return nil, fmt.Errorf("%w: %q: want speed=percent%%", config.ErrFormat, f)
		}
		sp, err := strconv.ParseUint(speed, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: bad speed", config.ErrFormat, f)
		}
		p, err := strconv.ParseFloat(strings.TrimSuffix(pct, "%"), 32)
		if err != nil || p < 0 || p > 100 {
			return nil, fmt.Errorf("%w: %q: bad percentage", config.ErrFormat, f)
		}
		if n := len(entries); n > 0 && uint32(sp) < entries[n-1].Speed {
			return nil, fmt.Errorf("%w: %q: speeds must not decrease", config.ErrFormat, f)
		}
		entries = append(entries, config.SpeedEntry{Speed: uint32(sp), Percent: float32(p)})
	}
	return entries, nil
}

// FormatSpeedMap returns the text form of a calibration table.
func FormatSpeedMap(entries []config.SpeedEntry) string {
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = fmt.Sprintf("%d=%s%%", e.Speed, strconv.FormatFloat(float64(e.Percent), 'f', -1, 32))
	}
	return strings.Join(parts, " ")
}
