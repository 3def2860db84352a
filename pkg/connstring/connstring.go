// Package connstring parses logical connection URLs into their parts,
// independent of the target engine.
//
// The query string is treated as a flat string→string option map with no
// type coercion: boolean-ish flags stay strings ("false", "1") and are
// interpreted downstream by explicit comparison. A missing SSL flag means
// enabled; only an explicit "false"/"disable" turns it off.
package connstring

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/squill-labs/squill/pkg/core"
)

// Config is the engine-agnostic decomposition of a connection URL.
type Config struct {
	Scheme   string
	Host     string
	Port     int
	User     string
	Password string
	Database string
	Options  map[string]string
}

// Parse splits a connection URL into its parts. Credentials containing
// characters that are invalid in URLs (a common case for passwords with '#'
// or spaces) are percent-encoded before parsing, so users can paste the raw
// string their database handed them.
func Parse(raw string) (*Config, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, &core.MalformedConnStringError{Reason: "empty string"}
	}

	u, err := url.Parse(encodeInvalid(raw))
	if err != nil {
		return nil, &core.MalformedConnStringError{Reason: "not a valid URL", Err: err}
	}
	if u.Scheme == "" {
		return nil, &core.MalformedConnStringError{Reason: "missing scheme"}
	}

	cfg := &Config{
		Scheme:  u.Scheme,
		Host:    u.Hostname(),
		Options: map[string]string{},
	}

	if u.User != nil {
		cfg.User = u.User.Username()
		cfg.Password, _ = u.User.Password()
	}

	if p := u.Port(); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return nil, &core.MalformedConnStringError{Reason: fmt.Sprintf("invalid port %q", p)}
		}
		cfg.Port = port
	}

	if path := strings.TrimPrefix(u.Path, "/"); path != "" {
		cfg.Database = path
	}

	for key, vals := range u.Query() {
		if len(vals) > 0 {
			cfg.Options[key] = vals[0]
		}
	}

	return cfg, nil
}

// String reconstructs an equivalent connection URL from the parts. The
// result round-trips through Parse modulo percent-encoding normalization.
func (c *Config) String() string {
	u := url.URL{
		Scheme: c.Scheme,
		Host:   c.Host,
	}
	if c.Port != 0 {
		u.Host = fmt.Sprintf("%s:%d", c.Host, c.Port)
	}
	if c.User != "" {
		if c.Password != "" {
			u.User = url.UserPassword(c.User, c.Password)
		} else {
			u.User = url.User(c.User)
		}
	}
	if c.Database != "" {
		u.Path = "/" + c.Database
	}
	if len(c.Options) > 0 {
		keys := make([]string, 0, len(c.Options))
		for k := range c.Options {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		q := url.Values{}
		for _, k := range keys {
			q.Set(k, c.Options[k])
		}
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// SSLEnabled reports whether the SSL-ish options ask for an encrypted
// connection. Flags are strings on purpose: anything but an explicit
// "false"/"0"/"disable" leaves SSL on, matching the permissive default of
// the option contract.
func (c *Config) SSLEnabled() bool {
	if mode, ok := c.Options["sslmode"]; ok {
		return mode != "disable"
	}
	if ssl, ok := c.Options["ssl"]; ok {
		return ssl != "false" && ssl != "0"
	}
	return true
}

// SSLMode returns the sslmode option, or empty when unset.
func (c *Config) SSLMode() string { return c.Options["sslmode"] }

// encodeInvalid percent-encodes characters that break URL parsing when they
// appear raw in credentials, leaving existing valid %XX escapes intact.
func encodeInvalid(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		ch := raw[i]
		switch ch {
		case '%':
			if i+2 < len(raw) && isHex(raw[i+1]) && isHex(raw[i+2]) {
				b.WriteByte(ch)
			} else {
				b.WriteString("%25")
			}
		case ' ', '#', '<', '>', '"', '^', '`', '{', '}', '|', '\\':
			fmt.Fprintf(&b, "%%%02X", ch)
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}

func isHex(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}
