package recommendation

import (
	"errors"
	"net/url"
	"strings"

	"golang.org/x/net/idna"

	"github.com/MrSnakeDoc/recommendations/internal/domain"
)

type validateOptions struct {
	required bool
}

// Option tunes a field validator.
type Option func(*validateOptions)

// Optional lets the field be absent. Fields are required by default.
func Optional() Option {
	return func(o *validateOptions) { o.required = false }
}

func buildOptions(opts []Option) validateOptions {
	o := validateOptions{required: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// lookup returns the raw value of key. A non-object container is an error
// named after the field being read.
func lookup(container any, key string) (any, bool, error) {
	obj, ok := container.(map[string]any)
	if !ok || obj == nil {
		return nil, false, errNotObject(key)
	}
	v, exists := obj[key]
	return v, exists, nil
}

// ValidateString reads a string field. null counts as absent.
// present is false when the field is absent and optional.
func ValidateString(container any, key string, opts ...Option) (value string, present bool, err error) {
	o := buildOptions(opts)
	raw, _, err := lookup(container, key)
	if err != nil {
		return "", false, err
	}
	if raw == nil {
		if o.required {
			return "", false, errRequired(key)
		}
		return "", false, nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", false, errNotString(key)
	}
	return s, true, nil
}

// ValidateBoolean reads a boolean field. Unlike strings, an explicit null
// is a type error rather than an absent value.
func ValidateBoolean(container any, key string, opts ...Option) (value bool, present bool, err error) {
	o := buildOptions(opts)
	raw, exists, err := lookup(container, key)
	if err != nil {
		return false, false, err
	}
	if !exists {
		if o.required {
			return false, false, errRequired(key)
		}
		return false, false, nil
	}
	b, ok := raw.(bool)
	if !ok {
		return false, false, errNotBoolean(key)
	}
	return b, true, nil
}

// ValidateURL reads a string field and parses it as an absolute URL.
func ValidateURL(container any, key string, opts ...Option) (value *url.URL, present bool, err error) {
	s, present, err := ValidateString(container, key, opts...)
	if err != nil || !present {
		return nil, present, err
	}
	u, err := parseAbsoluteURL(s)
	if err != nil {
		return nil, false, errInvalidURL(key)
	}
	return u, true, nil
}

// ValidateNullableString reads an optional string field and keeps the
// difference between an omitted field (unset) and an explicit null (set to nil).
func ValidateNullableString(container any, key string) (domain.Field[*string], error) {
	raw, exists, err := lookup(container, key)
	if err != nil {
		return domain.Field[*string]{}, err
	}
	if !exists {
		return domain.Unset[*string](), nil
	}
	if raw == nil {
		return domain.Set[*string](nil), nil
	}
	s, ok := raw.(string)
	if !ok {
		return domain.Field[*string]{}, errNotString(key)
	}
	return domain.Set(&s), nil
}

// specialSchemes always carry a host and default to a "/" path. The value
// is the scheme's default port, dropped from canonical URLs.
var specialSchemes = map[string]string{
	"http":  "80",
	"https": "443",
	"ws":    "80",
	"wss":   "443",
	"ftp":   "21",
}

// hostProfile maps internationalized hosts to their ASCII form. Underscores
// and edge hyphens are allowed, as browsers do.
var hostProfile = idna.New(
	idna.MapForLookup(),
	idna.BidiRule(),
	idna.StrictDomainName(false),
	idna.CheckHyphens(false),
)

var (
	errEmptyURL    = errors.New("empty url")
	errRelativeURL = errors.New("url is not absolute")
	errMissingHost = errors.New("url has no host")
)

// parseAbsoluteURL accepts only absolute URLs and returns them in
// canonical form. For web schemes that means a lowercase ASCII host,
// no default port, resolved dot segments and at least a "/" path.
func parseAbsoluteURL(raw string) (*url.URL, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, errEmptyURL
	}
	u, err := url.Parse(s)
	if err != nil {
		return nil, err
	}
	if !u.IsAbs() {
		return nil, errRelativeURL
	}
	u.Scheme = strings.ToLower(u.Scheme)
	defaultPort, special := specialSchemes[u.Scheme]
	if !special {
		return u, nil
	}

	// "https:a.com" and "https:/a.com" name the host a.com.
	if u.Host == "" {
		rest := strings.TrimLeft(s[len(u.Scheme)+1:], `/\`)
		if rest == "" {
			return nil, errMissingHost
		}
		if u, err = url.Parse(u.Scheme + "://" + rest); err != nil {
			return nil, err
		}
	}

	host, err := canonicalHost(u.Hostname())
	if err != nil {
		return nil, err
	}
	if port := u.Port(); port != "" && port != defaultPort {
		host += ":" + port
	}
	u.Host = host

	u = u.ResolveReference(&url.URL{})
	if u.Path == "" {
		u.Path = "/"
	}
	return u, nil
}

func canonicalHost(hostname string) (string, error) {
	if hostname == "" {
		return "", errMissingHost
	}
	if strings.Contains(hostname, ":") {
		return "[" + strings.ToLower(hostname) + "]", nil
	}
	ascii, err := hostProfile.ToASCII(hostname)
	if err != nil {
		return "", err
	}
	if ascii == "" {
		return "", errMissingHost
	}
	return ascii, nil
}
