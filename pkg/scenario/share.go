package scenario

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/iwvelando/rent-vs-buy/pkg/constants"
	"gopkg.in/yaml.v3"
)

// EncodeShareCode serializes a scenario into a URL-safe string.
func EncodeShareCode(in Inputs) (string, error) {
	data, err := json.Marshal(in)
	if err != nil {
		return "", fmt.Errorf("failed to encode scenario: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// DecodeShareCode restores a scenario from a share code. Padded and unpadded
// codes are both accepted.
func DecodeShareCode(code string) (Inputs, error) {
	var in Inputs

	trimmed := strings.TrimRight(strings.TrimSpace(code), "=")
	if trimmed == "" {
		return in, fmt.Errorf("share code is empty")
	}

	data, err := base64.RawURLEncoding.DecodeString(trimmed)
	if err != nil {
		return in, fmt.Errorf("invalid share code: %w", err)
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return in, fmt.Errorf("invalid share code payload: %w", err)
	}
	return in, nil
}

// ShareURL returns baseURL with the scenario's share code attached.
func ShareURL(baseURL string, in Inputs) (string, error) {
	code, err := EncodeShareCode(in)
	if err != nil {
		return "", err
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	query := u.Query()
	query.Set(constants.ShareQueryParam, code)
	u.RawQuery = query.Encode()
	return u.String(), nil
}

// FromURL extracts the scenario carried by a share URL.
func FromURL(rawURL string) (Inputs, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Inputs{}, fmt.Errorf("invalid share URL: %w", err)
	}
	code := u.Query().Get(constants.ShareQueryParam)
	if code == "" {
		return Inputs{}, fmt.Errorf("share URL has no %s parameter", constants.ShareQueryParam)
	}
	return DecodeShareCode(code)
}

// LoadFile reads a scenario from a YAML or JSON file. Fields missing from the
// file keep their Defaults values.
func LoadFile(path string) (Inputs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Inputs{}, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML or JSON scenario document on top of Defaults.
func Parse(data []byte) (Inputs, error) {
	in := Defaults()
	if err := yaml.Unmarshal(data, &in); err != nil {
		return Inputs{}, fmt.Errorf("failed to parse scenario: %w", err)
	}
	return in, nil
}
