// Utilities for parsing cURL commands copied from browser DevTools.
//
// Used by `cinectl setup session` to import an existing CineNiche session
// cookie without re-entering credentials.
package shared

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// CurlSession represents headers and the session cookie parsed from a cURL command.
type CurlSession struct {
	Headers map[string]string
	Cookie  string
}

// ParseCurlFile reads a .sh file containing a cURL command and extracts the session.
func ParseCurlFile(filepath string) (*CurlSession, error) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read curl file: %w", err)
	}

	return ParseCurlCommand(content)
}

var (
	headerRegex = regexp.MustCompile(`-H\s+'([^']+)'|-H\s+"([^"]+)"`)
	cookieRegex = regexp.MustCompile(`-b\s+'([^']+)'|-b\s+"([^"]+)"`)
)

// ParseCurlCommand parses a cURL command string and extracts headers and the
// Cookie value, whether given via -b or a Cookie header.
func ParseCurlCommand(data []byte) (*CurlSession, error) {
	curlCmd := string(data)
	curlCmd = strings.ReplaceAll(curlCmd, "\\\n", " ")
	curlCmd = strings.ReplaceAll(curlCmd, "\\", "")

	headers := make(map[string]string)
	var cookie string

	matches := headerRegex.FindAllStringSubmatch(curlCmd, -1)
	for _, match := range matches {
		headerLine := match[1]
		if headerLine == "" {
			headerLine = match[2]
		}

		parts := strings.SplitN(headerLine, ":", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if strings.EqualFold(key, "cookie") {
			cookie = value
		} else {
			headers[key] = value
		}
	}

	if cookieMatch := cookieRegex.FindStringSubmatch(curlCmd); len(cookieMatch) > 1 {
		if cookieMatch[1] != "" {
			cookie = cookieMatch[1]
		} else if cookieMatch[2] != "" {
			cookie = cookieMatch[2]
		}
	}

	if cookie == "" && len(headers) == 0 {
		return nil, fmt.Errorf("%w: no headers or cookie found in cURL command", ErrInvalidInput)
	}

	return &CurlSession{Headers: headers, Cookie: cookie}, nil
}

// SessionCookie returns the named cookie's value from the parsed Cookie
// string, or an empty string when absent.
func (c *CurlSession) SessionCookie(name string) string {
	for _, pair := range strings.Split(c.Cookie, ";") {
		pair = strings.TrimSpace(pair)
		if k, v, ok := strings.Cut(pair, "="); ok && k == name {
			return v
		}
	}
	return ""
}
