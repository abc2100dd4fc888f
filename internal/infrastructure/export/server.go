package export

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Environment variables that configure the default server.
const (
	EnvProtocol = "HIGHCHARTS_EXPORT_SERVER_PROTOCOL"
	EnvDomain   = "HIGHCHARTS_EXPORT_SERVER_DOMAIN"
	EnvPort     = "HIGHCHARTS_EXPORT_SERVER_PORT"
	EnvPath     = "HIGHCHARTS_EXPORT_SERVER_PATH"
)

// DefaultServer is the export server run by Highsoft.
var DefaultServer = Server{Protocol: "https", Domain: "export.highcharts.com"}

// UnsupportedProtocolError indicates a server protocol other than http(s).
type UnsupportedProtocolError struct {
	Protocol string
}

func (e *UnsupportedProtocolError) Error() string {
	return fmt.Sprintf("protocol expects either http or https, got %q", e.Protocol)
}

// Server locates an export server.
type Server struct {
	Protocol string
	Domain   string
	Path     string
	Port     int
}

// Validate checks the protocol, domain and port.
func (s Server) Validate() error {
	switch s.Protocol {
	case "http", "https":
	default:
		return &UnsupportedProtocolError{Protocol: s.Protocol}
	}
	if s.Domain == "" {
		return fmt.Errorf("export server domain is empty")
	}
	if s.Port < 0 || s.Port > 65535 {
		return fmt.Errorf("export server port %d is out of range", s.Port)
	}
	return nil
}

// URL returns the endpoint requests are posted to.
func (s Server) URL() string {
	host := s.Domain
	if s.Port != 0 {
		host += ":" + strconv.Itoa(s.Port)
	}
	u := url.URL{Scheme: s.Protocol, Host: host}
	if p := strings.Trim(s.Path, "/"); p != "" {
		u.Path = "/" + p
	}
	return u.String()
}

// ParseServerURL splits an endpoint URL into its parts.
func ParseServerURL(raw string) (Server, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return Server{}, fmt.Errorf("invalid export server URL %q: %w", raw, err)
	}
	s := Server{
		Protocol: strings.ToLower(u.Scheme),
		Domain:   u.Hostname(),
		Path:     strings.Trim(u.Path, "/"),
	}
	if p := u.Port(); p != "" {
		s.Port, err = strconv.Atoi(p)
		if err != nil {
			return Server{}, fmt.Errorf("invalid export server port %q: %w", p, err)
		}
	}
	if err := s.Validate(); err != nil {
		return Server{}, err
	}
	return s, nil
}

// ServerFromEnv builds a server from the HIGHCHARTS_EXPORT_SERVER_* variables,
// falling back to DefaultServer for unset ones.
func ServerFromEnv(getenv func(string) string) (Server, error) {
	s := DefaultServer
	if v := getenv(EnvProtocol); v != "" {
		s.Protocol = strings.ToLower(v)
	}
	if v := getenv(EnvDomain); v != "" {
		s.Domain = v
	}
	if v := getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return Server{}, fmt.Errorf("invalid %s %q: %w", EnvPort, v, err)
		}
		s.Port = port
	}
	if v := getenv(EnvPath); v != "" {
		s.Path = v
	}
	if err := s.Validate(); err != nil {
		return Server{}, err
	}
	return s, nil
}
