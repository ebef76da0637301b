package config

import (
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

// DefaultAPIURL is the backend used when nothing is configured.
const DefaultAPIURL = "http://localhost:8000"

// Entry is one documented configuration key.
type Entry struct {
	Key         string `json:"key" yaml:"key"`
	Value       any    `json:"value" yaml:"value"`
	Description string `json:"description" yaml:"description"`
	// Env lists the environment variables that override the key, in
	// precedence order.
	Env []string `json:"env,omitempty" yaml:"env,omitempty"`
}

// DefaultEntries returns every configuration key with its default, in the
// order they are written to a fresh config file.
func DefaultEntries() []Entry {
	d := DefaultConfig()
	return []Entry{
		{
			Key:         "api_url",
			Value:       d.APIURL,
			Description: "Base URL of the extraction backend",
			Env:         []string{"LUMIO_API_URL", "NEXT_PUBLIC_API_URL"},
		},
		{
			Key:         "server.host",
			Value:       d.Server.Host,
			Description: "Dashboard listen host",
			Env:         []string{"LUMIO_SERVER_HOST"},
		},
		{
			Key:         "server.port",
			Value:       d.Server.Port,
			Description: "Dashboard listen port",
			Env:         []string{"LUMIO_SERVER_PORT"},
		},
		{
			Key:         "session.ttl",
			Value:       d.Session.TTL,
			Description: "Idle form sessions are dropped after this long",
			Env:         []string{"LUMIO_SESSION_TTL"},
		},
		{
			Key:         "http.timeout",
			Value:       d.HTTP.Timeout,
			Description: "Timeout of one backend call, extraction included",
			Env:         []string{"LUMIO_HTTP_TIMEOUT"},
		},
		{
			Key:         "upload.max_bytes",
			Value:       d.Upload.MaxBytes,
			Description: "Largest accepted form upload",
			Env:         []string{"LUMIO_UPLOAD_MAX_BYTES"},
		},
	}
}

// GetDefault returns the default entry for a config key.
// Returns nil if no default exists for the key.
func GetDefault(key string) *Entry {
	for _, entry := range DefaultEntries() {
		if entry.Key == key {
			return &entry
		}
	}
	return nil
}

// defaultDocument nests the default entries by their dotted keys, keeping
// entry order.
func defaultDocument() yaml.MapSlice {
	var doc yaml.MapSlice
	for _, e := range DefaultEntries() {
		doc = insert(doc, strings.Split(e.Key, "."), yamlValue(e.Value))
	}
	return doc
}

func insert(m yaml.MapSlice, path []string, v any) yaml.MapSlice {
	if len(path) == 1 {
		return append(m, yaml.MapItem{Key: path[0], Value: v})
	}
	for i, item := range m {
		if item.Key == path[0] {
			if child, ok := item.Value.(yaml.MapSlice); ok {
				m[i].Value = insert(child, path[1:], v)
				return m
			}
		}
	}
	return append(m, yaml.MapItem{Key: path[0], Value: insert(nil, path[1:], v)})
}

// yamlValue writes durations the way they are read back.
func yamlValue(v any) any {
	if d, ok := v.(time.Duration); ok {
		return d.String()
	}
	return v
}
