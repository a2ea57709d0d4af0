package config

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ParseEndpoints parses an endpoints document, rejecting unknown fields.
func ParseEndpoints(data []byte) (EndpointsFile, error) {
	var file EndpointsFile
	if err := parseStrict(data, &file, "endpoints"); err != nil {
		return EndpointsFile{}, err
	}
	return file, nil
}

// ParseRequests parses a request-queue document, rejecting unknown fields.
func ParseRequests(data []byte) (RequestsFile, error) {
	var file RequestsFile
	if err := parseStrict(data, &file, "requests"); err != nil {
		return RequestsFile{}, err
	}
	return file, nil
}

// parseStrict decodes a single YAML document into out with unknown
// fields rejected.
func parseStrict(data []byte, out any, what string) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("parse %s: %w", what, err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return fmt.Errorf("parse %s: multiple YAML documents are not supported", what)
		}
		return fmt.Errorf("parse %s: %w", what, err)
	}
	return nil
}
