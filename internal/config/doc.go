// Package config loads and validates the YAML configuration of deck2pdf.
package config
