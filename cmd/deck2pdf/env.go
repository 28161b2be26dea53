package main

import (
	"io"
	"os"
	"time"

	"github.com/alnah/go-deck2pdf"
)

// Converter is what the convert command drives.
type Converter interface {
	deck2pdf.DocumentConverter
	Close() error
}

// Compile-time interface implementation check.
var _ Converter = (*deck2pdf.Converter)(nil)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now          func() time.Time
	Stdout       io.Writer
	Stderr       io.Writer
	NewConverter func(opts ...deck2pdf.Option) (Converter, error)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		NewConverter: func(opts ...deck2pdf.Option) (Converter, error) {
			return deck2pdf.NewConverter(opts...)
		},
	}
}
