package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

type OutputFormat string

func (f *OutputFormat) Set(val string) error {
	for _, format := range allOutputFormats {
		if val == string(format) {
			*f = format
			return nil
		}
	}
	return fmt.Errorf("invalid output format: %s", val)
}

func (f OutputFormat) String() string {
	return string(f)
}

func (f *OutputFormat) Type() string {
	return "OutputFormat"
}

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)

var (
	_                pflag.Value = (*OutputFormat)(nil)
	allOutputFormats             = []OutputFormat{OutputFormatText, OutputFormatJSON, OutputFormatYAML}
)

func addFormatFlag(flags *pflag.FlagSet, format *OutputFormat) {
	*format = OutputFormatText
	flags.VarP(format, "format", "o", fmt.Sprintf("Output format. Possible values are %v", allOutputFormats))
}

func writeResults(w io.Writer, format OutputFormat, results []wordResult) error {
	switch format {
	case OutputFormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(results); err != nil {
			return fmt.Errorf("encoder.Encode > %w", err)
		}
	case OutputFormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(results); err != nil {
			return fmt.Errorf("yaml.Encode > %w", err)
		}
		if err := encoder.Close(); err != nil {
			return fmt.Errorf("yaml.Close > %w", err)
		}
	default:
		valid := color.New(color.FgGreen)
		invalid := color.New(color.FgRed)
		failed := color.New(color.FgYellow)
		for _, r := range results {
			var err error
			switch {
			case r.Error != "":
				_, err = failed.Fprintf(w, "%s: error: %s\n", r.Word, r.Error)
			case r.IsValid:
				_, err = valid.Fprintf(w, "%s: valid\n", r.Word)
			default:
				_, err = invalid.Fprintf(w, "%s: not valid\n", r.Word)
			}
			if err != nil {
				return fmt.Errorf("Fprintf > %w", err)
			}
		}
	}
	return nil
}
