// Command schema writes the JSON schema of the feedsync config file.
// It is run by go generate in pkg/config, with --check it only reports a stale schema file.
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/umputun/feedsync/pkg/config"
)

type options struct {
	Check bool `long:"check" description:"fail if the schema file differs from the config types"`
	Args  struct {
		Output string `positional-arg-name:"output" description:"schema file path, defaults to schema.json"`
	} `positional-args:"yes"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "feedsync schema: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	outputPath := opts.Args.Output
	if outputPath == "" {
		outputPath = "schema.json"
	}

	data, err := renderSchema()
	if err != nil {
		return err
	}

	if opts.Check {
		current, err := os.ReadFile(outputPath) //nolint:gosec // path comes from go generate
		if err != nil {
			return fmt.Errorf("read %s: %w", outputPath, err)
		}
		if !bytes.Equal(bytes.TrimSpace(current), bytes.TrimSpace(data)) {
			return fmt.Errorf("%s is stale, run go generate ./pkg/config", outputPath)
		}
		fmt.Printf("%s is up to date\n", outputPath)
		return nil
	}

	if err := os.WriteFile(outputPath, data, 0o600); err != nil { //nolint:gosec // schema file is not sensitive
		return fmt.Errorf("write %s: %w", outputPath, err)
	}
	fmt.Printf("config schema written to %s\n", outputPath)
	return nil
}

func renderSchema() ([]byte, error) {
	data, err := json.MarshalIndent(config.GenerateSchema(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return append(data, '\n'), nil
}
