package main

import (
	"bufio"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/davecgh/go-spew/spew"
	"github.com/ghodss/yaml"
	"github.com/spf13/cobra"

	"github.com/eluv-io/errors-go"
	elog "github.com/eluv-io/log-go"

	"github.com/eluv-io/tlv-go/format/tlv"
)

// EnvLogLevel is the environment variable for the log level, overridden by
// the --log-level flag.
const EnvLogLevel = "TLVDUMP_LOG_LEVEL"

type options struct {
	file     string
	config   string
	format   string
	logLevel string
	start    uint16
}

// result is the output of a single payload.
type result struct {
	Payload int         `json:"payload"`
	Records tlv.Records `json:"records"`
	Error   string      `json:"error,omitempty"`
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "tlvdump [hex]",
		Short: "Decode TLV response payloads",
		Long: "tlvdump decodes TLV response payloads of metering endpoints into records.\n" +
			"The payload is given as hex argument, as binary file with --file, or as hex\n" +
			"lines on stdin, one payload per line.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configureLog(opts.logLevel)

			cfg, err := loadConfig(opts.config)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("start") {
				cfg.StartOffset = opts.start
			}

			payloads, err := readPayloads(in, opts.file, args)
			if err != nil {
				return err
			}

			p := tlv.NewParser(cfg)
			res := p.ParseBatch(cmd.Context(), payloads)
			log.Debug("payloads decoded", "stats", p.Stats())

			return write(out, opts.format, res)
		},
	}
	cmd.SetIn(in)
	cmd.SetOut(out)

	flags := cmd.Flags()
	flags.StringVar(&opts.file, "file", "", "binary file containing a single payload")
	flags.StringVar(&opts.config, "config", "", "yaml or json file with the decoder configuration")
	flags.StringVar(&opts.format, "format", "json", "output format: json, text or dump")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level, defaults to $"+EnvLogLevel+" or warn")
	flags.Uint16Var(&opts.start, "start", tlv.DefaultStartOffset, "offset of the first record")
	return cmd
}

func configureLog(level string) {
	if level == "" {
		level = os.Getenv(EnvLogLevel)
	}
	if level == "" {
		level = "warn"
	}
	elog.SetDefault(&elog.Config{
		Level:   level,
		Handler: "text",
	})
}

// loadConfig reads the decoder configuration from the given yaml or json
// file. An empty path yields the default configuration.
func loadConfig(path string) (tlv.Config, error) {
	cfg := tlv.DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	e := errors.Template("loadConfig", errors.K.Invalid, "path", path)

	bts, err := os.ReadFile(path)
	if err != nil {
		return cfg, e(errors.K.IO, err)
	}
	m := map[string]interface{}{}
	err = yaml.Unmarshal(bts, &m)
	if err != nil {
		return cfg, e(err, "reason", "invalid config file")
	}
	err = cfg.UnmarshalMap(m)
	if err != nil {
		return cfg, e(err)
	}
	return cfg, nil
}

func readPayloads(in io.Reader, file string, args []string) ([][]byte, error) {
	e := errors.Template("readPayloads", errors.K.Invalid)
	switch {
	case file != "" && len(args) > 0:
		return nil, e("reason", "hex argument and --file are mutually exclusive")
	case file != "":
		bts, err := os.ReadFile(file)
		if err != nil {
			return nil, e(errors.K.IO, err, "file", file)
		}
		return [][]byte{bts}, nil
	case len(args) > 0:
		bts, err := decodeHex(args[0])
		if err != nil {
			return nil, e(err)
		}
		return [][]byte{bts}, nil
	}

	var payloads [][]byte
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		bts, err := decodeHex(text)
		if err != nil {
			return nil, e(err, "line", line)
		}
		payloads = append(payloads, bts)
	}
	if err := scanner.Err(); err != nil {
		return nil, e(errors.K.IO, err)
	}
	return payloads, nil
}

func decodeHex(raw string) ([]byte, error) {
	clean := stripWhitespace(raw)
	clean = strings.TrimPrefix(strings.TrimPrefix(clean, "0x"), "0X")
	if clean == "" {
		return nil, errors.E("decodeHex", errors.K.Invalid, "reason", "empty payload")
	}
	bts, err := hex.DecodeString(clean)
	if err != nil {
		return nil, errors.E("decodeHex", errors.K.Invalid, err, "reason", "invalid hex")
	}
	return bts, nil
}

func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func write(out io.Writer, format string, res []tlv.BatchResult) error {
	results := make([]result, len(res))
	for i, r := range res {
		results[i] = result{Payload: i, Records: r.Records}
		if r.Err != nil {
			results[i].Error = r.Err.Error()
		}
	}

	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case "text":
		for _, r := range results {
			_, _ = fmt.Fprintf(out, "payload %d: %d records\n", r.Payload, len(r.Records))
			for _, rec := range r.Records {
				_, _ = fmt.Fprintf(out, "  %s\n", rec)
			}
			if r.Error != "" {
				_, _ = fmt.Fprintf(out, "  error: %s\n", r.Error)
			}
		}
		return nil
	case "dump":
		spew.Fdump(out, results)
		return nil
	}
	return errors.E("write", errors.K.Invalid, "reason", "unknown output format", "format", format)
}
