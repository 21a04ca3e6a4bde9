package command

import (
	"encoding/json"
	"strings"

	"wpr/pkg/output"
	"wpr/pkg/remote"

	"github.com/spf13/pflag"
)

// FormatOptions holds the --fields and --format flags shared by every
// listing command.
type FormatOptions struct {
	Fields string
	Format string
}

// Install registers the shared flags, seeding --fields with the
// resource's default column set.
func (o *FormatOptions) Install(flags *pflag.FlagSet, defaults []string) {
	flags.StringVar(&o.Fields, "fields", strings.Join(defaults, ","), "Comma-separated list of fields to display")
	flags.StringVar(&o.Format, "format", output.FormatTable, `Output format ("table", "csv", "json" or "ids")`)
}

// FieldList splits the --fields value into its column names.
func (o FormatOptions) FieldList() []string {
	fields := strings.Split(o.Fields, ",")
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}
	return fields
}

// RenderResult writes a dispatch result to the cli streams. Tabular
// results go through the output formatter, acknowledgements through the
// success line, and plain values are printed bare so they compose in
// shell pipelines.
func RenderResult(cli Cli, format string, result remote.Result, fields []string) error {
	switch result.Kind {
	case remote.KindRecords:
		return output.FormatItems(cli.Out(), format, result.Records, fields)
	case remote.KindRecord:
		return output.FormatItem(cli.Out(), format, result.Record)
	case remote.KindValue:
		return printValue(cli, result.Value)
	case remote.KindAck:
		cli.Output().Successln(result.Ack.Message)
	}
	return nil
}

func printValue(cli Cli, value any) error {
	switch value.(type) {
	case map[string]any, []any:
		encoded, err := json.Marshal(value)
		if err != nil {
			return err
		}
		_, err = cli.Out().WriteString(string(encoded) + "\n")
		return err
	default:
		_, err := cli.Out().WriteString(remote.FormatValue(value) + "\n")
		return err
	}
}
