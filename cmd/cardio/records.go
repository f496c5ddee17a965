package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/dom/meucoracao/internal/client"
	"github.com/google/uuid"
)

type field struct {
	name  string
	usage string
}

type resource struct {
	path   string
	fields []field
}

var resources = map[string]resource{
	"agenda": {path: client.PathAgenda, fields: []field{
		{"titulo", "Title (required)"},
		{"medico", "Doctor"},
		{"data", "Date (required)"},
		{"horario", "Time (required)"},
		{"local", "Location"},
		{"observacoes", "Notes"},
	}},
	"alergias": {path: client.PathAlergias, fields: []field{
		{"nome", "Allergen (required)"},
		{"tipo", "Kind (required)"},
	}},
	"laudos": {path: client.PathLaudos, fields: []field{
		{"titulo", "Title (required)"},
		{"data", "Date (required)"},
		{"observacoes", "Notes"},
	}},
	"remedios": {path: client.PathRemedios, fields: []field{
		{"nome", "Medication name (required)"},
		{"dosagem", "Dosage (required)"},
	}},
}

func (res resource) run(ctx context.Context, c *client.Client, action string, args []string) error {
	if c.Session() == nil {
		return errNotSignedIn
	}
	api := client.NewResourceClient[json.RawMessage](c, res.path)

	switch action {
	case "list":
		records, err := api.List(ctx)
		if err != nil {
			return err
		}
		return printJSON(records)
	case "get":
		id, err := parseID(action, args)
		if err != nil {
			return err
		}
		record, err := api.Get(ctx, id)
		if err != nil {
			return err
		}
		return printJSON(record)
	case "add":
		body := res.parseFields(action, args, false)
		record, err := api.Create(ctx, body)
		if err != nil {
			return err
		}
		return printJSON(record)
	case "edit":
		body := res.parseFields(action, args, true)
		id, err := uuid.Parse(body["id"])
		if err != nil {
			return errors.New("edit needs --id=<record id>")
		}
		delete(body, "id")
		record, err := api.Update(ctx, id, body)
		if err != nil {
			return err
		}
		return printJSON(record)
	case "rm":
		id, err := parseID(action, args)
		if err != nil {
			return err
		}
		if err := api.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Println("Deleted", id)
		return nil
	default:
		return fmt.Errorf("unknown action %q, want one of list, get, add, edit, rm", action)
	}
}

// parseFields returns only the flags given on the command line, so edit
// leaves the other fields untouched on the server.
func (res resource) parseFields(action string, args []string, withID bool) map[string]string {
	fs := flag.NewFlagSet(action, flag.ExitOnError)
	values := make(map[string]*string, len(res.fields)+1)
	for _, f := range res.fields {
		values[f.name] = fs.String(f.name, "", f.usage)
	}
	if withID {
		values["id"] = fs.String("id", "", "Record id (required)")
	}
	fs.Parse(args)

	body := make(map[string]string)
	fs.Visit(func(f *flag.Flag) {
		body[f.Name] = *values[f.Name]
	})
	return body
}

func parseID(action string, args []string) (uuid.UUID, error) {
	fs := flag.NewFlagSet(action, flag.ExitOnError)
	id := fs.String("id", "", "Record id (required)")
	fs.Parse(args)

	raw := *id
	if raw == "" && fs.NArg() > 0 {
		raw = fs.Arg(0)
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s needs --id=<record id>", action)
	}
	return parsed, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
