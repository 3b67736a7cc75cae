// Command bread-cli interactively scaffolds a view configuration: it asks
// for the record type, its fields, and the enabled views, then writes a YAML
// file a service can load alongside its descriptor wiring.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-bread/pkg/views"
)

type fieldScaffold struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Required bool   `yaml:"required,omitempty"`
	Primary  bool   `yaml:"primary_key,omitempty"`
}

type scaffold struct {
	Model struct {
		Name     string          `yaml:"name"`
		Plural   string          `yaml:"plural,omitempty"`
		AppLabel string          `yaml:"app_label,omitempty"`
		Fields   []fieldScaffold `yaml:"fields"`
	} `yaml:"model"`
	Views  string       `yaml:"views"`
	Config views.Config `yaml:"config"`
}

func main() {
	output := flag.String("output", "", "output file (stdout if empty)")
	flag.Parse()

	doc, err := ask()
	if err != nil {
		log.Fatalf("scaffold aborted: %v", err)
	}

	raw, err := yaml.Marshal(doc)
	if err != nil {
		log.Fatalf("encode scaffold: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, raw, 0o644); err != nil {
			log.Fatalf("write %s: %v", *output, err)
		}
		fmt.Printf("Scaffold written to %s\n", *output)
	} else {
		fmt.Print(string(raw))
	}

	var stubs bool
	if err := survey.AskOne(&survey.Confirm{
		Message: "Write model template stubs?",
	}, &stubs); err != nil {
		log.Fatalf("scaffold aborted: %v", err)
	}
	if !stubs {
		return
	}

	var dir string
	if err := survey.AskOne(&survey.Input{
		Message: "Template directory:",
		Default: "templates",
	}, &dir); err != nil {
		log.Fatalf("scaffold aborted: %v", err)
	}
	if err := writeTemplateStubs(dir, doc); err != nil {
		log.Fatalf("write template stubs: %v", err)
	}
}

// writeTemplateStubs drops one override file per view next to the generic
// templates so the deployment can customise a view by editing its stub.
func writeTemplateStubs(dir string, doc *scaffold) error {
	appLabel := doc.Model.AppLabel
	if appLabel == "" {
		appLabel = doc.Model.Name
	}
	target := filepath.Join(dir, appLabel)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return err
	}

	suffixes := map[byte][]string{
		'B': {"browse"},
		'R': {"read"},
		'E': {"edit"},
		'A': {"edit"},
		'D': {"confirm_delete"},
	}
	written := make(map[string]struct{})
	for _, letter := range []byte(doc.Views) {
		for _, suffix := range suffixes[letter] {
			name := fmt.Sprintf("%s_%s.html", doc.Model.Name, suffix)
			if _, done := written[name]; done {
				continue
			}
			written[name] = struct{}{}

			path := filepath.Join(target, name)
			if _, err := os.Stat(path); err == nil {
				continue
			}
			generic := strings.TrimPrefix(suffix, "confirm_")
			content := fmt.Sprintf("{# %s override for %s; delete this file to fall back to bread/%s.html #}\n",
				suffix, doc.Model.Name, generic)
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				return err
			}
			fmt.Printf("Stub written to %s\n", path)
		}
	}
	return nil
}

func ask() (*scaffold, error) {
	var doc scaffold

	namePrompts := []*survey.Question{
		{
			Name:     "name",
			Prompt:   &survey.Input{Message: "Record name (singular, lowercase):"},
			Validate: survey.Required,
		},
		{
			Name:   "plural",
			Prompt: &survey.Input{Message: "Plural name (empty for name + \"s\"):"},
		},
		{
			Name:   "applabel",
			Prompt: &survey.Input{Message: "App label (empty to reuse the name):"},
		},
	}
	answers := struct {
		Name     string
		Plural   string
		AppLabel string `survey:"applabel"`
	}{}
	if err := survey.Ask(namePrompts, &answers); err != nil {
		return nil, err
	}
	doc.Model.Name = answers.Name
	doc.Model.Plural = answers.Plural
	doc.Model.AppLabel = answers.AppLabel

	for {
		field, more, err := askField(len(doc.Model.Fields))
		if err != nil {
			return nil, err
		}
		if field != nil {
			doc.Model.Fields = append(doc.Model.Fields, *field)
		}
		if !more {
			break
		}
	}
	if len(doc.Model.Fields) == 0 {
		return nil, fmt.Errorf("at least one field is required")
	}

	var letters []string
	if err := survey.AskOne(&survey.MultiSelect{
		Message: "Enabled views:",
		Options: []string{"Browse", "Read", "Edit", "Add", "Delete"},
		Default: []string{"Browse", "Read", "Edit", "Add", "Delete"},
	}, &letters); err != nil {
		return nil, err
	}
	for _, letter := range letters {
		doc.Views += letter[:1]
	}

	cfg := views.DefaultConfig()
	if err := survey.AskOne(&survey.Input{
		Message: "Login URL:",
		Default: cfg.LoginURL,
	}, &cfg.LoginURL); err != nil {
		return nil, err
	}

	var pageSize string
	if err := survey.AskOne(&survey.Input{
		Message: "Browse page size (0 disables pagination):",
		Default: "0",
	}, &pageSize); err != nil {
		return nil, err
	}
	if _, err := fmt.Sscanf(pageSize, "%d", &cfg.PageSize); err != nil {
		return nil, fmt.Errorf("page size must be a number: %w", err)
	}
	doc.Config = cfg

	return &doc, nil
}

func askField(count int) (*fieldScaffold, bool, error) {
	var field fieldScaffold

	if err := survey.AskOne(&survey.Input{
		Message: fmt.Sprintf("Field %d name:", count+1),
	}, &field.Name, survey.WithValidator(survey.Required)); err != nil {
		return nil, false, err
	}
	if err := survey.AskOne(&survey.Select{
		Message: "Field type:",
		Options: []string{"string", "integer", "number", "boolean"},
		Default: "string",
	}, &field.Type); err != nil {
		return nil, false, err
	}
	if err := survey.AskOne(&survey.Confirm{
		Message: "Required?",
	}, &field.Required); err != nil {
		return nil, false, err
	}
	if err := survey.AskOne(&survey.Confirm{
		Message: "Primary key?",
	}, &field.Primary); err != nil {
		return nil, false, err
	}

	var more bool
	if err := survey.AskOne(&survey.Confirm{
		Message: "Add another field?",
		Default: true,
	}, &more); err != nil {
		return nil, false, err
	}
	return &field, more, nil
}
